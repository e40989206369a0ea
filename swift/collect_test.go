package swift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/schema"
)

func TestCollectDeduplicatesAcrossFields(t *testing.T) {
	nested := schema.VectorType(schema.VectorType(schema.ScalarType(schema.Int32)))
	s := &schema.Schema{
		Structs: []*schema.StructDef{
			{Name: "A", Fields: []*schema.FieldDef{{Name: "grid", Type: nested}}},
			{Name: "B", Fields: []*schema.FieldDef{{Name: "matrix", Type: nested}}},
		},
	}

	arrays, err := collectArrays(newResolver("::"), s)
	require.NoError(t, err)

	// Two unrelated fields, one canonical key, one synthetic type.
	assert.Equal(t, 1, arrays.Len())
	assert.Equal(t, []string{"FlatBufferInt32ArrayArray"}, arrays.Keys())
}

func TestCollectSkipsScalarVectors(t *testing.T) {
	s := &schema.Schema{
		Structs: []*schema.StructDef{
			{Name: "Monster", Fields: []*schema.FieldDef{
				{Name: "inventory", Type: schema.VectorType(schema.ScalarType(schema.UInt8))},
				{Name: "name", Type: schema.ScalarType(schema.String)},
			}},
		},
	}

	arrays, err := collectArrays(newResolver("::"), s)
	require.NoError(t, err)
	assert.Equal(t, 0, arrays.Len())
}

func TestCollectKeysAreSorted(t *testing.T) {
	weapon := &schema.StructDef{Name: "Weapon"}
	armor := &schema.StructDef{Name: "Armor"}
	s := &schema.Schema{
		Structs: []*schema.StructDef{
			weapon,
			armor,
			{Name: "Monster", Fields: []*schema.FieldDef{
				{Name: "weapons", Type: schema.VectorType(schema.StructType(weapon))},
				{Name: "armors", Type: schema.VectorType(schema.StructType(armor))},
			}},
		},
	}

	arrays, err := collectArrays(newResolver("::"), s)
	require.NoError(t, err)
	// Sorted by canonical key, not by discovery order.
	assert.Equal(t, []string{"ArmorArray", "WeaponArray"}, arrays.Keys())
}

func TestCollectRejectsVectorOfUnion(t *testing.T) {
	s := &schema.Schema{
		Structs: []*schema.StructDef{
			{Name: "Monster", Fields: []*schema.FieldDef{
				{Name: "equipment", Type: schema.VectorType(schema.Type{Base: schema.Union})},
			}},
		},
	}

	_, err := collectArrays(newResolver("::"), s)
	require.Error(t, err)

	var unsupportedErr *UnsupportedTypeError
	require.True(t, errors.As(err, &unsupportedErr))
	assert.Equal(t, schema.Union, unsupportedErr.Kind)
	assert.Equal(t, "Monster.equipment", unsupportedErr.Path)
}

func TestCollectIsIdempotentAcrossRuns(t *testing.T) {
	weapon := &schema.StructDef{Name: "Weapon"}
	s := &schema.Schema{
		Structs: []*schema.StructDef{
			weapon,
			{Name: "Monster", Fields: []*schema.FieldDef{
				{Name: "weapons", Type: schema.VectorType(schema.StructType(weapon))},
			}},
		},
	}

	first, err := collectArrays(newResolver("::"), s)
	require.NoError(t, err)
	second, err := collectArrays(newResolver("::"), s)
	require.NoError(t, err)
	assert.Equal(t, first.Keys(), second.Keys())
}
