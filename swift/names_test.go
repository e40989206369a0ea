package swift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/schema"
)

func TestScalarProjections(t *testing.T) {
	tests := []struct {
		base     schema.BaseType
		internal string
		storage  string
	}{
		{schema.Bool, "FlatBufferBool", "bool"},
		{schema.Int8, "FlatBufferInt8", "int8_t"},
		{schema.UInt8, "FlatBufferUInt8", "uint8_t"},
		{schema.Int16, "FlatBufferInt16", "int16_t"},
		{schema.UInt16, "FlatBufferUInt16", "uint16_t"},
		{schema.Int32, "FlatBufferInt32", "int32_t"},
		{schema.UInt32, "FlatBufferUInt32", "uint32_t"},
		{schema.Int64, "FlatBufferInt64", "int64_t"},
		{schema.UInt64, "FlatBufferUInt64", "uint64_t"},
		{schema.Float32, "FlatBufferFloat", "float"},
		{schema.Float64, "FlatBufferDouble", "double"},
	}

	r := newResolver("::")
	for _, tt := range tests {
		t.Run(tt.base.String(), func(t *testing.T) {
			p, err := r.project(schema.ScalarType(tt.base), "test")
			require.NoError(t, err)
			assert.Equal(t, tt.internal, p.Internal)
			assert.Equal(t, tt.storage, p.FlatStorage)
			// Getter and setter must agree on width and signedness; for
			// scalars they are the same storage name, and the cast is
			// identity.
			assert.Equal(t, p.Getter, p.Setter)
			assert.Equal(t, tt.storage, p.Getter)
			assert.Equal(t, "value", p.GetCast)
		})
	}
}

func TestStringProjection(t *testing.T) {
	r := newResolver("::")
	p, err := r.project(schema.ScalarType(schema.String), "test")
	require.NoError(t, err)

	assert.Equal(t, "FlatBufferString", p.Internal)
	assert.Equal(t, "flatbuffers::String", p.FlatStorage)
	assert.Equal(t, "NSString *", p.Getter)
	assert.Equal(t, "FlatBufferStringOffset", p.Setter)
	// Zero-copy: the cast constructs a view over the buffer bytes rather
	// than copying them out.
	assert.Contains(t, p.GetCast, "initWithBytesNoCopy")
	assert.Contains(t, p.GetCast, "freeWhenDone:NO")
}

func TestVectorProjectionMatchesCollectorNaming(t *testing.T) {
	weapon := &schema.StructDef{Name: "Weapon"}
	vec := schema.VectorType(schema.StructType(weapon))

	r := newResolver("::")
	p, err := r.project(vec, "test")
	require.NoError(t, err)

	// The vector name is element internal name + "Array"; the collector
	// derives its registration key from the same rule, so the two always
	// agree.
	assert.Equal(t, "WeaponArray", p.Internal)
	assert.Equal(t, "WeaponArrayRef", p.Ref)
	assert.Equal(t, "WeaponArrayOffset", p.Offset)
	assert.Equal(t, "flatbuffers::Vector<flatbuffers::Offset<Weapon>>", p.FlatStorage)

	arrays, err := collectArrays(r, &schema.Schema{
		Structs: []*schema.StructDef{
			weapon,
			{Name: "Monster", Fields: []*schema.FieldDef{{Name: "weapons", Type: vec}}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"WeaponArray"}, arrays.Keys())
}

func TestNestedVectorNaming(t *testing.T) {
	r := newResolver("::")
	inner := schema.VectorType(schema.ScalarType(schema.Int32))
	outer := schema.VectorType(inner)

	p, err := r.project(outer, "test")
	require.NoError(t, err)
	assert.Equal(t, "FlatBufferInt32ArrayArray", p.Internal)
	assert.Equal(t, "flatbuffers::Vector<flatbuffers::Offset<flatbuffers::Vector<int32_t>>>", p.FlatStorage)
}

func TestStructProjectionFixedVersusTable(t *testing.T) {
	table := &schema.StructDef{Name: "Monster"}
	fixed := &schema.StructDef{Name: "Vec3", Fixed: true}

	r := newResolver("::")

	tp, err := r.project(schema.StructType(table), "test")
	require.NoError(t, err)
	assert.Equal(t, "MonsterRef", tp.Getter)
	assert.Equal(t, "MonsterOffset", tp.Setter)
	assert.Equal(t, "{ .buf = value }", tp.GetCast)

	fp, err := r.project(schema.StructType(fixed), "test")
	require.NoError(t, err)
	// Fixed structs cross the bridge by value: no absence encoding exists
	// inside the wire format, so the setter takes a nullable pointer.
	assert.Equal(t, "Vec3", fp.Getter)
	assert.Equal(t, "const Vec3 *", fp.Setter)
	assert.Equal(t, "*reinterpret_cast<const Vec3 *>(value)", fp.GetCast)

	// projectDef is the infallible entry point over definitions and shares
	// the memo with project.
	assert.Same(t, tp, r.projectDef(table))
	assert.Same(t, fp, r.projectDef(fixed))
}

func TestNamespacedStorageName(t *testing.T) {
	def := &schema.StructDef{Name: "Monster", Namespace: []string{"MyGame", "Sample"}}
	r := newResolver("::")
	p, err := r.project(schema.StructType(def), "test")
	require.NoError(t, err)

	assert.Equal(t, "Monster", p.Internal)
	assert.Equal(t, "MyGame::Sample::Monster", p.FlatStorage)
	assert.Equal(t, "MyGame::Sample::CreateMonster", r.qualifiedMember(def, "CreateMonster"))
}

func TestProjectionIsMemoized(t *testing.T) {
	r := newResolver("::")
	vec := schema.VectorType(schema.ScalarType(schema.Int32))

	first, err := r.project(vec, "site one")
	require.NoError(t, err)
	second, err := r.project(vec, "site two")
	require.NoError(t, err)

	// Same canonical key, same record: independent call sites cannot
	// disagree on any facet.
	assert.Same(t, first, second)
}

func TestUnsupportedKindsError(t *testing.T) {
	r := newResolver("::")
	for _, base := range []schema.BaseType{schema.Union, schema.Array} {
		t.Run(base.String(), func(t *testing.T) {
			_, err := r.project(schema.Type{Base: base}, "Monster.equipment")
			require.Error(t, err)

			var unsupportedErr *UnsupportedTypeError
			require.True(t, errors.As(err, &unsupportedErr))
			assert.Equal(t, base, unsupportedErr.Kind)
			assert.Equal(t, "Monster.equipment", unsupportedErr.Path)
		})
	}
}

func TestKeyProjections(t *testing.T) {
	r := newResolver("::")

	keyType, err := r.keyType(schema.ScalarType(schema.Int32), "test")
	require.NoError(t, err)
	assert.Equal(t, "int32_t", keyType)

	keyType, err = r.keyType(schema.ScalarType(schema.String), "test")
	require.NoError(t, err)
	assert.Equal(t, "NSString *", keyType)

	keyCast, err := r.keyCast(schema.ScalarType(schema.String), "test")
	require.NoError(t, err)
	assert.Equal(t, `key.UTF8String ?: ""`, keyCast)

	// Non-scalar, non-string keys have no binary-search encoding.
	_, err = r.keyType(schema.VectorType(schema.ScalarType(schema.Int32)), "Weapon.tags")
	var unsupportedErr *UnsupportedTypeError
	require.True(t, errors.As(err, &unsupportedErr))
}

func TestSetCast(t *testing.T) {
	fixed := &schema.StructDef{Name: "Vec3", Fixed: true}
	table := &schema.StructDef{Name: "Weapon"}
	r := newResolver("::")

	tests := []struct {
		name     string
		typ      schema.Type
		field    string
		expected string
	}{
		{"scalar forwarded as-is", schema.ScalarType(schema.Int16), "hp", "hp"},
		{"string forwarded as offset", schema.ScalarType(schema.String), "name", "{ name.offset }"},
		{"vector forwarded as offset", schema.VectorType(schema.ScalarType(schema.Int32)), "inventory", "{ inventory.offset }"},
		{"table forwarded as offset", schema.StructType(table), "weapon", "{ weapon.offset }"},
		{"fixed struct staged by address", schema.StructType(fixed), "pos", "pos ? &pos__ : nullptr"},
		{"keyword field uses escaped form", schema.ScalarType(schema.Int32), "default", "default_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.setCast(tt.typ, tt.field))
		})
	}
}
