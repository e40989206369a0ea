// Package schema models the resolved type graph that bindgen's generators
// consume. The graph is produced by an external schema compiler; generators
// hold read-only references into it for the duration of one run and never
// mutate it.
package schema

// BaseType enumerates the kinds a type descriptor can take. Union and Array
// are accepted syntactically so a loaded graph can carry them, but every
// generator rejects them when asked to project a surface type over one.
type BaseType int

const (
	None BaseType = iota
	UType
	Bool
	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Float32
	Float64
	String
	Vector
	Struct
	Union
	Array
)

var baseTypeNames = map[BaseType]string{
	None:    "none",
	UType:   "utype",
	Bool:    "bool",
	Int8:    "int8",
	UInt8:   "uint8",
	Int16:   "int16",
	UInt16:  "uint16",
	Int32:   "int32",
	UInt32:  "uint32",
	Int64:   "int64",
	UInt64:  "uint64",
	Float32: "float32",
	Float64: "float64",
	String:  "string",
	Vector:  "vector",
	Struct:  "struct",
	Union:   "union",
	Array:   "array",
}

func (b BaseType) String() string {
	if name, ok := baseTypeNames[b]; ok {
		return name
	}
	return "unknown"
}

// IsScalar reports whether the kind is a fixed-width scalar (bool included).
func (b BaseType) IsScalar() bool {
	return b >= None && b <= Float64
}

// Type is a recursive type descriptor. Vector types carry their element
// descriptor in Element; struct and table references carry Def.
type Type struct {
	Base    BaseType
	Element *Type
	Def     *StructDef
}

// VectorElement returns the element descriptor of a vector type. For
// non-vector types it returns the type itself, mirroring how descriptor
// traversal bottoms out at leaves.
func (t Type) VectorElement() Type {
	if t.Base == Vector && t.Element != nil {
		return *t.Element
	}
	return t
}

// ScalarType is a convenience constructor for leaf descriptors.
func ScalarType(base BaseType) Type {
	return Type{Base: base}
}

// VectorType wraps an element descriptor in a vector.
func VectorType(element Type) Type {
	return Type{Base: Vector, Element: &element}
}

// StructType builds a reference descriptor to a struct or table definition.
func StructType(def *StructDef) Type {
	return Type{Base: Struct, Def: def}
}

// StructDef describes one struct or table definition from the schema.
//
// Fixed definitions have an inline value layout with no built-in absence
// encoding; non-fixed definitions (tables) are offset-addressed and every
// field may be absent.
type StructDef struct {
	Name       string
	Namespace  []string
	DocComment []string

	// Fixed marks an inline value layout rather than an offset-addressed
	// table.
	Fixed bool
	// HasKey is set when any field is flagged as the lookup key.
	HasKey bool
	// Generated marks definitions already emitted by an upstream run; such
	// definitions are referenced but never re-emitted.
	Generated bool

	Fields []*FieldDef
}

// KeyField returns the first field flagged as the lookup key, in declaration
// order, or nil when the definition has none. Duplicate key flags are not
// detected here; the first one wins.
func (s *StructDef) KeyField() *FieldDef {
	for _, f := range s.Fields {
		if f.Key {
			return f
		}
	}
	return nil
}

// FieldDef describes one field of a struct or table.
type FieldDef struct {
	Name       string
	Type       Type
	Deprecated bool
	Key        bool
	DocComment []string
}

// Schema is one compilation unit of resolved definitions, in the declaration
// order the schema compiler produced.
type Schema struct {
	// Structs holds every struct and table definition in declaration order.
	Structs []*StructDef
	// Root is the designated root table, if the schema declares one.
	Root *StructDef
	// Namespace is the compilation unit's namespace path.
	Namespace []string
	// NativeIncludes are verbatim include paths requested by the schema.
	NativeIncludes []string
	// Includes are already-resolved paths of included schema files.
	Includes []string
}
