package swift

import (
	"fmt"
	"strings"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/schema"
)

// UnsupportedTypeError reports a schema construct the Swift bridge has no
// encoding for: unions, fixed-length inline arrays, and non-scalar lookup
// keys. Generation stops with no partial output.
type UnsupportedTypeError struct {
	// Kind is the offending base type.
	Kind schema.BaseType
	// Path locates the construct, e.g. "Monster.equipment".
	Path string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("no swift encoding for %s at %s", e.Kind, e.Path)
}

func unsupported(kind schema.BaseType, path string) error {
	return errors.WithStack(&UnsupportedTypeError{Kind: kind, Path: path})
}

// NameProjection is the full set of surface names derived from one type
// descriptor. It is a pure function of the descriptor; the resolver memoizes
// projections by canonical key so the header, implementation, and accessor
// surfaces can recompute them independently and always agree.
type NameProjection struct {
	// Internal is the bridge-side type name, e.g. FlatBufferInt32 or
	// WeaponArray. Synthetic array names are derived from it.
	Internal string
	// FlatStorage is the C++ storage type, e.g. int32_t or
	// flatbuffers::Vector<flatbuffers::Offset<Weapon>>.
	FlatStorage string
	// StorageOffset is the C++ storage type at an offset position, wrapping
	// FlatStorage in flatbuffers::Offset where the wire format stores an
	// offset rather than an inline value.
	StorageOffset string
	// Offset is the opaque offset wrapper name surfaced to the host.
	Offset string
	// Ref is the opaque ref wrapper name surfaced to the host.
	Ref string
	// Getter is the host-language read type.
	Getter string
	// Setter is the host-language write (parameter) type.
	Setter string
	// GetCast is the expression converting a raw storage value to Getter.
	GetCast string
}

type scalarNames struct {
	internal string
	storage  string
}

var scalars = map[schema.BaseType]scalarNames{
	schema.None:    {"FlatBufferUInt8", "uint8_t"},
	schema.UType:   {"FlatBufferUInt8", "uint8_t"},
	schema.Bool:    {"FlatBufferBool", "bool"},
	schema.Int8:    {"FlatBufferInt8", "int8_t"},
	schema.UInt8:   {"FlatBufferUInt8", "uint8_t"},
	schema.Int16:   {"FlatBufferInt16", "int16_t"},
	schema.UInt16:  {"FlatBufferUInt16", "uint16_t"},
	schema.Int32:   {"FlatBufferInt32", "int32_t"},
	schema.UInt32:  {"FlatBufferUInt32", "uint32_t"},
	schema.Int64:   {"FlatBufferInt64", "int64_t"},
	schema.UInt64:  {"FlatBufferUInt64", "uint64_t"},
	schema.Float32: {"FlatBufferFloat", "float"},
	schema.Float64: {"FlatBufferDouble", "double"},
}

// resolver projects type descriptors onto their surface names. One resolver
// serves one generation run; the memo is keyed by canonical type key, so two
// descriptors for the same type share one projection.
type resolver struct {
	separator string
	memo      map[string]*NameProjection
}

func newResolver(separator string) *resolver {
	if separator == "" {
		separator = "::"
	}
	return &resolver{
		separator: separator,
		memo:      make(map[string]*NameProjection),
	}
}

// typeKey returns a canonical key for a descriptor, unique per distinct type.
func (r *resolver) typeKey(t schema.Type) string {
	switch t.Base {
	case schema.Vector:
		return "vector(" + r.typeKey(t.VectorElement()) + ")"
	case schema.Struct:
		return "struct:" + strings.Join(append(append([]string{}, t.Def.Namespace...), t.Def.Name), ".")
	default:
		return t.Base.String()
	}
}

// qualifiedName renders the storage-side C++ name of a definition, each
// namespace component escaped on its own.
func (r *resolver) qualifiedName(def *schema.StructDef) string {
	var parts []string
	for _, component := range def.Namespace {
		parts = append(parts, escapeKeyword(component))
	}
	parts = append(parts, escapeKeyword(def.Name))
	return strings.Join(parts, r.separator)
}

// qualifiedMember renders a storage-side name that lives in a definition's
// namespace, e.g. the encoder's CreateMonster entry point.
func (r *resolver) qualifiedMember(def *schema.StructDef, member string) string {
	var parts []string
	for _, component := range def.Namespace {
		parts = append(parts, escapeKeyword(component))
	}
	parts = append(parts, member)
	return strings.Join(parts, r.separator)
}

// project resolves the projection for a descriptor. path locates the call
// site for diagnostics; it does not influence the projection itself.
func (r *resolver) project(t schema.Type, path string) (*NameProjection, error) {
	key := r.typeKey(t)
	if p, ok := r.memo[key]; ok {
		return p, nil
	}
	p, err := r.projectUncached(t, path)
	if err != nil {
		return nil, err
	}
	r.memo[key] = p
	return p, nil
}

// projectDef resolves the projection for a struct or table definition.
// Infallible: only union, fixed-length array, and vector kinds can fail
// projection, and a StructDef reference is none of those. The unsupported
// branch in projectUncached is the only error source; keep it that way or
// change this signature.
func (r *resolver) projectDef(def *schema.StructDef) *NameProjection {
	p, _ := r.project(schema.StructType(def), def.Name)
	return p
}

func (r *resolver) projectUncached(t schema.Type, path string) (*NameProjection, error) {
	if names, ok := scalars[t.Base]; ok {
		return &NameProjection{
			Internal:      names.internal,
			FlatStorage:   names.storage,
			StorageOffset: names.storage,
			Getter:        names.storage,
			Setter:        names.storage,
			GetCast:       "value",
		}, nil
	}

	switch t.Base {
	case schema.String:
		return &NameProjection{
			Internal:      "FlatBufferString",
			FlatStorage:   "flatbuffers::String",
			StorageOffset: "flatbuffers::Offset<flatbuffers::String>",
			Offset:        "FlatBufferStringOffset",
			Ref:           "FlatBufferStringRef",
			Getter:        "NSString *",
			Setter:        "FlatBufferStringOffset",
			GetCast:       "[[NSString alloc] initWithBytesNoCopy:const_cast<char *>(value->c_str()) length:value->Length() encoding:NSUTF8StringEncoding freeWhenDone:NO]",
		}, nil

	case schema.Vector:
		element, err := r.project(t.VectorElement(), path)
		if err != nil {
			return nil, err
		}
		internal := element.Internal + "Array"
		storage := "flatbuffers::Vector<" + element.StorageOffset + ">"
		return &NameProjection{
			Internal:      internal,
			FlatStorage:   storage,
			StorageOffset: "flatbuffers::Offset<" + storage + ">",
			Offset:        internal + "Offset",
			Ref:           internal + "Ref",
			Getter:        internal + "Ref",
			Setter:        internal + "Offset",
			GetCast:       "{ .buf = value }",
		}, nil

	case schema.Struct:
		internal := escapeKeyword(t.Def.Name)
		qualified := r.qualifiedName(t.Def)
		p := &NameProjection{
			Internal:      internal,
			FlatStorage:   qualified,
			StorageOffset: "flatbuffers::Offset<" + qualified + ">",
			Offset:        internal + "Offset",
			Ref:           internal + "Ref",
		}
		if t.Def.Fixed {
			// Inline layouts cross the bridge by value; there is no offset
			// to hide behind, so absence is a null parameter on the way in.
			p.Getter = internal
			p.Setter = "const " + internal + " *"
			p.GetCast = "*reinterpret_cast<const " + internal + " *>(value)"
		} else {
			p.Getter = p.Ref
			p.Setter = p.Offset
			p.GetCast = "{ .buf = value }"
		}
		return p, nil

	default:
		return nil, unsupported(t.Base, path)
	}
}

// keyType returns the host-language type of a lookup key. Keys are
// restricted to scalars and strings.
func (r *resolver) keyType(t schema.Type, path string) (string, error) {
	if names, ok := scalars[t.Base]; ok {
		return names.storage, nil
	}
	if t.Base == schema.String {
		return "NSString *", nil
	}
	return "", unsupported(t.Base, path)
}

// keyCast returns the expression converting a host key value to the form the
// encoder's binary-search primitive expects.
func (r *resolver) keyCast(t schema.Type, path string) (string, error) {
	if t.Base.IsScalar() {
		return "key", nil
	}
	if t.Base == schema.String {
		return `key.UTF8String ?: ""`, nil
	}
	return "", unsupported(t.Base, path)
}

// setCast renders the argument a builder forwards to the encoder for one
// field. The field's projection must already have resolved successfully.
func (r *resolver) setCast(t schema.Type, fieldName string) string {
	argument := selectorArgumentName(fieldName)
	switch {
	case t.Base.IsScalar():
		return argument
	case t.Base == schema.String, t.Base == schema.Vector:
		return "{ " + argument + ".offset }"
	case t.Base == schema.Struct && t.Def.Fixed:
		return argument + " ? &" + temporaryArgumentName(fieldName) + " : nullptr"
	default:
		return "{ " + argument + ".offset }"
	}
}
