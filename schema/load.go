package schema

import (
	"encoding/json"
	"io"
	"os"

	"github.com/teranos/bindgen/errors"
)

// The wire form is what an external schema compiler serializes after parsing
// and validation. Struct references appear by qualified name and are resolved
// into pointers here; the loader performs no semantic validation beyond
// reference resolution.

type jsonSchema struct {
	Structs        []*jsonStruct `json:"structs"`
	Root           string        `json:"root,omitempty"`
	Namespace      []string      `json:"namespace,omitempty"`
	NativeIncludes []string      `json:"native_includes,omitempty"`
	Includes       []string      `json:"includes,omitempty"`
}

type jsonStruct struct {
	Name       string       `json:"name"`
	Namespace  []string     `json:"namespace,omitempty"`
	DocComment []string     `json:"doc,omitempty"`
	Fixed      bool         `json:"fixed,omitempty"`
	Generated  bool         `json:"generated,omitempty"`
	Fields     []*jsonField `json:"fields"`
}

type jsonField struct {
	Name       string   `json:"name"`
	Type       jsonType `json:"type"`
	Deprecated bool     `json:"deprecated,omitempty"`
	Key        bool     `json:"key,omitempty"`
	DocComment []string `json:"doc,omitempty"`
}

type jsonType struct {
	Base    string    `json:"base"`
	Element *jsonType `json:"element,omitempty"`
	Struct  string    `json:"struct,omitempty"`
}

var baseTypesByName = func() map[string]BaseType {
	m := make(map[string]BaseType, len(baseTypeNames))
	for base, name := range baseTypeNames {
		m[name] = base
	}
	return m
}()

// Load reads a serialized schema graph and resolves struct references.
func Load(r io.Reader) (*Schema, error) {
	var wire jsonSchema
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return nil, errors.Wrap(err, "decode schema graph")
	}

	s := &Schema{
		Namespace:      wire.Namespace,
		NativeIncludes: wire.NativeIncludes,
		Includes:       wire.Includes,
	}

	byName := make(map[string]*StructDef, len(wire.Structs))
	for _, ws := range wire.Structs {
		if ws.Name == "" {
			return nil, errors.New("schema graph contains an unnamed struct")
		}
		if _, dup := byName[ws.Name]; dup {
			return nil, errors.Newf("duplicate struct definition %q", ws.Name)
		}
		def := &StructDef{
			Name:       ws.Name,
			Namespace:  ws.Namespace,
			DocComment: ws.DocComment,
			Fixed:      ws.Fixed,
			Generated:  ws.Generated,
		}
		byName[ws.Name] = def
		s.Structs = append(s.Structs, def)
	}

	// Second pass: fields may reference any struct, including ones declared
	// later in the unit.
	for i, ws := range wire.Structs {
		def := s.Structs[i]
		for _, wf := range ws.Fields {
			typ, err := resolveType(wf.Type, byName)
			if err != nil {
				return nil, errors.Wrapf(err, "field %s.%s", ws.Name, wf.Name)
			}
			field := &FieldDef{
				Name:       wf.Name,
				Type:       typ,
				Deprecated: wf.Deprecated,
				Key:        wf.Key,
				DocComment: wf.DocComment,
			}
			if field.Key {
				def.HasKey = true
			}
			def.Fields = append(def.Fields, field)
		}
	}

	if wire.Root != "" {
		root, ok := byName[wire.Root]
		if !ok {
			return nil, errors.Newf("root type %q is not defined in this unit", wire.Root)
		}
		s.Root = root
	}

	return s, nil
}

// LoadFile is Load over a file on disk.
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open schema graph %s", path)
	}
	defer f.Close()
	return Load(f)
}

func resolveType(wt jsonType, byName map[string]*StructDef) (Type, error) {
	base, ok := baseTypesByName[wt.Base]
	if !ok {
		return Type{}, errors.Newf("unknown base type %q", wt.Base)
	}

	switch base {
	case Vector:
		if wt.Element == nil {
			return Type{}, errors.New("vector type is missing its element")
		}
		element, err := resolveType(*wt.Element, byName)
		if err != nil {
			return Type{}, err
		}
		return VectorType(element), nil
	case Struct:
		def, ok := byName[wt.Struct]
		if !ok {
			return Type{}, errors.Newf("reference to undefined struct %q", wt.Struct)
		}
		return StructType(def), nil
	default:
		return Type{Base: base}, nil
	}
}
