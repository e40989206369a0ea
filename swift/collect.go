package swift

import (
	"sort"

	"github.com/teranos/bindgen/schema"
)

// syntheticArrays is the set of vector helper types the generated code needs
// but the schema never declares directly: vectors whose element is itself a
// vector, a struct/table, or a union. Entries are keyed by the resolved
// internal name of the full vector type, which also makes registration
// idempotent. Keys() gives the stable iteration order every downstream pass
// uses, so an unchanged schema always produces identical output.
type syntheticArrays struct {
	byName map[string]schema.Type
}

// collectArrays makes the single pass over every field of every definition.
func collectArrays(r *resolver, s *schema.Schema) (*syntheticArrays, error) {
	arrays := &syntheticArrays{byName: make(map[string]schema.Type)}
	for _, def := range s.Structs {
		for _, field := range def.Fields {
			path := def.Name + "." + field.Name
			for t := field.Type; t.Base == schema.Vector; t = t.VectorElement() {
				element := t.VectorElement()
				switch element.Base {
				case schema.Vector, schema.Struct, schema.Union:
					p, err := r.project(field.Type, path)
					if err != nil {
						return nil, err
					}
					arrays.byName[p.Internal] = field.Type
				}
			}
		}
	}
	return arrays, nil
}

// Keys returns the registered names sorted lexicographically.
func (a *syntheticArrays) Keys() []string {
	keys := make([]string, 0, len(a.byName))
	for key := range a.byName {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Type returns the vector descriptor registered under name.
func (a *syntheticArrays) Type(name string) schema.Type {
	return a.byName[name]
}

// Len returns the number of distinct helper types.
func (a *syntheticArrays) Len() int {
	return len(a.byName)
}
