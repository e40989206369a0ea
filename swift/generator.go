// Package swift generates Swift bindings for a resolved schema graph,
// bridged through a narrow Objective-C++ value/offset layer.
//
// One generation run fills three append-only buffers: the declaration header,
// the .mm implementation, and the pure Swift surface (currently empty, the
// header is fully Swift-importable on its own). Emission follows a fixed
// six-stage order so that bodies may reference any type regardless of
// declaration order in the schema text: forward declarations for structs and
// tables, forward declarations for synthetic array types, field bodies for
// both, then builder entry points for both, then the root finish entry point.
package swift

import (
	"path/filepath"
	"strings"

	"github.com/teranos/bindgen"
	"github.com/teranos/bindgen/config"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/schema"
)

const generatedWarning = "// Code generated by bindgen. DO NOT EDIT."

// Generator implements bindgen.Generator for Swift.
type Generator struct {
	conf *config.Config
}

// NewGenerator creates a Swift generator operating under conf. A nil conf
// selects the built-in defaults.
func NewGenerator(conf *config.Config) *Generator {
	if conf == nil {
		conf = config.Default()
	}
	return &Generator{conf: conf}
}

// Language returns "swift".
func (g *Generator) Language() string {
	return "swift"
}

// Generate produces the three artifacts for one compilation unit. On any
// unsupported construct it returns the error and no artifacts; partial
// output is never valid.
func (g *Generator) Generate(s *schema.Schema) (*bindgen.Artifacts, error) {
	base := g.conf.BaseName
	if base == "" {
		base = "schema"
	}

	rn := &run{
		conf:   g.conf,
		schema: s,
		base:   base,
		res:    newResolver(g.conf.NamespaceSeparator),
		h:      NewCodeWriter(),
		mm:     NewCodeWriter(),
		sw:     NewCodeWriter(),
	}

	logger.Debugw("generating swift bindings",
		"base", base,
		"structs", len(s.Structs))

	if err := rn.generate(); err != nil {
		return nil, err
	}

	return &bindgen.Artifacts{
		Header:   bindgen.Artifact{Name: base + "_swift_generated.h", Content: rn.h.String()},
		Impl:     bindgen.Artifact{Name: base + "_swift_generated.mm", Content: rn.mm.String()},
		Accessor: bindgen.Artifact{Name: base + "_swift_generated.swift", Content: rn.sw.String()},
		MakeRule: MakeRule(s, base),
	}, nil
}

// MakeRule returns the build-system dependency rule for a unit. It carries
// no information; sibling generators expose the same entry point.
func MakeRule(_ *schema.Schema, _ string) string {
	return ""
}

// run is the mutable state of one generation pass: the three output buffers,
// the shared name resolver, and the collected synthetic array set. Buffers
// are appended strictly in stage order by a single goroutine.
type run struct {
	conf   *config.Config
	schema *schema.Schema
	base   string

	res    *resolver
	arrays *syntheticArrays

	h  *CodeWriter
	mm *CodeWriter
	sw *CodeWriter
}

func (rn *run) generate() error {
	rn.h.Add(generatedWarning)
	rn.h.Add("")

	guard := rn.includeGuard()
	rn.h.Add("#ifndef " + guard)
	rn.h.Add("#define " + guard)
	rn.h.Add("")
	rn.h.Add(`#import "flatbuffers_swift.h"`)
	rn.h.Add("")
	rn.includeDependencies()

	rn.mm.Add(generatedWarning)
	rn.mm.Add("")
	rn.mm.Add(`#import "` + rn.base + `_generated.h"`)
	rn.mm.Add(`#import "` + rn.base + `_swift_generated.h"`)
	rn.mm.Add("")

	arrays, err := collectArrays(rn.res, rn.schema)
	if err != nil {
		return err
	}
	rn.arrays = arrays
	logger.Debugw("collected synthetic array types", "count", arrays.Len())

	// Stage 1: forward-declare every struct and table, since references
	// between them may be circular.
	for _, def := range rn.schema.Structs {
		if def.Generated {
			continue
		}
		if err := rn.structDecl(def); err != nil {
			return err
		}
	}

	// Stage 2: forward-declare every synthetic array type.
	for _, name := range arrays.Keys() {
		if err := rn.arrayDecl(arrays.Type(name)); err != nil {
			return err
		}
	}

	// Stage 3: field accessors for structs and tables.
	for _, def := range rn.schema.Structs {
		if def.Generated {
			continue
		}
		if err := rn.structFields(def); err != nil {
			return err
		}
	}

	// Stage 4: count, subscript, and keyed lookup for synthetic arrays.
	for _, name := range arrays.Keys() {
		if err := rn.arrayFields(arrays.Type(name)); err != nil {
			return err
		}
	}

	rn.h.Add("@interface FlatBufferBuilder (Builders)")
	rn.mm.Add("@implementation FlatBufferBuilder (Builders)")
	rn.mm.Add("")

	// Stage 5: one construction entry point per table.
	for _, def := range rn.schema.Structs {
		if def.Generated || def.Fixed {
			continue
		}
		if err := rn.builders(def); err != nil {
			return err
		}
	}

	// Stage 6: construction entry points for synthetic arrays, then the
	// finish entry point for the designated root.
	for _, name := range arrays.Keys() {
		if err := rn.arrayBuilders(arrays.Type(name)); err != nil {
			return err
		}
	}
	if rn.schema.Root != nil {
		rn.finish(rn.schema.Root)
	}

	rn.h.Add("@end")
	rn.h.Add("")
	rn.mm.Add("@end")
	rn.mm.Add("")

	rn.h.Add("#endif  // " + guard)

	return nil
}

// includeGuard derives the header guard from the artifact base name and the
// unit's namespace path, non-alphanumerics stripped and upper-cased.
func (rn *run) includeGuard() string {
	var guard strings.Builder
	guard.WriteString("BINDGEN_GENERATED_SWIFT_")
	for _, c := range rn.base {
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			guard.WriteRune(c)
		}
	}
	guard.WriteString("_")
	for _, component := range rn.schema.Namespace {
		guard.WriteString(component)
		guard.WriteString("_")
	}
	guard.WriteString("H_")
	return strings.ToUpper(guard.String())
}

func (rn *run) includeDependencies() {
	numIncludes := 0
	for _, include := range rn.schema.NativeIncludes {
		rn.h.Add(`#include "` + include + `"`)
		numIncludes++
	}
	for _, include := range rn.schema.Includes {
		if include == "" {
			continue
		}
		noExt := strings.TrimSuffix(include, filepath.Ext(include))
		name := filepath.Base(noExt)
		if rn.conf.KeepIncludePath {
			name = noExt
		}
		rn.h.Add(`#include "` + rn.conf.IncludePrefix + name + `_generated.h"`)
		numIncludes++
	}
	if numIncludes > 0 {
		rn.h.Add("")
	}
}

// comment appends a doc comment, one /// line per source line.
func (rn *run) comment(w *CodeWriter, docComment []string, prefix string) {
	for _, line := range docComment {
		w.Add(prefix + "///" + line)
	}
}

// structDecl emits the opaque ref and offset wrappers for a definition, and
// for fixed structs the inline value layout itself: by-value references in
// later stages need the complete type, and inline layouts have no offset to
// forward-declare through.
func (rn *run) structDecl(def *schema.StructDef) error {
	rn.comment(rn.h, def.DocComment, "")
	p := rn.res.projectDef(def)
	rn.h.SetValue("REF_NAME", p.Ref)
	rn.h.SetValue("OFFSET_NAME", p.Offset)

	if def.Fixed {
		rn.h.SetValue("STRUCT_NAME", p.Internal)
		rn.h.Add("typedef struct {{STRUCT_NAME}} {")
		for _, field := range def.Fields {
			if field.Deprecated {
				continue
			}
			fp, err := rn.res.project(field.Type, def.Name+"."+field.Name)
			if err != nil {
				return err
			}
			rn.h.SetValue("FIELD_NAME", escapeKeyword(field.Name))
			rn.h.SetValue("FIELD_TYPE", fp.Getter)
			rn.comment(rn.h, field.DocComment, "  ")
			rn.h.Add("  {{FIELD_TYPE}} {{FIELD_NAME}};")
		}
		rn.h.Add("} {{STRUCT_NAME}};")
		rn.h.Add("")
	}

	rn.h.Add("typedef struct {{REF_NAME}} { const void *buf; } {{REF_NAME}};")
	rn.h.Add("typedef struct {{OFFSET_NAME}} { const uint32_t offset; } {{OFFSET_NAME}};")
	rn.h.Add("")
	return nil
}

// arrayDecl emits the opaque wrappers for a synthetic array type.
func (rn *run) arrayDecl(t schema.Type) error {
	p, err := rn.res.project(t, "array")
	if err != nil {
		return err
	}
	rn.h.SetValue("REF_NAME", p.Ref)
	rn.h.SetValue("OFFSET_NAME", p.Offset)
	rn.h.Add("typedef struct {{REF_NAME}} { const void *buf; } {{REF_NAME}};")
	rn.h.Add("typedef struct {{OFFSET_NAME}} { const uint32_t offset; } {{OFFSET_NAME}};")
	rn.h.Add("")
	return nil
}

// structFields emits one pure accessor function per non-deprecated field,
// reading the storage value through the ref wrapper and applying the field's
// cast expression. Deprecated fields get no accessor at all.
func (rn *run) structFields(def *schema.StructDef) error {
	p := rn.res.projectDef(def)
	rn.h.SetValue("REF_NAME", p.Ref)
	rn.mm.SetValue("REF_NAME", p.Ref)
	rn.mm.SetValue("FLATBUF_NAME", p.FlatStorage)

	for _, field := range def.Fields {
		if field.Deprecated {
			continue
		}
		fp, err := rn.res.project(field.Type, def.Name+"."+field.Name)
		if err != nil {
			return err
		}

		name := escapeKeyword(field.Name)
		rn.h.SetValue("FIELD_NAME", name)
		rn.h.SetValue("FIELD_TYPE", fp.Getter)
		rn.mm.SetValue("FIELD_NAME", name)
		rn.mm.SetValue("FIELD_TYPE", fp.Getter)
		rn.mm.SetValue("FIELD_CAST", fp.GetCast)

		rn.comment(rn.h, field.DocComment, "  ")
		rn.h.Add("{{FIELD_TYPE}} {{REF_NAME}}_{{FIELD_NAME}}({{REF_NAME}} self_) NS_SWIFT_NAME(getter:{{REF_NAME}}.{{FIELD_NAME}}(self:));")

		rn.mm.Add("{{FIELD_TYPE}} {{REF_NAME}}_{{FIELD_NAME}}({{REF_NAME}} self_) {")
		rn.mm.Add("  auto value = reinterpret_cast<const {{FLATBUF_NAME}} *>(self_.buf)->{{FIELD_NAME}}();")
		rn.mm.Add("  return {{FIELD_CAST}};")
		rn.mm.Add("}")
		rn.mm.Add("")
	}

	rn.h.Add("")
	return nil
}

// arrayFields emits the count and subscript accessors for a synthetic array
// and, when the element type carries a key field, the keyed lookup accessor.
func (rn *run) arrayFields(t schema.Type) error {
	p, err := rn.res.project(t, "array")
	if err != nil {
		return err
	}
	element := t.VectorElement()
	ep, err := rn.res.project(element, p.Internal)
	if err != nil {
		return err
	}

	rn.h.SetValue("REF_NAME", p.Ref)
	rn.h.SetValue("ELEMENT_TYPE", ep.Getter)
	rn.mm.SetValue("REF_NAME", p.Ref)
	rn.mm.SetValue("ELEMENT_TYPE", ep.Getter)
	rn.mm.SetValue("ARRAY_STORAGE", p.FlatStorage)
	rn.mm.SetValue("ELEMENT_CAST", ep.GetCast)

	rn.h.Add("NSInteger {{REF_NAME}}_count({{REF_NAME}} self_) NS_SWIFT_NAME(getter:{{REF_NAME}}.count(self:));")
	rn.h.Add("{{ELEMENT_TYPE}} {{REF_NAME}}_subscript({{REF_NAME}} self_, NSInteger index) NS_SWIFT_NAME(getter:{{REF_NAME}}.subscript(self:_:));")

	rn.mm.Add("NSInteger {{REF_NAME}}_count({{REF_NAME}} self_) {")
	rn.mm.Add("  auto value = reinterpret_cast<const {{ARRAY_STORAGE}} *>(self_.buf)->Length();")
	rn.mm.Add("  return static_cast<NSInteger>(value);")
	rn.mm.Add("}")
	rn.mm.Add("")
	rn.mm.Add("{{ELEMENT_TYPE}} {{REF_NAME}}_subscript({{REF_NAME}} self_, NSInteger index) {")
	rn.mm.Add("  auto value = reinterpret_cast<const {{ARRAY_STORAGE}} *>(self_.buf)->Get(static_cast<flatbuffers::uoffset_t>(index));")
	rn.mm.Add("  return {{ELEMENT_CAST}};")
	rn.mm.Add("}")
	rn.mm.Add("")

	if element.Base == schema.Struct && element.Def.HasKey {
		key := element.Def.KeyField()
		if key == nil {
			return errors.Newf("struct %s is flagged has_key but has no key field", element.Def.Name)
		}
		path := element.Def.Name + "." + key.Name
		keyType, err := rn.res.keyType(key.Type, path)
		if err != nil {
			return err
		}
		keyCast, err := rn.res.keyCast(key.Type, path)
		if err != nil {
			return err
		}

		rn.h.SetValue("KEY_TYPE", keyType)
		rn.mm.SetValue("KEY_TYPE", keyType)
		rn.mm.SetValue("KEY_CAST", keyCast)

		// Lookup returns the element's ref wrapper, not its getter type: a
		// missing key yields a null ref instead of dereferencing the null
		// the storage lookup returns.
		rn.h.SetValue("LOOKUP_TYPE", ep.Ref)
		rn.mm.SetValue("LOOKUP_TYPE", ep.Ref)

		rn.h.Add("{{LOOKUP_TYPE}} {{REF_NAME}}_lookupByKey({{REF_NAME}} self_, {{KEY_TYPE}} key) NS_SWIFT_NAME({{REF_NAME}}.lookup(self:by:));")

		rn.mm.Add("{{LOOKUP_TYPE}} {{REF_NAME}}_lookupByKey({{REF_NAME}} self_, {{KEY_TYPE}} key) {")
		rn.mm.Add("  auto value = reinterpret_cast<const {{ARRAY_STORAGE}} *>(self_.buf)->LookupByKey({{KEY_CAST}});")
		rn.mm.Add("  return { .buf = value };")
		rn.mm.Add("}")
		rn.mm.Add("")
	}

	rn.h.Add("")
	return nil
}

// createSelector builds the construction selector for a table: a verb
// prefix, the internal name, then one labelled parameter per non-deprecated
// field in declared order.
func (rn *run) createSelector(def *schema.StructDef) (string, error) {
	p := rn.res.projectDef(def)
	var sel strings.Builder
	sel.WriteString("make")
	sel.WriteString(p.Internal)
	sel.WriteString("With")
	first := true
	for _, field := range def.Fields {
		if field.Deprecated {
			continue
		}
		fp, err := rn.res.project(field.Type, def.Name+"."+field.Name)
		if err != nil {
			return "", err
		}
		if !first {
			sel.WriteString(" ")
		}
		sel.WriteString(selectorComponentName(field.Name, first))
		sel.WriteString(":(")
		sel.WriteString(fp.Setter)
		sel.WriteString(")")
		sel.WriteString(selectorArgumentName(field.Name))
		first = false
	}
	return sel.String(), nil
}

// temporaryStruct stages a fixed-struct parameter into a local storage
// value: when the parameter is non-null every non-deprecated sub-field is
// copied off it, otherwise the storage value is default-constructed.
func (rn *run) temporaryStruct(def *schema.StructDef, fieldName string) string {
	qualified := rn.res.qualifiedName(def)
	argument := selectorArgumentName(fieldName)

	var stmt strings.Builder
	stmt.WriteString("auto ")
	stmt.WriteString(temporaryArgumentName(fieldName))
	stmt.WriteString(" = ")
	stmt.WriteString(argument)
	stmt.WriteString(" ? ")
	stmt.WriteString(qualified)
	stmt.WriteString("(")
	first := true
	for _, field := range def.Fields {
		if field.Deprecated {
			continue
		}
		if !first {
			stmt.WriteString(", ")
		}
		stmt.WriteString(argument)
		stmt.WriteString("->")
		stmt.WriteString(escapeKeyword(field.Name))
		first = false
	}
	stmt.WriteString(") : ")
	stmt.WriteString(qualified)
	stmt.WriteString("();")
	return stmt.String()
}

// builders emits the construction entry point for one table. The body
// stages fixed-struct parameters through null-guarded temporaries, then
// delegates to the encoder's table-construction primitive with every
// parameter forwarded in schema-declared order.
func (rn *run) builders(def *schema.StructDef) error {
	p := rn.res.projectDef(def)
	selector, err := rn.createSelector(def)
	if err != nil {
		return err
	}

	rn.h.SetValue("OFFSET_NAME", p.Offset)
	rn.h.SetValue("SELECTOR_DECL", selector)
	rn.mm.SetValue("OFFSET_NAME", p.Offset)
	rn.mm.SetValue("SELECTOR_DECL", selector)
	rn.mm.SetValue("CREATE_NAME", rn.res.qualifiedMember(def, "Create"+escapeKeyword(def.Name)))

	rn.h.Add("- ({{OFFSET_NAME}}){{SELECTOR_DECL}};")

	rn.mm.Add("- ({{OFFSET_NAME}}){{SELECTOR_DECL}} {")
	for _, field := range def.Fields {
		if field.Deprecated {
			continue
		}
		if field.Type.Base == schema.Struct && field.Type.Def.Fixed {
			rn.mm.Add("  " + rn.temporaryStruct(field.Type.Def, field.Name))
		}
	}
	rn.mm.Add("  return { .offset = {{CREATE_NAME}}(*_fbb")
	for _, field := range def.Fields {
		if field.Deprecated {
			continue
		}
		rn.mm.SetValue("FIELD_CAST", rn.res.setCast(field.Type, field.Name))
		rn.mm.Add("    , {{FIELD_CAST}}")
	}
	rn.mm.Add("  ).o };")
	rn.mm.Add("}")
	rn.mm.Add("")
	return nil
}

// arrayBuilders emits the construction entry points for one synthetic array
// type: the plain vector constructor and, for elements with a designated
// key, the sort-preserving variant. Sorting itself is the encoder's job;
// this only selects the primitive.
func (rn *run) arrayBuilders(t schema.Type) error {
	p, err := rn.res.project(t, "array")
	if err != nil {
		return err
	}
	element := t.VectorElement()
	ep, err := rn.res.project(element, p.Internal)
	if err != nil {
		return err
	}

	rn.h.SetValue("OFFSET_NAME", p.Offset)
	rn.h.SetValue("ELEMENT_NAME", ep.Internal)
	rn.h.SetValue("ELEMENT_OFFSET", ep.Offset)
	rn.mm.SetValue("OFFSET_NAME", p.Offset)
	rn.mm.SetValue("ELEMENT_NAME", ep.Internal)
	rn.mm.SetValue("ELEMENT_OFFSET", ep.Offset)
	rn.mm.SetValue("ELEMENT_STORAGE", ep.StorageOffset)

	rn.h.Add("- ({{OFFSET_NAME}})make{{ELEMENT_NAME}}Array:(const {{ELEMENT_OFFSET}} *)elements count:(NSInteger)count;")

	rn.mm.Add("- ({{OFFSET_NAME}})make{{ELEMENT_NAME}}Array:(const {{ELEMENT_OFFSET}} *)elements count:(NSInteger)count {")
	rn.mm.Add("  return { .offset = _fbb->CreateVector(reinterpret_cast<const {{ELEMENT_STORAGE}} *>(elements), count).o };")
	rn.mm.Add("}")
	rn.mm.Add("")

	if element.Base == schema.Struct && element.Def.HasKey {
		rn.h.Add("- ({{OFFSET_NAME}})make{{ELEMENT_NAME}}SortedArray:({{ELEMENT_OFFSET}} *)elements count:(NSInteger)count;")

		rn.mm.Add("- ({{OFFSET_NAME}})make{{ELEMENT_NAME}}SortedArray:({{ELEMENT_OFFSET}} *)elements count:(NSInteger)count {")
		rn.mm.Add("  return { .offset = _fbb->CreateVectorOfSortedTables(reinterpret_cast<{{ELEMENT_STORAGE}} *>(elements), count).o };")
		rn.mm.Add("}")
		rn.mm.Add("")
	}
	return nil
}

// finish emits the entry point binding the designated root table to the
// encoder's finish primitive.
func (rn *run) finish(def *schema.StructDef) {
	p := rn.res.projectDef(def)
	rn.h.SetValue("INTERNAL_NAME", p.Internal)
	rn.h.SetValue("OFFSET_NAME", p.Offset)
	rn.mm.SetValue("INTERNAL_NAME", p.Internal)
	rn.mm.SetValue("OFFSET_NAME", p.Offset)
	rn.mm.SetValue("FLATBUF_NAME", p.FlatStorage)

	rn.h.Add("- (void)finishWith{{INTERNAL_NAME}}:({{OFFSET_NAME}})offset;")

	rn.mm.Add("- (void)finishWith{{INTERNAL_NAME}}:({{OFFSET_NAME}})offset {")
	rn.mm.Add("  _fbb->Finish(flatbuffers::Offset<{{FLATBUF_NAME}}>(offset.offset));")
	rn.mm.Add("}")
	rn.mm.Add("")
}
