// Package bindgen drives cross-language binding generation over a resolved
// schema type graph.
//
// A schema compilation unit is turned into three coordinated artifacts: a
// declaration surface, an implementation surface, and a pure
// accessor-language surface. Target languages implement Generator; the
// schema graph itself is produced by an external compiler and consumed
// read-only (see the schema package).
package bindgen

import (
	"os"
	"path/filepath"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/schema"
)

// Artifact is one generated file: its conventional name and full content.
type Artifact struct {
	Name    string
	Content string
}

// Artifacts holds the three surfaces generated for one compilation unit,
// plus the dependency rule handed to build-system integration. The rule is
// currently always empty; it exists for interface parity with sibling
// generators.
type Artifacts struct {
	// Header is the declaration surface ({base}_<target>_generated.h).
	Header Artifact
	// Impl is the implementation surface ({base}_<target>_generated.mm or
	// equivalent).
	Impl Artifact
	// Accessor is the pure accessor-language surface. Content may be empty
	// when the target has no separate accessor-language form.
	Accessor Artifact
	// MakeRule is the build-system dependency rule.
	MakeRule string
}

// Generator is implemented by each target-language backend.
type Generator interface {
	// Language returns the target language name, e.g. "swift".
	Language() string
	// Generate produces all artifacts for one compilation unit. On error no
	// artifacts are returned; partial output is never valid.
	Generate(s *schema.Schema) (*Artifacts, error)
}

// Save writes the artifacts into dir in declaration, implementation,
// accessor order. A failed write stops the run and propagates; files already
// written are left on disk, not rolled back.
func (a *Artifacts) Save(dir string) error {
	for _, artifact := range []Artifact{a.Header, a.Impl, a.Accessor} {
		path := filepath.Join(dir, artifact.Name)
		if err := os.WriteFile(path, []byte(artifact.Content), 0o644); err != nil {
			return errors.Wrapf(err, "write %s", path)
		}
		logger.Debugw("wrote artifact", "path", path, "bytes", len(artifact.Content))
	}
	return nil
}
