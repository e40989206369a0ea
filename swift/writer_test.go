package swift

import "testing"

func TestCodeWriterSubstitution(t *testing.T) {
	w := NewCodeWriter()
	w.SetValue("NAME", "Monster")
	w.Add("typedef struct {{NAME}}Ref {{NAME}}Ref;")

	expected := "typedef struct MonsterRef MonsterRef;\n"
	if got := w.String(); got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestCodeWriterValuePersistsAcrossLines(t *testing.T) {
	w := NewCodeWriter()
	w.SetValue("K", "first")
	w.Add("{{K}}")
	w.SetValue("K", "second")
	w.Add("{{K}}")

	if got := w.String(); got != "first\nsecond\n" {
		t.Errorf("got %q", got)
	}
}

func TestCodeWriterUnknownKeyIsEmpty(t *testing.T) {
	w := NewCodeWriter()
	w.Add("a{{MISSING}}b")
	if got := w.String(); got != "ab\n" {
		t.Errorf("got %q", got)
	}
}

func TestCodeWriterTrailingBackslashSuppressesNewline(t *testing.T) {
	w := NewCodeWriter()
	w.Add("already terminated\n\\")
	w.Add("next")
	if got := w.String(); got != "already terminated\nnext\n" {
		t.Errorf("got %q", got)
	}
}
