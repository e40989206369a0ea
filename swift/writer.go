package swift

import "strings"

// CodeWriter is an append-only text buffer for one output artifact. Lines
// are added in program order with `{{KEY}}` placeholders substituted from
// the current value set; a line ending in `\` has the backslash dropped and
// the trailing newline suppressed, which lets pre-formatted multi-line text
// (doc comments) be appended verbatim.
type CodeWriter struct {
	buf    strings.Builder
	values map[string]string
}

// NewCodeWriter returns an empty writer.
func NewCodeWriter() *CodeWriter {
	return &CodeWriter{values: make(map[string]string)}
}

// SetValue binds a placeholder key for subsequent lines. Values persist
// until overwritten.
func (w *CodeWriter) SetValue(key, value string) {
	w.values[key] = value
}

// Add appends one line, substituting placeholders.
func (w *CodeWriter) Add(line string) {
	appendNewline := true
	if strings.HasSuffix(line, "\\") {
		line = line[:len(line)-1]
		appendNewline = false
	}

	for {
		begin := strings.Index(line, "{{")
		if begin < 0 {
			break
		}
		end := strings.Index(line[begin:], "}}")
		if end < 0 {
			break
		}
		end += begin
		key := line[begin+2 : end]
		value := w.values[key]
		line = line[:begin] + value + line[end+2:]
	}

	w.buf.WriteString(line)
	if appendNewline {
		w.buf.WriteString("\n")
	}
}

// String returns everything appended so far.
func (w *CodeWriter) String() string {
	return w.buf.String()
}
