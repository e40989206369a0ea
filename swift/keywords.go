package swift

// The generated header and implementation compile as Objective-C++, so the
// reserved-word set is the C++ keyword list. Escaping appends a trailing
// underscore; it is applied independently at every site an identifier is
// surfaced, never assumed to have happened upstream.
var keywords = map[string]struct{}{
	"alignas":          {},
	"alignof":          {},
	"and":              {},
	"and_eq":           {},
	"asm":              {},
	"atomic_cancel":    {},
	"atomic_commit":    {},
	"atomic_noexcept":  {},
	"auto":             {},
	"bitand":           {},
	"bitor":            {},
	"bool":             {},
	"break":            {},
	"case":             {},
	"catch":            {},
	"char":             {},
	"char16_t":         {},
	"char32_t":         {},
	"class":            {},
	"compl":            {},
	"concept":          {},
	"const":            {},
	"constexpr":        {},
	"const_cast":       {},
	"continue":         {},
	"co_await":         {},
	"co_return":        {},
	"co_yield":         {},
	"decltype":         {},
	"default":          {},
	"delete":           {},
	"do":               {},
	"double":           {},
	"dynamic_cast":     {},
	"else":             {},
	"enum":             {},
	"explicit":         {},
	"export":           {},
	"extern":           {},
	"false":            {},
	"float":            {},
	"for":              {},
	"friend":           {},
	"goto":             {},
	"if":               {},
	"import":           {},
	"inline":           {},
	"int":              {},
	"long":             {},
	"module":           {},
	"mutable":          {},
	"namespace":        {},
	"new":              {},
	"noexcept":         {},
	"not":              {},
	"not_eq":           {},
	"nullptr":          {},
	"operator":         {},
	"or":               {},
	"or_eq":            {},
	"private":          {},
	"protected":        {},
	"public":           {},
	"register":         {},
	"reinterpret_cast": {},
	"requires":         {},
	"return":           {},
	"short":            {},
	"signed":           {},
	"sizeof":           {},
	"static":           {},
	"static_assert":    {},
	"static_cast":      {},
	"struct":           {},
	"switch":           {},
	"synchronized":     {},
	"template":         {},
	"this":             {},
	"thread_local":     {},
	"throw":            {},
	"true":             {},
	"try":              {},
	"typedef":          {},
	"typeid":           {},
	"typename":         {},
	"union":            {},
	"unsigned":         {},
	"using":            {},
	"virtual":          {},
	"void":             {},
	"volatile":         {},
	"wchar_t":          {},
	"while":            {},
	"xor":              {},
	"xor_eq":           {},
}

// escapeKeyword returns the identifier unchanged unless it is a reserved
// word, in which case a disambiguating underscore is appended.
func escapeKeyword(name string) string {
	if _, reserved := keywords[name]; reserved {
		return name + "_"
	}
	return name
}

func toUpperASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func toLowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

// selectorComponentName renders one label of a builder selector. The first
// label leads with an upper-cased letter, every subsequent label with a
// lower-cased one.
func selectorComponentName(name string, first bool) string {
	result := []byte(escapeKeyword(name))
	if len(result) == 0 {
		return ""
	}
	if first {
		result[0] = toUpperASCII(result[0])
	} else {
		result[0] = toLowerASCII(result[0])
	}
	return string(result)
}

// selectorArgumentName renders a parameter name: escaped, leading letter
// lower-cased.
func selectorArgumentName(name string) string {
	result := []byte(escapeKeyword(name))
	if len(result) == 0 {
		return ""
	}
	result[0] = toLowerASCII(result[0])
	return string(result)
}

// temporaryArgumentName names the staging local used when a fixed-struct
// parameter needs to be copied before being passed by address.
func temporaryArgumentName(name string) string {
	return selectorArgumentName(name) + "__"
}
