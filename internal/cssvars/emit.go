package cssvars

import "strings"

// DefaultSelector is the selector used when none is given.
const DefaultSelector = ":root"

// Emit renders vars as a CSS ruleset with one declaration per line, sorted by
// name. Values are written verbatim.
func Emit(vars Variables, selector string) string {
	if selector == "" {
		selector = DefaultSelector
	}

	names := vars.Names()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  --"+name+": "+vars[name]+";")
	}

	return selector + " {\n" + strings.Join(lines, "\n") + "\n}"
}

// EmitMinified renders the same ruleset as Emit without whitespace.
func EmitMinified(vars Variables, selector string) string {
	if selector == "" {
		selector = DefaultSelector
	}

	var b strings.Builder
	b.WriteString(selector)
	b.WriteByte('{')
	for i, name := range vars.Names() {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString("--")
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(vars[name])
	}
	b.WriteByte('}')
	return b.String()
}
