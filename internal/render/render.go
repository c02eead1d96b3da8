// Package render turns a resolved theme and its flattened variables into the
// output formats supported by the CLI.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/delvui/delvui/internal/cssvars"
	"github.com/delvui/delvui/internal/theme"
	delvuierrors "github.com/delvui/delvui/pkg/errors"
)

// Format identifies an output format.
type Format string

const (
	FormatCSS  Format = "css"
	FormatSCSS Format = "scss"
	FormatJS   Format = "js"
	FormatTS   Format = "ts"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSS, FormatSCSS, FormatJS, FormatTS, FormatJSON}

// ParseFormat validates a user supplied format name. Empty input selects CSS.
func ParseFormat(value string) (Format, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return FormatCSS, nil
	}
	for _, format := range Formats {
		if string(format) == value {
			return format, nil
		}
	}
	return "", delvuierrors.NewValidationError("format", fmt.Sprintf("unsupported format %q (expected one of %s)", value, formatList()), nil)
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Filename returns the conventional output file name for the format.
func (f Format) Filename() string {
	return "theme" + f.Extension()
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, format := range Formats {
		names[i] = string(format)
	}
	return strings.Join(names, "|")
}

// Options tune rendering.
type Options struct {
	Selector string
	Minify   bool
}

// Document is everything a renderer needs.
type Document struct {
	// Name is the label used in headers and JS identifiers. Defaults to the theme name.
	Name      string
	Theme     theme.Theme
	Variables cssvars.Variables
}

func (d Document) name() string {
	if d.Name != "" {
		return d.Name
	}
	if d.Theme.Name != "" {
		return d.Theme.Name
	}
	return cssvars.DefaultPrefix
}

// Render produces the document in the requested format.
func Render(format Format, doc Document, opts Options) ([]byte, error) {
	switch format {
	case FormatCSS, "":
		return renderCSS(doc, opts), nil
	case FormatSCSS:
		return renderSCSS(doc, opts), nil
	case FormatJS:
		return renderJS(doc, opts, false)
	case FormatTS:
		return renderJS(doc, opts, true)
	case FormatJSON:
		return renderJSON(doc, opts)
	default:
		_, err := ParseFormat(string(format))
		return nil, err
	}
}

func renderCSS(doc Document, opts Options) []byte {
	if opts.Minify {
		return []byte(cssvars.EmitMinified(doc.Variables, opts.Selector) + "\n")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "/* DelvUI Theme: %s */\n", doc.name())
	buf.WriteString(cssvars.Emit(doc.Variables, opts.Selector))
	buf.WriteByte('\n')
	return buf.Bytes()
}

func renderSCSS(doc Document, opts Options) []byte {
	names := doc.Variables.Names()

	var buf bytes.Buffer
	if !opts.Minify {
		fmt.Fprintf(&buf, "// DelvUI Theme: %s\n", doc.name())
	}
	for _, name := range names {
		fmt.Fprintf(&buf, "$%s: %s;\n", name, doc.Variables[name])
	}
	if !opts.Minify {
		buf.WriteByte('\n')
	}

	// Custom properties need interpolation to receive SCSS values.
	refs := make(cssvars.Variables, len(names))
	for _, name := range names {
		refs[name] = "#{$" + name + "}"
	}
	if opts.Minify {
		buf.WriteString(cssvars.EmitMinified(refs, opts.Selector))
	} else {
		buf.WriteString(cssvars.Emit(refs, opts.Selector))
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

type jsTheme struct {
	Name      string            `json:"name"`
	Prefix    string            `json:"prefix"`
	DarkMode  bool              `json:"darkMode"`
	Variables map[string]string `json:"variables"`
}

func renderJS(doc Document, opts Options, typed bool) ([]byte, error) {
	vars := make(map[string]string, len(doc.Variables))
	for name, value := range doc.Variables {
		vars["--"+name] = value
	}

	body, err := marshal(jsTheme{
		Name:      doc.name(),
		Prefix:    cssvars.NormalizePrefix(doc.Theme.CSSPrefix),
		DarkMode:  doc.Theme.Metadata.DarkMode,
		Variables: vars,
	}, opts.Minify)
	if err != nil {
		return nil, err
	}

	ident := Identifier(doc.name()) + "Theme"

	var buf bytes.Buffer
	if !opts.Minify {
		fmt.Fprintf(&buf, "// DelvUI Theme: %s\n", doc.name())
	}
	fmt.Fprintf(&buf, "export const %s = %s", ident, body)
	if typed {
		buf.WriteString(" as const")
	}
	buf.WriteString(";\n")
	if typed {
		fmt.Fprintf(&buf, "export type %s = typeof %s;\n", exported(ident), ident)
	}
	fmt.Fprintf(&buf, "export default %s;\n", ident)
	return buf.Bytes(), nil
}

type jsonDocument struct {
	Name      string            `json:"name"`
	Version   string            `json:"version,omitempty"`
	Prefix    string            `json:"prefix"`
	Variables map[string]string `json:"variables"`
	Theme     theme.Theme       `json:"theme"`
}

func renderJSON(doc Document, opts Options) ([]byte, error) {
	body, err := marshal(jsonDocument{
		Name:      doc.name(),
		Version:   doc.Theme.Version,
		Prefix:    cssvars.NormalizePrefix(doc.Theme.CSSPrefix),
		Variables: doc.Variables,
		Theme:     doc.Theme,
	}, opts.Minify)
	if err != nil {
		return nil, err
	}
	return append(body, '\n'), nil
}

func marshal(value any, minify bool) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if !minify {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(value); err != nil {
		return nil, fmt.Errorf("encode theme: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Identifier converts a theme name into a lowerCamelCase JavaScript identifier.
// "Material Design" and "material-design" both become "materialDesign".
func Identifier(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	for i, word := range words {
		runes := []rune(word)
		if i == 0 {
			runes[0] = unicode.ToLower(runes[0])
		} else {
			runes[0] = unicode.ToUpper(runes[0])
		}
		b.WriteString(string(runes))
	}

	ident := b.String()
	if ident == "" {
		return cssvars.DefaultPrefix
	}
	if unicode.IsDigit([]rune(ident)[0]) {
		return "theme" + ident
	}
	return ident
}

func exported(ident string) string {
	runes := []rune(ident)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
