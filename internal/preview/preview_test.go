package preview

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delvui/delvui/internal/cssvars"
	"github.com/delvui/delvui/internal/store"
	"github.com/delvui/delvui/internal/theme"
)

func resolved(t *testing.T, preset string) (theme.Theme, cssvars.Variables) {
	t.Helper()

	s, err := store.NewBuiltin()
	require.NoError(t, err)
	th, err := s.Resolve(preset)
	require.NoError(t, err)
	vars, err := cssvars.Flatten(th)
	require.NoError(t, err)
	return th, vars
}

func TestPalettesGroupAndOrderShades(t *testing.T) {
	t.Parallel()

	th, _ := resolved(t, "default")
	palettes := Palettes(th)

	names := make([]string, 0, len(palettes))
	for _, p := range palettes {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "brand")
	assert.Contains(t, names, "neutral")
	assert.Contains(t, names, "semantic.success")
	assert.Contains(t, names, "special")

	brand := palettes[0]
	require.Equal(t, "brand", brand.Name)
	require.Len(t, brand.Swatches, 11)
	assert.Equal(t, "50", brand.Swatches[0].Shade)
	assert.Equal(t, "100", brand.Swatches[1].Shade)
	assert.Equal(t, "950", brand.Swatches[10].Shade)

	for _, sw := range brand.Swatches {
		if sw.Shade == "500" {
			assert.Equal(t, "--delvui-color-brand-500", sw.Variable)
			assert.Equal(t, "#0ea5e9", sw.Value)
		}
	}
}

func TestResolveValue(t *testing.T) {
	t.Parallel()

	vars := cssvars.Variables{
		"delvui-color-brand-500":             "#0ea5e9",
		"delvui-button-root-primary-color":   "var(--delvui-color-brand-500)",
		"delvui-button-root-loop-background": "var(--delvui-button-root-loop-background)",
	}

	cases := []struct {
		name  string
		value string
		want  string
	}{
		{name: "literal", value: "#fff", want: "#fff"},
		{name: "direct reference", value: "var(--delvui-color-brand-500)", want: "#0ea5e9"},
		{name: "chained reference", value: "var(--delvui-button-root-primary-color)", want: "#0ea5e9"},
		{name: "fallback", value: "var(--delvui-color-missing-500, #123456)", want: "#123456"},
		{name: "unknown without fallback", value: "var(--delvui-color-primary-500)", want: "var(--delvui-color-primary-500)"},
		{name: "cycle terminates", value: "var(--delvui-button-root-loop-background)", want: "var(--delvui-button-root-loop-background)"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ResolveValue(tc.value, vars))
		})
	}
}

func TestButtonsListVariants(t *testing.T) {
	t.Parallel()

	th, vars := resolved(t, "default")
	samples := Buttons(th, vars)
	require.NotEmpty(t, samples)

	labels := make([]string, 0, len(samples))
	for _, s := range samples {
		labels = append(labels, s.Label())
	}
	assert.Contains(t, labels, "Primary")
	assert.Contains(t, labels, "Outlined Primary")
	assert.Contains(t, labels, "Text Secondary")
	assert.NotContains(t, labels, "FocusRing")
	assert.NotContains(t, labels, "Sm")

	assert.Equal(t, "root", samples[0].Group)
	assert.Equal(t, "delvui-button delvui-button--outlined-primary",
		ButtonSample{Group: "outlined", Variant: "primary"}.Class("delvui"))
}

func TestIsHexColor(t *testing.T) {
	t.Parallel()

	assert.True(t, IsHexColor("#fff"))
	assert.True(t, IsHexColor("#0EA5E9"))
	assert.False(t, IsHexColor("transparent"))
	assert.False(t, IsHexColor("#12345"))
}

func TestTerminalPreview(t *testing.T) {
	t.Parallel()

	th, vars := resolved(t, "material")

	var buf bytes.Buffer
	require.NoError(t, Terminal(&buf, th, vars))

	out := buf.String()
	assert.Contains(t, out, "DelvUI Theme Preview: Material Design")
	assert.Contains(t, out, "Color Palette")
	assert.Contains(t, out, "semantic.error")
	assert.Contains(t, out, "Outlined Primary")
	assert.Contains(t, out, "variables, prefix --delvui")
	assert.NotContains(t, out, "\x1b[", "buffers get no ANSI styling")
}

func TestWriteHTML(t *testing.T) {
	t.Parallel()

	th, vars := resolved(t, "chakra")
	dir := filepath.Join(t.TempDir(), "preview")

	index, err := WriteHTML(dir, th, vars)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, IndexFile), index)

	page, err := os.ReadFile(index)
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, `<link rel="stylesheet" href="theme.css">`)
	assert.Contains(t, html, `class="delvui-button delvui-button--primary"`)
	assert.Contains(t, html, `style="background: var(--delvui-color-brand-500)"`)

	css, err := os.ReadFile(filepath.Join(dir, CSSFile))
	require.NoError(t, err)
	sheet := string(css)
	assert.True(t, strings.HasPrefix(sheet, ":root {\n"))
	assert.Contains(t, sheet, "--delvui-color-brand-500: #319795;")
	assert.Contains(t, sheet, ".delvui-button--primary {\n  background: var(--delvui-button-root-primary-background);")
	assert.Contains(t, sheet, "border-radius: var(--delvui-button-root-border-radius);")
	assert.Contains(t, sheet, ".delvui-button--text-secondary {")

	// Every variable referenced by a preview class exists in the emitted set.
	for _, line := range strings.Split(sheet, "\n") {
		if !strings.Contains(line, "var(--delvui-button-") {
			continue
		}
		start := strings.Index(line, "var(--") + len("var(--")
		end := strings.Index(line[start:], ")") + start
		_, ok := vars[line[start:end]]
		assert.True(t, ok, "undefined variable in %q", line)
	}
}
