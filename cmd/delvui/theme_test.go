package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delvui/delvui/internal/app/themes"
	"github.com/delvui/delvui/internal/render"
	"github.com/delvui/delvui/internal/tui/wizard"
	delvuierrors "github.com/delvui/delvui/pkg/errors"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	app, err := newAppContext()
	require.NoError(t, err)

	root := newRootCmd(app)
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)

	err = root.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestThemeList_Table(t *testing.T) {
	t.Parallel()

	out, err := executeCommand(t, "theme", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "DESCRIPTION")
	assert.Contains(t, out, "default (default)")
	assert.Contains(t, out, "Material Design")
	assert.Contains(t, out, "#google")
	assert.Less(t, strings.Index(out, "apple"), strings.Index(out, "material"), "presets are sorted by name")
}

func TestThemeList_JSONAlias(t *testing.T) {
	t.Parallel()

	out, err := executeCommand(t, "theme", "ls", "--json")
	require.NoError(t, err)

	var payload listJSONPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, 6, payload.Count)
	require.Len(t, payload.Presets, 6)
	assert.Equal(t, "apple", payload.Presets[0].Name)
	assert.Equal(t, "Apple Design", payload.Presets[0].Title)

	var defaults int
	for _, p := range payload.Presets {
		if p.Default {
			defaults++
			assert.Equal(t, "default", p.Name)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestThemeGenerate_WritesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out, err := executeCommand(t, "theme", "generate", "--preset", "material", "--output", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "theme.css")
	assert.Contains(t, out, `Theme "material" generated successfully!`)
	assert.Contains(t, out, path)

	css := readFile(t, path)
	assert.True(t, strings.HasPrefix(css, "/* DelvUI Theme: material */\n:root {\n"))
	assert.Contains(t, css, "  --delvui-color-brand-500: #4caf50;\n")
	assert.Contains(t, css, "  --delvui-button-root-sm-font-size: 0.75rem;\n")
	assert.NotContains(t, css, "--delvui-color-brand-500: #0ea5e9;")
}

func TestThemeGenerate_Stdout(t *testing.T) {
	t.Parallel()

	out, err := executeCommand(t, "theme", "gen", "--output", "-", "--format", "scss", "--prefix", "--acme", "--name", "Acme")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "// DelvUI Theme: Acme\n"))
	assert.Contains(t, out, "$acme-color-brand-500: #0ea5e9;")
	assert.Contains(t, out, "--acme-color-brand-500: #{$acme-color-brand-500};")
}

func TestThemeGenerate_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		args     []string
		contains string
	}{
		{name: "unknown preset", args: []string{"--preset", "neon"}, contains: "delvui theme list"},
		{name: "unknown format", args: []string{"--format", "xml"}, contains: "css|scss|js|ts|json"},
		{name: "unknown framework", args: []string{"--framework", "svelte"}, contains: "react, vue"},
		{name: "missing config", args: []string{"--config", "does-not-exist.yaml"}, contains: "Check the --config path."},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"theme", "generate", "--output", t.TempDir()}, tc.args...)
			_, err := executeCommand(t, args...)
			require.Error(t, err)

			var cmdErr *commandError
			require.ErrorAs(t, err, &cmdErr)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestThemeGenerate_PresetNotFoundUnwraps(t *testing.T) {
	t.Parallel()

	_, err := executeCommand(t, "theme", "generate", "--preset", "Material", "--output", t.TempDir())

	var notFound *delvuierrors.PresetNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Material", notFound.Name)
}

func TestThemeGenerate_UsesConfigFile(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "delvui.theme.yaml", `name: Acme
preset: dark
prefix: acme
format: ts
framework: react
customizations:
  primaryColor: "#ff5722"
overrides:
  components:
    button:
      root:
        borderRadius: 2px
`)
	dir := t.TempDir()

	out, err := executeCommand(t, "theme", "generate", "--config", cfg, "--output", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Import the theme in your react app")

	ts := readFile(t, filepath.Join(dir, "theme.ts"))
	assert.Contains(t, ts, "export const acmeTheme = {")
	assert.Contains(t, ts, `"--acme-color-brand-500": "#ff5722"`)
	assert.Contains(t, ts, `"--acme-button-root-border-radius": "2px"`)
	assert.Contains(t, ts, `"--acme-color-neutral-50": "#18181b"`)
	assert.Contains(t, ts, "} as const;")
}

func TestThemeGenerate_FlagsBeatConfig(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "delvui.theme.json", `{"name": "Acme", "preset": "dark", "format": "ts"}`)

	out, err := executeCommand(t, "theme", "generate", "--config", cfg, "--preset", "chakra", "--format", "css", "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "/* DelvUI Theme: Acme */")
	assert.Contains(t, out, "--delvui-color-brand-500: #319795;")
}

func TestThemeGenerate_InteractiveRequiresTerminal(t *testing.T) {
	t.Parallel()

	_, err := executeCommand(t, "theme", "generate", "--interactive", "--output", t.TempDir())
	require.Error(t, err)

	var cmdErr *commandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Contains(t, err.Error(), "not a terminal")
	assert.Contains(t, err.Error(), "instead of --interactive")
}

func TestApplyGenerateAnswers(t *testing.T) {
	t.Parallel()

	req, err := applyGenerateAnswers(themes.Request{Preset: "dark", Prefix: "acme"}, wizard.GenerateAnswers{
		Name:      "acme",
		Preset:    "material",
		Format:    "scss",
		Framework: "react",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme", req.Name)
	assert.Equal(t, "material", req.Preset)
	assert.Equal(t, render.FormatSCSS, req.Format)
	assert.Equal(t, "acme", req.Prefix, "flag values the wizard does not ask for are kept")

	_, err = applyGenerateAnswers(themes.Request{}, wizard.GenerateAnswers{Name: "a/b", Format: "css"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path separators")

	_, err = applyGenerateAnswers(themes.Request{}, wizard.GenerateAnswers{Name: "acme", Format: "less"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "css|scss|js|ts|json")
}

func TestThemeCustomize_Flags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out, err := executeCommand(t, "theme", "customize",
		"--preset", "bootstrap",
		"--name", "acme",
		"--primary-color", "#ff5722",
		"--secondary-color", "#607d8b",
		"--border-radius", "8px",
		"--output", dir,
	)
	require.NoError(t, err)

	assert.Contains(t, out, `Custom theme "acme" created!`)
	assert.Contains(t, out, "Primary Color: ● #ff5722")
	assert.Contains(t, out, "Secondary Color: ● #607d8b")
	assert.Contains(t, out, "Border Radius: 8px")

	css := readFile(t, filepath.Join(dir, "theme.css"))
	assert.Contains(t, css, "/* DelvUI Theme: acme */")
	assert.Contains(t, css, "--delvui-color-brand-500: #ff5722;")
	assert.Contains(t, css, "--delvui-color-neutral-600: #607d8b;")
	assert.Contains(t, css, "--delvui-button-root-border-radius: 8px;")
}

func TestThemeCustomize_RejectsBadInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		args     []string
		contains string
	}{
		{name: "bad color", args: []string{"--primary-color", "orange"}, contains: "hex values"},
		{name: "bad radius", args: []string{"--border-radius", "round"}, contains: "CSS length"},
		{name: "path in name", args: []string{"--name", "../escape"}, contains: "path separators"},
		{name: "interactive without terminal", args: []string{"--interactive"}, contains: "not a terminal"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"theme", "custom", "--output", t.TempDir()}, tc.args...)
			_, err := executeCommand(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestThemePreview_Terminal(t *testing.T) {
	t.Parallel()

	out, err := executeCommand(t, "theme", "preview", "--preset", "apple")
	require.NoError(t, err)

	assert.Contains(t, out, "DelvUI Theme Preview: Apple Design")
	assert.Contains(t, out, "Color Palette")
	assert.Contains(t, out, "Buttons")
}

func TestThemePreview_HTML(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "preview")
	out, err := executeCommand(t, "theme", "preview", "--preset", "dark", "--html", dir)
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(dir, "index.html"))
	assert.Contains(t, readFile(t, filepath.Join(dir, "index.html")), "DelvUI Theme Preview: DelvUI Dark")
	assert.Contains(t, readFile(t, filepath.Join(dir, "theme.css")), "--delvui-color-neutral-50: #18181b;")
}

func TestThemeValidate_Valid(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "delvui.theme.yaml", "name: Acme\npreset: material\n")

	out, err := executeCommand(t, "theme", "validate", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Theme configuration is valid!")
}

func TestThemeValidate_ReportsIssues(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "delvui.theme.yaml", "preset: neon\nformat: less\n")

	out, err := executeCommand(t, "theme", "validate", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 issue(s) found")
	var cmdErr *commandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Contains(t, err.Error(), "Fix the issues above")

	assert.Contains(t, out, "Found 3 issue(s)")
	assert.Contains(t, out, "1. Error: Theme name is required")
	assert.Contains(t, out, "Suggestion: Add a name property to your theme config")
	assert.Contains(t, out, "Use one of: css, scss, js, json, ts")
	assert.Contains(t, out, `Preset "neon" does not exist`)
}

func TestThemeValidate_JSON(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "delvui.theme.yaml", "preset: default\n")

	out, err := executeCommand(t, "theme", "validate", "--json", cfg)
	require.Error(t, err)

	var payload struct {
		Valid  bool `json:"valid"`
		Issues []struct {
			Type    string `json:"type"`
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.False(t, payload.Valid)
	require.Len(t, payload.Issues, 1)
	assert.Equal(t, "Error", payload.Issues[0].Type)
	assert.Equal(t, "name", payload.Issues[0].Field)
}

func TestThemeValidate_SyntaxError(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "delvui.theme.yaml", "name: Acme\npreset: [dark\n")

	_, err := executeCommand(t, "theme", "validate", cfg)
	require.Error(t, err)

	var parseErr *delvuierrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "Fix the syntax error")
}

func TestThemeBuild_MinifiesByDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out, err := executeCommand(t, "theme", "build", "--output", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Theme built successfully!")
	assert.Contains(t, out, "Bundle stats:")
	assert.Contains(t, out, "gzipped")
	assert.Contains(t, out, "Variables: ")

	css := readFile(t, filepath.Join(dir, "theme.css"))
	assert.Contains(t, css, ":root{--delvui-")
	assert.Equal(t, 1, strings.Count(css, "\n"), "minified output is a single ruleset")
}

func TestThemeBuild_MinifyCanBeDisabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := executeCommand(t, "theme", "build", "--minify=false", "--output", dir)
	require.NoError(t, err)

	css := readFile(t, filepath.Join(dir, "theme.css"))
	assert.Contains(t, css, ":root {\n  --delvui-")
}

func TestThemeBuild_Check(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := executeCommand(t, "theme", "build", "--check", "--output", dir)
	require.Error(t, err, "missing output is out of date")
	assert.True(t, errors.Is(err, errOutOfDate))

	_, err = executeCommand(t, "theme", "build", "--output", dir)
	require.NoError(t, err)

	out, err := executeCommand(t, "theme", "build", "--check", "--output", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Theme is up to date")

	out, err = executeCommand(t, "theme", "build", "--check", "--preset", "material", "--output", dir)
	require.ErrorIs(t, err, errOutOfDate)
	assert.Contains(t, out, "--- "+filepath.Join(dir, "theme.css"))
	assert.Contains(t, out, "+++ "+filepath.Join(dir, "theme.css")+" (generated)")
	assert.Contains(t, out, "#4caf50")
}

func TestThemeWatch_BuildsUntilCancelled(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "delvui.theme.yaml", "name: Acme\npreset: default\n")
	output := t.TempDir()
	themesDir := t.TempDir()

	app, err := newAppContext()
	require.NoError(t, err)

	root := newRootCmd(app)
	buf := &syncBuffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"theme", "watch", "--config", cfg, "--output", output, "--watch", themesDir})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	css := filepath.Join(output, "theme.css")
	require.Eventually(t, func() bool {
		_, err := os.Stat(css)
		return err == nil
	}, 3*time.Second, 10*time.Millisecond)
	assert.Contains(t, readFile(t, css), "--delvui-color-brand-500: #0ea5e9;")

	require.NoError(t, os.WriteFile(cfg, []byte("name: Acme\npreset: material\n"), 0o644))
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(css)
		return err == nil && strings.Contains(string(data), "#4caf50")
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Contains(t, buf.String(), "Watching theme files for changes...")
	assert.Contains(t, buf.String(), "Stopped theme watcher.")
}

func TestRootRejectsUnknownLogFormat(t *testing.T) {
	t.Parallel()

	_, err := executeCommand(t, "--log-format", "xml", "theme", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--log-format console")
}

func TestRootVerboseLogsDebug(t *testing.T) {
	t.Parallel()

	out, err := executeCommand(t, "-v", "--log-format", "json", "theme", "generate", "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"message":"theme composed"`)
	assert.Contains(t, out, "/* DelvUI Theme: default */")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
