package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/delvui/delvui/internal/app/themes"
	"github.com/delvui/delvui/internal/config"
	"github.com/delvui/delvui/internal/render"
	"github.com/delvui/delvui/internal/settings"
	delvuierrors "github.com/delvui/delvui/pkg/errors"
)

// stdoutOutput makes generate and build write to stdout instead of a directory.
const stdoutOutput = "-"

// themeFlags are shared by every theme subcommand. Values are read back
// through settings.Load so the environment and .delvuirc.yaml apply too.
type themeFlags struct {
	preset     string
	output     string
	format     string
	framework  string
	prefix     string
	selector   string
	configPath string
	minify     bool
}

func newThemeCmd(root *rootFlags, app *AppContext) *cobra.Command {
	flags := &themeFlags{}

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Generate, customize, and manage themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.preset, settings.KeyPreset, "p", "", "Preset to start from (default \"default\")")
	pf.StringVarP(&flags.output, settings.KeyOutput, "o", "", "Output directory, or - for stdout")
	pf.StringVarP(&flags.format, settings.KeyFormat, "f", "", "Output format ("+formatNames()+")")
	pf.StringVar(&flags.framework, settings.KeyFramework, "", "Target framework ("+strings.Join(config.Frameworks, "|")+")")
	pf.BoolVar(&flags.minify, settings.KeyMinify, false, "Minify the output")
	pf.StringVar(&flags.prefix, settings.KeyPrefix, "", "CSS variable prefix (default \"delvui\")")
	pf.StringVar(&flags.selector, settings.KeySelector, "", "CSS selector for the variables (default \":root\")")
	pf.StringVarP(&flags.configPath, settings.KeyConfig, "c", "", "Theme config file (default: delvui.theme.yaml if present)")

	cmd.AddCommand(newGenerateCmd(root, app))
	cmd.AddCommand(newCustomizeCmd(root, app))
	cmd.AddCommand(newListCmd(root, app))
	cmd.AddCommand(newPreviewCmd(root, app))
	cmd.AddCommand(newValidateCmd(root, app))
	cmd.AddCommand(newBuildCmd(root, app))
	cmd.AddCommand(newWatchCmd(root, app))

	return cmd
}

// themeInputs is everything a theme command resolves before generating.
type themeInputs struct {
	settings   settings.Settings
	config     *config.ThemeConfig
	configPath string
}

// loadThemeInputs reads settings and the project theme config. An explicit
// --config must exist; otherwise the default file names are tried in the
// working directory.
func loadThemeInputs(cmd *cobra.Command, opts ...settings.Option) (themeInputs, error) {
	s, err := settings.Load(cmd.Flags(), "", opts...)
	if err != nil {
		return themeInputs{}, newCommandError("load settings", settings.FileName+".yaml", err, "Fix the settings file or remove it.")
	}

	in := themeInputs{settings: s}
	if s.Framework != "" && !containsString(config.Frameworks, s.Framework) {
		return themeInputs{}, newCommandError("resolve options", "--framework "+s.Framework,
			delvuierrors.NewValidationError("framework", "unsupported framework", nil),
			"Use one of: "+strings.Join(config.Frameworks, ", "))
	}

	path := s.ConfigPath
	if path == "" {
		if found, ok := config.Find("."); ok {
			path = found
		}
	}
	if path == "" {
		return in, nil
	}

	cfg, err := config.ParseConfig(path)
	if err != nil {
		return themeInputs{}, configError(path, err)
	}
	in.config = cfg
	in.configPath = path
	return in, nil
}

// request builds the generation request from settings and config.
func (in themeInputs) request() (themes.Request, error) {
	req := themes.Request{
		Preset:   in.settings.Preset,
		Config:   in.config,
		Prefix:   in.settings.Prefix,
		Selector: in.settings.Selector,
		Minify:   in.settings.Minify,
	}

	if in.settings.Format != "" {
		format, err := render.ParseFormat(in.settings.Format)
		if err != nil {
			return themes.Request{}, newCommandError("resolve options", "--format "+in.settings.Format, err, "Use one of: "+formatNames())
		}
		req.Format = format
	}
	return req, nil
}

// outputDir picks the output directory: settings first, then the theme
// config, then the command default.
func (in themeInputs) outputDir(fallback string) string {
	if in.settings.Output != "" {
		return in.settings.Output
	}
	if in.config != nil && in.config.Output != "" {
		return in.config.Output
	}
	return fallback
}

// framework returns the target framework from settings or the theme config.
func (in themeInputs) framework() string {
	if in.settings.Framework != "" {
		return in.settings.Framework
	}
	if in.config != nil {
		return in.config.Framework
	}
	return ""
}

func configError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return newCommandError("load theme config", path, err, "Check the --config path.")
	}
	var parseErr *delvuierrors.ParseError
	if errors.As(err, &parseErr) {
		return newCommandError("load theme config", path, err, "Fix the syntax error, then run 'delvui theme validate'.")
	}
	return newCommandError("load theme config", path, err, "Run 'delvui theme validate' for a full report.")
}

// generateError explains failures from the theme pipeline.
func generateError(operation string, err error) error {
	var notFound *delvuierrors.PresetNotFoundError
	if errors.As(err, &notFound) {
		return newCommandError(operation, "preset "+notFound.Name, err, "Run 'delvui theme list' to see the available presets.")
	}

	var collision *delvuierrors.VariableCollisionError
	if errors.As(err, &collision) {
		return newCommandError(operation, "variable --"+collision.Name, err, "Rename one of the two token paths so they produce different variable names.")
	}

	var invalid *delvuierrors.InvalidThemeError
	if errors.As(err, &invalid) {
		return newCommandError(operation, "theme "+invalid.Theme, err, "Make sure the overrides keep colors and components.button in place.")
	}

	return newCommandError(operation, "theme pipeline", err, "Run with --verbose for more detail.")
}

func formatNames() string {
	names := make([]string, 0, len(render.Formats))
	for _, f := range render.Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func printNextSteps(cmd *cobra.Command, framework string) {
	if framework == "" || framework == "none" {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  1. Import the theme in your %s app\n", framework)
	fmt.Fprintln(out, "  2. Apply the theme using the DelvUI provider")
	fmt.Fprintln(out, "  3. Customize tokens as needed")
}
