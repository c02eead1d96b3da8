package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/delvui/delvui/internal/app/themes"
	"github.com/delvui/delvui/internal/config"
	"github.com/delvui/delvui/internal/render"
	"github.com/delvui/delvui/internal/store"
	"github.com/delvui/delvui/internal/tui/wizard"
)

const defaultGenerateOutput = "./theme"

type generateOptions struct {
	name        string
	interactive bool
}

func newGenerateCmd(_ *rootFlags, app *AppContext) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a theme from a preset and the project theme config",
		Long: `Generate resolves a preset with the project theme config and writes
theme.<format> to --output. With --interactive the name, base preset, format
and framework are asked for and the theme is written to ./themes/<name>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Theme name used in the output header")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Choose name, preset, format and framework in an interactive wizard")

	return cmd
}

func runGenerate(cmd *cobra.Command, app *AppContext, opts *generateOptions) error {
	in, err := loadThemeInputs(cmd)
	if err != nil {
		return err
	}

	req, err := in.request()
	if err != nil {
		return err
	}
	req.Name = opts.name

	fallback := defaultGenerateOutput
	framework := in.framework()
	if opts.interactive {
		answers, err := askGenerateAnswers(cmd, app, in)
		if err != nil {
			return err
		}
		if req, err = applyGenerateAnswers(req, answers); err != nil {
			return err
		}
		fallback = filepath.Join(customThemesDir, answers.Name)
		framework = answers.Framework
	}

	res, err := app.Themes.Generate(req)
	if err != nil {
		return generateError("generate theme", err)
	}

	dir := in.outputDir(fallback)
	if dir == stdoutOutput {
		_, err := cmd.OutOrStdout().Write(res.Content)
		return err
	}

	path, err := app.Themes.Write(dir, res)
	if err != nil {
		return newCommandError("generate theme", "writing "+dir, err, "Check that the output directory is writable.")
	}

	reportWritten(cmd, res, path)
	printNextSteps(cmd, framework)
	return nil
}

func askGenerateAnswers(cmd *cobra.Command, app *AppContext, in themeInputs) (wizard.GenerateAnswers, error) {
	if !isTerminal(cmd.InOrStdin()) {
		return wizard.GenerateAnswers{}, newCommandError("generate theme", "interactive mode",
			errors.New("standard input is not a terminal"),
			"Pass --preset, --format and --framework instead of --interactive.")
	}

	formats := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		formats[i] = string(f)
	}

	preset := in.settings.Preset
	if preset == "" {
		preset = store.DefaultPreset
	}
	format := in.settings.Format
	if format == "" {
		format = string(render.FormatCSS)
	}
	framework := in.framework()
	if framework == "" {
		framework = "none"
	}

	answers, err := wizard.RunGenerate(cmd.Context(), wizard.GenerateOptions{
		Presets:          app.Store.Names(),
		Formats:          formats,
		Frameworks:       config.Frameworks,
		DefaultPreset:    preset,
		DefaultFormat:    format,
		DefaultFramework: framework,
	}, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return wizard.GenerateAnswers{}, newCommandError("generate theme", "interactive mode", err, "Run the command again to restart the wizard.")
	}
	return answers, nil
}

// applyGenerateAnswers layers the wizard answers over the request built from
// flags and config.
func applyGenerateAnswers(req themes.Request, answers wizard.GenerateAnswers) (themes.Request, error) {
	if strings.ContainsAny(answers.Name, `/\`) {
		return req, newCommandError("generate theme", "name "+answers.Name,
			errors.New("theme names cannot contain path separators"), "Use a plain name such as acme-dark.")
	}

	format, err := render.ParseFormat(answers.Format)
	if err != nil {
		return req, newCommandError("generate theme", "format "+answers.Format, err, "Use one of: "+formatNames())
	}

	req.Name = answers.Name
	req.Preset = answers.Preset
	req.Format = format
	return req, nil
}

func reportWritten(cmd *cobra.Command, res *themes.Result, path string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme %q generated successfully!\n", res.Name)
	fmt.Fprintf(out, "   Preset: %s\n", res.Preset)
	fmt.Fprintf(out, "   Output: %s\n", path)
}
