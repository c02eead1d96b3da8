package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/delvui/delvui/internal/config"
	"github.com/delvui/delvui/internal/theme"
	"github.com/delvui/delvui/internal/tui/wizard"
)

const customThemesDir = "themes"

type customizeOptions struct {
	name           string
	primaryColor   string
	secondaryColor string
	borderRadius   string
	interactive    bool
}

func newCustomizeCmd(_ *rootFlags, app *AppContext) *cobra.Command {
	opts := &customizeOptions{}

	cmd := &cobra.Command{
		Use:     "customize",
		Aliases: []string{"custom"},
		Short:   "Create a custom theme from a preset with your colors and radius",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomize(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", wizard.DefaultName, "Custom theme name")
	cmd.Flags().StringVar(&opts.primaryColor, "primary-color", "", "Primary color as hex, applied to brand 500")
	cmd.Flags().StringVar(&opts.secondaryColor, "secondary-color", "", "Secondary color as hex, applied to neutral 600")
	cmd.Flags().StringVar(&opts.borderRadius, "border-radius", "", "Button border radius, e.g. 6px")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Answer the questions in an interactive wizard")

	return cmd
}

func runCustomize(cmd *cobra.Command, app *AppContext, opts *customizeOptions) error {
	in, err := loadThemeInputs(cmd)
	if err != nil {
		return err
	}

	req, err := in.request()
	if err != nil {
		return err
	}
	if req.Preset == "" && in.config != nil {
		req.Preset = in.config.Preset
	}
	if req.Preset == "" {
		req.Preset = config.DefaultPresetName
	}

	custom, err := collectCustomization(cmd, opts, req.Preset)
	if err != nil {
		return err
	}

	req.Name = custom.Name
	req.Extra = []theme.Override{custom.Override()}

	res, err := app.Themes.Generate(req)
	if err != nil {
		return generateError("customize theme", err)
	}

	dir := in.outputDir(filepath.Join(customThemesDir, custom.Name))
	path, err := app.Themes.Write(dir, res)
	if err != nil {
		return newCommandError("customize theme", "writing "+dir, err, "Check that the output directory is writable.")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Custom theme %q created!\n", custom.Name)
	fmt.Fprintf(out, "   Preset: %s\n", res.Preset)
	fmt.Fprintf(out, "   Output: %s\n", path)
	fmt.Fprintln(out, "\nYour customizations:")
	printCustomization(out, custom)
	printNextSteps(cmd, in.framework())
	return nil
}

func collectCustomization(cmd *cobra.Command, opts *customizeOptions, preset string) (config.Customization, error) {
	if opts.interactive {
		if !isTerminal(cmd.InOrStdin()) {
			return config.Customization{}, newCommandError("customize theme", "interactive mode",
				errors.New("standard input is not a terminal"),
				"Pass --name, --primary-color, --secondary-color and --border-radius instead of --interactive.")
		}

		custom, err := wizard.Run(cmd.Context(), preset, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return config.Customization{}, newCommandError("customize theme", "interactive mode", err, "Run the command again to restart the wizard.")
		}
		return custom, nil
	}

	custom := config.Customization{
		Name:           strings.TrimSpace(opts.name),
		PrimaryColor:   opts.primaryColor,
		SecondaryColor: opts.secondaryColor,
		BorderRadius:   opts.borderRadius,
	}
	if custom.Name == "" {
		custom.Name = wizard.DefaultName
	}
	if strings.ContainsAny(custom.Name, `/\`) {
		return config.Customization{}, newCommandError("customize theme", "--name "+custom.Name,
			errors.New("theme names cannot contain path separators"), "Use a plain name such as acme-dark.")
	}
	if err := config.ValidateCustomization(custom); err != nil {
		return config.Customization{}, newCommandError("customize theme", "validating options", err,
			"Colors must be hex values such as #0ea5e9 and the radius a CSS length such as 6px.")
	}
	return custom, nil
}

func printCustomization(w io.Writer, c config.Customization) {
	r := lipgloss.NewRenderer(w)
	dot := func(color string) string {
		if color == "" {
			return "(unchanged)"
		}
		return r.NewStyle().Foreground(lipgloss.Color(color)).Render("●") + " " + color
	}

	radius := c.BorderRadius
	if radius == "" {
		radius = "(unchanged)"
	}

	fmt.Fprintf(w, "  Primary Color: %s\n", dot(c.PrimaryColor))
	fmt.Fprintf(w, "  Secondary Color: %s\n", dot(c.SecondaryColor))
	fmt.Fprintf(w, "  Border Radius: %s\n", radius)
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
