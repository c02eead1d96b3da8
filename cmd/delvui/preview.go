package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/delvui/delvui/internal/preview"
)

type previewOptions struct {
	htmlDir string
}

func newPreviewCmd(_ *rootFlags, app *AppContext) *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview a theme's palette and buttons in the terminal or browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.htmlDir, "html", "", "Write index.html and theme.css to this directory instead")

	return cmd
}

func runPreview(cmd *cobra.Command, app *AppContext, opts *previewOptions) error {
	in, err := loadThemeInputs(cmd)
	if err != nil {
		return err
	}

	req, err := in.request()
	if err != nil {
		return err
	}

	res, err := app.Themes.Generate(req)
	if err != nil {
		return generateError("preview theme", err)
	}

	if opts.htmlDir == "" {
		return preview.Terminal(cmd.OutOrStdout(), res.Theme, res.Variables)
	}

	index, err := preview.WriteHTML(opts.htmlDir, res.Theme, res.Variables)
	if err != nil {
		return newCommandError("preview theme", "writing "+opts.htmlDir, err, "Check that the directory is writable.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Preview of %q written to %s\n", res.Preset, index)
	fmt.Fprintln(cmd.OutOrStdout(), "   Open it in a browser to see the theme.")
	return nil
}
