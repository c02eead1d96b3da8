package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/delvui/delvui/internal/app/themes"
	"github.com/delvui/delvui/internal/settings"
)

const defaultBuildOutput = "./dist/theme"

// errOutOfDate signals a failed --check without repeating the diff.
var errOutOfDate = errors.New("generated theme differs from the file on disk")

type buildOptions struct {
	check bool
}

func newBuildCmd(_ *rootFlags, app *AppContext) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a minified theme for production",
		Long: `Build resolves the theme like generate but minifies by default and writes
to ./dist/theme. Pass --minify=false for readable output. With --check the
existing file is compared instead and a unified diff is printed when it is
out of date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.check, "check", false, "Compare with the existing output instead of writing it")

	return cmd
}

func runBuild(cmd *cobra.Command, app *AppContext, opts *buildOptions) error {
	in, err := loadThemeInputs(cmd, settings.WithDefault(settings.KeyMinify, true))
	if err != nil {
		return err
	}

	req, err := in.request()
	if err != nil {
		return err
	}

	res, err := app.Themes.Generate(req)
	if err != nil {
		return generateError("build theme", err)
	}

	dir := in.outputDir(defaultBuildOutput)
	if dir == stdoutOutput {
		_, err := cmd.OutOrStdout().Write(res.Content)
		return err
	}

	out := cmd.OutOrStdout()
	if opts.check {
		diff, err := app.Themes.Diff(dir, res)
		if err != nil {
			return newCommandError("check theme", dir, err, "Check that the output file is readable.")
		}
		if diff == "" {
			fmt.Fprintf(out, "Theme is up to date: %s\n", filepath.Join(dir, res.Filename()))
			return nil
		}
		fmt.Fprint(out, diff)
		return newCommandError("check theme", filepath.Join(dir, res.Filename()), errOutOfDate, "Run 'delvui theme build' to update it.")
	}

	path, err := app.Themes.Write(dir, res)
	if err != nil {
		return newCommandError("build theme", "writing "+dir, err, "Check that the output directory is writable.")
	}

	stats, err := themes.ComputeStats(res)
	if err != nil {
		return newCommandError("build theme", "computing bundle stats", err, "Run with --verbose for more detail.")
	}

	fmt.Fprintln(out, "Theme built successfully!")
	fmt.Fprintf(out, "   Output: %s\n", path)
	fmt.Fprintln(out, "\nBundle stats:")
	fmt.Fprintf(out, "   %s: %s (%s gzipped)\n", res.Format, formatBytes(stats.Bytes), formatBytes(stats.Gzipped))
	fmt.Fprintf(out, "   Variables: %d\n", stats.Variables)
	return nil
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
