package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/delvui/delvui/internal/config"
	"github.com/delvui/delvui/internal/watch"
)

type watchOptions struct {
	paths []string
}

func newWatchCmd(_ *rootFlags, app *AppContext) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the theme whenever the theme config or ./themes changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, app, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.paths, "watch", []string{customThemesDir}, "Extra files or directories to watch")

	return cmd
}

func runWatch(cmd *cobra.Command, app *AppContext, opts *watchOptions) error {
	in, err := loadThemeInputs(cmd)
	if err != nil {
		return err
	}

	paths := append([]string(nil), opts.paths...)
	if in.configPath != "" {
		paths = append(paths, in.configPath)
	} else {
		paths = append(paths, config.DefaultFilenames...)
	}

	build := func(ctx context.Context) error {
		// The config is parsed again on every build so edits take effect.
		current, err := loadThemeInputs(cmd)
		if err != nil {
			return err
		}
		req, err := current.request()
		if err != nil {
			return err
		}
		res, err := app.Themes.Generate(req)
		if err != nil {
			return err
		}
		path, err := app.Themes.Write(current.outputDir(defaultGenerateOutput), res)
		if err != nil {
			return err
		}
		app.Log.WithFields(map[string]any{"path": path, "variables": len(res.Variables)}).Info("theme written")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Watching theme files for changes...")
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop watching")

	w := watch.New(build, watch.Options{Paths: paths, Logger: app.Log})
	if err := w.Run(cmd.Context()); err != nil {
		return newCommandError("watch theme", "starting watcher", err, "Create delvui.theme.yaml or a ./themes directory, or pass --config.")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Stopped theme watcher.")
	return nil
}
