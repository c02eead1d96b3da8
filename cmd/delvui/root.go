package main

import (
	"github.com/spf13/cobra"

	"github.com/delvui/delvui/internal/logger"
	"github.com/delvui/delvui/internal/settings"
)

type rootFlags struct {
	verbose   bool
	logFormat string
}

func newRootCmd(app *AppContext) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "delvui",
		Short:         "DelvUI builds CSS variable themes from design tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLogging(cmd, flags, app)
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.logFormat, settings.KeyLogFormat, "", "Log output format (console|json)")

	cmd.AddCommand(newThemeCmd(flags, app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

func configureLogging(cmd *cobra.Command, flags *rootFlags, app *AppContext) error {
	s, err := settings.Load(cmd.Flags(), "")
	if err != nil {
		return newCommandError("load settings", settings.FileName+".yaml", err, "Fix the settings file or remove it.")
	}

	opts, err := logger.OptionsFor(s.LogLevel, s.LogFormat, flags.verbose, cmd.ErrOrStderr())
	if err != nil {
		return newCommandError("configure logging", "--log-format", err, "Use --log-format console or --log-format json.")
	}

	log, err := logger.New(opts)
	if err != nil {
		return newCommandError("configure logging", "log level "+s.LogLevel, err, "Set DELVUI_LOG_LEVEL to debug, info, warn or error.")
	}

	app.useLogger(log)
	return nil
}
