package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/delvui/delvui/internal/config"
	"github.com/delvui/delvui/internal/settings"
)

type validateOptions struct {
	jsonOutput bool
}

func newValidateCmd(_ *rootFlags, app *AppContext) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a theme configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, app, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output issues in JSON format")

	return cmd
}

func runValidate(cmd *cobra.Command, app *AppContext, opts *validateOptions, args []string) error {
	path, err := validateTarget(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := config.Decode(path)
	if err != nil {
		return configError(path, err)
	}

	issues := config.Check(cfg, app.Store)
	app.Log.WithFields(map[string]any{"path": path, "issues": len(issues)}).Debug("theme config checked")

	if opts.jsonOutput {
		if err := renderIssuesJSON(cmd, path, issues); err != nil {
			return err
		}
	} else {
		renderIssues(cmd, path, issues)
	}

	if len(issues) > 0 {
		return newCommandError("validate theme", path, fmt.Errorf("%d issue(s) found", len(issues)),
			"Fix the issues above, then run 'delvui theme validate' again.")
	}
	return nil
}

func validateTarget(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	s, err := settings.Load(cmd.Flags(), "")
	if err != nil {
		return "", newCommandError("load settings", settings.FileName+".yaml", err, "Fix the settings file or remove it.")
	}
	if s.ConfigPath != "" {
		return s.ConfigPath, nil
	}
	if found, ok := config.Find("."); ok {
		return found, nil
	}

	return "", newCommandError("validate theme", "locating theme configuration",
		errors.New("no theme configuration found"),
		"Create delvui.theme.yaml or pass the file to validate.")
}

func renderIssues(cmd *cobra.Command, path string, issues []config.Issue) {
	out := cmd.OutOrStdout()
	if len(issues) == 0 {
		fmt.Fprintf(out, "Theme configuration is valid! (%s)\n", path)
		return
	}

	fmt.Fprintf(out, "Found %d issue(s) in %s:\n\n", len(issues), path)
	for i, issue := range issues {
		fmt.Fprintf(out, "  %d. %s: %s\n", i+1, issue.Severity, issue.Message)
		if issue.Suggestion != "" {
			fmt.Fprintf(out, "     Suggestion: %s\n", issue.Suggestion)
		}
		fmt.Fprintln(out)
	}
}

type validateJSONPayload struct {
	Path   string         `json:"path"`
	Valid  bool           `json:"valid"`
	Issues []config.Issue `json:"issues"`
}

func renderIssuesJSON(cmd *cobra.Command, path string, issues []config.Issue) error {
	if issues == nil {
		issues = []config.Issue{}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(validateJSONPayload{Path: path, Valid: len(issues) == 0, Issues: issues})
}
