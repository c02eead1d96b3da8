package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/delvui/delvui/internal/store"
)

type listOptions struct {
	jsonOutput bool
}

func newListCmd(_ *rootFlags, app *AppContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available theme presets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, app *AppContext, opts *listOptions) error {
	presets := app.Store.Presets()

	if opts.jsonOutput {
		return renderListJSON(cmd, presets)
	}
	return renderListTable(cmd, presets)
}

func renderListTable(cmd *cobra.Command, presets []store.Preset) error {
	out := cmd.OutOrStdout()
	nameStyle := lipgloss.NewRenderer(out).NewStyle().Bold(true)

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tTITLE\tDESCRIPTION\tTAGS")

	for _, p := range presets {
		tags := make([]string, 0, len(p.Tags()))
		for _, tag := range p.Tags() {
			tags = append(tags, "#"+tag)
		}

		name := p.Key
		if name == store.DefaultPreset {
			name += " (default)"
		}

		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			nameStyle.Render(name),
			valueOrFallback(p.Title(), "(no title)"),
			valueOrFallback(p.Description(), "-"),
			strings.Join(tags, " "),
		)
	}

	if err := writer.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nUsage:")
	fmt.Fprintln(out, "  delvui theme generate --preset <name>")
	fmt.Fprintln(out, "  delvui theme preview --preset <name>")
	return nil
}

type listJSONPreset struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Default     bool     `json:"default"`
}

type listJSONPayload struct {
	Version string           `json:"version"`
	Count   int              `json:"count"`
	Presets []listJSONPreset `json:"presets"`
}

func renderListJSON(cmd *cobra.Command, presets []store.Preset) error {
	payload := listJSONPayload{
		Version: "1.0",
		Count:   len(presets),
		Presets: make([]listJSONPreset, len(presets)),
	}

	for i, p := range presets {
		tags := p.Tags()
		if tags == nil {
			tags = []string{}
		}
		payload.Presets[i] = listJSONPreset{
			Name:        p.Key,
			Title:       p.Title(),
			Description: p.Description(),
			Tags:        tags,
			Default:     p.Key == store.DefaultPreset,
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func valueOrFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
