package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type versionOptions struct {
	jsonOutput bool
}

type versionJSONPayload struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Built     string `json:"built"`
	GoVersion string `json:"goVersion"`
	Presets   int    `json:"presets"`
}

func newVersionCmd(app *AppContext) *cobra.Command {
	opts := &versionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := versionJSONPayload{
				Version:   buildVersion(),
				Commit:    commit,
				Built:     date,
				GoVersion: runtime.Version(),
				Presets:   len(app.Store.Names()),
			}

			if opts.jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(payload)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "DelvUI %s\ncommit: %s\nbuilt: %s\n", payload.Version, payload.Commit, payload.Built)
			fmt.Fprintf(cmd.OutOrStdout(), "go: %s\npresets: %d\n", payload.GoVersion, payload.Presets)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

// buildVersion prefers the linker-set version and falls back to the module
// version recorded by `go install`.
func buildVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}
