// Package cli holds the cobra commands of the api binary.
package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the api command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "api",
		Short: "AI usage and eco analytics service",
		Long: `api records how people use AI tools, ranks the tools by popularity and
environmental impact, and serves mentor features backed by a generation service.

Running without a subcommand starts the HTTP server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(NewServeCmd())
	root.AddCommand(NewCatalogCmd())
	root.AddCommand(NewSimulateCmd())
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
