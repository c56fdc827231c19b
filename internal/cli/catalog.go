package cli

import (
	"github.com/spf13/cobra"

	"github.com/PratikDhanave/ai-eco-analytics/internal/catalog"
	"github.com/PratikDhanave/ai-eco-analytics/internal/eco"
)

// NewCatalogCmd creates the 'catalog' command.
func NewCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the AI tool catalog ranked by eco score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), eco.NewSimulator(catalog.Default()).RankByEco())
		},
	}
}
