package cli

import (
	"github.com/spf13/cobra"

	"github.com/PratikDhanave/ai-eco-analytics/internal/catalog"
	"github.com/PratikDhanave/ai-eco-analytics/internal/eco"
)

// NewSimulateCmd creates the 'simulate' command.
func NewSimulateCmd() *cobra.Command {
	var (
		toolID string
		uses   int
	)

	cmd := &cobra.Command{
		Use:     "simulate",
		Short:   "Estimate energy and CO2 for N uses of a tool",
		Example: `  api simulate --tool stable_diffusion --uses 25`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := eco.NewSimulator(catalog.Default()).SimulateImpact(toolID, uses)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&toolID, "tool", "", "catalog tool id")
	cmd.Flags().IntVar(&uses, "uses", eco.DefaultUses, "number of uses")
	_ = cmd.MarkFlagRequired("tool")
	return cmd
}
