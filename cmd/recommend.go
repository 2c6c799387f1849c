package cmd

import (
	"github.com/plotsense/plotsense/core"
	"github.com/plotsense/plotsense/internal/contract"
	"github.com/spf13/cobra"
)

// recommendCmd scores and ranks chart types for a dataset.
var recommendCmd = &cobra.Command{
	Use:   "recommend <dataset-path>",
	Short: "Show the top chart types ranked by fitness score.",
	Long: `Infer the dataset schema, score every supported chart type against it
and rank the results.

Each recommendation carries:
- A confidence score reflecting how well the chart fits the data shape
- A suggested assignment of fields to visual roles (x, y, color, ...)
- Reasoning, strengths and weaknesses in plain language
- A priority tier adjusted for your presentation context

The purpose, audience and emphasis flags shift priorities without
changing the underlying scores, so a ranking stays explainable.

Examples:
  # Rank charts for a dataset
  plotsense recommend sales.csv

  # Tune the ranking for an executive presentation
  plotsense recommend sales.csv --purpose presentation --audience executive

  # Export the top 5 recommendations to CSV
  plotsense recommend sales.csv --limit 5 --output csv --output-file charts.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRecommend(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run chart recommendation", err)
		}
	},
}
