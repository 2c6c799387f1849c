package cmd

import (
	"github.com/plotsense/plotsense/core"
	"github.com/plotsense/plotsense/internal/contract"
	"github.com/spf13/cobra"
)

// inspectCmd performs schema inference on a dataset.
var inspectCmd = &cobra.Command{
	Use:   "inspect <dataset-path>",
	Short: "Infer and display the schema of a dataset.",
	Long: `Read a tabular dataset and infer the type and statistics of every column.

For each column plotsense reports:
- The inferred type (numeric, categorical, datetime, boolean, text)
- Nullability and uniqueness
- Descriptive statistics (min/max/mean for numbers, ranges for dates,
  value distributions for categories)

Use this to understand a dataset before asking for chart recommendations
or insights.

Examples:
  # Inspect a CSV file
  plotsense inspect sales.csv

  # Inspect an NDJSON file with an explicit format
  plotsense inspect events.log --format json

  # Export the schema as JSON
  plotsense inspect sales.csv --output json --output-file schema.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInspect(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run schema inference", err)
		}
	},
}
