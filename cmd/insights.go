package cmd

import (
	"github.com/plotsense/plotsense/core"
	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/internal/dataset"
	"github.com/spf13/cobra"
)

// insightsCmd synthesizes prioritized insights for a dataset.
var insightsCmd = &cobra.Command{
	Use:   "insights <dataset-path>",
	Short: "Detect patterns and synthesize prioritized insights.",
	Long: `Analyze a dataset for trends, seasonality, anomalies and correlations,
then synthesize the findings into prioritized, plain-language insights.

The output includes:
- An executive summary of what the data shows
- Individual insights ranked by priority and confidence
- Key takeaways and recommended follow-up actions
- A chart suggestion for each insight worth visualizing

Detection runs built-in statistical analysis by default. Results from an
external pipeline can be supplied instead via --patterns and
--correlations files.

When --chart is given, additional insights scoped to that chart and its
field mapping are generated.

Examples:
  # Generate insights for a dataset
  plotsense insights sales.csv

  # Scope insights to a line chart being configured
  plotsense insights sales.csv --chart line --mapping x:date,y:revenue

  # Use externally detected patterns
  plotsense insights sales.csv --patterns patterns.yaml

  # Export the full report as JSON
  plotsense insights sales.csv --output json --output-file insights.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		patterns, correlations := selectDetectors(cfg)
		if err := core.ExecuteInsights(rootCtx, cfg, patterns, correlations, storeManager); err != nil {
			contract.LogFatal("Cannot run insight generation", err)
		}
	},
}

// selectDetectors picks the pattern and correlation sources: external
// results files when supplied, built-in detection otherwise.
func selectDetectors(cfg *contract.Config) (contract.PatternSource, contract.CorrelationSource) {
	detector := core.NewBuiltinDetector()
	var patterns contract.PatternSource = detector
	var correlations contract.CorrelationSource = detector

	if cfg.PatternsFile != "" || cfg.CorrelationsFile != "" {
		fd := dataset.NewFileDetector(cfg.PatternsFile, cfg.CorrelationsFile)
		if cfg.PatternsFile != "" {
			patterns = fd
		}
		if cfg.CorrelationsFile != "" {
			correlations = fd
		}
	}
	return patterns, correlations
}
