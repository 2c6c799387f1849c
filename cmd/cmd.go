// Package cmd defines the command-line interface for plotsense.
package cmd

import (
	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analysisCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("format", "f", string(schema.AutoFormat), "Dataset format: auto or csv or json")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("sample", contract.DefaultSampleLimit, "Maximum number of rows to read")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("analysis-backend", string(schema.SQLiteBackend), "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (mysql/postgresql)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headings (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of recommendCmd to Viper
	recommendCmd.Flags().String("purpose", string(schema.ExplorationPurpose), "Presentation purpose: presentation or exploration or report")
	recommendCmd.Flags().String("audience", string(schema.GeneralAudience), "Target audience: general or technical or executive")
	recommendCmd.Flags().String("emphasis", string(schema.ClarityEmphasis), "Emphasis: clarity or insights or detail")
	if err := viper.BindPFlags(recommendCmd.Flags()); err != nil {
		contract.LogFatal("Error binding recommend flags", err)
	}

	// Bind all flags of insightsCmd to Viper
	insightsCmd.Flags().String("chart", "", "Chart type for chart-scoped insights")
	insightsCmd.Flags().String("mapping", "", "Field mapping for the chart (e.g. 'x:date,y:sales'), requires --chart")
	insightsCmd.Flags().String("patterns", "", "Path to an external pattern-detection results file (JSON or YAML)")
	insightsCmd.Flags().String("correlations", "", "Path to an external correlation results file (JSON or YAML)")
	if err := viper.BindPFlags(insightsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding insights flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
