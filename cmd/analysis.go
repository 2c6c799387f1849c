package cmd

import (
	"fmt"

	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/internal/iocache"
	"github.com/plotsense/plotsense/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resolveTrackingConfig reads the tracking backend and connection string
// from viper and validates them. An empty backend means disabled.
func resolveTrackingConfig() (schema.DatabaseBackend, string, error) {
	backendStr := viper.GetString("analysis-backend")
	connStr := viper.GetString("analysis-db-connect")

	backend := schema.NoneBackend
	if backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return backend, connStr, err
	}
	return backend, connStr, nil
}

// analysisSetup is the PreRunE for the analysis subcommands. It skips
// dataset path handling entirely and opens the tracking store.
func analysisSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := resolveTrackingConfig()
	if err != nil {
		return err
	}

	if err := iocache.InitTracking(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// analysisMigrateSetup is the PreRunE for migrate. Unlike analysisSetup
// it must not open the store or create tables, so migrations can run
// against a fresh database.
func analysisMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := resolveTrackingConfig()
	if err != nil {
		return err
	}

	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetAnalysisDBFilePath()
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	return nil
}

var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage historical analysis tracking and exports",
	Long: `Manage historical analysis data used for trend tracking and reporting.

When enabled, PlotSense records every analysis run:
- Run metadata (timestamp, configuration, duration)
- Chart recommendations with scores and suggested mappings
- Synthesized insights with priorities and confidence

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Examples:
  # Check tracking status
  plotsense analysis status

  # Export for analysis in pandas/DuckDB
  plotsense analysis export --output-file analysis-data.parquet`,
}

var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all historical analysis tracking data",
	Long: `Delete all stored analysis runs, recommendations and insights.

WARNING: This action cannot be undone. Consider exporting data first:

  plotsense analysis export --output-file backup.parquet
  plotsense analysis clear`,
	PreRunE: analysisSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, contract.GetAnalysisDBFilePath(), cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display analysis tracking statistics and connection details",
	Long: `Show the tracking backend, run counts, first/last run timestamps,
total dataset rows analyzed and per-table record counts.`,
	PreRunE: analysisSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetAnalysisStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(status)
	},
}

var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export historical data to Parquet for BI tools and analytics",
	Long: `Write all stored analysis data as three Parquet datasets: analysis
runs, chart recommendations and insights. The files can be read by
DuckDB, Apache Spark, pandas and most BI tools.

Requires: --output-file

Examples:
  plotsense analysis export --output-file plotsense-data.parquet
  duckdb -c "SELECT * FROM read_parquet('plotsense-data.parquet.insights.parquet') LIMIT 10"`,
	PreRunE: analysisSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions for the analysis tracking store. By default
migrates to the latest version.

Examples:
  # Migrate to latest version (default)
  plotsense analysis migrate

  # Migrate to specific version
  plotsense analysis migrate --target-version 1

  # Rollback to initial state
  plotsense analysis migrate --target-version 0`,
	PreRunE: analysisMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
