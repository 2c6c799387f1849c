package iocache

import (
	"errors"
	"fmt"

	"github.com/plotsense/plotsense/internal/parquet"
)

// ExecuteAnalysisExport performs the actual export of analysis data to Parquet files.
func ExecuteAnalysisExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the analysis store
	store := Manager.GetAnalysisStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total recommendation records: %d\n", status.TableSizes["plotsense_recommendations"])
	fmt.Printf("Total insight records: %d\n", status.TableSizes["plotsense_insights"])

	// Retrieve all analysis runs
	analysisRuns, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	// Retrieve all recommendation records
	recommendations, err := store.GetAllRecommendations()
	if err != nil {
		return fmt.Errorf("failed to retrieve recommendations: %w", err)
	}

	// Retrieve all insight records
	insights, err := store.GetAllInsights()
	if err != nil {
		return fmt.Errorf("failed to retrieve insights: %w", err)
	}

	// Convert to Parquet format
	parquetAnalysisRuns := parquet.ConvertAnalysisRunRecords(analysisRuns)
	parquetRecommendations := parquet.ConvertRecommendationRecords(recommendations)
	parquetInsights := parquet.ConvertInsightRecords(insights)

	// Write analysis runs to Parquet
	analysisRunsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetAnalysisRuns, analysisRunsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetAnalysisRuns), analysisRunsFile)

	// Write recommendations to Parquet
	recommendationsFile := outputFile + ".recommendations.parquet"
	if err := parquet.WriteRecommendationsParquet(parquetRecommendations, recommendationsFile); err != nil {
		return fmt.Errorf("failed to write recommendations: %w", err)
	}
	fmt.Printf("Exported %d recommendation records to: %s\n", len(parquetRecommendations), recommendationsFile)

	// Write insights to Parquet
	insightsFile := outputFile + ".insights.parquet"
	if err := parquet.WriteInsightsParquet(parquetInsights, insightsFile); err != nil {
		return fmt.Errorf("failed to write insights: %w", err)
	}
	fmt.Printf("Exported %d insight records to: %s\n", len(parquetInsights), insightsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
