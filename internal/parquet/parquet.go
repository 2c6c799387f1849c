// Package parquet provides data structures and functions for exporting
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/plotsense/plotsense/schema"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the plotsense_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// RowCount is the number of dataset rows analyzed in this run
	RowCount int32 `parquet:"row_count,snappy"`

	// FieldCount is the number of dataset columns analyzed in this run
	FieldCount int32 `parquet:"field_count,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Recommendation represents one recorded chart recommendation.
// This struct maps to the plotsense_recommendations database table.
type Recommendation struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// DatasetHash fingerprints the analyzed dataset
	DatasetHash string `parquet:"dataset_hash,snappy"`

	// ChartType is the recommended chart kind
	ChartType string `parquet:"chart_type,snappy"`

	// Confidence is the adjusted fitness score (0-1)
	Confidence float64 `parquet:"confidence,snappy"`

	// Priority is the assigned priority tier
	Priority string `parquet:"priority,snappy"`

	// Reasoning is the human-readable justification
	Reasoning string `parquet:"reasoning,snappy"`

	// Mapping is the JSON-encoded role to field assignment (nullable)
	Mapping *string `parquet:"mapping,optional,snappy"`
}

// Insight represents one recorded synthesized insight.
// This struct maps to the plotsense_insights database table.
type Insight struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// DatasetHash fingerprints the analyzed dataset
	DatasetHash string `parquet:"dataset_hash,snappy"`

	// InsightID is the content-derived identifier of the insight
	InsightID string `parquet:"insight_id,snappy"`

	// InsightType is the kind of finding (trend, anomaly, correlation, ...)
	InsightType string `parquet:"insight_type,snappy"`

	// Priority is the assigned priority tier
	Priority string `parquet:"priority,snappy"`

	// Confidence is the insight confidence (0-1)
	Confidence float64 `parquet:"confidence,snappy"`

	// Title is the short headline of the insight
	Title string `parquet:"title,snappy"`

	// Description is the full finding text
	Description string `parquet:"description,snappy"`
}

// ConvertAnalysisRunRecords converts store records to their Parquet representation.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	out := make([]AnalysisRun, 0, len(records))
	for _, r := range records {
		out = append(out, AnalysisRun{
			AnalysisID:    r.AnalysisID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			RowCount:      r.RowCount,
			FieldCount:    r.FieldCount,
			ConfigParams:  r.ConfigParams,
		})
	}
	return out
}

// ConvertRecommendationRecords converts store records to their Parquet representation.
func ConvertRecommendationRecords(records []schema.RecommendationRecord) []Recommendation {
	out := make([]Recommendation, 0, len(records))
	for _, r := range records {
		out = append(out, Recommendation{
			AnalysisID:  r.AnalysisID,
			DatasetHash: r.DatasetHash,
			ChartType:   r.ChartType,
			Confidence:  r.Confidence,
			Priority:    r.Priority,
			Reasoning:   r.Reasoning,
			Mapping:     r.Mapping,
		})
	}
	return out
}

// ConvertInsightRecords converts store records to their Parquet representation.
func ConvertInsightRecords(records []schema.InsightRecord) []Insight {
	out := make([]Insight, 0, len(records))
	for _, r := range records {
		out = append(out, Insight{
			AnalysisID:  r.AnalysisID,
			DatasetHash: r.DatasetHash,
			InsightID:   r.InsightID,
			InsightType: r.InsightType,
			Priority:    r.Priority,
			Confidence:  r.Confidence,
			Title:       r.Title,
			Description: r.Description,
		})
	}
	return out
}

// MockFetchAnalysisRuns generates sample AnalysisRun data for demonstration.
func MockFetchAnalysisRuns() []AnalysisRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 30*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"format":"csv","limit":8,"sample":1000}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23 * time.Hour)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"format":"json","limit":5,"sample":500}`

	startTime3 := now.Add(-10 * time.Minute)
	// endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []AnalysisRun{
		{
			AnalysisID:    1,
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			RowCount:      1500,
			FieldCount:    6,
			ConfigParams:  &configParams1,
		},
		{
			AnalysisID:    2,
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			RowCount:      750,
			FieldCount:    4,
			ConfigParams:  &configParams2,
		},
		{
			AnalysisID:    3,
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			RowCount:      0,
			FieldCount:    0,
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchRecommendations generates sample Recommendation data for demonstration.
func MockFetchRecommendations() []Recommendation {
	mapping1 := `{"x":"region","y":"sales"}`
	mapping2 := `{"x":"date","y":"sales","time":"date"}`

	return []Recommendation{
		{
			AnalysisID:  1,
			DatasetHash: "9f2c4a1b8e3d5f07",
			ChartType:   "bar",
			Confidence:  0.9,
			Priority:    "high",
			Reasoning:   "Categorical field paired with numeric values",
			Mapping:     &mapping1,
		},
		{
			AnalysisID:  1,
			DatasetHash: "9f2c4a1b8e3d5f07",
			ChartType:   "line",
			Confidence:  0.85,
			Priority:    "high",
			Reasoning:   "Datetime field suits a time series view",
			Mapping:     &mapping2,
		},
		{
			AnalysisID:  2,
			DatasetHash: "5a7e1c9d2b4f8830",
			ChartType:   "histogram",
			Confidence:  0.6,
			Priority:    "medium",
			Reasoning:   "Single numeric field with wide spread",
			Mapping:     nil, // No mapping stored - nullable field
		},
	}
}

// MockFetchInsights generates sample Insight data for demonstration.
func MockFetchInsights() []Insight {
	return []Insight{
		{
			AnalysisID:  1,
			DatasetHash: "9f2c4a1b8e3d5f07",
			InsightID:   "7d4f2a90-1b3c-4e5d-8f6a-9c0b1d2e3f40",
			InsightType: "trend",
			Priority:    "critical",
			Confidence:  0.95,
			Title:       "Strong increasing trend detected",
			Description: "sales shows a strong increasing trend over the observed range.",
		},
		{
			AnalysisID:  1,
			DatasetHash: "9f2c4a1b8e3d5f07",
			InsightID:   "3e8b5c21-9a7d-4f0e-b1c2-d3e4f5a6b7c8",
			InsightType: "anomaly",
			Priority:    "high",
			Confidence:  0.75,
			Title:       "Anomalies detected in units",
			Description: "2 of 1500 values fall outside the expected range.",
		},
	}
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRecommendationsParquet writes a slice of Recommendation structs to a Parquet file.
func WriteRecommendationsParquet(data []Recommendation, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteInsightsParquet writes a slice of Insight structs to a Parquet file.
func WriteInsightsParquet(data []Insight, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes records to a Parquet file using struct schema
// inference. The schema is derived from the struct's parquet tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
