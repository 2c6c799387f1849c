package schema

import "time"

// AnalysisRunRecord represents a row from the plotsense_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID    int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	RowCount      int32
	FieldCount    int32
	ConfigParams  *string
}

// RecommendationRecord represents a row from the plotsense_recommendations table.
type RecommendationRecord struct {
	AnalysisID  int64
	DatasetHash string
	ChartType   string
	Confidence  float64
	Priority    string
	Reasoning   string
	Mapping     *string // JSON-encoded role to field map
}

// InsightRecord represents a row from the plotsense_insights table.
type InsightRecord struct {
	AnalysisID  int64
	DatasetHash string
	InsightID   string
	InsightType string
	Priority    string
	Confidence  float64
	Title       string
	Description string
}
