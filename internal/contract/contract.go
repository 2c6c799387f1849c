// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/plotsense/plotsense/schema"
)

// PatternSource supplies trend, seasonality and anomaly detection results
// for a dataset. Detection can come from the built-in detectors, from a
// results file supplied by an external pipeline, or from a test mock.
type PatternSource interface {
	// DetectPatterns analyzes the rows and returns trend, seasonality
	// and anomaly findings. A nil result with a nil error means the
	// source has nothing to report.
	DetectPatterns(ctx context.Context, rows []schema.Row, ds *schema.DataSchema) (*schema.PatternResult, error)
}

// CorrelationSource supplies pairwise correlation results for a dataset.
type CorrelationSource interface {
	// DetectCorrelations analyzes the rows and returns pairwise
	// correlation findings. A nil result with a nil error means the
	// source has nothing to report.
	DetectCorrelations(ctx context.Context, rows []schema.Row, ds *schema.DataSchema) (*schema.CorrelationResult, error)
}

// StoreManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetAnalysisStore() AnalysisStore
}

// AnalysisStore defines the interface for tracking analysis runs and
// storing their recommendations and insights.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, rowCount, fieldCount int) error

	// RecordRecommendation stores one chart recommendation for a run
	RecordRecommendation(analysisID int64, datasetHash string, rec schema.ChartRecommendation) error

	// RecordInsight stores one synthesized insight for a run
	RecordInsight(analysisID int64, datasetHash string, insight schema.DataInsight) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns retrieves all analysis runs for export
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllRecommendations retrieves all recommendation records for export
	GetAllRecommendations() ([]schema.RecommendationRecord, error)

	// GetAllInsights retrieves all insight records for export
	GetAllInsights() ([]schema.InsightRecord, error)

	// Close closes the underlying connection
	Close() error
}
