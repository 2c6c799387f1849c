package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/internal/dataset"
	"github.com/plotsense/plotsense/internal/outwriter"
	"github.com/plotsense/plotsense/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// fingerprintRows caps how many rows feed the dataset fingerprint.
const fingerprintRows = 1000

// ExecuteInspect loads the dataset, infers its schema and prints it.
// It serves as the main entry point for the 'inspect' verb.
func ExecuteInspect(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()
	ds, err := GetSchemaResult(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintSchema(ds, cfg, duration)
}

// GetSchemaResult loads the dataset and returns its inferred schema
// without printing. Used by the MCP server and programmatic callers.
func GetSchemaResult(ctx context.Context, cfg *contract.Config) (*schema.DataSchema, error) {
	ds, _, err := loadAndInfer(ctx, cfg)
	return ds, err
}

// ExecuteRecommend runs the full recommendation pipeline and prints the
// ranked chart list. It serves as the main entry point for the
// 'recommend' verb.
func ExecuteRecommend(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	output, err := GetRecommendationResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintRecommendations(output, cfg, duration)
}

// ExecuteInsights runs pattern and correlation detection, synthesizes
// insights and prints them. It serves as the main entry point for the
// 'insights' verb.
func ExecuteInsights(ctx context.Context, cfg *contract.Config, patterns contract.PatternSource, correlations contract.CorrelationSource, mgr contract.StoreManager) error {
	start := time.Now()
	output, err := GetInsightResults(ctx, cfg, patterns, correlations, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintInsights(output, cfg, duration)
}

// GetRecommendationResults performs the common Load, Infer, Score, Adjust
// and Rank steps, with analysis tracking when a store is configured.
func GetRecommendationResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.RecommendationOutput, error) {
	ds, rows, err := loadAndInfer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// --- 0. Begin Analysis Tracking (if configured) ---
	analysisID, store := beginTracking(cfg, mgr, "recommend")

	// --- 1. Score and Rank ---
	recs := ScoreChartTypes(ds)
	ranked := RankRecommendations(recs, cfg.Context)
	if len(ranked) > cfg.ResultLimit {
		ranked = ranked[:cfg.ResultLimit]
	}

	// --- 2. Record Results ---
	if store != nil && analysisID > 0 {
		hash := datasetFingerprint(ds, rows)
		for _, rec := range ranked {
			if err := store.RecordRecommendation(analysisID, hash, rec); err != nil {
				contract.LogWarn(fmt.Sprintf("Analysis tracking failed for chart %s", rec.ChartType), err)
			}
		}
		endTracking(store, analysisID, ds)
	}

	return &schema.RecommendationOutput{
		Schema:          *ds,
		Recommendations: ranked,
	}, nil
}

// GetInsightResults performs the common Load, Infer, Detect and Synthesize
// steps, with analysis tracking when a store is configured.
func GetInsightResults(ctx context.Context, cfg *contract.Config, patterns contract.PatternSource, correlations contract.CorrelationSource, mgr contract.StoreManager) (*schema.InsightOutput, error) {
	ds, rows, err := loadAndInfer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// --- 0. Begin Analysis Tracking (if configured) ---
	analysisID, store := beginTracking(cfg, mgr, "insights")

	// --- 1. Detection Phase ---
	var patternResult *schema.PatternResult
	if patterns != nil {
		patternResult, err = patterns.DetectPatterns(ctx, rows, ds)
		if err != nil {
			return nil, fmt.Errorf("pattern detection failed: %w", err)
		}
	}

	var correlationResult *schema.CorrelationResult
	if correlations != nil {
		correlationResult, err = correlations.DetectCorrelations(ctx, rows, ds)
		if err != nil {
			return nil, fmt.Errorf("correlation detection failed: %w", err)
		}
	}

	// --- 2. Synthesis ---
	result := Synthesize(patternResult, correlationResult, rows, fieldContextName(ds))

	// --- 3. Chart-Scoped Insights ---
	if cfg.ChartType != "" {
		extra := ContextualInsights(rows, schema.ChartType(cfg.ChartType), cfg.Mapping)
		result.Insights = append(result.Insights, extra...)
		sortInsights(result.Insights)
	}

	// --- 4. Record Results ---
	if store != nil && analysisID > 0 {
		hash := datasetFingerprint(ds, rows)
		for _, in := range result.Insights {
			if err := store.RecordInsight(analysisID, hash, in); err != nil {
				contract.LogWarn(fmt.Sprintf("Analysis tracking failed for insight %s", in.ID), err)
			}
		}
		endTracking(store, analysisID, ds)
	}

	return &schema.InsightOutput{
		Schema: *ds,
		Result: result,
	}, nil
}

// loadAndInfer reads the dataset from disk and infers its schema.
// Column order follows the source: the CSV header, or the first JSON
// object's key order.
func loadAndInfer(ctx context.Context, cfg *contract.Config) (*schema.DataSchema, []schema.Row, error) {
	rows, columns, err := dataset.Load(ctx, cfg.InputPath, cfg.Format, cfg.SampleLimit)
	if err != nil {
		return nil, nil, err
	}

	var ds schema.DataSchema
	if len(columns) > 0 {
		ds = InferSchemaColumns(rows, columns)
	} else {
		ds = InferSchema(rows)
	}
	return &ds, rows, nil
}

// beginTracking starts an analysis run. Tracking failures degrade to a
// warning, never to an aborted analysis.
func beginTracking(cfg *contract.Config, mgr contract.StoreManager, verb string) (int64, contract.AnalysisStore) {
	if mgr == nil {
		return 0, nil
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return 0, nil
	}

	configParams := map[string]any{
		"verb":         verb,
		"input_path":   cfg.InputPath,
		"format":       string(cfg.Format),
		"result_limit": cfg.ResultLimit,
		"purpose":      string(cfg.Context.Purpose),
		"audience":     string(cfg.Context.Audience),
		"emphasis":     string(cfg.Context.Emphasis),
	}
	analysisID, err := store.BeginAnalysis(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return 0, nil
	}
	return analysisID, store
}

func endTracking(store contract.AnalysisStore, analysisID int64, ds *schema.DataSchema) {
	if err := store.EndAnalysis(analysisID, time.Now(), ds.RowCount, ds.ColumnCount); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}

// datasetFingerprint hashes column names and leading row contents so
// repeated runs over the same dataset can be grouped in storage.
func datasetFingerprint(ds *schema.DataSchema, rows []schema.Row) string {
	h := sha256.New()
	for _, f := range ds.Fields {
		h.Write([]byte(f.Name))
		h.Write([]byte{0})
	}
	fmt.Fprintf(h, "%d\x00", len(rows))
	for i, row := range rows {
		if i == fingerprintRows {
			break
		}
		for _, f := range ds.Fields {
			fmt.Fprintf(h, "%v|", row[f.Name])
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// fieldContextName names the subject used when an externally supplied
// trend omits its field: the first numeric column, if any.
func fieldContextName(ds *schema.DataSchema) string {
	numeric := ds.FieldsOfType(schema.NumericType)
	if len(numeric) == 0 {
		return ""
	}
	return numeric[0].Name
}
