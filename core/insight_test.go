package core

import (
	"fmt"
	"testing"

	"github.com/plotsense/plotsense/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// largeCleanRows builds a dataset big enough to dodge the small-sample
// and missing-data quality checks.
func largeCleanRows(n int) []schema.Row {
	rows := make([]schema.Row, n)
	for i := range rows {
		rows[i] = schema.Row{"value": float64(i)}
	}
	return rows
}

// TestSynthesizeEmpty tests the stable-data wording when nothing was
// detected.
func TestSynthesizeEmpty(t *testing.T) {
	result := Synthesize(nil, nil, largeCleanRows(50), "")

	assert.Empty(t, result.Insights)
	assert.Equal(t,
		"The dataset shows stable patterns with no significant trends, anomalies, or correlations.",
		result.ExecutiveSummary)
	assert.Empty(t, result.KeyTakeaways)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 0.0, result.Confidence)
}

// TestSynthesizeTrend tests trend insight construction and priority.
func TestSynthesizeTrend(t *testing.T) {
	patterns := &schema.PatternResult{
		Trends: []schema.TrendResult{
			{Field: "sales", Direction: "increasing", Strength: "strong", Confidence: 0.95, RSquared: 0.9},
		},
	}

	result := Synthesize(patterns, nil, largeCleanRows(50), "")
	require.Len(t, result.Insights, 2) // trend plus next-steps

	trend := result.Insights[0]
	assert.Equal(t, schema.TrendInsight, trend.Type)
	assert.Equal(t, schema.CriticalPriority, trend.Priority) // confidence > 0.9
	assert.Equal(t, "Strong increasing trend detected", trend.Title)
	assert.Contains(t, trend.Description, "sales")
	assert.True(t, trend.Actionable)
	require.NotNil(t, trend.VisualSuggestion)
	assert.Equal(t, schema.LineChart, trend.VisualSuggestion.ChartType)

	assert.Contains(t, result.ExecutiveSummary, "1 trend")
	assert.Contains(t, result.ExecutiveSummary, "Key finding: Strong increasing trend detected.")
}

// TestSynthesizeAnomalyPriorities tests the severity to priority table.
func TestSynthesizeAnomalyPriorities(t *testing.T) {
	tests := []struct {
		severity   string
		priority   schema.Priority
		confidence float64
	}{
		{severity: "severe", priority: schema.CriticalPriority, confidence: 0.9},
		{severity: "moderate", priority: schema.HighPriority, confidence: 0.75},
		{severity: "mild", priority: schema.MediumPriority, confidence: 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			in := anomalyInsight(schema.AnomalyResult{
				Field:    "value",
				Index:    7,
				Value:    120,
				Expected: 50,
				Severity: tt.severity,
			})
			assert.Equal(t, tt.priority, in.Priority)
			assert.InDelta(t, tt.confidence, in.Confidence, 0.001)
			assert.Contains(t, in.Title, "position 7")
			require.Len(t, in.DataPoints, 1)
			assert.Equal(t, 7, in.DataPoints[0].Index)
		})
	}
}

// TestSynthesizeAnomalyCap tests that only the first three anomalies
// become insights.
func TestSynthesizeAnomalyCap(t *testing.T) {
	patterns := &schema.PatternResult{}
	for i := range 10 {
		patterns.Anomalies = append(patterns.Anomalies, schema.AnomalyResult{
			Field: "value", Index: i, Value: 100, Expected: 10, Severity: "mild",
		})
	}

	result := Synthesize(patterns, nil, largeCleanRows(50), "")
	anomalyCount := 0
	for _, in := range result.Insights {
		if in.Type == schema.AnomalyInsight {
			anomalyCount++
		}
	}
	assert.Equal(t, maxAnomalyInsights, anomalyCount)
}

// TestCorrelationInsightPriorities tests the coefficient and p-value
// thresholds.
func TestCorrelationInsightPriorities(t *testing.T) {
	tests := []struct {
		name     string
		r        float64
		p        float64
		expected schema.Priority
	}{
		{name: "strong significant", r: 0.85, p: 0.001, expected: schema.CriticalPriority},
		{name: "strong negative significant", r: -0.85, p: 0.001, expected: schema.CriticalPriority},
		{name: "moderate significant", r: 0.65, p: 0.02, expected: schema.HighPriority},
		{name: "moderate weak evidence", r: 0.65, p: 0.2, expected: schema.MediumPriority},
		{name: "weak", r: 0.45, p: 0.2, expected: schema.MediumPriority},
		{name: "negligible", r: 0.35, p: 0.2, expected: schema.LowPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := correlationInsight(schema.Correlation{
				Field1:      "price",
				Field2:      "demand",
				Correlation: tt.r,
				PValue:      tt.p,
				Strength:    "strong",
				Direction:   "positive",
			})
			assert.Equal(t, tt.expected, in.Priority)
			require.NotNil(t, in.VisualSuggestion)
			assert.Equal(t, schema.ScatterChart, in.VisualSuggestion.ChartType)
			assert.Equal(t, "price", in.VisualSuggestion.Mapping[schema.RoleX])
		})
	}
}

// TestSynthesizeCorrelationCap tests that only the strongest
// correlations survive truncation.
func TestSynthesizeCorrelationCap(t *testing.T) {
	correlations := &schema.CorrelationResult{}
	for i := range 8 {
		correlations.Correlations = append(correlations.Correlations, schema.Correlation{
			Field1:      fmt.Sprintf("f%d", i),
			Field2:      "target",
			Correlation: 0.4 + float64(i)*0.05,
			PValue:      0.5,
			Strength:    "moderate",
			Direction:   "positive",
		})
	}

	result := Synthesize(nil, correlations, largeCleanRows(50), "")
	var corrInsights []schema.DataInsight
	for _, in := range result.Insights {
		if in.Type == schema.CorrelationInsight {
			corrInsights = append(corrInsights, in)
		}
	}
	require.Len(t, corrInsights, maxCorrelationInsights)

	// The weakest three (f0..f2) were cut.
	for _, in := range corrInsights {
		assert.NotContains(t, in.Title, "f0 ")
		assert.NotContains(t, in.Title, "f1 ")
		assert.NotContains(t, in.Title, "f2 ")
	}
}

// TestSynthesizeQualityInsights tests the small-sample and missing-data
// checks.
func TestSynthesizeQualityInsights(t *testing.T) {
	rows := []schema.Row{
		{"a": 1, "b": "x"},
		{"a": 2},
		{"a": 3},
		{"a": 4},
		{"a": 5, "b": "y"},
	}

	result := Synthesize(nil, nil, rows, "")

	var titles []string
	for _, in := range result.Insights {
		titles = append(titles, in.Title)
	}
	assert.Contains(t, titles, "Small sample size")
	assert.Contains(t, titles, "Missing data detected")

	for _, in := range result.Insights {
		if in.Title == "Missing data detected" {
			assert.Contains(t, in.Description, "b")
		}
	}
}

// TestInsightIDsDeterministic tests that IDs derive from content alone.
func TestInsightIDsDeterministic(t *testing.T) {
	a := insightID("trend", "sales", "increasing", "strong")
	b := insightID("trend", "sales", "increasing", "strong")
	c := insightID("trend", "sales", "decreasing", "strong")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36) // canonical UUID form
}

// TestSortInsightsPriorityDominates tests the ordering contract.
func TestSortInsightsPriorityDominates(t *testing.T) {
	insights := []schema.DataInsight{
		{Title: "low but sure", Priority: schema.LowPriority, Confidence: 0.99},
		{Title: "critical", Priority: schema.CriticalPriority, Confidence: 0.5},
		{Title: "high a", Priority: schema.HighPriority, Confidence: 0.6},
		{Title: "high b", Priority: schema.HighPriority, Confidence: 0.8},
	}
	sortInsights(insights)

	assert.Equal(t, "critical", insights[0].Title)
	assert.Equal(t, "high b", insights[1].Title)
	assert.Equal(t, "high a", insights[2].Title)
	assert.Equal(t, "low but sure", insights[3].Title)
}

// TestCollectRecommendations tests dedup and the cap.
func TestCollectRecommendations(t *testing.T) {
	insights := []schema.DataInsight{
		{Recommendations: []string{"check the data", "collect more"}},
		{Recommendations: []string{"check the data", "segment by region"}},
	}
	recs := collectRecommendations(insights)
	assert.Equal(t, []string{"check the data", "collect more", "segment by region"}, recs)

	var many []schema.DataInsight
	for i := range 12 {
		many = append(many, schema.DataInsight{
			Recommendations: []string{fmt.Sprintf("action %d", i)},
		})
	}
	assert.Len(t, collectRecommendations(many), maxRecommendationTexts)
}

// TestExecutiveSummaryCounts tests the category counting and plurals.
func TestExecutiveSummaryCounts(t *testing.T) {
	insights := []schema.DataInsight{
		{Type: schema.TrendInsight, Priority: schema.HighPriority, Title: "Strong increasing trend detected"},
		{Type: schema.AnomalyInsight, Priority: schema.MediumPriority, Title: "Mild anomaly at position 3"},
		{Type: schema.AnomalyInsight, Priority: schema.MediumPriority, Title: "Mild anomaly at position 9"},
	}
	summary := executiveSummary(insights)

	assert.Contains(t, summary, "1 trend")
	assert.Contains(t, summary, "2 anomalies")
	assert.Contains(t, summary, "Key finding: Strong increasing trend detected.")
}

// TestDataQualityScore tests the scoring bounds and adjustments.
func TestDataQualityScore(t *testing.T) {
	empty := &schema.PatternResult{}
	noCorr := &schema.CorrelationResult{}

	// Clean large sample with structure found.
	rich := &schema.PatternResult{
		Trends:      []schema.TrendResult{{Field: "v"}},
		Seasonality: &schema.SeasonalityResult{Detected: true, Period: 7, Strength: 0.8},
	}
	corr := &schema.CorrelationResult{
		Correlations: []schema.Correlation{{Field1: "a", Field2: "b", Correlation: 0.7}},
	}
	assert.InDelta(t, 1.0, dataQualityScore(rich, corr, 1000), 0.001) // clamped at 1.0

	// Tiny sample drags the score down.
	tiny := dataQualityScore(empty, noCorr, 5)
	assert.InDelta(t, 0.48, tiny, 0.001) // 1.0 * 0.8 * 0.6

	// Heavy anomaly rate multiplies down.
	noisy := &schema.PatternResult{}
	for range 30 {
		noisy.Anomalies = append(noisy.Anomalies, schema.AnomalyResult{})
	}
	assert.InDelta(t, 0.8, dataQualityScore(noisy, noCorr, 100), 0.001)

	// Never below the floor.
	assert.GreaterOrEqual(t, dataQualityScore(empty, noCorr, 0), 0.1)
}

// TestPlural tests irregular pluralization.
func TestPlural(t *testing.T) {
	assert.Equal(t, "trend", plural(1, "trend"))
	assert.Equal(t, "trends", plural(2, "trend"))
	assert.Equal(t, "anomaly", plural(1, "anomaly"))
	assert.Equal(t, "anomalies", plural(3, "anomaly"))
}

// TestJoinWithAnd tests the list joining used by the summary.
func TestJoinWithAnd(t *testing.T) {
	assert.Equal(t, "no findings", joinWithAnd(nil))
	assert.Equal(t, "a", joinWithAnd([]string{"a"}))
	assert.Equal(t, "a and b", joinWithAnd([]string{"a", "b"}))
	assert.Equal(t, "a, b, and c", joinWithAnd([]string{"a", "b", "c"}))
}
