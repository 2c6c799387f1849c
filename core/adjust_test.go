package core

import (
	"testing"

	"github.com/plotsense/plotsense/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAdjustForContext tests the multiplicative context factors against
// hand-computed products.
func TestAdjustForContext(t *testing.T) {
	tests := []struct {
		name     string
		ct       schema.ChartType
		base     float64
		rctx     schema.RenderContext
		expected float64
	}{
		{
			name: "general audience penalizes advanced charts",
			ct:   schema.BoxplotChart, // high difficulty
			base: 0.8,
			rctx: schema.RenderContext{Audience: schema.GeneralAudience},
			expected: 0.8 * 0.7,
		},
		{
			name: "technical audience boosts simple charts",
			ct:   schema.BarChart, // low difficulty
			base: 0.6,
			rctx: schema.RenderContext{Audience: schema.TechnicalAudience},
			expected: 0.6 * 1.1,
		},
		{
			name: "presentation penalizes high cognitive load",
			ct:   schema.HeatmapChart,
			base: 0.7,
			rctx: schema.RenderContext{Purpose: schema.PresentationPurpose},
			expected: 0.7 * 0.8,
		},
		{
			name: "exploration boosts interactive charts",
			ct:   schema.ScatterChart,
			base: 0.6,
			rctx: schema.RenderContext{Purpose: schema.ExplorationPurpose},
			expected: 0.6 * 1.2,
		},
		{
			name: "clarity boosts interpretable charts",
			ct:   schema.BarChart,
			base: 0.6,
			rctx: schema.RenderContext{Emphasis: schema.ClarityEmphasis},
			expected: 0.6 * 1.15,
		},
		{
			name: "insights boosts business value",
			ct:   schema.LineChart,
			base: 0.6,
			rctx: schema.RenderContext{Emphasis: schema.InsightsEmphasis},
			expected: 0.6 * 1.1,
		},
		{
			name: "factors stack multiplicatively",
			ct:   schema.ScatterChart, // high interactivity and business value
			base: 0.5,
			rctx: schema.RenderContext{
				Purpose:  schema.ExplorationPurpose,
				Emphasis: schema.InsightsEmphasis,
			},
			expected: 0.5 * 1.2 * 1.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := schema.ChartRecommendation{ChartType: tt.ct, Confidence: tt.base}
			adjusted := AdjustForContext(rec, tt.rctx)
			assert.InDelta(t, tt.expected, adjusted.Confidence, 0.001)
			assert.NotEmpty(t, adjusted.Priority)

			// Input is never mutated.
			assert.InDelta(t, tt.base, rec.Confidence, 0.0001)
		})
	}
}

// TestAdjustForContextClamp tests both clamp bounds.
func TestAdjustForContextClamp(t *testing.T) {
	high := schema.ChartRecommendation{ChartType: schema.BarChart, Confidence: 0.95}
	adjusted := AdjustForContext(high, schema.RenderContext{
		Audience: schema.TechnicalAudience, // 1.1 on a low-difficulty chart
		Emphasis: schema.ClarityEmphasis,   // 1.15 on high interpretability
	})
	assert.InDelta(t, 0.95, adjusted.Confidence, 0.0001)

	low := schema.ChartRecommendation{ChartType: schema.BoxplotChart, Confidence: 0.05}
	adjusted = AdjustForContext(low, schema.RenderContext{
		Audience: schema.GeneralAudience, // 0.7 on a high-difficulty chart
	})
	assert.InDelta(t, 0.05, adjusted.Confidence, 0.0001)
}

// TestDecidePriority tests the discrete tier decision table.
func TestDecidePriority(t *testing.T) {
	tests := []struct {
		name       string
		ct         schema.ChartType
		confidence float64
		rctx       schema.RenderContext
		expected   schema.Priority
	}{
		{
			name:       "confident simple chart is high",
			ct:         schema.BarChart,
			confidence: 0.85,
			expected:   schema.HighPriority,
		},
		{
			name:       "confident analytical chart needs a technical audience",
			ct:         schema.ScatterChart,
			confidence: 0.85,
			expected:   schema.MediumPriority,
		},
		{
			name:       "confident analytical chart with technical audience is high",
			ct:         schema.ScatterChart,
			confidence: 0.85,
			rctx:       schema.RenderContext{Audience: schema.TechnicalAudience},
			expected:   schema.HighPriority,
		},
		{
			name:       "mid confidence is medium",
			ct:         schema.HeatmapChart,
			confidence: 0.65,
			expected:   schema.MediumPriority,
		},
		{
			name:       "modest confidence only simple charts stay medium",
			ct:         schema.PieChart,
			confidence: 0.45,
			expected:   schema.MediumPriority,
		},
		{
			name:       "modest confidence analytical chart is low",
			ct:         schema.HistogramChart,
			confidence: 0.45,
			expected:   schema.LowPriority,
		},
		{
			name:       "weak confidence is low",
			ct:         schema.BarChart,
			confidence: 0.3,
			expected:   schema.LowPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decidePriority(tt.ct, tt.confidence, tt.rctx))
		})
	}
}

// TestRankRecommendations tests ordering and the result cap.
func TestRankRecommendations(t *testing.T) {
	recs := []schema.ChartRecommendation{
		{ChartType: schema.BoxplotChart, Confidence: 0.5},
		{ChartType: schema.BarChart, Confidence: 0.9},
		{ChartType: schema.HistogramChart, Confidence: 0.7},
	}

	ranked := RankRecommendations(recs, schema.RenderContext{})
	require.Len(t, ranked, 3)

	// Priority dominates confidence.
	for i := 1; i < len(ranked); i++ {
		pi := schema.PriorityRank(ranked[i-1].Priority)
		pj := schema.PriorityRank(ranked[i].Priority)
		if pi == pj {
			assert.GreaterOrEqual(t, ranked[i-1].Confidence, ranked[i].Confidence)
		} else {
			assert.Greater(t, pi, pj)
		}
	}
	assert.Equal(t, schema.BarChart, ranked[0].ChartType)
}

// TestRankRecommendationsCap tests truncation past the cap.
func TestRankRecommendationsCap(t *testing.T) {
	recs := make([]schema.ChartRecommendation, 0, 12)
	for range 12 {
		recs = append(recs, schema.ChartRecommendation{
			ChartType:  schema.BarChart,
			Confidence: 0.5,
		})
	}
	ranked := RankRecommendations(recs, schema.RenderContext{})
	assert.Len(t, ranked, MaxRecommendations)
}
