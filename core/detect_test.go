package core

import (
	"context"
	"math"
	"testing"

	"github.com/plotsense/plotsense/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDetectTrend tests the linear-fit trend detector.
func TestDetectTrend(t *testing.T) {
	tests := []struct {
		name      string
		nums      []float64
		detected  bool
		direction string
		strength  string
	}{
		{
			name:      "perfect increasing line",
			nums:      []float64{1, 2, 3, 4, 5, 6, 7, 8},
			detected:  true,
			direction: "increasing",
			strength:  "strong",
		},
		{
			name:      "decreasing line",
			nums:      []float64{100, 90, 80, 70, 60, 50},
			detected:  true,
			direction: "decreasing",
			strength:  "strong",
		},
		{
			name:     "flat series has no trend",
			nums:     []float64{5, 5, 5, 5, 5},
			detected: false,
		},
		{
			name:     "pure noise has no trend",
			nums:     []float64{1, 9, 2, 8, 1, 9, 2, 8},
			detected: false,
		},
		{
			name:     "too few points",
			nums:     []float64{1, 2},
			detected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, ok := detectTrend("value", tt.nums)
			assert.Equal(t, tt.detected, ok)
			if !tt.detected {
				return
			}
			assert.Equal(t, "value", tr.Field)
			assert.Equal(t, tt.direction, tr.Direction)
			assert.Equal(t, tt.strength, tr.Strength)
			assert.InDelta(t, math.Sqrt(tr.RSquared), tr.Confidence, 0.0001)
		})
	}
}

// TestDetectSeasonality tests the autocorrelation cycle detector.
func TestDetectSeasonality(t *testing.T) {
	// A clean period-4 square wave over 24 points.
	var wave []float64
	for i := range 24 {
		if i%4 < 2 {
			wave = append(wave, 10)
		} else {
			wave = append(wave, -10)
		}
	}

	sr, ok := detectSeasonality(wave)
	require.True(t, ok)
	assert.True(t, sr.Detected)
	assert.Equal(t, 4, sr.Period)
	assert.Greater(t, sr.Strength, seasonalityMinAC)

	// Too short a series never reports a cycle.
	_, ok = detectSeasonality(wave[:8])
	assert.False(t, ok)

	// A monotone ramp autocorrelates but has no repeating cycle with a
	// small period, so whatever is found must clear the threshold.
	ramp := make([]float64, 24)
	for i := range ramp {
		ramp[i] = float64(i)
	}
	if sr, ok := detectSeasonality(ramp); ok {
		assert.GreaterOrEqual(t, sr.Strength, seasonalityMinAC)
	}
}

// TestDetectAnomalies tests the IQR outlier detector.
func TestDetectAnomalies(t *testing.T) {
	rows := []schema.Row{
		{"v": 10.0}, {"v": 11.0}, {"v": 9.0}, {"v": 10.5},
		{"v": 10.2}, {"v": 9.8}, {"v": 10.1}, {"v": 500.0},
	}

	anomalies := detectAnomalies("v", rows)
	require.Len(t, anomalies, 1)
	assert.Equal(t, "v", anomalies[0].Field)
	assert.Equal(t, 7, anomalies[0].Index)
	assert.InDelta(t, 500.0, anomalies[0].Value, 0.001)
	assert.Equal(t, "severe", anomalies[0].Severity)
}

// TestDetectAnomaliesDegenerate tests the guards around tiny and
// zero-spread samples.
func TestDetectAnomaliesDegenerate(t *testing.T) {
	// Fewer than four numeric values.
	rows := []schema.Row{{"v": 1.0}, {"v": 2.0}, {"v": 1000.0}}
	assert.Nil(t, detectAnomalies("v", rows))

	// Zero IQR: every fence collapses, nothing is reportable.
	rows = []schema.Row{{"v": 5.0}, {"v": 5.0}, {"v": 5.0}, {"v": 5.0}, {"v": 5.0}}
	assert.Nil(t, detectAnomalies("v", rows))
}

// TestAnomalySeverity tests the distance buckets.
func TestAnomalySeverity(t *testing.T) {
	assert.Equal(t, "mild", anomalySeverity(0.2))
	assert.Equal(t, "moderate", anomalySeverity(0.75))
	assert.Equal(t, "severe", anomalySeverity(1.5))
	assert.Equal(t, "severe", anomalySeverity(10))
}

// TestDetectPatterns tests the full pattern pass over a schema.
func TestDetectPatterns(t *testing.T) {
	rows := make([]schema.Row, 20)
	for i := range rows {
		rows[i] = schema.Row{"trend": float64(i) * 2.0, "label": "x"}
	}
	ds := InferSchemaColumns(rows, []string{"trend", "label"})

	d := NewBuiltinDetector()
	result, err := d.DetectPatterns(context.Background(), rows, &ds)
	require.NoError(t, err)
	require.Len(t, result.Trends, 1)
	assert.Equal(t, "trend", result.Trends[0].Field)
	assert.Equal(t, "increasing", result.Trends[0].Direction)
}

// TestDetectCorrelations tests the pairwise correlation pass.
func TestDetectCorrelations(t *testing.T) {
	rows := make([]schema.Row, 20)
	for i := range rows {
		x := float64(i)
		rows[i] = schema.Row{
			"x":       x,
			"double":  x * 2,
			"inverse": -x,
		}
	}
	ds := InferSchemaColumns(rows, []string{"x", "double", "inverse"})

	d := NewBuiltinDetector()
	result, err := d.DetectCorrelations(context.Background(), rows, &ds)
	require.NoError(t, err)
	require.Len(t, result.Correlations, 3)

	for _, c := range result.Correlations {
		assert.Equal(t, "strong", c.Strength)
		assert.InDelta(t, 1.0, math.Abs(c.Correlation), 0.0001)
		if c.Field2 == "inverse" {
			assert.Equal(t, "negative", c.Direction)
		} else {
			assert.Equal(t, "positive", c.Direction)
		}
	}
}

// TestDetectCorrelationsCanceled tests context cancellation mid-pass.
func TestDetectCorrelationsCanceled(t *testing.T) {
	rows := make([]schema.Row, 10)
	for i := range rows {
		rows[i] = schema.Row{"a": float64(i), "b": float64(i * 2)}
	}
	ds := InferSchemaColumns(rows, []string{"a", "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewBuiltinDetector()
	_, err := d.DetectCorrelations(ctx, rows, &ds)
	assert.Error(t, err)
}

// TestAutocorrelation tests the lag correlation helper.
func TestAutocorrelation(t *testing.T) {
	// Overlap shrinks with the lag, so a perfect period-2 signal lands
	// at 6/8 rather than 1.
	periodic := []float64{1, -1, 1, -1, 1, -1, 1, -1}
	assert.InDelta(t, 0.75, autocorrelation(periodic, 2), 0.0001)
	// Anti-correlated lags clamp to zero.
	assert.Equal(t, 0.0, autocorrelation(periodic, 1))

	flat := []float64{3, 3, 3, 3}
	assert.Equal(t, 0.0, autocorrelation(flat, 1))
	assert.Equal(t, 0.0, autocorrelation(periodic, 0))
	assert.Equal(t, 0.0, autocorrelation(periodic, 100))
}
