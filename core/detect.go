package core

import (
	"context"
	"math"

	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/schema"
)

// Detection thresholds.
const (
	minTrendPoints       = 3
	minSeasonalityPoints = 12
	trendMinRSquared     = 0.3
	correlationMinAbs    = 0.3
	seasonalityMinAC     = 0.5
	iqrFence             = 1.5
)

// BuiltinDetector runs trend, seasonality, anomaly and correlation
// detection directly on the dataset, with no external pipeline. It is
// the default PatternSource and CorrelationSource.
type BuiltinDetector struct{}

var (
	_ contract.PatternSource     = &BuiltinDetector{} // Compile-time check
	_ contract.CorrelationSource = &BuiltinDetector{} // Compile-time check
)

// NewBuiltinDetector creates a new instance of the built-in detector.
func NewBuiltinDetector() *BuiltinDetector {
	return &BuiltinDetector{}
}

// DetectPatterns implements the PatternSource interface. It scans every
// numeric column for a linear trend, a repeating cycle, and IQR outliers.
func (d *BuiltinDetector) DetectPatterns(ctx context.Context, rows []schema.Row, ds *schema.DataSchema) (*schema.PatternResult, error) {
	result := &schema.PatternResult{}

	for _, field := range ds.FieldsOfType(schema.NumericType) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		nums := numericValues(rows, field.Name)

		if tr, ok := detectTrend(field.Name, nums); ok {
			result.Trends = append(result.Trends, tr)
		}
		if sr, ok := detectSeasonality(nums); ok {
			// Keep the strongest cycle found across all numeric columns.
			if result.Seasonality == nil || sr.Strength > result.Seasonality.Strength {
				result.Seasonality = &sr
			}
		}
		result.Anomalies = append(result.Anomalies, detectAnomalies(field.Name, rows)...)
	}

	return result, nil
}

// DetectCorrelations implements the CorrelationSource interface. It
// computes Pearson correlations for every pair of numeric columns and
// keeps the pairs above the reporting threshold.
func (d *BuiltinDetector) DetectCorrelations(ctx context.Context, rows []schema.Row, ds *schema.DataSchema) (*schema.CorrelationResult, error) {
	result := &schema.CorrelationResult{}

	numeric := ds.FieldsOfType(schema.NumericType)
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			xs, ys := pairedNumeric(rows, numeric[i].Name, numeric[j].Name)
			if len(xs) < minCorrelationPairs {
				continue
			}

			r := pearson(xs, ys)
			if math.IsNaN(r) || math.Abs(r) < correlationMinAbs {
				continue
			}

			result.Correlations = append(result.Correlations, schema.Correlation{
				Field1:      numeric[i].Name,
				Field2:      numeric[j].Name,
				Correlation: r,
				PValue:      pearsonPValue(r, len(xs)),
				Strength:    correlationStrength(r),
				Direction:   correlationDirection(r),
			})
		}
	}

	return result, nil
}

// detectTrend fits a least-squares line over the row order of a numeric
// column. Only fits that explain enough variance are reported.
func detectTrend(field string, nums []float64) (schema.TrendResult, bool) {
	if len(nums) < minTrendPoints {
		return schema.TrendResult{}, false
	}

	idx := make([]float64, len(nums))
	for i := range nums {
		idx[i] = float64(i)
	}
	slope, rsq := linearFit(idx, nums)
	if math.IsNaN(rsq) || rsq < trendMinRSquared {
		return schema.TrendResult{}, false
	}

	direction := "increasing"
	if slope < 0 {
		direction = "decreasing"
	}

	return schema.TrendResult{
		Field:      field,
		Direction:  direction,
		Strength:   trendStrength(rsq),
		Confidence: math.Sqrt(rsq),
		RSquared:   rsq,
		Slope:      slope,
	}, true
}

// detectSeasonality checks autocorrelation at candidate periods and
// reports the strongest one above the threshold.
func detectSeasonality(nums []float64) (schema.SeasonalityResult, bool) {
	if len(nums) < minSeasonalityPoints {
		return schema.SeasonalityResult{}, false
	}

	bestPeriod, bestAC := 0, 0.0
	for lag := 2; lag <= len(nums)/2; lag++ {
		ac := autocorrelation(nums, lag)
		if ac > bestAC {
			bestPeriod, bestAC = lag, ac
		}
	}
	if bestAC < seasonalityMinAC {
		return schema.SeasonalityResult{}, false
	}

	return schema.SeasonalityResult{
		Detected: true,
		Period:   bestPeriod,
		Strength: bestAC,
	}, true
}

// detectAnomalies flags values outside the 1.5 IQR fences. Severity
// scales with how far past the fence a value lands, in IQR units.
func detectAnomalies(field string, rows []schema.Row) []schema.AnomalyResult {
	type indexed struct {
		idx int
		val float64
	}
	values := make([]indexed, 0, len(rows))
	nums := make([]float64, 0, len(rows))
	for i, row := range rows {
		v, ok := row[field]
		if !ok || isMissing(v) {
			continue
		}
		f, ok := parseNumber(v)
		if !ok {
			continue
		}
		values = append(values, indexed{idx: i, val: f})
		nums = append(nums, f)
	}
	if len(nums) < 4 {
		return nil
	}

	sorted := sortedCopy(nums)
	q1 := nearestRankQuantile(sorted, 0.25)
	q3 := nearestRankQuantile(sorted, 0.75)
	median := nearestRankQuantile(sorted, 0.5)
	iqr := q3 - q1
	if iqr == 0 {
		return nil
	}
	lo, hi := q1-iqrFence*iqr, q3+iqrFence*iqr

	var out []schema.AnomalyResult
	for _, v := range values {
		if v.val >= lo && v.val <= hi {
			continue
		}
		distance := (lo - v.val) / iqr
		if v.val > hi {
			distance = (v.val - hi) / iqr
		}
		out = append(out, schema.AnomalyResult{
			Field:    field,
			Index:    v.idx,
			Value:    v.val,
			Expected: median,
			Severity: anomalySeverity(distance),
		})
	}
	return out
}

// anomalySeverity buckets the distance past the IQR fence, measured in
// IQR units.
func anomalySeverity(distance float64) string {
	switch {
	case distance >= 1.5:
		return "severe"
	case distance >= 0.75:
		return "moderate"
	default:
		return "mild"
	}
}

func trendStrength(rsq float64) string {
	switch {
	case rsq > 0.7:
		return "strong"
	case rsq > 0.4:
		return "moderate"
	default:
		return "weak"
	}
}

func correlationStrength(r float64) string {
	switch {
	case math.Abs(r) > 0.7:
		return "strong"
	case math.Abs(r) > 0.4:
		return "moderate"
	default:
		return "weak"
	}
}

func correlationDirection(r float64) string {
	if r < 0 {
		return "negative"
	}
	return "positive"
}

// autocorrelation returns the lag-k autocorrelation of a series,
// clamped at 0 for anti-correlated lags.
func autocorrelation(nums []float64, lag int) float64 {
	n := len(nums)
	if lag <= 0 || lag >= n {
		return 0
	}
	m := mean(nums)
	var num, den float64
	for i := 0; i < n; i++ {
		den += (nums[i] - m) * (nums[i] - m)
	}
	if den == 0 {
		return 0
	}
	for i := 0; i < n-lag; i++ {
		num += (nums[i] - m) * (nums[i+lag] - m)
	}
	ac := num / den
	if ac < 0 {
		return 0
	}
	return ac
}
