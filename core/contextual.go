package core

import (
	"fmt"
	"math"

	"github.com/plotsense/plotsense/schema"
)

// minCorrelationPairs guards the cheap two-field correlation against
// degenerate samples.
const minCorrelationPairs = 3

// ContextualInsights produces lightweight guidance for the chart a user
// is currently configuring: a direct x/y correlation when both mapped
// fields are numeric, plus chart-type-specific reading advice. At most
// maxContextualInsights are returned. An empty mapping yields a single
// placeholder insight prompting field selection.
func ContextualInsights(rows []schema.Row, ct schema.ChartType, mapping schema.FieldMapping) []schema.DataInsight {
	if len(mapping) == 0 {
		return []schema.DataInsight{{
			ID:          insightID("contextual", "no-fields", string(ct)),
			Type:        schema.SummaryInsight,
			Priority:    schema.LowPriority,
			Confidence:  1,
			Title:       "Select fields to begin",
			Description: "Map at least one field to a visual role to generate chart-specific insights.",
			Explanation: "Insights are computed from the mapped fields, so an empty mapping has nothing to analyze.",
		}}
	}

	var out []schema.DataInsight

	if ci, ok := mappedCorrelation(rows, mapping); ok {
		out = append(out, ci)
	}
	out = append(out, chartGuidance(rows, ct, mapping)...)

	if len(out) > maxContextualInsights {
		out = out[:maxContextualInsights]
	}
	return out
}

// mappedCorrelation runs a two-field Pearson correlation directly on the
// mapped x and y fields when both carry at least minCorrelationPairs
// valid numeric pairs.
func mappedCorrelation(rows []schema.Row, mapping schema.FieldMapping) (schema.DataInsight, bool) {
	xField, okX := mapping[schema.RoleX]
	yField, okY := mapping[schema.RoleY]
	if !okX || !okY {
		return schema.DataInsight{}, false
	}

	xs, ys := pairedNumeric(rows, xField, yField)
	if len(xs) < minCorrelationPairs {
		return schema.DataInsight{}, false
	}

	r := pearson(xs, ys)
	if math.Abs(r) < 0.3 {
		return schema.DataInsight{}, false
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}
	strength := "moderate"
	if math.Abs(r) > 0.7 {
		strength = "strong"
	}

	return correlationInsight(schema.Correlation{
		Field1:      xField,
		Field2:      yField,
		Correlation: r,
		PValue:      pearsonPValue(r, len(xs)),
		Strength:    strength,
		Direction:   direction,
	}), true
}

// chartGuidance adds canned, chart-type-specific reading advice backed
// by a quick look at the mapped data.
func chartGuidance(rows []schema.Row, ct schema.ChartType, mapping schema.FieldMapping) []schema.DataInsight {
	var out []schema.DataInsight
	add := func(key, title, description, explanation string) {
		out = append(out, schema.DataInsight{
			ID:          insightID("contextual", key, string(ct)),
			Type:        schema.PatternInsight,
			Priority:    schema.LowPriority,
			Confidence:  0.6,
			Title:       title,
			Description: description,
			Explanation: explanation,
		})
	}

	switch ct {
	case schema.HistogramChart:
		if field, ok := mapping[schema.RoleX]; ok {
			nums := numericValues(rows, field)
			if len(nums) > 0 {
				m := mean(nums)
				med := nearestRankQuantile(sortedCopy(nums), 0.5)
				shape := "roughly symmetric"
				if m > med {
					shape = "right-skewed (a tail of high values)"
				} else if m < med {
					shape = "left-skewed (a tail of low values)"
				}
				add("distribution-shape",
					"Check the distribution shape",
					fmt.Sprintf("The distribution of %s looks %s.", field, shape),
					fmt.Sprintf("Mean %.4g versus median %.4g; a gap between them signals skew that affects which summary statistic to report.", m, med))
			}
		}
	case schema.PieChart:
		if field, ok := mapping[schema.RoleCategory]; ok {
			if dominant, pct, ok := dominantCategory(rows, field); ok && pct > 50 {
				add("dominant-category",
					"One category dominates",
					fmt.Sprintf("%q accounts for %.0f%% of %s.", dominant, pct, field),
					"A single dominant slice makes the remaining proportions hard to compare; consider a bar chart for the minority categories.")
			}
		}
	case schema.LineChart, schema.AreaChart:
		if field, ok := mapping[schema.RoleY]; ok {
			nums := numericValues(rows, field)
			if len(nums) >= minCorrelationPairs {
				idx := make([]float64, len(nums))
				for i := range nums {
					idx[i] = float64(i)
				}
				slope, rsq := linearFit(idx, nums)
				if rsq > 0.4 {
					dir := "upward"
					if slope < 0 {
						dir = "downward"
					}
					add("series-trend",
						fmt.Sprintf("Series trends %s", dir),
						fmt.Sprintf("%s moves %s across the series.", field, dir),
						fmt.Sprintf("A linear fit explains %.0f%% of the movement; annotate the trend when presenting.", rsq*100))
				}
			}
		}
	case schema.BarChart:
		if field, ok := mapping[schema.RoleX]; ok {
			if top, pct, ok := dominantCategory(rows, field); ok {
				add("leading-category",
					"Leading category",
					fmt.Sprintf("%q is the most frequent value of %s (%.0f%% of rows).", top, field, pct),
					"Sorting bars by value makes the ranking immediately readable.")
			}
		}
	case schema.BoxplotChart:
		if field, ok := mapping[schema.RoleY]; ok {
			nums := numericValues(rows, field)
			if n := iqrOutlierCount(nums); n > 0 {
				add("outliers-present",
					"Outliers present",
					fmt.Sprintf("%d observations of %s fall outside the 1.5 IQR whiskers.", n, field),
					"Outliers stretch the whiskers; check whether they are errors before excluding them.")
			}
		}
	case schema.HeatmapChart:
		add("heatmap-reading",
			"Read the heatmap by extremes",
			"Scan for the darkest and lightest cells first.",
			"The extreme cells carry most of the signal in an intensity grid; mid-range differences are hard to judge by color.")
	}

	return out
}

// numericValues extracts the values of a column that parse as numbers.
func numericValues(rows []schema.Row, field string) []float64 {
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		v, ok := row[field]
		if !ok || isMissing(v) {
			continue
		}
		if f, ok := parseNumber(v); ok {
			out = append(out, f)
		}
	}
	return out
}

// pairedNumeric extracts rows where both columns parse as numbers.
func pairedNumeric(rows []schema.Row, xField, yField string) ([]float64, []float64) {
	xs := make([]float64, 0, len(rows))
	ys := make([]float64, 0, len(rows))
	for _, row := range rows {
		xv, okX := row[xField]
		yv, okY := row[yField]
		if !okX || !okY || isMissing(xv) || isMissing(yv) {
			continue
		}
		x, okX := parseNumber(xv)
		y, okY := parseNumber(yv)
		if !okX || !okY {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

// dominantCategory returns the most frequent stringified value of a
// column and its share of non-missing rows.
func dominantCategory(rows []schema.Row, field string) (string, float64, bool) {
	counts := map[string]int{}
	total := 0
	for _, row := range rows {
		v, ok := row[field]
		if !ok || isMissing(v) {
			continue
		}
		counts[stringify(v)]++
		total++
	}
	if total == 0 {
		return "", 0, false
	}
	best, bestCount := "", -1
	for val, c := range counts {
		if c > bestCount || (c == bestCount && val < best) {
			best, bestCount = val, c
		}
	}
	return best, float64(bestCount) / float64(total) * 100, true
}

// iqrOutlierCount counts values outside 1.5 IQR whiskers.
func iqrOutlierCount(nums []float64) int {
	if len(nums) < 4 {
		return 0
	}
	sorted := sortedCopy(nums)
	q1 := nearestRankQuantile(sorted, 0.25)
	q3 := nearestRankQuantile(sorted, 0.75)
	iqr := q3 - q1
	lo, hi := q1-1.5*iqr, q3+1.5*iqr
	n := 0
	for _, v := range nums {
		if v < lo || v > hi {
			n++
		}
	}
	return n
}
