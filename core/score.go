package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plotsense/plotsense/schema"
)

// Confidence factor weights. Each factor is computed independently and
// the sum is clamped to [0,1].
const (
	fieldCountFit    = 0.3 // field count inside [min,max]
	fieldCountExcess = 0.1 // above max but the chart remains possible
	requiredTypesFit = 0.4 // hard gate: all required types present
	preferredBonus   = 0.1 // per preferred categorical/numeric type present
	timeSeriesBonus  = 0.2 // datetime present on a time-capable chart

	smallSampleRows = 10
	largeSampleRows = 10000
)

// CalculateConfidence scores one chart type against a schema, returning
// a fitness confidence in [0,1]. A missing required type or too few
// fields short-circuits to exactly 0.
func CalculateConfidence(ct schema.ChartType, s *schema.DataSchema) float64 {
	profile, ok := schema.ChartProfiles[ct]
	if !ok {
		return 0
	}

	n := len(s.Fields)
	if n < profile.MinFields {
		return 0
	}

	// Required types are a hard gate, not a soft preference.
	if !hasRequiredTypes(profile.RequiredTypes, s) {
		return 0
	}

	score := requiredTypesFit
	if n <= profile.MaxFields {
		score += fieldCountFit
	} else {
		score += fieldCountExcess
	}

	for _, t := range dedupTypes(profile.PreferredTypes) {
		switch t {
		case schema.CategoricalType, schema.NumericType:
			if s.HasType(t) {
				score += preferredBonus
			}
		}
	}
	if profile.TimeSeries && s.HasType(schema.DatetimeType) {
		score += timeSeriesBonus
	}

	// Distribution charts mislead on tiny samples; detail-heavy charts
	// drown on huge ones.
	if s.RowCount < smallSampleRows {
		switch ct {
		case schema.HistogramChart:
			score -= 0.3
		case schema.BoxplotChart:
			score -= 0.2
		}
	}
	if s.RowCount > largeSampleRows {
		switch ct {
		case schema.ScatterChart, schema.LineChart:
			score -= 0.1
		}
	}

	return clamp(score, 0, 1)
}

// hasRequiredTypes checks that every required type has at least one
// matching field. Duplicated entries (e.g. two numeric requirements)
// demand distinct fields of that type.
func hasRequiredTypes(required []schema.DataType, s *schema.DataSchema) bool {
	need := make(map[schema.DataType]int, len(required))
	for _, t := range required {
		need[t]++
	}
	for t, c := range need {
		if len(s.FieldsOfType(t)) < c {
			return false
		}
	}
	return true
}

func dedupTypes(types []schema.DataType) []schema.DataType {
	seen := make(map[schema.DataType]struct{}, len(types))
	out := make([]schema.DataType, 0, len(types))
	for _, t := range types {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ScoreChartTypes scores every implemented chart type against a schema
// and returns recommendations sorted by confidence descending. Charts
// scoring exactly 0 are excluded. Ties keep the order of
// schema.ImplementedChartTypes so repeated calls are byte-identical.
func ScoreChartTypes(s *schema.DataSchema) []schema.ChartRecommendation {
	recs := make([]schema.ChartRecommendation, 0, len(schema.ImplementedChartTypes))
	for _, ct := range schema.ImplementedChartTypes {
		confidence := CalculateConfidence(ct, s)
		if confidence == 0 {
			continue
		}
		profile := schema.ChartProfiles[ct]
		recs = append(recs, schema.ChartRecommendation{
			ChartType:        ct,
			Confidence:       confidence,
			Reasoning:        reasoningFor(ct, s),
			SuggestedMapping: SuggestMapping(ct, s),
			Pros:             profile.Pros,
			Cons:             profile.Cons,
			BestFor:          profile.BestFor,
		})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	return recs
}

// reasoningFor builds the advisory sentence for a chart type. The text
// reflects the same signals scoring uses but carries no numeric weight.
func reasoningFor(ct schema.ChartType, s *schema.DataSchema) string {
	numeric := s.FieldsOfType(schema.NumericType)
	categorical := s.FieldsOfType(schema.CategoricalType)
	datetime := s.FieldsOfType(schema.DatetimeType)

	var parts []string
	switch ct {
	case schema.BarChart:
		parts = append(parts, fmt.Sprintf("Categorical field %q with numeric values supports side-by-side comparison", firstName(categorical)))
		if len(categorical) > 1 {
			parts = append(parts, "a second categorical field can drive color grouping")
		}
	case schema.LineChart, schema.AreaChart:
		if len(datetime) > 0 {
			parts = append(parts, fmt.Sprintf("Datetime field %q gives a natural ordered axis for trends", firstName(datetime)))
		} else {
			parts = append(parts, "No datetime field; an ordered numeric axis will stand in for time")
		}
	case schema.PieChart:
		uniques := categoryCardinality(categorical)
		parts = append(parts, "Part-to-whole proportions across categories")
		if uniques > schema.MaxPieCategories {
			parts = append(parts, fmt.Sprintf("warning: %d unique categories exceed the %d-slice readability limit", uniques, schema.MaxPieCategories))
		}
	case schema.ScatterChart:
		parts = append(parts, fmt.Sprintf("Two numeric fields (%q, %q) allow relationship and outlier analysis", firstName(numeric), secondName(numeric)))
		if s.RowCount > largeSampleRows {
			parts = append(parts, "large row count may overplot; consider sampling")
		}
	case schema.HistogramChart:
		parts = append(parts, fmt.Sprintf("Numeric field %q can be binned to show distribution shape", firstName(numeric)))
		if s.RowCount < smallSampleRows {
			parts = append(parts, fmt.Sprintf("only %d rows; distribution shape will be unreliable", s.RowCount))
		}
	case schema.BoxplotChart:
		parts = append(parts, fmt.Sprintf("Numeric field %q summarizes as quartiles and outliers", firstName(numeric)))
		if len(categorical) > 0 {
			parts = append(parts, fmt.Sprintf("grouping by %q enables distribution comparison", firstName(categorical)))
		}
		if s.RowCount < smallSampleRows {
			parts = append(parts, "small sample weakens quartile estimates")
		}
	case schema.HeatmapChart:
		parts = append(parts, fmt.Sprintf("Two categorical fields (%q, %q) with a numeric measure form an intensity grid", firstName(categorical), secondName(categorical)))
	default:
		parts = append(parts, string(ct)+" fits the inferred field types")
	}
	return strings.Join(parts, "; ") + "."
}

// categoryCardinality returns the unique-value count of the first
// categorical field, the quantity pie readability hinges on.
func categoryCardinality(categorical []schema.FieldSchema) int {
	if len(categorical) == 0 {
		return 0
	}
	return categorical[0].Statistics.UniqueCount
}

func firstName(fields []schema.FieldSchema) string {
	if len(fields) == 0 {
		return ""
	}
	return fields[0].Name
}

func secondName(fields []schema.FieldSchema) string {
	if len(fields) < 2 {
		return ""
	}
	return fields[1].Name
}
