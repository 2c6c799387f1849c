// Package core implements the plotsense analysis engine: schema
// inference, chart fitness scoring, field mapping, contextual priority
// adjustment and insight synthesis. Everything here is a pure function
// over immutable input snapshots; repeated calls with identical input
// produce identical output.
package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/plotsense/plotsense/schema"
)

// Classification thresholds. Order matters during classification:
// boolean runs before numeric so mostly-boolean "1"/"0" columns are not
// misread as numeric, and categorical runs only after the typed checks
// fail so low-cardinality numeric columns keep their numeric type.
const (
	booleanShare     = 0.8
	numericShare     = 0.8
	datetimeShare    = 0.7
	categoricalRatio = 0.5 // inclusive: a distinct/count ratio of exactly 0.5 is categorical
	maxCategorical   = 20

	maxExamples     = 5
	maxDistribution = 20
)

// datetimeLayouts are the accepted date patterns, tried in order.
var datetimeLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
}

// boolWords are the case-insensitive string spellings accepted as
// boolean values.
var boolWords = map[string]struct{}{
	"true": {}, "false": {},
	"yes": {}, "no": {},
	"1": {}, "0": {},
}

// InferSchema classifies every column of rows and computes per-field
// statistics. The column set is defined by the first row's keys; since
// Go maps carry no order, columns are emitted in lexicographic order.
// Callers that know the original column order should use
// InferSchemaColumns instead. Never returns an error: empty or
// malformed input yields an empty schema.
func InferSchema(rows []schema.Row) schema.DataSchema {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return schema.DataSchema{Fields: []schema.FieldSchema{}, RowCount: len(rows)}
	}
	columns := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return InferSchemaColumns(rows, columns)
}

// InferSchemaColumns is InferSchema with an explicit column order,
// typically the header order of the source file. Columns absent from
// every row still produce a (fully null) text field.
func InferSchemaColumns(rows []schema.Row, columns []string) schema.DataSchema {
	if len(rows) == 0 || len(columns) == 0 {
		return schema.DataSchema{Fields: []schema.FieldSchema{}, RowCount: len(rows)}
	}
	fields := make([]schema.FieldSchema, 0, len(columns))
	for _, col := range columns {
		fields = append(fields, inferField(col, rows))
	}
	return schema.DataSchema{
		Fields:      fields,
		RowCount:    len(rows),
		ColumnCount: len(fields),
	}
}

// inferField classifies a single column and computes its statistics.
func inferField(name string, rows []schema.Row) schema.FieldSchema {
	values := make([]any, 0, len(rows))
	nullCount := 0
	for _, row := range rows {
		v, ok := row[name]
		if !ok || isMissing(v) {
			nullCount++
			continue
		}
		values = append(values, v)
	}

	dt := classifyValues(values)

	stats := schema.FieldStatistics{
		Count:       len(values),
		NullCount:   nullCount,
		UniqueCount: distinctCount(values),
	}
	switch dt {
	case schema.NumericType:
		stats.Numeric = numericStats(values)
	case schema.DatetimeType:
		stats.Datetime = datetimeStats(values)
	default:
		stats.Categorical = distributionStats(values)
	}

	return schema.FieldSchema{
		Name:       name,
		DataType:   dt,
		Nullable:   nullCount > 0,
		Unique:     len(values) > 0 && stats.UniqueCount == len(values),
		Examples:   sampleExamples(values),
		Statistics: stats,
	}
}

// classifyValues resolves exactly one DataType for the non-missing
// values of a column. Inference is total: the fallback is text.
func classifyValues(values []any) schema.DataType {
	n := len(values)
	if n == 0 {
		return schema.TextType
	}

	boolCount, numCount, dtCount := 0, 0, 0
	for _, v := range values {
		if isBooleanValue(v) {
			boolCount++
		}
		if _, ok := parseNumber(v); ok {
			numCount++
		}
		if _, ok := parseDatetime(v); ok {
			dtCount++
		}
	}

	share := func(c int) float64 { return float64(c) / float64(n) }
	switch {
	case share(boolCount) >= booleanShare:
		return schema.BooleanType
	case share(numCount) >= numericShare:
		return schema.NumericType
	case share(dtCount) >= datetimeShare:
		return schema.DatetimeType
	}

	distinct := distinctCount(values)
	if float64(distinct)/float64(n) <= categoricalRatio && distinct < maxCategorical {
		return schema.CategoricalType
	}
	return schema.TextType
}

// isMissing reports whether a raw value counts as absent.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// isBooleanValue accepts literal booleans, the accepted string
// spellings, and the numbers 0 and 1.
func isBooleanValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return true
	case string:
		_, ok := boolWords[strings.ToLower(strings.TrimSpace(t))]
		return ok
	default:
		if f, ok := parseNumber(v); ok {
			return f == 0 || f == 1
		}
		return false
	}
}

// parseNumber extracts a finite float from numeric Go types or numeric
// strings.
func parseNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !isNaNOrInf(t)
	case float32:
		return float64(t), !isNaNOrInf(float64(t))
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || isNaNOrInf(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isNaNOrInf(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// parseDatetime resolves time.Time values and strings matching one of
// the fixed date patterns.
func parseDatetime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range datetimeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// stringify renders a raw value the way statistics and distributions
// key on it. Floats drop trailing zeros so 3.0 and "3" collide.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func distinctCount(values []any) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[stringify(v)] = struct{}{}
	}
	return len(seen)
}

// sampleExamples returns up to maxExamples distinct values in first-seen
// order.
func sampleExamples(values []any) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, maxExamples)
	for _, v := range values {
		s := stringify(v)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == maxExamples {
			break
		}
	}
	return out
}

// numericStats computes descriptive statistics over the values that
// parse as numbers. A value that fails to parse is excluded from the
// numeric statistics only; it still counts toward Count.
func numericStats(values []any) *schema.NumericStats {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := parseNumber(v); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return &schema.NumericStats{}
	}
	sorted := sortedCopy(nums)
	m := mean(nums)
	q1 := nearestRankQuantile(sorted, 0.25)
	q2 := nearestRankQuantile(sorted, 0.5)
	q3 := nearestRankQuantile(sorted, 0.75)
	return &schema.NumericStats{
		Min:       sorted[0],
		Max:       sorted[len(sorted)-1],
		Mean:      m,
		Median:    q2,
		StdDev:    populationStdDev(nums, m),
		Quartiles: [3]float64{q1, q2, q3},
	}
}

// datetimeStats resolves the min/max timestamps of the parseable values.
func datetimeStats(values []any) *schema.DatetimeStats {
	var min, max time.Time
	first := true
	for _, v := range values {
		ts, ok := parseDatetime(v)
		if !ok {
			continue
		}
		if first {
			min, max = ts, ts
			first = false
			continue
		}
		if ts.Before(min) {
			min = ts
		}
		if ts.After(max) {
			max = ts
		}
	}
	return &schema.DatetimeStats{Min: min, Max: max}
}

// distributionStats builds the value-frequency table for categorical,
// text and boolean fields: top 20 values by count, ties broken by value
// so output stays deterministic.
func distributionStats(values []any) *schema.DistributionStats {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[stringify(v)]++
	}
	entries := make([]schema.ValueCount, 0, len(counts))
	total := len(values)
	for val, c := range counts {
		pct := 0.0
		if total > 0 {
			pct = float64(c) / float64(total) * 100
		}
		entries = append(entries, schema.ValueCount{Value: val, Count: c, Percentage: pct})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Value < entries[j].Value
	})
	mode := ""
	if len(entries) > 0 {
		mode = entries[0].Value
	}
	if len(entries) > maxDistribution {
		entries = entries[:maxDistribution]
	}
	return &schema.DistributionStats{Distribution: entries, Mode: mode}
}
