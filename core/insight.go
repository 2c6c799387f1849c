package core

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/plotsense/plotsense/schema"
)

// Synthesis limits.
const (
	maxAnomalyInsights     = 3
	maxCorrelationInsights = 5
	maxContextualInsights  = 5
	maxKeyTakeaways        = 5
	maxRecommendationTexts = 8

	smallSampleWarning = 30
	missingRateWarning = 0.1
)

// insightNamespace seeds deterministic insight IDs: the engine must be
// idempotent, so IDs derive from content, never from randomness.
var insightNamespace = uuid.MustParse("7a9e3b54-86cd-4f12-9d80-2f6c1a5e9b01")

func insightID(parts ...string) string {
	return uuid.NewSHA1(insightNamespace, []byte(strings.Join(parts, "|"))).String()
}

// Synthesize merges externally detected patterns and correlations with
// dataset-level quality checks into a ranked insight list plus an
// executive summary. Nil patterns or correlations are treated as empty;
// the call never fails.
func Synthesize(patterns *schema.PatternResult, correlations *schema.CorrelationResult, rows []schema.Row, fieldContext string) schema.InsightGenerationResult {
	if patterns == nil {
		patterns = &schema.PatternResult{}
	}
	if correlations == nil {
		correlations = &schema.CorrelationResult{}
	}

	var insights []schema.DataInsight

	for _, t := range patterns.Trends {
		insights = append(insights, trendInsight(t, fieldContext))
	}

	anomalies := patterns.Anomalies
	if len(anomalies) > maxAnomalyInsights {
		anomalies = anomalies[:maxAnomalyInsights]
	}
	for _, a := range anomalies {
		insights = append(insights, anomalyInsight(a))
	}

	corrs := topCorrelations(correlations.Correlations, maxCorrelationInsights)
	for _, c := range corrs {
		insights = append(insights, correlationInsight(c))
	}

	insights = append(insights, qualityInsights(rows)...)

	if next, ok := nextStepsInsight(patterns, correlations); ok {
		insights = append(insights, next)
	}

	sortInsights(insights)

	return schema.InsightGenerationResult{
		Insights:         insights,
		ExecutiveSummary: executiveSummary(insights),
		KeyTakeaways:     keyTakeaways(insights),
		Recommendations:  collectRecommendations(insights),
		Confidence:       meanInsightConfidence(insights),
		DataQualityScore: dataQualityScore(patterns, correlations, len(rows)),
	}
}

// sortInsights orders by priority first and confidence second, both
// descending. Priority always dominates confidence.
func sortInsights(insights []schema.DataInsight) {
	sort.SliceStable(insights, func(i, j int) bool {
		ri, rj := schema.PriorityRank(insights[i].Priority), schema.PriorityRank(insights[j].Priority)
		if ri != rj {
			return ri > rj
		}
		return insights[i].Confidence > insights[j].Confidence
	})
}

func trendInsight(t schema.TrendResult, fieldContext string) schema.DataInsight {
	subject := t.Field
	if subject == "" {
		subject = fieldContext
	}
	if subject == "" {
		subject = "the data"
	}

	title := fmt.Sprintf("%s %s trend detected", capitalize(t.Strength), t.Direction)
	description := fmt.Sprintf("Values in %s show a %s %s trend.", subject, t.Strength, t.Direction)

	var fit string
	switch {
	case t.RSquared > 0.7:
		fit = "very consistent"
	case t.RSquared > 0.4:
		fit = "moderately consistent"
	default:
		fit = "showing considerable variation"
	}
	explanation := fmt.Sprintf("A linear fit explains %.0f%% of the variation, making the %s pattern %s.", t.RSquared*100, t.Direction, fit)

	var priority schema.Priority
	switch {
	case t.Confidence > 0.9:
		priority = schema.CriticalPriority
	case t.Confidence > 0.7 && t.Strength == "strong":
		priority = schema.HighPriority
	case t.Confidence > 0.5:
		priority = schema.MediumPriority
	default:
		priority = schema.LowPriority
	}

	var recs []string
	if t.Strength == "strong" {
		recs = append(recs, "Use the trend as a baseline for forecasting and target setting")
	}

	return schema.DataInsight{
		ID:              insightID("trend", subject, t.Direction, t.Strength),
		Type:            schema.TrendInsight,
		Priority:        priority,
		Confidence:      clamp(t.Confidence, 0, 1),
		Title:           title,
		Description:     description,
		Explanation:     explanation,
		Actionable:      t.Strength == "strong",
		Recommendations: recs,
		VisualSuggestion: &schema.VisualSuggestion{
			ChartType: schema.LineChart,
		},
	}
}

func anomalyInsight(a schema.AnomalyResult) schema.DataInsight {
	var priority schema.Priority
	var confidence float64
	switch a.Severity {
	case "severe":
		priority, confidence = schema.CriticalPriority, 0.9
	case "moderate":
		priority, confidence = schema.HighPriority, 0.75
	default: // mild
		priority, confidence = schema.MediumPriority, 0.6
	}

	subject := a.Field
	if subject == "" {
		subject = "the data"
	}

	return schema.DataInsight{
		ID:          insightID("anomaly", subject, fmt.Sprintf("%d", a.Index)),
		Type:        schema.AnomalyInsight,
		Priority:    priority,
		Confidence:  confidence,
		Title:       fmt.Sprintf("%s anomaly at position %d", capitalize(a.Severity), a.Index),
		Description: fmt.Sprintf("Observation %d in %s has value %.4g where about %.4g was expected.", a.Index, subject, a.Value, a.Expected),
		Explanation: fmt.Sprintf("The observed value deviates from the expected level by %.4g; %s anomalies usually mean data errors or genuine events worth review.", math.Abs(a.Value-a.Expected), a.Severity),
		Actionable:  true,
		Recommendations: []string{
			"Verify whether the anomalous observation is a data error or a real event",
		},
		DataPoints: []schema.DataPoint{
			{Index: a.Index, Value: a.Value, Expected: a.Expected},
		},
	}
}

// topCorrelations orders by absolute coefficient descending before
// truncation so the strongest relationships always survive the cap.
func topCorrelations(corrs []schema.Correlation, limit int) []schema.Correlation {
	out := make([]schema.Correlation, len(corrs))
	copy(out, corrs)
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Correlation) > math.Abs(out[j].Correlation)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func correlationInsight(c schema.Correlation) schema.DataInsight {
	r := math.Abs(c.Correlation)
	var priority schema.Priority
	switch {
	case r > 0.8 && c.PValue < 0.01:
		priority = schema.CriticalPriority
	case r > 0.6 && c.PValue < 0.05:
		priority = schema.HighPriority
	case r > 0.4:
		priority = schema.MediumPriority
	default:
		priority = schema.LowPriority
	}

	return schema.DataInsight{
		ID:          insightID("correlation", c.Field1, c.Field2),
		Type:        schema.CorrelationInsight,
		Priority:    priority,
		Confidence:  clamp(r, 0, 1),
		Title:       fmt.Sprintf("%s %s correlation between %s and %s", capitalize(c.Strength), c.Direction, c.Field1, c.Field2),
		Description: fmt.Sprintf("%s and %s move together with r = %.2f.", c.Field1, c.Field2, c.Correlation),
		Explanation: fmt.Sprintf("The relationship is statistically %s (%s); correlation does not establish causation.", significanceWord(c.PValue), formatPValue(c.PValue)),
		Actionable:  r > 0.6,
		Recommendations: []string{
			"Investigate the mechanism linking the correlated fields before acting on the relationship",
		},
		VisualSuggestion: &schema.VisualSuggestion{
			ChartType: schema.ScatterChart,
			Mapping: schema.FieldMapping{
				schema.RoleX: c.Field1,
				schema.RoleY: c.Field2,
			},
		},
	}
}

// qualityInsights runs the dataset-level checks that do not depend on
// external detectors: sample size and per-field missing rates.
func qualityInsights(rows []schema.Row) []schema.DataInsight {
	var out []schema.DataInsight
	rowCount := len(rows)

	if rowCount < smallSampleWarning {
		out = append(out, schema.DataInsight{
			ID:          insightID("small-sample", fmt.Sprintf("%d", rowCount)),
			Type:        schema.SummaryInsight,
			Priority:    schema.MediumPriority,
			Confidence:  0.9,
			Title:       "Small sample size",
			Description: fmt.Sprintf("Only %d rows are available; findings may not generalize.", rowCount),
			Explanation: fmt.Sprintf("Statistical patterns need roughly %d observations to stabilize.", smallSampleWarning),
			Actionable:  true,
			Recommendations: []string{
				"Collect more observations before drawing firm conclusions",
			},
		})
	}

	if rowCount == 0 {
		return out
	}

	s := InferSchema(rows)
	var affected []string
	for _, f := range s.Fields {
		rate := float64(f.Statistics.NullCount) / float64(rowCount)
		if rate > missingRateWarning {
			affected = append(affected, f.Name)
		}
	}
	if len(affected) > 0 {
		out = append(out, schema.DataInsight{
			ID:          insightID("missing-data", strings.Join(affected, ",")),
			Type:        schema.SummaryInsight,
			Priority:    schema.MediumPriority,
			Confidence:  0.9,
			Title:       "Missing data detected",
			Description: fmt.Sprintf("Fields with more than %.0f%% missing values: %s.", missingRateWarning*100, strings.Join(affected, ", ")),
			Explanation: "High missing rates bias statistics computed over the remaining values.",
			Actionable:  true,
			Recommendations: []string{
				"Address missing values through imputation or removal before deeper analysis",
			},
		})
	}
	return out
}

// nextStepsInsight synthesizes a combined recommendation when at least
// one confident trend, strong correlation or anomaly is present.
func nextStepsInsight(patterns *schema.PatternResult, correlations *schema.CorrelationResult) (schema.DataInsight, bool) {
	var recs []string

	for _, t := range patterns.Trends {
		if t.Confidence > 0.7 {
			recs = append(recs, "Extend the analysis window to confirm the detected trend holds")
			break
		}
	}
	for _, c := range correlations.Correlations {
		if math.Abs(c.Correlation) > 0.6 {
			recs = append(recs, "Design a controlled comparison to test the strongest correlation")
			break
		}
	}
	if len(patterns.Anomalies) > 0 {
		recs = append(recs, "Audit the flagged anomalies against source records")
	}

	if len(recs) == 0 {
		return schema.DataInsight{}, false
	}

	return schema.DataInsight{
		ID:              insightID("next-steps", strings.Join(recs, ";")),
		Type:            schema.RecommendationInsight,
		Priority:        schema.MediumPriority,
		Confidence:      0.7,
		Title:           "Suggested next steps",
		Description:     "The detected patterns suggest concrete follow-up analysis.",
		Explanation:     "Combining trend, correlation and anomaly signals gives a prioritized plan for what to examine next.",
		Actionable:      true,
		Recommendations: recs,
	}, true
}

// executiveSummary counts insights per category and appends the highest
// priority finding as the key finding clause.
func executiveSummary(insights []schema.DataInsight) string {
	if len(insights) == 0 {
		return "The dataset shows stable patterns with no significant trends, anomalies, or correlations."
	}

	counts := map[schema.InsightType]int{}
	for _, in := range insights {
		counts[in.Type]++
	}

	var parts []string
	if c := counts[schema.TrendInsight]; c > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", c, plural(c, "trend")))
	}
	if c := counts[schema.AnomalyInsight]; c > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", c, plural(c, "anomaly")))
	}
	if c := counts[schema.CorrelationInsight]; c > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", c, plural(c, "correlation")))
	}
	if c := counts[schema.SummaryInsight]; c > 0 {
		parts = append(parts, fmt.Sprintf("%d data quality %s", c, plural(c, "note")))
	}

	summary := "Analysis identified " + joinWithAnd(parts) + "."
	// Insights are already priority-sorted, so the first is the key finding.
	summary += fmt.Sprintf(" Key finding: %s.", insights[0].Title)
	return summary
}

func keyTakeaways(insights []schema.DataInsight) []string {
	out := make([]string, 0, maxKeyTakeaways)
	for _, in := range insights {
		out = append(out, in.Title)
		if len(out) == maxKeyTakeaways {
			break
		}
	}
	return out
}

// collectRecommendations gathers recommendation texts across insights,
// deduplicated in encounter order, capped at 8.
func collectRecommendations(insights []schema.DataInsight) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, maxRecommendationTexts)
	for _, in := range insights {
		for _, r := range in.Recommendations {
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
			if len(out) == maxRecommendationTexts {
				return out
			}
		}
	}
	return out
}

func meanInsightConfidence(insights []schema.DataInsight) float64 {
	if len(insights) == 0 {
		return 0
	}
	var sum float64
	for _, in := range insights {
		sum += in.Confidence
	}
	return sum / float64(len(insights))
}

// dataQualityScore folds sample size, detected structure and the
// anomaly rate into a single [0.1, 1.0] score.
func dataQualityScore(patterns *schema.PatternResult, correlations *schema.CorrelationResult, rowCount int) float64 {
	score := 1.0
	if rowCount < smallSampleWarning {
		score *= 0.8
		if rowCount < 10 {
			score *= 0.6
		}
	}
	if len(patterns.Trends) > 0 {
		score += 0.1
	}
	if patterns.Seasonality != nil && patterns.Seasonality.Detected {
		score += 0.1
	}
	if len(correlations.Correlations) > 0 {
		score += 0.1
	}
	if rowCount > 0 {
		rate := float64(len(patterns.Anomalies)) / float64(rowCount)
		switch {
		case rate > 0.2:
			score *= 0.8
		case rate > 0.1:
			score *= 0.9
		}
	}
	return clamp(score, 0.1, 1.0)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") {
		return word[:len(word)-1] + "ies"
	}
	return word + "s"
}

func joinWithAnd(parts []string) string {
	switch len(parts) {
	case 0:
		return "no findings"
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}

// formatPValue renders a p-value the way analysts expect to read it.
func formatPValue(p float64) string {
	if p < 0.001 {
		return "p < 0.001"
	}
	return fmt.Sprintf("p = %.3f", p)
}

func significanceWord(p float64) string {
	switch {
	case p < 0.01:
		return "significant at the 1% level"
	case p < 0.05:
		return "significant at the 5% level"
	default:
		return "not significant at conventional levels"
	}
}
