package schema

// RecommendationOutput bundles the inferred schema with the ranked
// recommendations produced from it.
type RecommendationOutput struct {
	Schema          DataSchema            `json:"schema"`
	Recommendations []ChartRecommendation `json:"recommendations"`
}

// InsightOutput bundles the inferred schema with the synthesized
// insight result produced from it.
type InsightOutput struct {
	Schema DataSchema              `json:"schema"`
	Result InsightGenerationResult `json:"result"`
}
