package schema

// TrendResult is one externally detected trend. Strength is expected to
// be "strong", "moderate" or "weak"; Direction "increasing",
// "decreasing" or "stable".
type TrendResult struct {
	Field      string  `json:"field,omitempty" yaml:"field"`
	Direction  string  `json:"direction" yaml:"direction"`
	Strength   string  `json:"strength" yaml:"strength"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	RSquared   float64 `json:"rSquared" yaml:"rSquared"`
	Slope      float64 `json:"slope,omitempty" yaml:"slope"`
}

// SeasonalityResult is an externally detected repeating cycle.
type SeasonalityResult struct {
	Detected bool    `json:"detected" yaml:"detected"`
	Period   int     `json:"period,omitempty" yaml:"period"`
	Strength float64 `json:"strength,omitempty" yaml:"strength"`
}

// AnomalyResult is one externally detected outlier observation.
// Severity is expected to be "severe", "moderate" or "mild".
type AnomalyResult struct {
	Field    string  `json:"field,omitempty" yaml:"field"`
	Index    int     `json:"index" yaml:"index"`
	Value    float64 `json:"value" yaml:"value"`
	Expected float64 `json:"expected" yaml:"expected"`
	Severity string  `json:"severity" yaml:"severity"`
}

// PatternResult is the trend-detection payload supplied per analysis run
// by an external detector.
type PatternResult struct {
	Trends      []TrendResult      `json:"trends" yaml:"trends"`
	Seasonality *SeasonalityResult `json:"seasonality,omitempty" yaml:"seasonality"`
	Anomalies   []AnomalyResult    `json:"anomalies" yaml:"anomalies"`
}

// Correlation is one externally discovered pairwise relationship.
type Correlation struct {
	Field1      string  `json:"field1" yaml:"field1"`
	Field2      string  `json:"field2" yaml:"field2"`
	Correlation float64 `json:"correlation" yaml:"correlation"`
	PValue      float64 `json:"pValue" yaml:"pValue"`
	Strength    string  `json:"strength" yaml:"strength"`
	Direction   string  `json:"direction" yaml:"direction"`
}

// CorrelationResult is the correlation-discovery payload supplied per
// analysis run by an external detector.
type CorrelationResult struct {
	Correlations []Correlation `json:"correlations" yaml:"correlations"`
}

// DataPoint records one traceable observation referenced by an insight.
type DataPoint struct {
	Label    string  `json:"label,omitempty"`
	Index    int     `json:"index"`
	Value    float64 `json:"value"`
	Expected float64 `json:"expected,omitempty"`
}

// VisualSuggestion names a chart and field mapping that would surface an
// insight visually.
type VisualSuggestion struct {
	ChartType ChartType    `json:"chartType"`
	Mapping   FieldMapping `json:"mapping,omitempty"`
}

// DataInsight is one synthesized analytical finding. The closed set of
// insight kinds shares this envelope and is discriminated by Type.
type DataInsight struct {
	ID               string            `json:"id"`
	Type             InsightType       `json:"type"`
	Priority         Priority          `json:"priority"`
	Confidence       float64           `json:"confidence"` // 0..1
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Explanation      string            `json:"explanation"`
	Actionable       bool              `json:"actionable"`
	Recommendations  []string          `json:"recommendations,omitempty"`
	DataPoints       []DataPoint       `json:"dataPoints,omitempty"`
	VisualSuggestion *VisualSuggestion `json:"visualSuggestion,omitempty"`
}

// InsightGenerationResult is the full output of one synthesis call.
// Built once per analysis and immutable afterwards.
type InsightGenerationResult struct {
	Insights         []DataInsight `json:"insights"` // sorted by (priority, confidence) desc
	ExecutiveSummary string        `json:"executiveSummary"`
	KeyTakeaways     []string      `json:"keyTakeaways"`    // up to 5 titles
	Recommendations  []string      `json:"recommendations"` // up to 8, deduplicated
	Confidence       float64       `json:"confidence"`      // mean of insight confidences
	DataQualityScore float64       `json:"dataQualityScore"` // 0.1..1.0
}
