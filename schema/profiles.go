package schema

// ChartTypeProfile is the static requirement/preference record for one
// chart type. Profiles are compile-time constants shared across all
// scoring calls; scoring logic stays data-driven so each chart type can
// be tested in isolation.
type ChartTypeProfile struct {
	MinFields      int
	MaxFields      int
	RequiredTypes  []DataType // hard gate: every listed type must be present
	PreferredTypes []DataType // soft bonus per matching type
	TimeSeries     bool       // datetime presence earns an extra bonus

	// Sample-size thresholds for advisory text.
	MinRows         int
	RecommendedRows int

	// Presentation characteristics consumed by the context adjuster.
	CognitiveLoad    Level
	Interpretability Level
	Interactivity    Level
	BusinessValue    Level
	Difficulty       Level // low = beginner, high = advanced

	Pros    []string
	Cons    []string
	BestFor string
}

// MaxPieCategories is the usability ceiling for pie slices; above it the
// reasoning text warns and bar charts should win.
const MaxPieCategories = 7

// ChartProfiles maps every known chart type to its static profile.
var ChartProfiles = map[ChartType]ChartTypeProfile{
	BarChart: {
		MinFields:        2,
		MaxFields:        3,
		RequiredTypes:    []DataType{CategoricalType, NumericType},
		PreferredTypes:   []DataType{CategoricalType, NumericType},
		MinRows:          1,
		RecommendedRows:  5,
		CognitiveLoad:    LowLevel,
		Interpretability: HighLevel,
		Interactivity:    LowLevel,
		BusinessValue:    HighLevel,
		Difficulty:       LowLevel,
		Pros:             []string{"Easy to compare values across categories", "Familiar to all audiences"},
		Cons:             []string{"Weak for continuous change over time", "Crowded beyond ~20 categories"},
		BestFor:          "Comparing aggregated values across a modest number of categories",
	},
	LineChart: {
		MinFields:        2,
		MaxFields:        4,
		RequiredTypes:    []DataType{NumericType},
		PreferredTypes:   []DataType{NumericType},
		TimeSeries:       true,
		MinRows:          3,
		RecommendedRows:  10,
		CognitiveLoad:    LowLevel,
		Interpretability: HighLevel,
		Interactivity:    MediumLevel,
		BusinessValue:    HighLevel,
		Difficulty:       LowLevel,
		Pros:             []string{"Shows trends and change over time", "Handles many points cleanly"},
		Cons:             []string{"Needs an ordered x axis to be meaningful"},
		BestFor:          "Tracking one or more measures over an ordered dimension",
	},
	AreaChart: {
		MinFields:        2,
		MaxFields:        4,
		RequiredTypes:    []DataType{NumericType},
		PreferredTypes:   []DataType{NumericType},
		TimeSeries:       true,
		MinRows:          3,
		RecommendedRows:  10,
		CognitiveLoad:    MediumLevel,
		Interpretability: MediumLevel,
		Interactivity:    MediumLevel,
		BusinessValue:    MediumLevel,
		Difficulty:       LowLevel,
		Pros:             []string{"Emphasizes cumulative magnitude over time"},
		Cons:             []string{"Overlapping series can hide each other"},
		BestFor:          "Showing magnitude of change over an ordered dimension",
	},
	PieChart: {
		MinFields:        2,
		MaxFields:        2,
		RequiredTypes:    []DataType{CategoricalType, NumericType},
		PreferredTypes:   []DataType{CategoricalType},
		MinRows:          1,
		RecommendedRows:  3,
		CognitiveLoad:    LowLevel,
		Interpretability: MediumLevel,
		Interactivity:    LowLevel,
		BusinessValue:    MediumLevel,
		Difficulty:       LowLevel,
		Pros:             []string{"Intuitive part-to-whole reading"},
		Cons:             []string{"Hard to compare similar slices", "Unusable beyond a handful of categories"},
		BestFor:          "Part-to-whole proportions across few categories",
	},
	ScatterChart: {
		MinFields:        2,
		MaxFields:        4,
		RequiredTypes:    []DataType{NumericType, NumericType},
		PreferredTypes:   []DataType{NumericType, CategoricalType},
		MinRows:          10,
		RecommendedRows:  30,
		CognitiveLoad:    MediumLevel,
		Interpretability: MediumLevel,
		Interactivity:    HighLevel,
		BusinessValue:    HighLevel,
		Difficulty:       MediumLevel,
		Pros:             []string{"Reveals correlation, clusters and outliers"},
		Cons:             []string{"Overplotting on very large datasets"},
		BestFor:          "Exploring the relationship between two numeric measures",
	},
	HistogramChart: {
		MinFields:        1,
		MaxFields:        2,
		RequiredTypes:    []DataType{NumericType},
		PreferredTypes:   []DataType{NumericType},
		MinRows:          10,
		RecommendedRows:  50,
		CognitiveLoad:    MediumLevel,
		Interpretability: MediumLevel,
		Interactivity:    LowLevel,
		BusinessValue:    MediumLevel,
		Difficulty:       MediumLevel,
		Pros:             []string{"Shows distribution shape, skew and modality"},
		Cons:             []string{"Bin choice changes the story", "Misleading on small samples"},
		BestFor:          "Understanding the distribution of a single numeric field",
	},
	BoxplotChart: {
		MinFields:        1,
		MaxFields:        2,
		RequiredTypes:    []DataType{NumericType},
		PreferredTypes:   []DataType{NumericType, CategoricalType},
		MinRows:          5,
		RecommendedRows:  20,
		CognitiveLoad:    HighLevel,
		Interpretability: MediumLevel,
		Interactivity:    LowLevel,
		BusinessValue:    MediumLevel,
		Difficulty:       HighLevel,
		Pros:             []string{"Compact five-number summary", "Good for group comparison"},
		Cons:             []string{"Requires statistical literacy to read"},
		BestFor:          "Comparing distributions and spotting outliers across groups",
	},
	HeatmapChart: {
		MinFields:        3,
		MaxFields:        3,
		RequiredTypes:    []DataType{CategoricalType, CategoricalType, NumericType},
		PreferredTypes:   []DataType{CategoricalType, NumericType},
		MinRows:          4,
		RecommendedRows:  20,
		CognitiveLoad:    HighLevel,
		Interpretability: MediumLevel,
		Interactivity:    HighLevel,
		BusinessValue:    MediumLevel,
		Difficulty:       HighLevel,
		Pros:             []string{"Dense overview of a two-way relationship"},
		Cons:             []string{"Color scales are easy to misread"},
		BestFor:          "Showing intensity across two categorical dimensions",
	},

	// Profiles below describe chart kinds the scorer does not rank yet;
	// downstream renderers still consult them.
	BubbleChart: {
		MinFields:        3,
		MaxFields:        4,
		RequiredTypes:    []DataType{NumericType, NumericType, NumericType},
		PreferredTypes:   []DataType{NumericType, CategoricalType},
		MinRows:          10,
		RecommendedRows:  30,
		CognitiveLoad:    HighLevel,
		Interpretability: LowLevel,
		Interactivity:    HighLevel,
		BusinessValue:    MediumLevel,
		Difficulty:       HighLevel,
		Pros:             []string{"Encodes a third measure via size"},
		Cons:             []string{"Size comparisons are imprecise"},
		BestFor:          "Three-way numeric relationships",
	},
	RadarChart: {
		MinFields:        3,
		MaxFields:        8,
		RequiredTypes:    []DataType{NumericType, NumericType, NumericType},
		PreferredTypes:   []DataType{NumericType},
		MinRows:          1,
		RecommendedRows:  5,
		CognitiveLoad:    HighLevel,
		Interpretability: LowLevel,
		Interactivity:    MediumLevel,
		BusinessValue:    LowLevel,
		Difficulty:       HighLevel,
		Pros:             []string{"Profiles entities across many dimensions"},
		Cons:             []string{"Axis order changes perceived shape"},
		BestFor:          "Multi-dimensional comparison of a few entities",
	},
	TreemapChart: {
		MinFields:        2,
		MaxFields:        3,
		RequiredTypes:    []DataType{CategoricalType, NumericType},
		PreferredTypes:   []DataType{CategoricalType},
		MinRows:          3,
		RecommendedRows:  10,
		CognitiveLoad:    MediumLevel,
		Interpretability: MediumLevel,
		Interactivity:    HighLevel,
		BusinessValue:    MediumLevel,
		Difficulty:       MediumLevel,
		Pros:             []string{"Part-to-whole for many categories"},
		Cons:             []string{"Area comparisons are approximate"},
		BestFor:          "Hierarchical part-to-whole with many categories",
	},
}

// ImplementedChartTypes lists the chart types the scorer ranks, in the
// order used to break confidence ties. Keep this order stable: repeated
// calls on identical input must produce identical output.
var ImplementedChartTypes = []ChartType{
	BarChart,
	LineChart,
	AreaChart,
	PieChart,
	ScatterChart,
	HistogramChart,
	BoxplotChart,
	HeatmapChart,
}

// SimpleChartTypes are low-difficulty charts that any audience reads
// without guidance. Used by the priority decision table.
var SimpleChartTypes = map[ChartType]struct{}{
	BarChart:  {},
	LineChart: {},
	PieChart:  {},
}

// AnalyticalChartTypes reward a technical audience in the priority
// decision table.
var AnalyticalChartTypes = map[ChartType]struct{}{
	ScatterChart:   {},
	HistogramChart: {},
	BoxplotChart:   {},
	HeatmapChart:   {},
}
