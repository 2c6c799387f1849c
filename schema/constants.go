package schema

// Custom string types for type safety.
type (
	// DataType represents the inferred semantic kind of a column.
	DataType string

	// ChartType represents a supported chart kind.
	ChartType string

	// VisualRole represents a visual encoding slot a field can fill.
	VisualRole string

	// Priority represents a discrete importance tier.
	Priority string

	// InsightType represents the kind of an analytical finding.
	InsightType string

	// Level represents a coarse low/medium/high rating.
	Level string

	// Audience represents the consumers of a presentation.
	Audience string

	// Purpose represents the intent behind a presentation.
	Purpose string

	// Emphasis represents what a presentation should stress.
	Emphasis string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string

	// DataFormat represents the on-disk format of an input dataset.
	DataFormat string
)

// All data types supported by schema inference.
const (
	NumericType     DataType = "numeric"
	CategoricalType DataType = "categorical"
	DatetimeType    DataType = "datetime"
	TextType        DataType = "text" // default/fallback
	BooleanType     DataType = "boolean"
)

// All chart types known to the profile table. Only the ones listed in
// ImplementedChartTypes are scored; the rest exist so profile data stays
// complete for downstream renderers.
const (
	BarChart       ChartType = "bar"
	LineChart      ChartType = "line"
	AreaChart      ChartType = "area"
	PieChart       ChartType = "pie"
	ScatterChart   ChartType = "scatter"
	HistogramChart ChartType = "histogram"
	BoxplotChart   ChartType = "boxplot"
	HeatmapChart   ChartType = "heatmap"
	BubbleChart    ChartType = "bubble"
	RadarChart     ChartType = "radar"
	TreemapChart   ChartType = "treemap"
)

// All visual roles a field can be mapped onto.
const (
	RoleX        VisualRole = "x"
	RoleY        VisualRole = "y"
	RoleColor    VisualRole = "color"
	RoleSize     VisualRole = "size"
	RoleGroup    VisualRole = "group"
	RoleValue    VisualRole = "value"
	RoleCategory VisualRole = "category"
	RoleTime     VisualRole = "time"
)

// All priority tiers, highest first.
const (
	CriticalPriority Priority = "critical"
	HighPriority     Priority = "high"
	MediumPriority   Priority = "medium"
	LowPriority      Priority = "low"
)

// All insight types.
const (
	TrendInsight          InsightType = "trend"
	AnomalyInsight        InsightType = "anomaly"
	CorrelationInsight    InsightType = "correlation"
	PatternInsight        InsightType = "pattern"
	RecommendationInsight InsightType = "recommendation"
	SummaryInsight        InsightType = "summary"
)

// Coarse ratings used in chart profiles.
const (
	LowLevel    Level = "low"
	MediumLevel Level = "medium"
	HighLevel   Level = "high"
)

// All audiences supported by the context adjuster.
const (
	GeneralAudience   Audience = "general"
	TechnicalAudience Audience = "technical"
	ExecutiveAudience Audience = "executive"
)

// All purposes supported by the context adjuster.
const (
	PresentationPurpose Purpose = "presentation"
	ExplorationPurpose  Purpose = "exploration"
	ReportPurpose       Purpose = "report"
)

// All emphases supported by the context adjuster.
const (
	ClarityEmphasis  Emphasis = "clarity"
	InsightsEmphasis Emphasis = "insights"
	DetailEmphasis   Emphasis = "detail"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run-tracking backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All input dataset formats supported.
const (
	AutoFormat DataFormat = "auto" // detect from file extension
	CSVFormat  DataFormat = "csv"
	JSONFormat DataFormat = "json"
)

// priorityRank orders priorities for sorting; higher rank sorts first.
var priorityRank = map[Priority]int{
	CriticalPriority: 3,
	HighPriority:     2,
	MediumPriority:   1,
	LowPriority:      0,
}

// PriorityRank returns the numeric rank of a priority tier.
// Unknown tiers rank below low.
func PriorityRank(p Priority) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return -1
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid run-tracking backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidVisualRoles lists all valid visual roles.
var ValidVisualRoles = map[VisualRole]struct{}{
	RoleX:        {},
	RoleY:        {},
	RoleColor:    {},
	RoleSize:     {},
	RoleGroup:    {},
	RoleValue:    {},
	RoleCategory: {},
	RoleTime:     {},
}

// ValidDataFormats lists all valid input dataset formats.
var ValidDataFormats = map[DataFormat]struct{}{
	AutoFormat: {},
	CSVFormat:  {},
	JSONFormat: {},
}

// ValidAudiences lists all valid audiences.
var ValidAudiences = map[Audience]struct{}{
	GeneralAudience:   {},
	TechnicalAudience: {},
	ExecutiveAudience: {},
}

// ValidPurposes lists all valid purposes.
var ValidPurposes = map[Purpose]struct{}{
	PresentationPurpose: {},
	ExplorationPurpose:  {},
	ReportPurpose:       {},
}

// ValidEmphases lists all valid emphases.
var ValidEmphases = map[Emphasis]struct{}{
	ClarityEmphasis:  {},
	InsightsEmphasis: {},
	DetailEmphasis:   {},
}
