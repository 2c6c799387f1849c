package parquet

// SchemaField is one inferred column flattened for Parquet output.
type SchemaField struct {
	FieldName   string `parquet:"field_name,snappy"`
	DataType    string `parquet:"data_type,snappy"`
	Nullable    bool   `parquet:"nullable,snappy"`
	Unique      bool   `parquet:"unique,snappy"`
	Count       int32  `parquet:"count,snappy"`
	NullCount   int32  `parquet:"null_count,snappy"`
	UniqueCount int32  `parquet:"unique_count,snappy"`
	Examples    string `parquet:"examples,snappy"`
}

// ChartSuggestion is one ranked chart recommendation flattened for
// Parquet output.
type ChartSuggestion struct {
	Rank       int32   `parquet:"rank,snappy"`
	ChartType  string  `parquet:"chart_type,snappy"`
	Confidence float64 `parquet:"confidence,snappy"`
	Label      string  `parquet:"label,snappy"`
	Priority   string  `parquet:"priority,snappy"`
	Reasoning  string  `parquet:"reasoning,snappy"`
	Mapping    string  `parquet:"mapping,snappy"`
	BestFor    string  `parquet:"best_for,snappy"`
}

// InsightRow is one synthesized insight flattened for Parquet output.
type InsightRow struct {
	Rank        int32   `parquet:"rank,snappy"`
	InsightID   string  `parquet:"insight_id,snappy"`
	InsightType string  `parquet:"insight_type,snappy"`
	Priority    string  `parquet:"priority,snappy"`
	Confidence  float64 `parquet:"confidence,snappy"`
	Title       string  `parquet:"title,snappy"`
	Description string  `parquet:"description,snappy"`
	Actionable  bool    `parquet:"actionable,snappy"`
}

// WriteSchemaFieldsParquet writes a slice of SchemaField structs to a Parquet file.
func WriteSchemaFieldsParquet(data []SchemaField, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteChartSuggestionsParquet writes a slice of ChartSuggestion structs to a Parquet file.
func WriteChartSuggestionsParquet(data []ChartSuggestion, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteInsightRowsParquet writes a slice of InsightRow structs to a Parquet file.
func WriteInsightRowsParquet(data []InsightRow, outputPath string) error {
	return writeParquet(data, outputPath)
}
