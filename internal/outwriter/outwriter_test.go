package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSchema builds a small two-field schema for output tests.
func testSchema() *schema.DataSchema {
	return &schema.DataSchema{
		RowCount:    100,
		ColumnCount: 2,
		Fields: []schema.FieldSchema{
			{
				Name:     "region",
				DataType: schema.CategoricalType,
				Nullable: false,
				Unique:   false,
				Examples: []string{"north", "south"},
				Statistics: schema.FieldStatistics{
					Count:       100,
					NullCount:   0,
					UniqueCount: 4,
					Categorical: &schema.DistributionStats{
						Mode: "north",
						Distribution: []schema.ValueCount{
							{Value: "north", Count: 40, Percentage: 40.0},
						},
					},
				},
			},
			{
				Name:     "sales",
				DataType: schema.NumericType,
				Nullable: true,
				Unique:   false,
				Examples: []string{"10", "20"},
				Statistics: schema.FieldStatistics{
					Count:       95,
					NullCount:   5,
					UniqueCount: 80,
					Numeric: &schema.NumericStats{
						Min:    1,
						Max:    99,
						Mean:   50,
						Median: 49,
						StdDev: 28.5,
					},
				},
			},
		},
	}
}

func testRecommendations() *schema.RecommendationOutput {
	ds := testSchema()
	return &schema.RecommendationOutput{
		Schema: *ds,
		Recommendations: []schema.ChartRecommendation{
			{
				ChartType:  schema.BarChart,
				Confidence: 0.9,
				Reasoning:  "Categorical field with numeric values",
				SuggestedMapping: schema.FieldMapping{
					schema.RoleX: "region",
					schema.RoleY: "sales",
				},
				BestFor:  "Comparing values across categories",
				Priority: schema.HighPriority,
			},
			{
				ChartType:  schema.PieChart,
				Confidence: 0.55,
				Reasoning:  "Few categories",
				SuggestedMapping: schema.FieldMapping{
					schema.RoleCategory: "region",
					schema.RoleValue:    "sales",
				},
				BestFor:  "Showing proportions",
				Priority: schema.MediumPriority,
			},
		},
	}
}

func testInsights() *schema.InsightOutput {
	ds := testSchema()
	return &schema.InsightOutput{
		Schema: *ds,
		Result: schema.InsightGenerationResult{
			Insights: []schema.DataInsight{
				{
					ID:          "abc-123",
					Type:        schema.TrendInsight,
					Priority:    schema.CriticalPriority,
					Confidence:  0.95,
					Title:       "Strong increasing trend detected",
					Description: "Values rise consistently over the observed range.",
					Actionable:  true,
				},
				{
					ID:          "def-456",
					Type:        schema.SummaryInsight,
					Priority:    schema.LowPriority,
					Confidence:  0.5,
					Title:       "Small sample size",
					Description: "The dataset is small.",
					Actionable:  false,
				},
			},
			ExecutiveSummary: "Analysis found 1 trend.",
			KeyTakeaways:     []string{"Strong increasing trend detected"},
			Recommendations:  []string{"Use a line chart to show the trend"},
			Confidence:       0.725,
			DataQualityScore: 0.9,
		},
	}
}

func textConfig(outputFile string) *contract.Config {
	return &contract.Config{
		Precision:       2,
		Output:          schema.TextOut,
		OutputFile:      outputFile,
		Width:           120,
		AnalysisBackend: schema.NoneBackend,
	}
}

func TestGetMaxTableTextWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{
			name:     "narrow terminal clamps to minimum",
			width:    70,
			expected: 20,
		},
		{
			name:     "medium terminal",
			width:    100,
			expected: 35,
		},
		{
			name:     "wide terminal clamps to maximum",
			width:    200,
			expected: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, GetMaxTableTextWidth(cfg))
		})
	}
}

func TestGetMaxTableTextWidthAutoDetect(t *testing.T) {
	// Without an override the result depends on the terminal, but it
	// always stays within the clamp range.
	cfg := &contract.Config{Width: 0}
	got := GetMaxTableTextWidth(cfg)
	assert.GreaterOrEqual(t, got, 20)
	assert.LessOrEqual(t, got, 80)
}

func TestFieldSummary(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	tests := []struct {
		name     string
		field    schema.FieldSchema
		expected string
	}{
		{
			name: "numeric field",
			field: schema.FieldSchema{
				Statistics: schema.FieldStatistics{
					Numeric: &schema.NumericStats{Min: 1, Max: 9, Mean: 5, Median: 4.5},
				},
			},
			expected: "min 1.00, max 9.00, mean 5.00, median 4.50",
		},
		{
			name: "datetime field",
			field: schema.FieldSchema{
				Statistics: schema.FieldStatistics{
					Datetime: &schema.DatetimeStats{
						Min: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
						Max: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
					},
				},
			},
			expected: "2024-01-01T00:00:00Z to 2024-06-01T00:00:00Z",
		},
		{
			name: "categorical field with mode",
			field: schema.FieldSchema{
				Statistics: schema.FieldStatistics{
					UniqueCount: 4,
					Categorical: &schema.DistributionStats{Mode: "north"},
				},
			},
			expected: `mode "north" over 4 values`,
		},
		{
			name: "categorical field without mode",
			field: schema.FieldSchema{
				Statistics: schema.FieldStatistics{
					Categorical: &schema.DistributionStats{},
				},
			},
			expected: "",
		},
		{
			name:     "no typed section",
			field:    schema.FieldSchema{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fieldSummary(&tt.field, fmtFloat))
		})
	}
}

func TestPrintSchemaText(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "schema.txt")
	cfg := textConfig(tmpFile)

	err := PrintSchema(testSchema(), cfg, 5*time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	out := string(content)
	assert.Contains(t, out, "region")
	assert.Contains(t, out, "sales")
	assert.Contains(t, out, "Inferred 2 fields from 100 rows")
}

func TestPrintSchemaJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "schema.json")
	cfg := textConfig(tmpFile)
	cfg.Output = schema.JSONOut

	err := PrintSchema(testSchema(), cfg, time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var parsed schema.DataSchema
	require.NoError(t, json.Unmarshal(content, &parsed))
	assert.Equal(t, 100, parsed.RowCount)
	require.Len(t, parsed.Fields, 2)
	assert.Equal(t, "region", parsed.Fields[0].Name)
}

func TestPrintSchemaCSV(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "schema.csv")
	cfg := textConfig(tmpFile)
	cfg.Output = schema.CSVOut

	err := PrintSchema(testSchema(), cfg, time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3) // header + 2 fields
	assert.Equal(t, "field,type,nullable,unique,count,null_count,unique_count,examples", lines[0])
	assert.Contains(t, lines[1], "region,categorical,false,false,100,0,4")
	assert.Contains(t, lines[2], "sales,numeric,true,false,95,5,80")
}

func TestPrintSchemaParquetRequiresFile(t *testing.T) {
	cfg := textConfig("")
	cfg.Output = schema.ParquetOut

	err := PrintSchema(testSchema(), cfg, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file is required")
}

func TestPrintRecommendationsText(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "recs.txt")
	cfg := textConfig(tmpFile)

	err := PrintRecommendations(testRecommendations(), cfg, time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	out := string(content)
	assert.Contains(t, out, "bar")
	assert.Contains(t, out, "pie")
	assert.Contains(t, out, "Showing top 2 charts for 2 fields across 100 rows")
}

func TestPrintRecommendationsJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "recs.json")
	cfg := textConfig(tmpFile)
	cfg.Output = schema.JSONOut

	err := PrintRecommendations(testRecommendations(), cfg, time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var parsed struct {
		Schema          schema.DataSchema `json:"schema"`
		Recommendations []map[string]any  `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(content, &parsed))
	require.Len(t, parsed.Recommendations, 2)

	// Ranks are sequential and labels derived from confidence
	assert.Equal(t, float64(1), parsed.Recommendations[0]["rank"])
	assert.Equal(t, "Strong", parsed.Recommendations[0]["label"])
	assert.Equal(t, "bar", parsed.Recommendations[0]["chartType"])
	assert.Equal(t, float64(2), parsed.Recommendations[1]["rank"])
	assert.Equal(t, "Fair", parsed.Recommendations[1]["label"])
}

func TestPrintRecommendationsCSV(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "recs.csv")
	cfg := textConfig(tmpFile)
	cfg.Output = schema.CSVOut

	err := PrintRecommendations(testRecommendations(), cfg, time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "rank")
	assert.Contains(t, lines[0], "mapping")
	assert.Contains(t, lines[1], "bar")
	assert.Contains(t, lines[1], "0.90")
	assert.Contains(t, lines[1], "x:region, y:sales")
}

func TestPrintInsightsText(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "insights.txt")
	cfg := textConfig(tmpFile)
	cfg.UseEmojis = true

	err := PrintInsights(testInsights(), cfg, time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	out := string(content)
	assert.Contains(t, out, "Executive Summary")
	assert.Contains(t, out, "Analysis found 1 trend.")
	assert.Contains(t, out, "Key Takeaways")
	assert.Contains(t, out, "Recommended Actions")
	assert.Contains(t, out, "Generated 2 insights")
}

func TestPrintInsightsJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "insights.json")
	cfg := textConfig(tmpFile)
	cfg.Output = schema.JSONOut

	err := PrintInsights(testInsights(), cfg, time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var parsed schema.InsightOutput
	require.NoError(t, json.Unmarshal(content, &parsed))
	require.Len(t, parsed.Result.Insights, 2)
	assert.Equal(t, "Strong increasing trend detected", parsed.Result.Insights[0].Title)
	assert.Equal(t, 0.9, parsed.Result.DataQualityScore)
}

func TestPrintInsightsCSV(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "insights.csv")
	cfg := textConfig(tmpFile)
	cfg.Output = schema.CSVOut

	err := PrintInsights(testInsights(), cfg, time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "priority")
	assert.Contains(t, lines[1], "trend")
	assert.Contains(t, lines[1], "critical")
	assert.Contains(t, lines[2], "Small sample size")
}

func TestPrintInsightsParquetRequiresFile(t *testing.T) {
	cfg := textConfig("")
	cfg.Output = schema.ParquetOut

	err := PrintInsights(testInsights(), cfg, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file is required")
}
