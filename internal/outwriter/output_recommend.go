package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/internal/parquet"
	"github.com/plotsense/plotsense/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRecommendations outputs ranked chart recommendations, dispatching based on the output format configured.
func PrintRecommendations(output *schema.RecommendationOutput, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printRecommendationsJSON(output, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printRecommendationsCSV(output, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printRecommendationsParquet(output, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecommendationTable(output, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// printRecommendationsJSON handles opening the file and calling the JSON writer.
func printRecommendationsJSON(output *schema.RecommendationOutput, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeRecommendationsJSON(w, output)
	}, "Wrote JSON")
}

// printRecommendationsCSV handles opening the file and calling the CSV writer.
func printRecommendationsCSV(output *schema.RecommendationOutput, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"rank",
			"chart",
			"confidence",
			"label",
			"priority",
			"mapping",
			"reasoning",
			"best_for",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, rec := range output.Recommendations {
				row := []string{
					strconv.Itoa(i + 1),                     // Rank
					string(rec.ChartType),                   // Chart kind
					fmtFloat(rec.Confidence),                // Adjusted score
					contract.GetPlainLabel(rec.Confidence),  // Fitness label
					string(rec.Priority),                    // Priority tier
					schema.FormatMapping(rec.SuggestedMapping), // Role assignment
					rec.Reasoning,                           // Justification
					rec.BestFor,                             // Ideal use case
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// printRecommendationsParquet flattens the recommendations and writes them to a Parquet file.
func printRecommendationsParquet(output *schema.RecommendationOutput, cfg *contract.Config) error {
	if err := requireParquetFile(cfg); err != nil {
		return err
	}

	rows := make([]parquet.ChartSuggestion, 0, len(output.Recommendations))
	for i, rec := range output.Recommendations {
		rows = append(rows, parquet.ChartSuggestion{
			Rank:       int32(i + 1),
			ChartType:  string(rec.ChartType),
			Confidence: rec.Confidence,
			Label:      contract.GetPlainLabel(rec.Confidence),
			Priority:   string(rec.Priority),
			Reasoning:  rec.Reasoning,
			Mapping:    schema.FormatMapping(rec.SuggestedMapping),
			BestFor:    rec.BestFor,
		})
	}

	if err := parquet.WriteChartSuggestionsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	reportParquetWrite(cfg, len(rows))
	return nil
}

// writeRecommendationTable generates and writes the human-readable table.
func writeRecommendationTable(output *schema.RecommendationOutput, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Chart", "Score", "Label", "Priority", "Mapping", "Reasoning"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxText := GetMaxTableTextWidth(cfg)
	var data [][]string
	for i, rec := range output.Recommendations {
		row := []string{
			strconv.Itoa(i + 1),                  // Rank
			string(rec.ChartType),                // Chart kind
			fmtFloat(rec.Confidence),             // Adjusted score
			confidenceLabel(cfg, rec.Confidence), // Fitness label
			priorityLabel(cfg, rec.Priority),     // Priority tier
			contract.TruncateText(schema.FormatMapping(rec.SuggestedMapping), 30),
			contract.TruncateText(rec.Reasoning, maxText),
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d charts for %d fields across %d rows\n",
		len(output.Recommendations), output.Schema.ColumnCount, output.Schema.RowCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Recommendation completed in %v. Analysis backend: %s\n", duration, cfg.AnalysisBackend); err != nil {
		return err
	}
	return nil
}

// writeRecommendationsJSON writes the recommendations in JSON format.
func writeRecommendationsJSON(w io.Writer, output *schema.RecommendationOutput) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONRecommendation struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.ChartRecommendation
	}

	recs := make([]JSONRecommendation, len(output.Recommendations))
	for i, rec := range output.Recommendations {
		recs[i] = JSONRecommendation{
			Rank:                i + 1,
			Label:               contract.GetPlainLabel(rec.Confidence),
			ChartRecommendation: rec,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, struct {
		Schema          schema.DataSchema    `json:"schema"`
		Recommendations []JSONRecommendation `json:"recommendations"`
	}{
		Schema:          output.Schema,
		Recommendations: recs,
	})
}
