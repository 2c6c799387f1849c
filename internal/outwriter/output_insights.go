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

// PrintInsights outputs synthesized insights, dispatching based on the output format configured.
func PrintInsights(output *schema.InsightOutput, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printInsightsJSON(output, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printInsightsCSV(output, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printInsightsParquet(output, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable report
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeInsightReport(output, cfg, fmtFloat, duration, w)
		}, "Wrote report")
	}
	return nil
}

// printInsightsJSON handles opening the file and calling the JSON writer.
func printInsightsJSON(output *schema.InsightOutput, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// printInsightsCSV handles opening the file and calling the CSV writer.
func printInsightsCSV(output *schema.InsightOutput, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"rank",
			"id",
			"type",
			"priority",
			"confidence",
			"label",
			"title",
			"description",
			"actionable",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, in := range output.Result.Insights {
				row := []string{
					strconv.Itoa(i + 1),                   // Rank
					in.ID,                                 // Deterministic ID
					string(in.Type),                       // Insight kind
					string(in.Priority),                   // Priority tier
					fmtFloat(in.Confidence),               // Confidence
					contract.GetPlainLabel(in.Confidence), // Confidence label
					in.Title,                              // Headline
					in.Description,                        // Full finding
					strconv.FormatBool(in.Actionable),     // Actionable
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// printInsightsParquet flattens the insights and writes them to a Parquet file.
func printInsightsParquet(output *schema.InsightOutput, cfg *contract.Config) error {
	if err := requireParquetFile(cfg); err != nil {
		return err
	}

	rows := make([]parquet.InsightRow, 0, len(output.Result.Insights))
	for i, in := range output.Result.Insights {
		rows = append(rows, parquet.InsightRow{
			Rank:        int32(i + 1),
			InsightID:   in.ID,
			InsightType: string(in.Type),
			Priority:    string(in.Priority),
			Confidence:  in.Confidence,
			Title:       in.Title,
			Description: in.Description,
			Actionable:  in.Actionable,
		})
	}

	if err := parquet.WriteInsightRowsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	reportParquetWrite(cfg, len(rows))
	return nil
}

// writeInsightReport generates and writes the human-readable report:
// summary, insight table, takeaways and recommended actions.
func writeInsightReport(output *schema.InsightOutput, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	result := output.Result

	// 1. Executive Summary
	if _, err := fmt.Fprintf(writer, "%s\n%s\n\n", sectionHeading(cfg, "📊", "Executive Summary"), result.ExecutiveSummary); err != nil {
		return err
	}

	// 2. Insight Table
	table := tablewriter.NewWriter(writer)
	headers := []string{"Rank", "Type", "Priority", "Score", "Label", "Title"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxText := GetMaxTableTextWidth(cfg)
	var data [][]string
	for i, in := range output.Result.Insights {
		row := []string{
			strconv.Itoa(i + 1),                 // Rank
			string(in.Type),                     // Insight kind
			priorityLabel(cfg, in.Priority),     // Priority tier
			fmtFloat(in.Confidence),             // Confidence
			confidenceLabel(cfg, in.Confidence), // Confidence label
			contract.TruncateText(in.Title, maxText),
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 3. Key Takeaways
	if len(result.KeyTakeaways) > 0 {
		if _, err := fmt.Fprintf(writer, "\n%s\n", sectionHeading(cfg, "🔑", "Key Takeaways")); err != nil {
			return err
		}
		for _, t := range result.KeyTakeaways {
			if _, err := fmt.Fprintf(writer, "  - %s\n", t); err != nil {
				return err
			}
		}
	}

	// 4. Recommended Actions
	if len(result.Recommendations) > 0 {
		if _, err := fmt.Fprintf(writer, "\n%s\n", sectionHeading(cfg, "💡", "Recommended Actions")); err != nil {
			return err
		}
		for _, r := range result.Recommendations {
			if _, err := fmt.Fprintf(writer, "  - %s\n", r); err != nil {
				return err
			}
		}
	}

	// 5. Summary Stats
	if _, err := fmt.Fprintf(writer, "\nGenerated %d insights (confidence %s, data quality %s)\n",
		len(result.Insights), fmtFloat(result.Confidence), fmtFloat(result.DataQualityScore)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Insight generation completed in %v. Analysis backend: %s\n", duration, cfg.AnalysisBackend); err != nil {
		return err
	}
	return nil
}
