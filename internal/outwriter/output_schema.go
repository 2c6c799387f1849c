package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/internal/parquet"
	"github.com/plotsense/plotsense/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSchema outputs an inferred dataset schema, dispatching based on the output format configured.
func PrintSchema(ds *schema.DataSchema, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printSchemaJSON(ds, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printSchemaCSV(ds, cfg, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printSchemaParquet(ds, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSchemaTable(ds, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// printSchemaJSON handles opening the file and calling the JSON writer.
func printSchemaJSON(ds *schema.DataSchema, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, ds)
	}, "Wrote JSON")
}

// printSchemaCSV handles opening the file and calling the CSV writer.
func printSchemaCSV(ds *schema.DataSchema, cfg *contract.Config, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"field",
			"type",
			"nullable",
			"unique",
			"count",
			"null_count",
			"unique_count",
			"examples",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, f := range ds.Fields {
				rec := []string{
					f.Name,                           // Field name
					string(f.DataType),               // Inferred type
					strconv.FormatBool(f.Nullable),   // Nullable
					strconv.FormatBool(f.Unique),     // Unique
					fmt.Sprintf(intFmt, f.Statistics.Count),       // Non-missing values
					fmt.Sprintf(intFmt, f.Statistics.NullCount),   // Missing values
					fmt.Sprintf(intFmt, f.Statistics.UniqueCount), // Distinct values
					strings.Join(f.Examples, "|"),                 // Sample values
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// printSchemaParquet flattens the schema fields and writes them to a Parquet file.
func printSchemaParquet(ds *schema.DataSchema, cfg *contract.Config) error {
	if err := requireParquetFile(cfg); err != nil {
		return err
	}

	rows := make([]parquet.SchemaField, 0, len(ds.Fields))
	for _, f := range ds.Fields {
		rows = append(rows, parquet.SchemaField{
			FieldName:   f.Name,
			DataType:    string(f.DataType),
			Nullable:    f.Nullable,
			Unique:      f.Unique,
			Count:       int32(f.Statistics.Count),
			NullCount:   int32(f.Statistics.NullCount),
			UniqueCount: int32(f.Statistics.UniqueCount),
			Examples:    strings.Join(f.Examples, "|"),
		})
	}

	if err := parquet.WriteSchemaFieldsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	reportParquetWrite(cfg, len(rows))
	return nil
}

// writeSchemaTable generates and writes the human-readable table.
func writeSchemaTable(ds *schema.DataSchema, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Field", "Type", "Nullable", "Unique", "Count", "Nulls", "Distinct", "Summary"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, f := range ds.Fields {
		row := []string{
			f.Name,
			string(f.DataType),
			strconv.FormatBool(f.Nullable),
			strconv.FormatBool(f.Unique),
			fmt.Sprintf(intFmt, f.Statistics.Count),
			fmt.Sprintf(intFmt, f.Statistics.NullCount),
			fmt.Sprintf(intFmt, f.Statistics.UniqueCount),
			contract.TruncateText(fieldSummary(&f, fmtFloat), GetMaxTableTextWidth(cfg)),
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

	if _, err := fmt.Fprintf(writer, "Inferred %d fields from %d rows\n", ds.ColumnCount, ds.RowCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Schema inference completed in %v. Analysis backend: %s\n", duration, cfg.AnalysisBackend); err != nil {
		return err
	}
	return nil
}

// fieldSummary renders a one-line statistics digest for the typed section
// the field carries.
func fieldSummary(f *schema.FieldSchema, fmtFloat func(float64) string) string {
	stats := f.Statistics
	switch {
	case stats.Numeric != nil:
		n := stats.Numeric
		return fmt.Sprintf("min %s, max %s, mean %s, median %s",
			fmtFloat(n.Min), fmtFloat(n.Max), fmtFloat(n.Mean), fmtFloat(n.Median))
	case stats.Datetime != nil:
		d := stats.Datetime
		return fmt.Sprintf("%s to %s",
			d.Min.Format(contract.DateTimeFormat), d.Max.Format(contract.DateTimeFormat))
	case stats.Categorical != nil:
		c := stats.Categorical
		if c.Mode == "" {
			return ""
		}
		return fmt.Sprintf("mode %q over %d values", c.Mode, stats.UniqueCount)
	default:
		return ""
	}
}
