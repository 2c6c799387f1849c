// Package dataset loads tabular data files into rows for analysis.
package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/plotsense/plotsense/schema"
)

// Load reads a dataset from disk into generic rows. CSV inputs return
// the header columns in file order; JSON inputs return the key order of
// the first object. At most sampleLimit rows are read.
func Load(ctx context.Context, path string, format schema.DataFormat, sampleLimit int) ([]schema.Row, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch format {
	case schema.CSVFormat:
		return loadCSV(ctx, f, sampleLimit)
	case schema.JSONFormat:
		return loadJSON(ctx, f, sampleLimit)
	default:
		return nil, nil, fmt.Errorf("unsupported dataset format %q", format)
	}
}

// loadCSV reads a header row plus up to sampleLimit data rows. Cell
// values stay strings; type classification happens during inference.
func loadCSV(ctx context.Context, r io.Reader, sampleLimit int) ([]schema.Row, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are tolerated, short rows read as missing

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("dataset is empty")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}

	var rows []schema.Row
	for len(rows) < sampleLimit {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("cannot read CSV row %d: %w", len(rows)+2, err)
		}

		row := make(schema.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, columns, nil
}

// loadJSON reads either a top-level JSON array of objects or one object
// per line (NDJSON). Column order follows the key order of the first
// object, so JSON datasets keep their source column order just like CSV.
func loadJSON(ctx context.Context, r io.Reader, sampleLimit int) ([]schema.Row, []string, error) {
	br := bufio.NewReader(r)

	// Peek past leading whitespace to tell an array from NDJSON.
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil, fmt.Errorf("dataset is empty")
	}
	if err != nil {
		return nil, nil, err
	}

	if first == '[' {
		return loadJSONArray(ctx, br, sampleLimit)
	}

	var rows []schema.Row
	var columns []string
	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() && len(rows) < sampleLimit {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var row schema.Row
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return nil, nil, fmt.Errorf("cannot parse JSON line %d: %w", len(rows)+1, err)
		}
		if columns == nil {
			columns = objectKeys([]byte(line))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return rows, columns, nil
}

// loadJSONArray streams array elements one raw message at a time so
// reading stops at sampleLimit without decoding the rest of the file.
func loadJSONArray(ctx context.Context, br *bufio.Reader, sampleLimit int) ([]schema.Row, []string, error) {
	dec := json.NewDecoder(br)
	if _, err := dec.Token(); err != nil { // opening '['
		return nil, nil, fmt.Errorf("cannot parse JSON array: %w", err)
	}

	var rows []schema.Row
	var columns []string
	for dec.More() && len(rows) < sampleLimit {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("cannot parse JSON array: %w", err)
		}
		var row schema.Row
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, nil, fmt.Errorf("cannot parse JSON array element %d: %w", len(rows)+1, err)
		}
		if columns == nil {
			columns = objectKeys(raw)
		}
		rows = append(rows, row)
	}
	return rows, columns, nil
}

// objectKeys extracts the top-level keys of one JSON object in source
// order. Anything that is not an object yields nil, leaving column
// order to the caller's fallback.
func objectKeys(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil
		}
		keys = append(keys, key)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil
		}
	}
	return keys
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.ReadByte(); err != nil {
				return 0, err
			}
		default:
			return b[0], nil
		}
	}
}
