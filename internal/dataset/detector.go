package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/schema"
)

// FileDetector supplies pattern and correlation results from files
// produced by an external analysis pipeline. Files may be YAML or JSON,
// chosen by extension. A missing path means that source has nothing to
// report.
type FileDetector struct {
	PatternsPath     string
	CorrelationsPath string
}

var (
	_ contract.PatternSource     = &FileDetector{} // Compile-time check
	_ contract.CorrelationSource = &FileDetector{} // Compile-time check
)

// NewFileDetector creates a detector backed by result files.
func NewFileDetector(patternsPath, correlationsPath string) *FileDetector {
	return &FileDetector{
		PatternsPath:     patternsPath,
		CorrelationsPath: correlationsPath,
	}
}

// DetectPatterns implements the PatternSource interface by decoding the
// patterns file.
func (d *FileDetector) DetectPatterns(_ context.Context, _ []schema.Row, _ *schema.DataSchema) (*schema.PatternResult, error) {
	if d.PatternsPath == "" {
		return nil, nil
	}
	var result schema.PatternResult
	if err := decodeFile(d.PatternsPath, &result); err != nil {
		return nil, fmt.Errorf("cannot load patterns file: %w", err)
	}
	return &result, nil
}

// DetectCorrelations implements the CorrelationSource interface by
// decoding the correlations file.
func (d *FileDetector) DetectCorrelations(_ context.Context, _ []schema.Row, _ *schema.DataSchema) (*schema.CorrelationResult, error) {
	if d.CorrelationsPath == "" {
		return nil, nil
	}
	var result schema.CorrelationResult
	if err := decodeFile(d.CorrelationsPath, &result); err != nil {
		return nil, fmt.Errorf("cannot load correlations file: %w", err)
	}
	return &result, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(data, out)
	default: // .yaml, .yml
		return yaml.Unmarshal(data, out)
	}
}
