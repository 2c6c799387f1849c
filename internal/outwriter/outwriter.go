// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSchema prints an inferred dataset schema using the configured output format.
func (ow *OutWriter) WriteSchema(ds *schema.DataSchema, cfg *contract.Config, duration time.Duration) error {
	return PrintSchema(ds, cfg, duration)
}

// WriteRecommendations prints ranked chart recommendations using the configured output format.
func (ow *OutWriter) WriteRecommendations(output *schema.RecommendationOutput, cfg *contract.Config, duration time.Duration) error {
	return PrintRecommendations(output, cfg, duration)
}

// WriteInsights prints synthesized insights using the configured output format.
func (ow *OutWriter) WriteInsights(output *schema.InsightOutput, cfg *contract.Config, duration time.Duration) error {
	return PrintInsights(output, cfg, duration)
}

// GetMaxTableTextWidth calculates the maximum width for free-text columns
// in table output based on terminal width and table configuration.
func GetMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 45 // Rank + Score + Label + Priority with borders/padding

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 20

	// Calculate available space for free text
	available := termWidth - baseWidth
	if available < 20 {
		// Minimum reasonable text width
		return 20
	}
	if available > 80 {
		// Maximum text width to prevent overly long cells
		return 80
	}
	return available
}
