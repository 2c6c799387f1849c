package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/plotsense/plotsense/schema"
)

// Confidence label constants.
const (
	StrongValue = "Strong" // Strong fit
	GoodValue   = "Good"   // Good fit
	FairValue   = "Fair"   // Fair fit
	WeakValue   = "Weak"   // Weak fit
)

// Color variables for console output.
var (
	StrongColor   = color.New(color.FgGreen, color.Bold) // strongColor marks a confident recommendation.
	GoodColor     = color.New(color.FgCyan)              // goodColor marks a solid recommendation.
	FairColor     = color.New(color.FgYellow)            // fairColor marks a tentative recommendation.
	WeakColor     = color.New(color.FgRed)               // weakColor marks a last-resort recommendation.
	CriticalColor = color.New(color.FgRed, color.Bold)   // criticalColor marks an urgent insight.
	HighColor     = color.New(color.FgMagenta, color.Bold)
	MediumColor   = color.New(color.FgYellow)
	LowColor      = color.New(color.FgCyan)
)

// GetPlainLabel returns a plain text label indicating the fitness level
// based on a recommendation's confidence score. This is the core logic
// used for CSV, JSON, and table printing.
func GetPlainLabel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return StrongValue
	case confidence >= 0.6:
		return GoodValue
	case confidence >= 0.4:
		return FairValue
	default:
		return WeakValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(confidence float64) string {
	text := GetPlainLabel(confidence)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	default: // "Weak"
		return WeakColor.Sprint(text)
	}
}

// GetPriorityColorLabel returns a colored label for an insight priority tier.
func GetPriorityColorLabel(p schema.Priority) string {
	switch p {
	case schema.CriticalPriority:
		return CriticalColor.Sprint(string(p))
	case schema.HighPriority:
		return HighColor.Sprint(string(p))
	case schema.MediumPriority:
		return MediumColor.Sprint(string(p))
	default:
		return LowColor.Sprint(string(p))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".plotsense_analysis.db"
	}
	return filepath.Join(homeDir, ".plotsense_analysis.db")
}

// TruncateText truncates a string to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one
// character of content.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
