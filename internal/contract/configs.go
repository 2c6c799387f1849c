package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/plotsense/plotsense/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 8
	MaxResultLimit     = 50
	DefaultPrecision   = 2
	DefaultSampleLimit = 100000
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath   string
	Format      schema.DataFormat
	ResultLimit int
	SampleLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	Context schema.RenderContext

	// ChartType and Mapping scope contextual insight generation to the
	// chart a user is configuring.
	ChartType string
	Mapping   schema.FieldMapping

	PatternsFile     string
	CorrelationsFile string

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Format            string `mapstructure:"format"`
	Limit             int    `mapstructure:"limit"`
	Sample            int    `mapstructure:"sample"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`

	// --- Fields from recommendCmd.Flags() ---
	Purpose  string `mapstructure:"purpose"`
	Audience string `mapstructure:"audience"`
	Emphasis string `mapstructure:"emphasis"`

	// --- Fields from insightsCmd.Flags() ---
	Chart            string `mapstructure:"chart"`
	MappingStr       string `mapstructure:"mapping"`
	PatternsFile     string `mapstructure:"patterns"`
	CorrelationsFile string `mapstructure:"correlations"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Mapping != nil {
		clone.Mapping = make(schema.FieldMapping, len(c.Mapping))
		for role, field := range c.Mapping {
			clone.Mapping[role] = field
		}
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRenderContext(cfg, input); err != nil {
		return err
	}
	if err := processChartScope(cfg, input); err != nil {
		return err
	}
	if err := resolveInputPath(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.PatternsFile = input.PatternsFile
	cfg.CorrelationsFile = input.CorrelationsFile

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. SampleLimit Validation ---
	if input.Sample <= 0 {
		return fmt.Errorf("sample must be greater than 0 (received %d)", input.Sample)
	}
	cfg.SampleLimit = input.Sample

	// --- 3. Format Validation ---
	cfg.Format = schema.DataFormat(strings.ToLower(input.Format))
	if _, ok := schema.ValidDataFormats[cfg.Format]; !ok {
		return fmt.Errorf("invalid format '%s'. must be auto, csv, json", input.Format)
	}

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 5. Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return err
	}

	return nil
}

// processRenderContext validates the purpose/audience/emphasis trio.
func processRenderContext(cfg *Config, input *ConfigRawInput) error {
	cfg.Context.Purpose = schema.Purpose(strings.ToLower(input.Purpose))
	if _, ok := schema.ValidPurposes[cfg.Context.Purpose]; !ok {
		return fmt.Errorf("invalid purpose '%s'. must be presentation, exploration, report", input.Purpose)
	}

	cfg.Context.Audience = schema.Audience(strings.ToLower(input.Audience))
	if _, ok := schema.ValidAudiences[cfg.Context.Audience]; !ok {
		return fmt.Errorf("invalid audience '%s'. must be general, technical, executive", input.Audience)
	}

	cfg.Context.Emphasis = schema.Emphasis(strings.ToLower(input.Emphasis))
	if _, ok := schema.ValidEmphases[cfg.Context.Emphasis]; !ok {
		return fmt.Errorf("invalid emphasis '%s'. must be clarity, insights, detail", input.Emphasis)
	}

	return nil
}

// processChartScope handles the chart and field mapping used for
// contextual insight generation.
func processChartScope(cfg *Config, input *ConfigRawInput) error {
	cfg.ChartType = strings.ToLower(strings.TrimSpace(input.Chart))
	if cfg.ChartType != "" {
		if _, ok := schema.ChartProfiles[schema.ChartType(cfg.ChartType)]; !ok {
			return fmt.Errorf("unknown chart type '%s'", input.Chart)
		}
	}

	mapping, err := ParseMappingString(input.MappingStr)
	if err != nil {
		return fmt.Errorf("invalid --mapping format: %w", err)
	}
	cfg.Mapping = mapping

	if len(cfg.Mapping) > 0 && cfg.ChartType == "" {
		return fmt.Errorf("--mapping requires --chart")
	}

	return nil
}

// resolveInputPath resolves the dataset path and, under auto format,
// detects the format from the file extension.
func resolveInputPath(cfg *Config, input *ConfigRawInput) error {
	if input.InputPathStr == "" {
		return fmt.Errorf("a dataset path is required")
	}

	absPath, err := filepath.Abs(input.InputPathStr)
	if err != nil {
		return err
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("cannot read dataset %q: %w", input.InputPathStr, err)
	}
	if info.IsDir() {
		return fmt.Errorf("dataset path %q is a directory, expected a file", input.InputPathStr)
	}
	cfg.InputPath = absPath

	if cfg.Format == schema.AutoFormat {
		switch strings.ToLower(filepath.Ext(absPath)) {
		case ".csv":
			cfg.Format = schema.CSVFormat
		case ".json", ".jsonl", ".ndjson":
			cfg.Format = schema.JSONFormat
		default:
			return fmt.Errorf("cannot detect format from extension %q, pass --format explicitly", filepath.Ext(absPath))
		}
	}

	return nil
}

// RevalidateInput re-resolves the dataset path and format for callers
// that bypass the normal flag pipeline, like the MCP server.
func RevalidateInput(cfg *Config, pathStr, formatStr string) error {
	if formatStr != "" {
		format := schema.DataFormat(strings.ToLower(strings.TrimSpace(formatStr)))
		if _, ok := schema.ValidDataFormats[format]; !ok {
			return fmt.Errorf("unknown format '%s'", formatStr)
		}
		cfg.Format = format
	}
	if cfg.Format == "" {
		cfg.Format = schema.AutoFormat
	}
	return resolveInputPath(cfg, &ConfigRawInput{InputPathStr: pathStr})
}

// ParseMappingString parses a string like "x:date,y:sales,color:region"
// into a map of VisualRole to field name.
func ParseMappingString(s string) (schema.FieldMapping, error) {
	mapping := make(schema.FieldMapping)

	if s == "" {
		return mapping, nil
	}

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.SplitN(part, ":", 2)
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid mapping entry '%s', expected 'role:field'", part)
		}

		role := schema.VisualRole(strings.ToLower(strings.TrimSpace(keyValue[0])))
		field := strings.TrimSpace(keyValue[1])
		if _, ok := schema.ValidVisualRoles[role]; !ok {
			return nil, fmt.Errorf("invalid visual role '%s'", keyValue[0])
		}
		if field == "" {
			return nil, fmt.Errorf("empty field name for role '%s'", role)
		}

		mapping[role] = field
	}

	return mapping, nil
}
