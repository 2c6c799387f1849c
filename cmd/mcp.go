package cmd

import (
	"fmt"

	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/internal/mcp"
	"github.com/plotsense/plotsense/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the PlotSense MCP server",
	Long:    `Launch an MCP server that allows AI agents to infer schemas, rank charts and generate insights via standard tools.`,
	PreRunE: mcpSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

// mcpSetup prepares the base configuration for the MCP server. The
// dataset path arrives per tool call, so path resolution is deferred to
// the individual handlers.
func mcpSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	cfg.Format = schema.AutoFormat
	cfg.ResultLimit = input.Limit
	if cfg.ResultLimit <= 0 || cfg.ResultLimit > contract.MaxResultLimit {
		cfg.ResultLimit = contract.DefaultResultLimit
	}
	cfg.SampleLimit = input.Sample
	if cfg.SampleLimit <= 0 {
		cfg.SampleLimit = contract.DefaultSampleLimit
	}
	cfg.Precision = input.Precision
	if cfg.Precision < 1 || cfg.Precision > 4 {
		cfg.Precision = contract.DefaultPrecision
	}

	// Tracking stays off in MCP mode; stdio carries the protocol and
	// the store init logs would pollute it.
	cfg.AnalysisBackend = schema.NoneBackend

	return nil
}

// mcpSetupWrapper wraps mcpSetup to provide PreRunE for the mcp command.
func mcpSetupWrapper(_ *cobra.Command, _ []string) error {
	return mcpSetup()
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
