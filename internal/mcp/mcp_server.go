// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/plotsense/plotsense/internal/contract"
)

// NewMCPServer initializes and configures the PlotSense MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"PlotSense Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: infer_schema ---
	s.AddTool(mcp.NewTool("infer_schema",
		mcp.WithDescription("Infer the column schema of a tabular dataset, including per-field types and statistics."),
		mcp.WithString("input_path", mcp.Description("Path to the dataset file (CSV, JSON array or NDJSON)."), mcp.Required()),
		mcp.WithString("format", mcp.Description("Dataset format. Defaults to auto-detection from the file extension."), mcp.Enum("auto", "csv", "json")),
		mcp.WithNumber("sample", mcp.Description("Maximum number of rows to read.")),
	), h.handleInferSchema)

	// --- 2. Tool: recommend_charts ---
	s.AddTool(mcp.NewTool("recommend_charts",
		mcp.WithDescription("Score and rank chart types for a tabular dataset, with suggested field mappings."),
		mcp.WithString("input_path", mcp.Description("Path to the dataset file."), mcp.Required()),
		mcp.WithString("format", mcp.Description("Dataset format."), mcp.Enum("auto", "csv", "json")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of recommendations returned.")),
		mcp.WithString("purpose", mcp.Description("Presentation purpose used to adjust priorities."), mcp.Enum("presentation", "exploration", "report")),
		mcp.WithString("audience", mcp.Description("Target audience used to adjust priorities."), mcp.Enum("general", "technical", "executive")),
		mcp.WithString("emphasis", mcp.Description("Emphasis used to adjust priorities."), mcp.Enum("clarity", "insights", "detail")),
	), h.handleRecommendCharts)

	// --- 3. Tool: suggest_mapping ---
	s.AddTool(mcp.NewTool("suggest_mapping",
		mcp.WithDescription("Suggest which dataset fields should fill the visual roles of a specific chart type."),
		mcp.WithString("input_path", mcp.Description("Path to the dataset file."), mcp.Required()),
		mcp.WithString("chart", mcp.Description("Chart type to map fields for."), mcp.Required(),
			mcp.Enum("bar", "line", "area", "pie", "scatter", "histogram", "boxplot", "heatmap", "bubble", "radar", "treemap")),
		mcp.WithString("format", mcp.Description("Dataset format."), mcp.Enum("auto", "csv", "json")),
	), h.handleSuggestMapping)

	// --- 4. Tool: generate_insights ---
	s.AddTool(mcp.NewTool("generate_insights",
		mcp.WithDescription("Detect trends, anomalies and correlations in a dataset and synthesize prioritized insights."),
		mcp.WithString("input_path", mcp.Description("Path to the dataset file."), mcp.Required()),
		mcp.WithString("format", mcp.Description("Dataset format."), mcp.Enum("auto", "csv", "json")),
		mcp.WithString("chart", mcp.Description("Chart type the user is configuring, for chart-scoped insights.")),
		mcp.WithString("mapping", mcp.Description("Field mapping for the chart, e.g. 'x:date,y:sales'. Requires chart.")),
	), h.handleGenerateInsights)

	return s
}

// StartMCPServer starts the PlotSense MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
