package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/plotsense/plotsense/core"
	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleInferSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if s := request.GetInt("sample", 0); s > 0 {
		cfg.SampleLimit = s
	}
	if err := contract.RevalidateInput(cfg, request.GetString("input_path", ""), request.GetString("format", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset parameters: %v", err)), nil
	}

	ds, err := core.GetSchemaResult(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("schema inference failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(ds, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRecommendCharts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	if p := request.GetString("purpose", ""); p != "" {
		cfg.Context.Purpose = schema.Purpose(p)
	}
	if a := request.GetString("audience", ""); a != "" {
		cfg.Context.Audience = schema.Audience(a)
	}
	if e := request.GetString("emphasis", ""); e != "" {
		cfg.Context.Emphasis = schema.Emphasis(e)
	}
	if err := contract.RevalidateInput(cfg, request.GetString("input_path", ""), request.GetString("format", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset parameters: %v", err)), nil
	}

	output, err := core.GetRecommendationResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSuggestMapping(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	chart := schema.ChartType(request.GetString("chart", ""))
	if _, ok := schema.ChartProfiles[chart]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown chart type '%s'", chart)), nil
	}
	if err := contract.RevalidateInput(cfg, request.GetString("input_path", ""), request.GetString("format", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset parameters: %v", err)), nil
	}

	ds, err := core.GetSchemaResult(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("schema inference failed: %v", err)), nil
	}

	mapping := core.SuggestMapping(chart, ds)
	jsonData, _ := json.MarshalIndent(struct {
		ChartType schema.ChartType    `json:"chartType"`
		Mapping   schema.FieldMapping `json:"mapping"`
	}{
		ChartType: chart,
		Mapping:   mapping,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGenerateInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.ChartType = request.GetString("chart", "")
	if cfg.ChartType != "" {
		if _, ok := schema.ChartProfiles[schema.ChartType(cfg.ChartType)]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown chart type '%s'", cfg.ChartType)), nil
		}
	}
	if m := request.GetString("mapping", ""); m != "" {
		if cfg.ChartType == "" {
			return mcp.NewToolResultError("mapping requires chart"), nil
		}
		mapping, err := contract.ParseMappingString(m)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid mapping: %v", err)), nil
		}
		cfg.Mapping = mapping
	}
	if err := contract.RevalidateInput(cfg, request.GetString("input_path", ""), request.GetString("format", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset parameters: %v", err)), nil
	}

	detector := core.NewBuiltinDetector()
	output, err := core.GetInsightResults(ctx, cfg, detector, detector, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("insight generation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
