package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clearlabel/clearlabel/core"
	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg  *contract.Config
	analyzer *core.Analyzer
}

func (h *toolHandler) handleAnalyzeProduct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if uid := request.GetInt("user_id", 0); uid != 0 {
		cfg.UserID = int64(uid)
	}

	barcode := strings.TrimSpace(request.GetString("barcode", ""))
	if barcode == "" {
		return mcp.NewToolResultError("barcode is required"), nil
	}

	result, err := h.analyzer.Analyze(ctx, barcode, cfg.UserID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCachedScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if uid := request.GetInt("user_id", 0); uid != 0 {
		cfg.UserID = int64(uid)
	}

	barcode := strings.TrimSpace(request.GetString("barcode", ""))
	if barcode == "" {
		return mcp.NewToolResultError("barcode is required"), nil
	}

	score, level, ok := h.analyzer.CachedScore(barcode, cfg.UserID)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no cached score for barcode %s", barcode)), nil
	}

	payload := map[string]any{
		"barcode":    barcode,
		"score":      score,
		"risk_level": level,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCacheStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := h.analyzer.CacheStats()
	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHazardInfo(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code := strings.ToUpper(strings.TrimSpace(request.GetString("code", "")))
	if code == "" {
		return mcp.NewToolResultError("code is required"), nil
	}

	catalog := h.analyzer.Catalog()
	info, err := catalog.Lookup(code)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unknown hazard code %s", code)), nil
	}
	penalty, _ := catalog.Penalty(code)

	payload := map[string]any{
		"code":            code,
		"class":           info.Class,
		"category":        info.Category,
		"description":     info.Description,
		"base_weight":     info.BaseWeight,
		"class_factor":    schema.HazardClassFactor(code),
		"category_factor": schema.HazardCategoryFactor(code),
		"penalty":         penalty,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
