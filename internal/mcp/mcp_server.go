// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/clearlabel/clearlabel/core"
	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the clearlabel MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, analyzer *core.Analyzer) *server.MCPServer {
	s := server.NewMCPServer(
		"Clearlabel Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:  baseCfg,
		analyzer: analyzer,
	}

	// --- 1. Tool: analyze_product ---
	s.AddTool(mcp.NewTool("analyze_product",
		mcp.WithDescription("Resolve a cosmetic product barcode to a 0-100 safety score with per-ingredient hazard penalties."),
		mcp.WithString("barcode", mcp.Description("The product barcode to analyze."), mcp.Required()),
		mcp.WithNumber("user_id", mcp.Description("User scope for caching and record lookups (defaults to anonymous).")),
	), h.handleAnalyzeProduct)

	// --- 2. Tool: get_cached_score ---
	s.AddTool(mcp.NewTool("get_cached_score",
		mcp.WithDescription("Return the cached safety score for a barcode without triggering any external fetch."),
		mcp.WithString("barcode", mcp.Description("The product barcode to look up."), mcp.Required()),
		mcp.WithNumber("user_id", mcp.Description("User scope for the lookup (defaults to anonymous).")),
	), h.handleGetCachedScore)

	// --- 3. Tool: get_cache_stats ---
	s.AddTool(mcp.NewTool("get_cache_stats",
		mcp.WithDescription("Report entry cache counters: live entries, hits, misses and evictions."),
	), h.handleGetCacheStats)

	// --- 4. Tool: get_hazard_info ---
	s.AddTool(mcp.NewTool("get_hazard_info",
		mcp.WithDescription("Look up one GHS hazard statement code in the active catalog, including its effective penalty."),
		mcp.WithString("code", mcp.Description("The GHS hazard code, e.g. H315."), mcp.Required()),
	), h.handleGetHazardInfo)

	return s
}

// StartMCPServer starts the clearlabel MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, analyzer *core.Analyzer) error {
	s := NewMCPServer(baseCfg, analyzer)
	return server.ServeStdio(s)
}
