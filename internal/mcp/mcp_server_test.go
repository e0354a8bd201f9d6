package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/clearlabel/clearlabel/core"
	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/internal/iocache"
	mcp_internal "github.com/clearlabel/clearlabel/internal/mcp"
	"github.com/clearlabel/clearlabel/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAnalyzer builds an analyzer over a real entry cache with no external
// collaborators; the tests below only exercise cache-backed tools and
// validation paths.
func newTestAnalyzer(t *testing.T, cfg *contract.Config) (*core.Analyzer, *iocache.MemoryStore) {
	t.Helper()

	cache := iocache.NewMemoryStore()
	t.Cleanup(func() { _ = cache.Close() })

	mgr := &iocache.MockStoreManager{}
	mgr.On("GetEntryCache").Return(cache)
	mgr.On("GetRecordStore").Return(&iocache.MockRecordStore{})

	catalog, err := core.NewCatalog(nil)
	require.NoError(t, err)

	return core.NewAnalyzer(cfg, mgr, nil, nil, catalog), cache
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{}
	analyzer, _ := newTestAnalyzer(t, baseCfg)
	s := mcp_internal.NewMCPServer(baseCfg, analyzer)

	t.Run("analyze_product missing barcode", func(t *testing.T) {
		res := callTool(t, s, "analyze_product", map[string]any{"barcode": "  "})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "barcode is required")
	})

	t.Run("get_cached_score missing barcode", func(t *testing.T) {
		res := callTool(t, s, "get_cached_score", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "barcode is required")
	})

	t.Run("get_hazard_info missing code", func(t *testing.T) {
		res := callTool(t, s, "get_hazard_info", map[string]any{"code": ""})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "code is required")
	})

	t.Run("get_hazard_info unknown code", func(t *testing.T) {
		res := callTool(t, s, "get_hazard_info", map[string]any{"code": "H999"})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "unknown hazard code H999")
	})
}

func TestMCPServerHandlers_CacheBacked(t *testing.T) {
	baseCfg := &contract.Config{}
	analyzer, cache := newTestAnalyzer(t, baseCfg)
	s := mcp_internal.NewMCPServer(baseCfg, analyzer)

	t.Run("get_cached_score miss", func(t *testing.T) {
		res := callTool(t, s, "get_cached_score", map[string]any{"barcode": "123"})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no cached score for barcode 123")
	})

	t.Run("get_cached_score per-request user scope", func(t *testing.T) {
		payload, err := json.Marshal(map[string]any{"score": 64, "risk_level": schema.GoodRisk})
		require.NoError(t, err)
		cache.Put(schema.UserCacheKey(schema.SafetyScoreData, "456", 7), payload, schema.SafetyScoreData)

		res := callTool(t, s, "get_cached_score", map[string]any{"barcode": "456", "user_id": 7})
		require.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `"score": 64`)

		// The request-scoped user must not leak into the shared base config.
		assert.Equal(t, int64(0), baseCfg.UserID)

		res = callTool(t, s, "get_cached_score", map[string]any{"barcode": "456"})
		assert.True(t, res.IsError, "the base user has no cached score for this barcode")
	})

	t.Run("get_hazard_info known code", func(t *testing.T) {
		res := callTool(t, s, "get_hazard_info", map[string]any{"code": "h315"})
		require.False(t, res.IsError)

		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"code": "H315"`, "lowercase input is normalized")
		assert.Contains(t, text, `"class": "Skin irritation"`)
		assert.Contains(t, text, `"penalty": 11.25`)
	})

	t.Run("get_cache_stats", func(t *testing.T) {
		res := callTool(t, s, "get_cache_stats", map[string]any{})
		require.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `"entries"`)
	})
}
