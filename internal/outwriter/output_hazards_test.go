package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clearlabel/clearlabel/core"
	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHazardsToTempFile(t *testing.T, catalog *core.Catalog, cfg *contract.Config) string {
	t.Helper()
	cfg.OutputFile = filepath.Join(t.TempDir(), "out")
	require.NoError(t, WriteHazardCatalog(catalog, cfg))
	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	return string(content)
}

func TestCollectHazardRows(t *testing.T) {
	catalog, err := core.NewCatalog(nil)
	require.NoError(t, err)

	rows := collectHazardRows(catalog)
	require.Equal(t, catalog.Len(), len(rows))

	// Rows follow the catalog's sorted code order.
	assert.Equal(t, "H200", rows[0].Code)

	var h315 hazardRow
	for _, r := range rows {
		if r.Code == "H315" {
			h315 = r
			break
		}
	}
	assert.Equal(t, "Skin irritation", h315.Class)
	assert.Equal(t, 5.0, h315.BaseWeight)
	assert.Equal(t, 1.5, h315.ClassFactor)
	assert.Equal(t, 1.5, h315.CategoryFactor)
	assert.InDelta(t, 11.25, h315.Penalty, 0.0001)
}

func TestWriteHazardCatalogJSON(t *testing.T) {
	catalog, err := core.NewCatalog(map[string]float64{"H315": 10})
	require.NoError(t, err)

	cfg := &contract.Config{Output: schema.JSONOut, Precision: 2}
	content := writeHazardsToTempFile(t, catalog, cfg)

	var rows []hazardRow
	require.NoError(t, json.Unmarshal([]byte(content), &rows))
	require.Equal(t, catalog.Len(), len(rows))

	for _, r := range rows {
		if r.Code == "H315" {
			assert.Equal(t, 10.0, r.BaseWeight, "override reflected in output")
		}
	}
}

func TestWriteHazardCatalogCSV(t *testing.T) {
	catalog, err := core.NewCatalog(nil)
	require.NoError(t, err)

	cfg := &contract.Config{Output: schema.CSVOut, Precision: 2}
	content := writeHazardsToTempFile(t, catalog, cfg)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Equal(t, catalog.Len()+1, len(lines))
	assert.Equal(t, "code,class,category,description,base_weight,class_factor,category_factor,penalty", lines[0])
	assert.Contains(t, content, "H315,Skin irritation,2,Causes skin irritation,5.00,1.50,1.50,11.25")
}

func TestWriteHazardCatalogTable(t *testing.T) {
	catalog, err := core.NewCatalog(nil)
	require.NoError(t, err)

	cfg := &contract.Config{Output: schema.TextOut, Precision: 1}
	content := writeHazardsToTempFile(t, catalog, cfg)

	assert.Contains(t, content, "H315")
	assert.Contains(t, content, "Skin irritation")
}
