package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/clearlabel/clearlabel/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertScanRecords(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	records := []schema.ScanRecord{
		{
			Barcode: "3600550951455",
			UserID:  7,
			Result: schema.SafetyScoreResult{
				Barcode:     "3600550951455",
				ProductName: "Hand Soap",
				Brand:       "Acme",
				Score:       82,
				RiskLevel:   schema.GoodRisk,
				Contributing: []schema.IngredientPenalty{
					{Name: "sodium lauryl sulfate", Penalty: 11.25, HazardCodes: []string{"H315"}},
					{Name: "limonene", Penalty: 6.75, HazardCodes: []string{"H319", "H317"}},
				},
				TotalPenalty: 18,
			},
			CreatedAt: now,
		},
		{
			Barcode: "000",
			UserID:  0,
			Result: schema.SafetyScoreResult{
				Barcode:   "000",
				Score:     100,
				RiskLevel: schema.ExcellentRisk,
			},
			CreatedAt: now,
		},
	}

	rows := ConvertScanRecords(records)
	require.Len(t, rows, 2)

	t.Run("populated record", func(t *testing.T) {
		row := rows[0]
		assert.Equal(t, "3600550951455", row.Barcode)
		assert.Equal(t, int64(7), row.UserID)
		assert.Equal(t, int32(82), row.Score)
		assert.Equal(t, "good", row.RiskLevel)
		assert.Equal(t, int32(2), row.IngredientCount)
		require.NotNil(t, row.ProductName)
		assert.Equal(t, "Hand Soap", *row.ProductName)
		require.NotNil(t, row.HazardCodes)
		assert.Equal(t, "H315,H319,H317", *row.HazardCodes)
		require.NotNil(t, row.Contributing)
		assert.Contains(t, *row.Contributing, "sodium lauryl sulfate")
		assert.Equal(t, now, row.CreatedAt)
	})

	t.Run("sparse record keeps nullable fields nil", func(t *testing.T) {
		row := rows[1]
		assert.Nil(t, row.ProductName)
		assert.Nil(t, row.Brand)
		assert.Nil(t, row.HazardCodes)
		assert.Nil(t, row.Contributing)
		assert.Equal(t, int32(0), row.IngredientCount)
	})
}

func TestWriteScanRecordsParquet(t *testing.T) {
	rows := ConvertScanRecords([]schema.ScanRecord{
		{
			Barcode: "123",
			UserID:  1,
			Result: schema.SafetyScoreResult{
				Barcode:   "123",
				Score:     90,
				RiskLevel: schema.ExcellentRisk,
			},
			CreatedAt: time.Now(),
		},
	})

	outputPath := filepath.Join(t.TempDir(), "records.parquet")
	require.NoError(t, WriteScanRecordsParquet(rows, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
