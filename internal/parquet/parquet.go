// Package parquet provides data structures and functions for exporting
// persisted scan records to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/clearlabel/clearlabel/schema"
	"github.com/parquet-go/parquet-go"
)

// ScanRecord represents a single persisted product scan for export.
// This struct maps to the clearlabel_scan_records database table.
type ScanRecord struct {
	// Barcode is the scanned product barcode
	Barcode string `parquet:"barcode,snappy"`

	// UserID identifies the requesting user (0 for anonymous scans)
	UserID int64 `parquet:"user_id,snappy"`

	// ProductName is the resolved product name (nullable)
	ProductName *string `parquet:"product_name,optional,snappy"`

	// Brand is the resolved product brand (nullable)
	Brand *string `parquet:"brand,optional,snappy"`

	// Score is the computed safety score in [0, 100]
	Score int32 `parquet:"score,snappy"`

	// RiskLevel is the qualitative band derived from the score
	RiskLevel string `parquet:"risk_level,snappy"`

	// TotalPenalty is the unclamped sum of ingredient penalties
	TotalPenalty float64 `parquet:"total_penalty,snappy"`

	// IngredientCount is the number of contributing ingredients
	IngredientCount int32 `parquet:"ingredient_count,snappy"`

	// HazardCodes is the comma-joined set of contributing hazard codes (nullable)
	HazardCodes *string `parquet:"hazard_codes,optional,snappy"`

	// Contributing contains the JSON-encoded per-ingredient penalty breakdown (nullable)
	Contributing *string `parquet:"contributing,optional,snappy"`

	// CreatedAt is when the scan was recorded (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// ConvertScanRecords converts database scan records to their Parquet form.
func ConvertScanRecords(records []schema.ScanRecord) []ScanRecord {
	out := make([]ScanRecord, 0, len(records))
	for _, rec := range records {
		row := ScanRecord{
			Barcode:         rec.Barcode,
			UserID:          rec.UserID,
			Score:           int32(rec.Result.Score),
			RiskLevel:       string(rec.Result.RiskLevel),
			TotalPenalty:    rec.Result.TotalPenalty,
			IngredientCount: int32(len(rec.Result.Contributing)),
			CreatedAt:       rec.CreatedAt,
		}

		if rec.Result.ProductName != "" {
			name := rec.Result.ProductName
			row.ProductName = &name
		}
		if rec.Result.Brand != "" {
			brand := rec.Result.Brand
			row.Brand = &brand
		}

		if codes := collectHazardCodes(rec.Result.Contributing); codes != "" {
			row.HazardCodes = &codes
		}

		if len(rec.Result.Contributing) > 0 {
			if encoded, err := json.Marshal(rec.Result.Contributing); err == nil {
				contributing := string(encoded)
				row.Contributing = &contributing
			}
		}

		out = append(out, row)
	}
	return out
}

// collectHazardCodes flattens the contributing hazard codes into a single
// comma-joined string, preserving penalty order.
func collectHazardCodes(contributing []schema.IngredientPenalty) string {
	var codes []string
	for _, c := range contributing {
		codes = append(codes, c.HazardCodes...)
	}
	return strings.Join(codes, ",")
}

// WriteScanRecordsParquet writes a slice of ScanRecord structs to a Parquet file.
func WriteScanRecordsParquet(data []ScanRecord, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ScanRecord struct tags
	writer := parquet.NewGenericWriter[ScanRecord](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
