package iocache

import (
	"context"
	"errors"
	"fmt"

	"github.com/clearlabel/clearlabel/internal/parquet"
)

// ExecuteRecordExport performs the actual export of scan records to a Parquet file.
func ExecuteRecordExport(ctx context.Context, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the record store
	store := Manager.GetRecordStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get record status: %w", err)
	}

	if status.TotalRecords == 0 {
		return errors.New("no scan records found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total scan records: %d\n", status.TotalRecords)

	// Retrieve all scan records
	records, err := store.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve scan records: %w", err)
	}

	// Convert to Parquet format and write
	rows := parquet.ConvertScanRecords(records)
	if err := parquet.WriteScanRecordsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write scan records: %w", err)
	}
	fmt.Printf("Exported %d scan records to: %s\n", len(rows), outputFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
