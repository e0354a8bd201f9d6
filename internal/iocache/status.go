package iocache

import (
	"fmt"

	"github.com/clearlabel/clearlabel/schema"
)

// PrintCacheStats prints entry cache statistics.
func PrintCacheStats(stats schema.CacheStats) {
	fmt.Printf("Live Entries: %d\n", stats.Entries)
	fmt.Printf("Hits: %d\n", stats.Hits)
	fmt.Printf("Misses: %d\n", stats.Misses)
	fmt.Printf("Evictions: %d\n", stats.Evictions)
	fmt.Printf("Hit Rate: %.1f%%\n", stats.HitRate()*100)
	if len(stats.EntriesByType) == 0 {
		return
	}
	fmt.Println("Entries By Type:")
	for _, dt := range schema.AllDataTypes {
		if n, ok := stats.EntriesByType[dt]; ok {
			fmt.Printf("  %s: %d\n", dt, n)
		}
	}
}

// PrintRecordStatus prints record store status information.
func PrintRecordStatus(status schema.RecordStoreStatus) {
	fmt.Printf("Record Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Records: %d\n", status.TotalRecords)
	if status.TotalRecords > 0 {
		fmt.Printf("Distinct Barcodes: %d\n", status.DistinctBarcode)
		fmt.Printf("Last Record: %s\n", status.LastRecordTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Record: %s\n", status.OldestRecord.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}
