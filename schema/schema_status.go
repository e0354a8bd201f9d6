package schema

import "time"

// CacheStats represents the observable state of the entry cache.
type CacheStats struct {
	Entries   int   `json:"entries"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	// EntriesByType breaks live entries down per data type.
	EntriesByType map[DataType]int `json:"entries_by_type"`
}

// HitRate returns the fraction of lookups served from cache (0-1).
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// RecordStoreStatus represents the status of the persisted record store.
type RecordStoreStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalRecords    int       `json:"total_records"`
	LastRecordTime  time.Time `json:"last_record_time"`
	OldestRecord    time.Time `json:"oldest_record_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
	DistinctBarcode int       `json:"distinct_barcodes"`
}
