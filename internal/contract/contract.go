// Package contract provides interfaces and shared utilities for clearlabel's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/clearlabel/clearlabel/schema"
)

// EntryCache defines the Tier-1 TTL key-value store. Implementations must
// treat an expired entry as a miss and remove it on access (lazy eviction),
// and must keep get/put/touch linearizable per key.
type EntryCache interface {
	// Get returns a copy of the live entry for key, bumping its access
	// count. A stale or missing entry yields ok=false; a stale entry is
	// removed as a side effect and never returned.
	Get(key string) (entry schema.CacheEntry, ok bool)

	// Put stores value under key with the TTL of the given data type,
	// overwriting any existing entry.
	Put(key string, value []byte, dt schema.DataType)

	// Delete removes the entry for key if present.
	Delete(key string) bool

	// DeletePrefix removes every entry whose key starts with prefix and
	// returns how many were removed. Used for product-level invalidation.
	DeletePrefix(prefix string) int

	// Sweep removes all expired entries and returns how many were removed.
	// Purely a memory reclamation aid; correctness never depends on it.
	Sweep() int

	// Stats returns hit/miss/eviction counters and live entry counts.
	Stats() schema.CacheStats

	Close() error
}

// RecordStore defines the Tier-2 persisted scan record store.
// This allows mocking the store for testing.
type RecordStore interface {
	// FindRecent returns the newest record for (barcode, userID) whose age
	// is within maxAge. Returns ErrNoRecord when nothing qualifies.
	FindRecent(ctx context.Context, barcode string, userID int64, maxAge time.Duration) (schema.ScanRecord, error)

	// Save inserts or replaces the record for its (barcode, userID) pair.
	Save(ctx context.Context, rec schema.ScanRecord) error

	// ListRecords returns all persisted records ordered oldest first.
	// Used by the Parquet export path.
	ListRecords(ctx context.Context) ([]schema.ScanRecord, error)

	// GetStatus returns status information about the record store.
	GetStatus() (schema.RecordStoreStatus, error)

	Close() error
}

// StoreManager defines the interface for managing the cache and record
// stores. This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetEntryCache() EntryCache
	GetRecordStore() RecordStore
}

// ProductFetcher resolves a barcode to product metadata from an external
// source (Tier 3).
type ProductFetcher interface {
	FetchProduct(ctx context.Context, barcode string) (schema.ProductMetadata, error)
}

// IngredientFetcher resolves an ingredient name to its hazard codes from an
// external chemical database, possibly falling back to an estimator.
type IngredientFetcher interface {
	FetchIngredient(ctx context.Context, name string) (schema.IngredientHazardData, error)
}

// HazardEstimator supplies estimated hazard codes for ingredients missing
// from the primary chemical database. Results are tagged with estimated
// provenance by the caller.
type HazardEstimator interface {
	EstimateHazards(ctx context.Context, name string) ([]string, error)
}
