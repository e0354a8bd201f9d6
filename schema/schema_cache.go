package schema

import "time"

// CacheEntry is one TTL-bound cache record. Entries are owned exclusively by
// the cache store; callers always receive copies, never aliases.
type CacheEntry struct {
	Key          string    `json:"key"`
	Value        []byte    `json:"value"`
	DataType     DataType  `json:"data_type"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"` // CreatedAt + TTLFor(DataType), absolute
	AccessCount  int64     `json:"access_count"`
	LastAccessed time.Time `json:"last_accessed"`
}

// Expired reports whether the entry is stale at the given instant. An
// expired entry is functionally absent even before it is physically removed.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
