package iocache

import (
	"strings"
	"sync"
	"time"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"
)

// MemoryStore is the in-process Tier-1 entry cache. A single mutex covers
// lookups and mutations so access counting stays linearizable per key; the
// critical sections are map operations only, never I/O.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*schema.CacheEntry

	hits      int64
	misses    int64
	evictions int64

	now func() time.Time // injectable clock for expiry tests
}

var _ contract.EntryCache = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty entry cache using the wall clock.
func NewMemoryStore() *MemoryStore {
	return newMemoryStoreWithClock(time.Now)
}

// newMemoryStoreWithClock allows tests to simulate time advancing past TTLs.
func newMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*schema.CacheEntry),
		now:     now,
	}
}

// Get returns a copy of the live entry for key and bumps its access count.
// An expired entry is removed and reported as a miss; a stale value is never
// returned.
func (s *MemoryStore) Get(key string) (schema.CacheEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		s.misses++
		return schema.CacheEntry{}, false
	}

	now := s.now()
	if entry.Expired(now) {
		// Lazy eviction keeps correctness independent of Sweep.
		delete(s.entries, key)
		s.evictions++
		s.misses++
		return schema.CacheEntry{}, false
	}

	entry.AccessCount++
	entry.LastAccessed = now
	s.hits++
	return copyEntry(entry), true
}

// Put stores value under key with the TTL of the given data type,
// overwriting any existing entry. The TTL is absolute from creation; later
// hits never extend it.
func (s *MemoryStore) Put(key string, value []byte, dt schema.DataType) {
	now := s.now()
	entry := &schema.CacheEntry{
		Key:          key,
		Value:        append([]byte(nil), value...),
		DataType:     dt,
		CreatedAt:    now,
		ExpiresAt:    now.Add(schema.TTLFor(dt)),
		LastAccessed: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
}

// Delete removes the entry for key if present.
func (s *MemoryStore) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	s.evictions++
	return true
}

// DeletePrefix removes every entry whose key starts with prefix.
func (s *MemoryStore) DeletePrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	s.evictions += int64(removed)
	return removed
}

// Sweep removes all expired entries. Memory reclamation only; Get already
// guarantees stale entries are never served.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	s.evictions += int64(removed)
	return removed
}

// StartSweeper runs Sweep every interval until the returned stop function is
// called. A non-positive interval disables sweeping.
func (s *MemoryStore) StartSweeper(interval time.Duration) (stop func()) {
	if interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// Stats returns hit/miss/eviction counters and live entry counts. Expired
// but unswept entries are not counted as live.
func (s *MemoryStore) Stats() schema.CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	byType := make(map[schema.DataType]int)
	live := 0
	for _, entry := range s.entries {
		if entry.Expired(now) {
			continue
		}
		live++
		byType[entry.DataType]++
	}

	return schema.CacheStats{
		Entries:       live,
		Hits:          s.hits,
		Misses:        s.misses,
		Evictions:     s.evictions,
		EntriesByType: byType,
	}
}

// Close releases the entry map.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*schema.CacheEntry)
	return nil
}

// copyEntry returns a detached copy so callers never alias cache-owned state.
func copyEntry(e *schema.CacheEntry) schema.CacheEntry {
	cp := *e
	cp.Value = append([]byte(nil), e.Value...)
	return cp
}
