package iocache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/clearlabel/clearlabel/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance time past TTL boundaries.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	key := schema.CacheKey(schema.ProductInfoData, "123")
	store.Put(key, []byte(`{"name":"soap"}`), schema.ProductInfoData)

	entry, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, key, entry.Key)
	assert.Equal(t, []byte(`{"name":"soap"}`), entry.Value)
	assert.Equal(t, schema.ProductInfoData, entry.DataType)
	assert.Equal(t, int64(1), entry.AccessCount)

	_, ok = store.Get("product_info:missing")
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	clock := newFakeClock()
	store := newMemoryStoreWithClock(clock.Now)
	defer store.Close()

	key := schema.UserCacheKey(schema.CompleteAnalysisData, "123", 7)
	store.Put(key, []byte("payload"), schema.CompleteAnalysisData)

	t.Run("live until the TTL boundary", func(t *testing.T) {
		clock.Advance(schema.TTLFor(schema.CompleteAnalysisData))
		_, ok := store.Get(key)
		assert.True(t, ok)
	})

	t.Run("miss after the boundary and removed for good", func(t *testing.T) {
		clock.Advance(time.Second)
		_, ok := store.Get(key)
		assert.False(t, ok)

		// The lazy eviction removed the entry; rewinding would not bring it back.
		stats := store.Stats()
		assert.Equal(t, 0, stats.Entries)
		assert.Equal(t, int64(1), stats.Evictions)
	})
}

func TestMemoryStoreTTLIsAbsolute(t *testing.T) {
	clock := newFakeClock()
	store := newMemoryStoreWithClock(clock.Now)
	defer store.Close()

	key := schema.IngredientCacheKey("aqua")
	store.Put(key, []byte("codes"), schema.IngredientAnalysisData)

	// Repeated hits must not slide the deadline.
	for i := 0; i < 5; i++ {
		clock.Advance(2 * time.Hour)
		_, ok := store.Get(key)
		assert.True(t, ok, "hit %d", i)
	}

	clock.Advance(3 * time.Hour) // 13h total, past the 12h TTL
	_, ok := store.Get(key)
	assert.False(t, ok)
}

func TestMemoryStoreAccessCounting(t *testing.T) {
	clock := newFakeClock()
	store := newMemoryStoreWithClock(clock.Now)
	defer store.Close()

	store.Put("safety_score:1:1", []byte("x"), schema.SafetyScoreData)

	first, _ := store.Get("safety_score:1:1")
	clock.Advance(time.Minute)
	second, _ := store.Get("safety_score:1:1")

	assert.Equal(t, int64(1), first.AccessCount)
	assert.Equal(t, int64(2), second.AccessCount)
	assert.True(t, second.LastAccessed.After(first.LastAccessed))
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	store.Put("product_info:123", []byte("a"), schema.ProductInfoData)
	store.Put("product_info:456", []byte("b"), schema.ProductInfoData)
	store.Put("ingredient_analysis:aqua", []byte("c"), schema.IngredientAnalysisData)

	assert.True(t, store.Delete("product_info:123"))
	assert.False(t, store.Delete("product_info:123"))

	removed := store.DeletePrefix("product_info:")
	assert.Equal(t, 1, removed)

	stats := store.Stats()
	assert.Equal(t, 1, stats.Entries)
}

func TestMemoryStoreSweep(t *testing.T) {
	clock := newFakeClock()
	store := newMemoryStoreWithClock(clock.Now)
	defer store.Close()

	store.Put("complete_analysis:1:1", []byte("a"), schema.CompleteAnalysisData) // 6h TTL
	store.Put("safety_score:1:1", []byte("b"), schema.SafetyScoreData)          // 48h TTL

	clock.Advance(7 * time.Hour)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Sweep(), "second sweep finds nothing")

	stats := store.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(1), stats.Evictions)
}

func TestMemoryStoreStatsByType(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	store.Put("product_info:1", []byte("a"), schema.ProductInfoData)
	store.Put("product_info:2", []byte("b"), schema.ProductInfoData)
	store.Put("ingredient_analysis:aqua", []byte("c"), schema.IngredientAnalysisData)

	store.Get("product_info:1")
	store.Get("product_info:nope")

	stats := store.Stats()
	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 2, stats.EntriesByType[schema.ProductInfoData])
	assert.Equal(t, 1, stats.EntriesByType[schema.IngredientAnalysisData])
}

func TestMemoryStoreValueIsolation(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	original := []byte("pristine")
	store.Put("ai_analysis:x", original, schema.AIAnalysisData)
	original[0] = 'X' // caller mutates its slice after Put

	entry, ok := store.Get("ai_analysis:x")
	require.True(t, ok)
	assert.Equal(t, []byte("pristine"), entry.Value)

	entry.Value[0] = 'Y' // caller mutates the returned copy
	again, _ := store.Get("ai_analysis:x")
	assert.Equal(t, []byte("pristine"), again.Value)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	store.Put("complete_analysis:1:1", []byte("v"), schema.CompleteAnalysisData)

	const goroutines = 50
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Get("complete_analysis:1:1")
			store.Put(fmt.Sprintf("product_info:%d", i), []byte("x"), schema.ProductInfoData)
		}(i)
	}
	wg.Wait()

	entry, ok := store.Get("complete_analysis:1:1")
	require.True(t, ok)
	assert.Equal(t, int64(goroutines+1), entry.AccessCount)

	stats := store.Stats()
	assert.Equal(t, goroutines+1, stats.Entries)
}

func TestMemoryStoreSweeper(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	stop := store.StartSweeper(0)
	stop() // no-op sweeper must be safe to stop

	stop = store.StartSweeper(10 * time.Millisecond)
	stop()
	stop() // idempotent
}
