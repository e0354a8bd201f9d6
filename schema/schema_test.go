package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIngredient(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "Aqua", expected: "aqua"},
		{name: "trims whitespace", input: "  glycerin  ", expected: "glycerin"},
		{name: "already normalized", input: "parfum", expected: "parfum"},
		{name: "empty", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIngredient(tt.input))
		})
	}
}

func TestIngredientHazardSetAdd(t *testing.T) {
	t.Run("normalizes and deduplicates codes", func(t *testing.T) {
		set := &IngredientHazardSet{}
		set.Add("Aqua ", []string{"h315", "H315", "H319"}, AuthoritativeProvenance)

		assert.Equal(t, 1, set.Len())
		assert.Equal(t, "aqua", set.Ingredients[0].Name)
		assert.Equal(t, []string{"H315", "H319"}, set.Ingredients[0].HazardCodes)
	})

	t.Run("merges re-added ingredient in place", func(t *testing.T) {
		set := &IngredientHazardSet{}
		set.Add("aqua", []string{"H315"}, AuthoritativeProvenance)
		set.Add("glycerin", []string{"H319"}, AuthoritativeProvenance)
		set.Add("AQUA", []string{"H317"}, AuthoritativeProvenance)

		assert.Equal(t, 2, set.Len())
		// Insertion order preserved; merge lands on the original slot
		assert.Equal(t, "aqua", set.Ingredients[0].Name)
		assert.Equal(t, []string{"H315", "H317"}, set.Ingredients[0].HazardCodes)
		assert.Equal(t, "glycerin", set.Ingredients[1].Name)
	})

	t.Run("ignores empty names", func(t *testing.T) {
		set := &IngredientHazardSet{}
		set.Add("   ", []string{"H315"}, AuthoritativeProvenance)
		assert.Equal(t, 0, set.Len())
	})
}

func TestRiskLevelForScore(t *testing.T) {
	tests := []struct {
		score    int
		expected RiskLevel
	}{
		{100, ExcellentRisk},
		{75, ExcellentRisk},
		{74, GoodRisk},
		{50, GoodRisk},
		{49, PoorRisk},
		{25, PoorRisk},
		{24, BadRisk},
		{0, BadRisk},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RiskLevelForScore(tt.score), "score %d", tt.score)
	}
}

func TestTTLFor(t *testing.T) {
	assert.Equal(t, 24*time.Hour, TTLFor(ProductInfoData))
	assert.Equal(t, 24*time.Hour, TTLFor(BarcodeLookupData))
	assert.Equal(t, 12*time.Hour, TTLFor(IngredientAnalysisData))
	assert.Equal(t, 12*time.Hour, TTLFor(AIAnalysisData))
	assert.Equal(t, 48*time.Hour, TTLFor(SafetyScoreData))
	assert.Equal(t, 6*time.Hour, TTLFor(CompleteAnalysisData))

	// Unknown types fall back to the default
	assert.Equal(t, DefaultTTL, TTLFor(DataType("mystery")))
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "product_info:123", CacheKey(ProductInfoData, "123"))
	assert.Equal(t, "complete_analysis:123:7", UserCacheKey(CompleteAnalysisData, "123", 7))
	assert.Equal(t, "ingredient_analysis:aqua", IngredientCacheKey("Aqua "))

	assert.Equal(t, CompleteAnalysisData, KeyDataType("complete_analysis:123:7"))
	assert.Equal(t, DataType(""), KeyDataType("no-separator"))
}

func TestCacheEntryExpired(t *testing.T) {
	now := time.Now()
	entry := CacheEntry{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, entry.Expired(now))
	assert.False(t, entry.Expired(now.Add(time.Hour))) // boundary is still live
	assert.True(t, entry.Expired(now.Add(time.Hour+time.Second)))
}

func TestCacheStatsHitRate(t *testing.T) {
	assert.Equal(t, 0.0, CacheStats{}.HitRate())
	assert.InDelta(t, 0.75, CacheStats{Hits: 3, Misses: 1}.HitRate(), 0.001)
}
