package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHazardClassFactor(t *testing.T) {
	assert.Equal(t, PhysicalClassFactor, HazardClassFactor("H225"))
	assert.Equal(t, HealthClassFactor, HazardClassFactor("H315"))
	assert.Equal(t, EnvironmentalClassFactor, HazardClassFactor("H410"))
	assert.Equal(t, 0.0, HazardClassFactor("X999"))
}

func TestHazardCategoryFactor(t *testing.T) {
	assert.Equal(t, PhysicalCategoryFactor, HazardCategoryFactor("H225"))
	assert.Equal(t, HealthCategoryFactor, HazardCategoryFactor("H315"))
	assert.Equal(t, EnvironmentalCategoryFactor, HazardCategoryFactor("H410"))
	assert.Equal(t, 0.0, HazardCategoryFactor("EUH066"))
}

func TestDefaultHazardTable(t *testing.T) {
	table := DefaultHazardTable()

	t.Run("weights stay within the seed range", func(t *testing.T) {
		for code, info := range table {
			assert.GreaterOrEqual(t, info.BaseWeight, 3.0, "code %s", code)
			assert.LessOrEqual(t, info.BaseWeight, 15.0, "code %s", code)
		}
	})

	t.Run("codes carry known prefixes", func(t *testing.T) {
		for code := range table {
			valid := strings.HasPrefix(code, "H2") || strings.HasPrefix(code, "H3") || strings.HasPrefix(code, "H4")
			assert.True(t, valid, "code %s has unexpected prefix", code)
			assert.NotZero(t, HazardClassFactor(code), "code %s has no class factor", code)
		}
	})

	t.Run("reference weights", func(t *testing.T) {
		assert.Equal(t, 5.0, table["H315"].BaseWeight)
		assert.Equal(t, 3.0, table["H319"].BaseWeight)
	})

	t.Run("entries have descriptions", func(t *testing.T) {
		for code, info := range table {
			assert.NotEmpty(t, info.Class, "code %s", code)
			assert.NotEmpty(t, info.Description, "code %s", code)
		}
	})
}
