package schema

import (
	"fmt"
	"strings"
)

// Cache keys follow the convention {data_type}:{identifier}[:{user_id}].
// The format is shared with persisted cache inspection tooling, so every
// producer must go through these helpers instead of formatting keys inline.

// CacheKey builds a cache key without a user component.
func CacheKey(dt DataType, identifier string) string {
	return fmt.Sprintf("%s:%s", dt, identifier)
}

// UserCacheKey builds a cache key scoped to one user.
func UserCacheKey(dt DataType, identifier string, userID int64) string {
	return fmt.Sprintf("%s:%s:%d", dt, identifier, userID)
}

// IngredientCacheKey builds the key for a nested ingredient analysis entry.
// The ingredient name is normalized so "Aqua" and "aqua " share one entry.
func IngredientCacheKey(name string) string {
	return CacheKey(IngredientAnalysisData, NormalizeIngredient(name))
}

// KeyDataType extracts the data type prefix from a cache key. Returns an
// empty DataType when the key does not follow the shared convention.
func KeyDataType(key string) DataType {
	prefix, _, ok := strings.Cut(key, ":")
	if !ok {
		return ""
	}
	return DataType(prefix)
}
