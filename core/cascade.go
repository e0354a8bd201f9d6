package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"
	"golang.org/x/sync/singleflight"
)

// Analyzer resolves scan requests through the tiered cascade: entry cache,
// persisted record store, then external fetch. Each tier only runs when the
// cheaper one missed, and concurrent requests for the same key coalesce onto
// a single in-flight computation.
type Analyzer struct {
	cfg         *contract.Config
	mgr         contract.StoreManager
	products    contract.ProductFetcher
	ingredients contract.IngredientFetcher
	catalog     *Catalog

	flight singleflight.Group
	now    func() time.Time
}

// NewAnalyzer wires a cascade from its collaborators. The store manager,
// fetchers and catalog are injected so tests can isolate tiers.
func NewAnalyzer(cfg *contract.Config, mgr contract.StoreManager, products contract.ProductFetcher, ingredients contract.IngredientFetcher, catalog *Catalog) *Analyzer {
	return &Analyzer{
		cfg:         cfg,
		mgr:         mgr,
		products:    products,
		ingredients: ingredients,
		catalog:     catalog,
		now:         time.Now,
	}
}

// scorePayload is the compact value stored under safety_score keys. It
// survives longer than the complete analysis entry and backs score-only
// queries.
type scorePayload struct {
	Score     int              `json:"score"`
	RiskLevel schema.RiskLevel `json:"risk_level"`
}

// Analyze resolves a barcode to a safety score for one user. At most one
// external fetch runs per (barcode, user) key within the complete-analysis
// TTL window; concurrent calls for the same key share one computation.
func (a *Analyzer) Analyze(ctx context.Context, barcode string, userID int64) (schema.SafetyScoreResult, error) {
	key := schema.UserCacheKey(schema.CompleteAnalysisData, barcode, userID)

	// Tier 1: entry cache.
	if result, ok := a.cachedResult(key); ok {
		return result, nil
	}

	// Coalesce concurrent misses for the same key onto one flight.
	v, err, _ := a.flight.Do(key, func() (any, error) {
		// A concurrent flight may have populated the cache while this
		// caller was waiting for the lock.
		if result, ok := a.cachedResult(key); ok {
			return result, nil
		}

		if result, ok := a.recentRecord(ctx, barcode, userID); ok {
			a.storeResult(key, barcode, userID, result)
			return result, nil
		}

		return a.computeAndPersist(ctx, key, barcode, userID)
	})
	if err != nil {
		return schema.SafetyScoreResult{}, err
	}
	return v.(schema.SafetyScoreResult), nil
}

// CachedScore returns the long-lived score-only entry for a key, if present.
// Backed by the safety_score data type, which outlives the complete analysis.
func (a *Analyzer) CachedScore(barcode string, userID int64) (int, schema.RiskLevel, bool) {
	entry, ok := a.mgr.GetEntryCache().Get(schema.UserCacheKey(schema.SafetyScoreData, barcode, userID))
	if !ok {
		return 0, "", false
	}
	var payload scorePayload
	if err := json.Unmarshal(entry.Value, &payload); err != nil {
		return 0, "", false
	}
	return payload.Score, payload.RiskLevel, true
}

// InvalidateProduct removes every cached entry for a barcode across all data
// types and returns how many entries were dropped. Persisted records are left
// alone; they age out through the freshness window.
func (a *Analyzer) InvalidateProduct(barcode string) int {
	cache := a.mgr.GetEntryCache()
	removed := 0
	for _, dt := range schema.AllDataTypes {
		removed += cache.DeletePrefix(schema.CacheKey(dt, barcode))
	}
	return removed
}

// CacheStats exposes entry cache counters for observability tooling.
func (a *Analyzer) CacheStats() schema.CacheStats {
	return a.mgr.GetEntryCache().Stats()
}

// Catalog returns the hazard catalog backing this analyzer.
func (a *Analyzer) Catalog() *Catalog {
	return a.catalog
}

// cachedResult is the Tier-1 lookup: a live complete-analysis entry for key.
func (a *Analyzer) cachedResult(key string) (schema.SafetyScoreResult, bool) {
	entry, ok := a.mgr.GetEntryCache().Get(key)
	if !ok {
		return schema.SafetyScoreResult{}, false
	}
	var result schema.SafetyScoreResult
	if err := json.Unmarshal(entry.Value, &result); err != nil {
		// A corrupt entry is dropped and treated as a miss.
		a.mgr.GetEntryCache().Delete(key)
		return schema.SafetyScoreResult{}, false
	}
	return result, true
}

// recentRecord is the Tier-2 lookup: a persisted record within the freshness
// window. Store failures fall through silently; the next tier can still
// produce an answer.
func (a *Analyzer) recentRecord(ctx context.Context, barcode string, userID int64) (schema.SafetyScoreResult, bool) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()

	rec, err := a.mgr.GetRecordStore().FindRecent(ctx, barcode, userID, a.cfg.FreshnessWindow)
	if err != nil {
		if !errors.Is(err, contract.ErrNoRecord) {
			contract.LogWarning(fmt.Sprintf("record lookup for %s failed, falling through: %v", barcode, err))
		}
		return schema.SafetyScoreResult{}, false
	}
	return rec.Result, true
}

// computeAndPersist is Tier 3: fetch product metadata, resolve every
// ingredient through the nested cascade, score, persist and cache. Failures
// here surface to the caller; nothing is cached on failure so a later scan
// can succeed.
func (a *Analyzer) computeAndPersist(ctx context.Context, key, barcode string, userID int64) (schema.SafetyScoreResult, error) {
	meta, err := a.resolveProduct(ctx, barcode)
	if err != nil {
		return schema.SafetyScoreResult{}, err
	}

	set := &schema.IngredientHazardSet{}
	for _, name := range meta.Ingredients {
		data, err := a.resolveIngredient(ctx, name)
		if err != nil {
			if errors.Is(err, contract.ErrIngredientNotFound) {
				// Unknown ingredients score zero penalty but stay visible.
				set.Add(name, nil, schema.AuthoritativeProvenance)
				continue
			}
			return schema.SafetyScoreResult{}, err
		}
		set.Add(data.Ingredient, data.HazardCodes, data.Provenance)
	}

	result := ComputeSafetyScore(a.catalog, meta, set, a.now())
	logSkippedCodes(result)

	// Persist first so the record survives a process restart; a save
	// failure degrades to cache-only reuse.
	rec := schema.ScanRecord{
		Barcode:   barcode,
		UserID:    userID,
		Result:    result,
		CreatedAt: result.ComputedAt,
	}
	if err := a.mgr.GetRecordStore().Save(ctx, rec); err != nil {
		contract.LogWarning(fmt.Sprintf("failed to persist scan record for %s: %v", barcode, err))
	}

	a.storeResult(key, barcode, userID, result)
	return result, nil
}

// resolveProduct runs the nested product metadata cascade: cache under
// product_info, then the external fetcher, coalesced per barcode.
func (a *Analyzer) resolveProduct(ctx context.Context, barcode string) (schema.ProductMetadata, error) {
	cache := a.mgr.GetEntryCache()
	key := schema.CacheKey(schema.ProductInfoData, barcode)

	if entry, ok := cache.Get(key); ok {
		var meta schema.ProductMetadata
		if err := json.Unmarshal(entry.Value, &meta); err == nil {
			return meta, nil
		}
		cache.Delete(key)
	}

	v, err, _ := a.flight.Do(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
		defer cancel()

		meta, err := a.products.FetchProduct(fetchCtx, barcode)
		if err != nil {
			return schema.ProductMetadata{}, err
		}
		if encoded, err := json.Marshal(meta); err == nil {
			cache.Put(key, encoded, schema.ProductInfoData)
		}
		return meta, nil
	})
	if err != nil {
		return schema.ProductMetadata{}, err
	}
	return v.(schema.ProductMetadata), nil
}

// resolveIngredient runs the nested ingredient cascade: cache under
// ingredient_analysis, then the external fetcher, coalesced per name.
// Estimated results are cached under ai_analysis instead so their provenance
// stays visible to cache inspection tooling.
func (a *Analyzer) resolveIngredient(ctx context.Context, name string) (schema.IngredientHazardData, error) {
	cache := a.mgr.GetEntryCache()
	key := schema.IngredientCacheKey(name)

	if entry, ok := cache.Get(key); ok {
		var data schema.IngredientHazardData
		if err := json.Unmarshal(entry.Value, &data); err == nil {
			return data, nil
		}
		cache.Delete(key)
	}

	v, err, _ := a.flight.Do(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
		defer cancel()

		data, err := a.ingredients.FetchIngredient(fetchCtx, name)
		if err != nil {
			return schema.IngredientHazardData{}, err
		}

		dt := schema.IngredientAnalysisData
		if data.Provenance == schema.EstimatedProvenance {
			dt = schema.AIAnalysisData
		}
		if encoded, err := json.Marshal(data); err == nil {
			cache.Put(key, encoded, dt)
		}
		return data, nil
	})
	if err != nil {
		return schema.IngredientHazardData{}, err
	}
	return v.(schema.IngredientHazardData), nil
}

// storeResult writes the complete analysis and the compact score entry for a
// finished scan.
func (a *Analyzer) storeResult(key, barcode string, userID int64, result schema.SafetyScoreResult) {
	cache := a.mgr.GetEntryCache()

	if encoded, err := json.Marshal(result); err == nil {
		cache.Put(key, encoded, schema.CompleteAnalysisData)
	}

	payload := scorePayload{Score: result.Score, RiskLevel: result.RiskLevel}
	if encoded, err := json.Marshal(payload); err == nil {
		cache.Put(schema.UserCacheKey(schema.SafetyScoreData, barcode, userID), encoded, schema.SafetyScoreData)
	}
}

// logSkippedCodes reports hazard codes the catalog did not recognize.
func logSkippedCodes(result schema.SafetyScoreResult) {
	for _, ing := range result.Contributing {
		for _, code := range ing.SkippedCodes {
			contract.LogWarning(fmt.Sprintf("skipping unknown hazard code %s on ingredient %s", code, ing.Name))
		}
	}
}
