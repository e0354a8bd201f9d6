package core

import (
	"math"
	"sort"
	"time"

	"github.com/clearlabel/clearlabel/schema"
)

// ComputeSafetyScore converts an ingredient hazard set into a safety score.
// Pure and deterministic: the same catalog, set and timestamp always produce
// an identical result.
//
// Per hazard code the penalty is base_weight * class_factor * category_factor;
// per ingredient it is the sum over its codes; the total is the sum over all
// ingredients with no deduplication across ingredients. The score is
// 100 - total, rounded half-up and clamped to [0, 100].
func ComputeSafetyScore(catalog *Catalog, meta schema.ProductMetadata, set *schema.IngredientHazardSet, now time.Time) schema.SafetyScoreResult {
	contributing := make([]schema.IngredientPenalty, 0, set.Len())
	var total float64

	for _, ing := range set.Ingredients {
		penalty := schema.IngredientPenalty{
			Name:        ing.Name,
			HazardCodes: ing.HazardCodes,
			Provenance:  ing.Provenance,
		}

		for _, code := range ing.HazardCodes {
			p, err := catalog.Penalty(code)
			if err != nil {
				// Unknown codes are skipped, never fatal. The skip is
				// recorded so callers can log it.
				penalty.SkippedCodes = append(penalty.SkippedCodes, code)
				continue
			}
			penalty.Penalty += p
		}

		// Zero-penalty ingredients stay in the list for transparency.
		total += penalty.Penalty
		contributing = append(contributing, penalty)
	}

	// Descending by penalty; ties keep insertion order.
	sort.SliceStable(contributing, func(i, j int) bool {
		return contributing[i].Penalty > contributing[j].Penalty
	})

	return schema.SafetyScoreResult{
		Barcode:      meta.Barcode,
		ProductName:  meta.Name,
		Brand:        meta.Brand,
		Score:        clampScore(100 - total),
		RiskLevel:    schema.RiskLevelForScore(clampScore(100 - total)),
		Contributing: contributing,
		TotalPenalty: total,
		ComputedAt:   now,
	}
}

// clampScore rounds half-up to the nearest integer and clamps to [0, 100].
func clampScore(raw float64) int {
	score := int(math.Floor(raw + 0.5))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
