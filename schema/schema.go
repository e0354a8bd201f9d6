// Package schema holds the shared value types, enums and seed data tables
// used across the clearlabel analysis pipeline.
package schema

import (
	"strings"
	"time"
)

// ProductMetadata is the typed record returned by a product metadata fetcher.
// External payloads are converted into this shape at the collaborator
// boundary so no untyped maps reach the scoring logic.
type ProductMetadata struct {
	Barcode     string   `json:"barcode"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Ingredients []string `json:"ingredients"`
}

// IngredientHazardData is the typed record returned by an ingredient hazard
// fetcher. Provenance distinguishes chemical-database entries from
// AI-estimated fallbacks.
type IngredientHazardData struct {
	Ingredient  string     `json:"ingredient"`
	HazardCodes []string   `json:"hazard_codes"`
	Provenance  Provenance `json:"provenance"`
}

// IngredientHazards pairs one ingredient with its unique hazard codes.
type IngredientHazards struct {
	Name        string     `json:"name"`
	HazardCodes []string   `json:"hazard_codes"`
	Provenance  Provenance `json:"provenance"`
}

// IngredientHazardSet maps ingredients to hazard codes for one scan request.
// The slice preserves insertion order, which is the tie-break order for
// contributing-ingredient ranking. Built per request and owned exclusively
// by the scoring call that consumes it.
type IngredientHazardSet struct {
	Ingredients []IngredientHazards `json:"ingredients"`
}

// Add appends an ingredient with its hazard codes. The name is
// case-normalized and duplicate codes for the same ingredient are dropped.
// Re-adding an existing ingredient merges codes into the original position.
func (s *IngredientHazardSet) Add(name string, codes []string, prov Provenance) {
	norm := NormalizeIngredient(name)
	if norm == "" {
		return
	}

	for i := range s.Ingredients {
		if s.Ingredients[i].Name == norm {
			s.Ingredients[i].HazardCodes = mergeCodes(s.Ingredients[i].HazardCodes, codes)
			return
		}
	}

	s.Ingredients = append(s.Ingredients, IngredientHazards{
		Name:        norm,
		HazardCodes: mergeCodes(nil, codes),
		Provenance:  prov,
	})
}

// Len returns the number of distinct ingredients in the set.
func (s *IngredientHazardSet) Len() int {
	return len(s.Ingredients)
}

// mergeCodes appends codes to existing, skipping duplicates while keeping
// first-seen order.
func mergeCodes(existing, codes []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(codes))
	for _, c := range existing {
		seen[c] = struct{}{}
	}
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		existing = append(existing, c)
	}
	return existing
}

// NormalizeIngredient lowercases and trims an ingredient name so lookups and
// cache keys are insensitive to label formatting.
func NormalizeIngredient(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IngredientPenalty reports one ingredient's share of the total penalty.
type IngredientPenalty struct {
	Name         string     `json:"name"`
	Penalty      float64    `json:"penalty"`
	HazardCodes  []string   `json:"hazard_codes"`
	Provenance   Provenance `json:"provenance"`
	SkippedCodes []string   `json:"skipped_codes,omitempty"` // codes missing from the catalog
}

// SafetyScoreResult is the immutable value produced per scan. It is created
// once per computation and never mutated afterwards.
type SafetyScoreResult struct {
	Barcode     string    `json:"barcode"`
	ProductName string    `json:"product_name,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Score       int       `json:"score"`      // clamped to [0,100]
	RiskLevel   RiskLevel `json:"risk_level"` // derived solely from Score
	// Contributing lists ingredients by descending penalty (stable ties).
	Contributing []IngredientPenalty `json:"contributing_ingredients"`
	TotalPenalty float64             `json:"total_penalty"`
	ComputedAt   time.Time           `json:"computed_at"`
}

// ScanRecord is a persisted analysis result for one (barcode, user) pair.
type ScanRecord struct {
	Barcode   string            `json:"barcode"`
	UserID    int64             `json:"user_id"`
	Result    SafetyScoreResult `json:"result"`
	CreatedAt time.Time         `json:"created_at"`
}
