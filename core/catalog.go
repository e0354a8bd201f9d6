// Package core implements the analysis pipeline: the hazard catalog, the
// safety scorer and the tiered cache cascade that feeds it.
package core

import (
	"fmt"
	"maps"
	"sort"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"
)

// Catalog is the read-only hazard code table used by the scorer. It is built
// once from the seed table plus any configured base weight overrides and never
// mutated afterwards.
type Catalog struct {
	table map[string]schema.HazardInfo
}

// NewCatalog builds a catalog from the seed table with overrides applied.
// Unknown override codes are rejected here so a bad config file fails fast
// instead of surfacing mid-scan.
func NewCatalog(overrides map[string]float64) (*Catalog, error) {
	table := make(map[string]schema.HazardInfo, len(schema.DefaultHazardTable()))
	maps.Copy(table, schema.DefaultHazardTable())

	for code, weight := range overrides {
		info, ok := table[code]
		if !ok {
			return nil, fmt.Errorf("hazard override for unknown code %q", code)
		}
		if weight < contract.MinBaseWeight || weight > contract.MaxBaseWeight {
			return nil, fmt.Errorf("hazard override for %s out of range [%.0f, %.0f]: %.2f",
				code, contract.MinBaseWeight, contract.MaxBaseWeight, weight)
		}
		info.BaseWeight = weight
		table[code] = info
	}

	return &Catalog{table: table}, nil
}

// Lookup returns the catalog entry for a hazard code. A code missing from the
// table yields an UnknownHazardCodeError; callers skip and log rather than
// failing the scan.
func (c *Catalog) Lookup(code string) (schema.HazardInfo, error) {
	info, ok := c.table[code]
	if !ok {
		return schema.HazardInfo{}, &contract.UnknownHazardCodeError{Code: code}
	}
	return info, nil
}

// Penalty returns the full penalty for one hazard code:
// base weight times class factor times category factor.
func (c *Catalog) Penalty(code string) (float64, error) {
	info, err := c.Lookup(code)
	if err != nil {
		return 0, err
	}
	return info.BaseWeight * schema.HazardClassFactor(code) * schema.HazardCategoryFactor(code), nil
}

// Codes returns all known hazard codes in sorted order.
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.table))
	for code := range c.table {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of codes in the catalog.
func (c *Catalog) Len() int {
	return len(c.table)
}
