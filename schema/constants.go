package schema

import "time"

// Custom string types for type safety.
type (
	// DataType classifies a cache entry and selects its TTL.
	DataType string

	// RiskLevel represents the qualitative safety rating derived from a score.
	RiskLevel string

	// Provenance marks how a set of hazard codes was obtained.
	Provenance string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the record store.
	DatabaseBackend string
)

// All cacheable data types.
const (
	ProductInfoData        DataType = "product_info"
	BarcodeLookupData      DataType = "barcode_lookup"
	IngredientAnalysisData DataType = "ingredient_analysis"
	AIAnalysisData         DataType = "ai_analysis"
	SafetyScoreData        DataType = "safety_score"
	CompleteAnalysisData   DataType = "complete_analysis"
)

// All risk levels, from best to worst.
const (
	ExcellentRisk RiskLevel = "excellent"
	GoodRisk      RiskLevel = "good"
	PoorRisk      RiskLevel = "poor"
	BadRisk       RiskLevel = "bad"
)

// Hazard data provenance markers.
const (
	AuthoritativeProvenance Provenance = "authoritative" // chemical database entry
	EstimatedProvenance     Provenance = "estimated"     // AI-estimated fallback
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All record store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllDataTypes returns a list of all cacheable data types.
var AllDataTypes = []DataType{
	ProductInfoData,
	BarcodeLookupData,
	IngredientAnalysisData,
	AIAnalysisData,
	SafetyScoreData,
	CompleteAnalysisData,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid record store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// dataTypeTTL maps each data type to how long its entries stay fresh.
// Complete analyses expire quickest since they fold in every other layer;
// raw safety scores are the most stable and keep the longest TTL.
var dataTypeTTL = map[DataType]time.Duration{
	ProductInfoData:        24 * time.Hour,
	BarcodeLookupData:      24 * time.Hour,
	IngredientAnalysisData: 12 * time.Hour,
	AIAnalysisData:         12 * time.Hour,
	SafetyScoreData:        48 * time.Hour,
	CompleteAnalysisData:   6 * time.Hour,
}

// DefaultTTL is used for data types missing from the TTL table.
const DefaultTTL = 12 * time.Hour

// TTLFor returns the time-to-live for entries of the given data type.
func TTLFor(dt DataType) time.Duration {
	if ttl, ok := dataTypeTTL[dt]; ok {
		return ttl
	}
	return DefaultTTL
}

// Risk level score thresholds (closed lower bounds).
const (
	ExcellentThreshold = 75
	GoodThreshold      = 50
	PoorThreshold      = 25
)

// RiskLevelForScore maps a clamped 0-100 score to its risk level.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= ExcellentThreshold:
		return ExcellentRisk
	case score >= GoodThreshold:
		return GoodRisk
	case score >= PoorThreshold:
		return PoorRisk
	default:
		return BadRisk
	}
}
