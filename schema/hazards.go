package schema

import "strings"

// HazardInfo describes one GHS hazard statement code. BaseWeight is the
// seed penalty weight (3-15); the class and category factors come from the
// code prefix, see HazardClassFactor and HazardCategoryFactor.
type HazardInfo struct {
	Class       string  `json:"class"`       // GHS hazard class, e.g. "Skin irritation"
	Category    string  `json:"category"`    // category within the class
	Description string  `json:"description"` // hazard statement text
	BaseWeight  float64 `json:"base_weight"` // 3-15
}

// Hazard class factors by code prefix. Health hazards (H3xx) dominate for
// products applied to skin; environmental hazards (H4xx) matter least for
// the wearer.
const (
	PhysicalClassFactor      = 1.2 // H2xx
	HealthClassFactor        = 1.5 // H3xx
	EnvironmentalClassFactor = 0.8 // H4xx
)

// Hazard category factors by domain.
const (
	PhysicalCategoryFactor      = 1.0
	HealthCategoryFactor        = 1.5
	EnvironmentalCategoryFactor = 0.8
)

// HazardClassFactor returns the class factor for a hazard code based on its
// H2xx/H3xx/H4xx prefix. Returns 0 for codes outside the known prefixes.
func HazardClassFactor(code string) float64 {
	switch {
	case strings.HasPrefix(code, "H2"):
		return PhysicalClassFactor
	case strings.HasPrefix(code, "H3"):
		return HealthClassFactor
	case strings.HasPrefix(code, "H4"):
		return EnvironmentalClassFactor
	default:
		return 0
	}
}

// HazardCategoryFactor returns the domain factor for a hazard code.
// Returns 0 for codes outside the known prefixes.
func HazardCategoryFactor(code string) float64 {
	switch {
	case strings.HasPrefix(code, "H2"):
		return PhysicalCategoryFactor
	case strings.HasPrefix(code, "H3"):
		return HealthCategoryFactor
	case strings.HasPrefix(code, "H4"):
		return EnvironmentalCategoryFactor
	default:
		return 0
	}
}

// DefaultHazardTable returns the seed GHS hazard table. Callers must treat
// the returned map as read-only; the catalog copies it before applying any
// configured overrides.
func DefaultHazardTable() map[string]HazardInfo {
	return defaultHazardTable
}

// defaultHazardTable seeds the catalog. Base weights are configuration data
// and can be overridden per code from the config file.
var defaultHazardTable = map[string]HazardInfo{
	// Physical hazards (H2xx)
	"H200": {Class: "Explosives", Category: "1", Description: "Unstable explosive", BaseWeight: 15},
	"H201": {Class: "Explosives", Category: "1", Description: "Explosive; mass explosion hazard", BaseWeight: 15},
	"H202": {Class: "Explosives", Category: "2", Description: "Explosive; severe projection hazard", BaseWeight: 14},
	"H203": {Class: "Explosives", Category: "3", Description: "Explosive; fire, blast or projection hazard", BaseWeight: 12},
	"H204": {Class: "Explosives", Category: "3", Description: "Fire or projection hazard", BaseWeight: 12},
	"H205": {Class: "Explosives", Category: "4", Description: "May mass explode in fire", BaseWeight: 11},
	"H220": {Class: "Flammable gases", Category: "1", Description: "Extremely flammable gas", BaseWeight: 12},
	"H221": {Class: "Flammable gases", Category: "2", Description: "Flammable gas", BaseWeight: 11},
	"H222": {Class: "Flammable aerosols", Category: "1", Description: "Extremely flammable aerosol", BaseWeight: 12},
	"H223": {Class: "Flammable aerosols", Category: "2", Description: "Flammable aerosol", BaseWeight: 11},
	"H224": {Class: "Flammable liquids", Category: "1", Description: "Extremely flammable liquid and vapour", BaseWeight: 12},
	"H225": {Class: "Flammable liquids", Category: "2", Description: "Highly flammable liquid and vapour", BaseWeight: 11},
	"H226": {Class: "Flammable liquids", Category: "3", Description: "Flammable liquid and vapour", BaseWeight: 9},
	"H228": {Class: "Flammable solids", Category: "1", Description: "Flammable solid", BaseWeight: 9},
	"H240": {Class: "Self-reactive", Category: "1", Description: "Heating may cause an explosion", BaseWeight: 14},
	"H241": {Class: "Self-reactive", Category: "2", Description: "Heating may cause a fire or explosion", BaseWeight: 12},
	"H242": {Class: "Self-reactive", Category: "3", Description: "Heating may cause a fire", BaseWeight: 11},
	"H250": {Class: "Pyrophoric", Category: "1", Description: "Catches fire spontaneously if exposed to air", BaseWeight: 14},
	"H251": {Class: "Self-heating", Category: "2", Description: "Self-heating; may catch fire", BaseWeight: 12},
	"H252": {Class: "Self-heating", Category: "3", Description: "Self-heating in large quantities; may catch fire", BaseWeight: 11},
	"H260": {Class: "Water-reactive", Category: "1", Description: "In contact with water releases flammable gases which may ignite spontaneously", BaseWeight: 14},
	"H261": {Class: "Water-reactive", Category: "2", Description: "In contact with water releases flammable gases", BaseWeight: 12},
	"H270": {Class: "Oxidizers", Category: "1", Description: "May cause or intensify fire; oxidizer", BaseWeight: 12},
	"H271": {Class: "Oxidizers", Category: "2", Description: "May cause fire or explosion; strong oxidizer", BaseWeight: 11},
	"H272": {Class: "Oxidizers", Category: "3", Description: "May intensify fire; oxidizer", BaseWeight: 9},
	"H280": {Class: "Gases under pressure", Category: "1", Description: "Contains gas under pressure; may explode if heated", BaseWeight: 6},
	"H281": {Class: "Refrigerated gas", Category: "2", Description: "Contains refrigerated gas; may cause cryogenic burns", BaseWeight: 5},

	// Health hazards (H3xx)
	"H300": {Class: "Acute toxicity (oral)", Category: "1", Description: "Fatal if swallowed", BaseWeight: 12},
	"H301": {Class: "Acute toxicity (oral)", Category: "2", Description: "Toxic if swallowed", BaseWeight: 9},
	"H302": {Class: "Acute toxicity (oral)", Category: "3", Description: "Harmful if swallowed", BaseWeight: 5},
	"H303": {Class: "Acute toxicity (oral)", Category: "4", Description: "May be harmful if swallowed", BaseWeight: 3},
	"H304": {Class: "Aspiration hazard", Category: "1", Description: "May be fatal if swallowed and enters airways", BaseWeight: 9},
	"H305": {Class: "Aspiration hazard", Category: "2", Description: "May be harmful if swallowed and enters airways", BaseWeight: 5},
	"H310": {Class: "Acute toxicity (dermal)", Category: "1", Description: "Fatal in contact with skin", BaseWeight: 12},
	"H311": {Class: "Acute toxicity (dermal)", Category: "2", Description: "Toxic in contact with skin", BaseWeight: 9},
	"H312": {Class: "Acute toxicity (dermal)", Category: "3", Description: "Harmful in contact with skin", BaseWeight: 5},
	"H313": {Class: "Acute toxicity (dermal)", Category: "4", Description: "May be harmful in contact with skin", BaseWeight: 3},
	"H314": {Class: "Skin corrosion", Category: "1", Description: "Causes severe skin burns and eye damage", BaseWeight: 8},
	"H315": {Class: "Skin irritation", Category: "2", Description: "Causes skin irritation", BaseWeight: 5},
	"H316": {Class: "Skin irritation", Category: "3", Description: "Causes mild skin irritation", BaseWeight: 3},
	"H317": {Class: "Skin sensitization", Category: "1", Description: "May cause an allergic skin reaction", BaseWeight: 5},
	"H318": {Class: "Serious eye damage", Category: "1", Description: "Causes serious eye damage", BaseWeight: 8},
	"H319": {Class: "Eye irritation", Category: "2", Description: "Causes serious eye irritation", BaseWeight: 3},
	"H320": {Class: "Eye irritation", Category: "3", Description: "Causes mild eye irritation", BaseWeight: 3},
	"H330": {Class: "Acute toxicity (inhalation)", Category: "1", Description: "Fatal if inhaled", BaseWeight: 12},
	"H331": {Class: "Acute toxicity (inhalation)", Category: "2", Description: "Toxic if inhaled", BaseWeight: 9},
	"H332": {Class: "Acute toxicity (inhalation)", Category: "3", Description: "Harmful if inhaled", BaseWeight: 5},
	"H333": {Class: "Acute toxicity (inhalation)", Category: "4", Description: "May be harmful if inhaled", BaseWeight: 3},
	"H334": {Class: "Respiratory sensitization", Category: "1", Description: "May cause allergy or asthma symptoms or breathing difficulties if inhaled", BaseWeight: 6},
	"H335": {Class: "Respiratory irritation", Category: "3", Description: "May cause respiratory irritation", BaseWeight: 4},
	"H336": {Class: "Narcotic effects", Category: "3", Description: "May cause drowsiness or dizziness", BaseWeight: 4},
	"H340": {Class: "Mutagenicity", Category: "1", Description: "May cause genetic defects", BaseWeight: 12},
	"H341": {Class: "Mutagenicity", Category: "2", Description: "Suspected of causing genetic defects", BaseWeight: 8},
	"H350": {Class: "Carcinogenicity", Category: "1", Description: "May cause cancer", BaseWeight: 12},
	"H351": {Class: "Carcinogenicity", Category: "2", Description: "Suspected of causing cancer", BaseWeight: 8},
	"H360": {Class: "Reproductive toxicity", Category: "1", Description: "May damage fertility or the unborn child", BaseWeight: 12},
	"H361": {Class: "Reproductive toxicity", Category: "2", Description: "Suspected of damaging fertility or the unborn child", BaseWeight: 8},
	"H362": {Class: "Reproductive toxicity", Category: "3", Description: "May cause harm to breast-fed children", BaseWeight: 5},
	"H370": {Class: "STOT single exposure", Category: "1", Description: "Causes damage to organs", BaseWeight: 11},
	"H371": {Class: "STOT single exposure", Category: "2", Description: "May cause damage to organs", BaseWeight: 6},
	"H372": {Class: "STOT repeated exposure", Category: "1", Description: "Causes damage to organs through prolonged or repeated exposure", BaseWeight: 11},
	"H373": {Class: "STOT repeated exposure", Category: "2", Description: "May cause damage to organs through prolonged or repeated exposure", BaseWeight: 6},

	// Environmental hazards (H4xx)
	"H400": {Class: "Acute aquatic hazard", Category: "1", Description: "Very toxic to aquatic life", BaseWeight: 6},
	"H401": {Class: "Acute aquatic hazard", Category: "2", Description: "Toxic to aquatic life", BaseWeight: 5},
	"H402": {Class: "Acute aquatic hazard", Category: "3", Description: "Harmful to aquatic life", BaseWeight: 4},
	"H410": {Class: "Chronic aquatic hazard", Category: "1", Description: "Very toxic to aquatic life with long lasting effects", BaseWeight: 8},
	"H411": {Class: "Chronic aquatic hazard", Category: "2", Description: "Toxic to aquatic life with long lasting effects", BaseWeight: 6},
	"H412": {Class: "Chronic aquatic hazard", Category: "3", Description: "Harmful to aquatic life with long lasting effects", BaseWeight: 5},
	"H413": {Class: "Chronic aquatic hazard", Category: "4", Description: "May cause long lasting harmful effects to aquatic life", BaseWeight: 4},
}
