package contract

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clearlabel/clearlabel/schema"
)

// Default values for configuration.
const (
	DefaultFetchTimeout    = 10 * time.Second
	DefaultFreshnessWindow = 24 * time.Hour
	DefaultPrecision       = 2
	MaxPrecision           = 4
)

// Base weight bounds for hazard overrides loaded from the config file.
const (
	MinBaseWeight = 3.0
	MaxBaseWeight = 15.0
)

// recordDBFileName is the name of the SQLite database file for scan records.
const recordDBFileName = ".clearlabel_records.db"

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the analyzer.
// This struct remains the "final, validated" config.
type Config struct {
	UserID     int64
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	FetchTimeout    time.Duration // bound on each external fetch
	FreshnessWindow time.Duration // Tier-2 record acceptance window
	SweepInterval   time.Duration // entry cache sweep period (0 = lazy only)

	RecordBackend   schema.DatabaseBackend
	RecordDBConnect string // Please use env var as this is plaintext

	ProductAPI string // product metadata endpoint override ("" = production)
	ChemAPI    string // chemical database endpoint override ("" = production)
	AIEndpoint string // chat completion endpoint for hazard estimation ("" = disabled)
	AIAPIKey   string // Please use env var as this is plaintext
	AIModel    string

	// HazardOverrides is a mapping of hazard code to a custom base weight,
	// merged over the seed table when the catalog is built.
	HazardOverrides map[string]float64
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Barcode string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Precision       int    `mapstructure:"precision"`
	Color           string `mapstructure:"color"`
	Width           int    `mapstructure:"width"`
	RecordBackend   string `mapstructure:"record-backend"`
	RecordDBConnect string `mapstructure:"record-db-connect"`

	// --- Fields from analyzeCmd.Flags() ---
	User          int64  `mapstructure:"user"`
	FetchTimeout  string `mapstructure:"fetch-timeout"`
	Freshness     string `mapstructure:"freshness"`
	SweepInterval string `mapstructure:"sweep-interval"`

	// --- External source overrides ---
	ProductAPI string `mapstructure:"product-api"`
	ChemAPI    string `mapstructure:"chem-api"`
	AIEndpoint string `mapstructure:"ai-endpoint"`
	AIAPIKey   string `mapstructure:"ai-api-key"`
	AIModel    string `mapstructure:"ai-model"`

	// --- Custom hazard weights from config file ---
	HazardWeights map[string]float64 `mapstructure:"hazard_weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.HazardOverrides != nil {
		clone.HazardOverrides = make(map[string]float64, len(c.HazardOverrides))
		maps.Copy(clone.HazardOverrides, c.HazardOverrides)
	}
	return &clone
}

// GetRecordDBFilePath returns the path to the SQLite DB file for scan records.
func GetRecordDBFilePath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, recordDBFileName)
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDurations(cfg, input); err != nil {
		return err
	}
	if err := processHazardOverrides(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("record-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("record-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-duration fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.UserID = input.User

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- Precision Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	// --- Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- Backend Validation ---
	cfg.RecordBackend = schema.DatabaseBackend(strings.ToLower(input.RecordBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.RecordBackend]; !ok {
		return fmt.Errorf("invalid record backend '%s'. must be sqlite, mysql, postgresql, none", input.RecordBackend)
	}
	cfg.RecordDBConnect = input.RecordDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RecordBackend, cfg.RecordDBConnect); err != nil {
		return err
	}

	// --- External source overrides ---
	cfg.ProductAPI = input.ProductAPI
	cfg.ChemAPI = input.ChemAPI
	cfg.AIEndpoint = input.AIEndpoint
	cfg.AIAPIKey = input.AIAPIKey
	cfg.AIModel = input.AIModel

	return nil
}

// processDurations parses the duration-shaped inputs.
func processDurations(cfg *Config, input *ConfigRawInput) error {
	cfg.FetchTimeout = DefaultFetchTimeout
	if input.FetchTimeout != "" {
		d, err := time.ParseDuration(input.FetchTimeout)
		if err != nil {
			return fmt.Errorf("invalid fetch-timeout '%s': %w", input.FetchTimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("fetch-timeout must be positive (received %s)", d)
		}
		cfg.FetchTimeout = d
	}

	cfg.FreshnessWindow = DefaultFreshnessWindow
	if input.Freshness != "" {
		d, err := time.ParseDuration(input.Freshness)
		if err != nil {
			return fmt.Errorf("invalid freshness '%s': %w", input.Freshness, err)
		}
		if d <= 0 {
			return fmt.Errorf("freshness must be positive (received %s)", d)
		}
		cfg.FreshnessWindow = d
	}

	if input.SweepInterval != "" {
		d, err := time.ParseDuration(input.SweepInterval)
		if err != nil {
			return fmt.Errorf("invalid sweep-interval '%s': %w", input.SweepInterval, err)
		}
		if d < 0 {
			return fmt.Errorf("sweep-interval cannot be negative (received %s)", d)
		}
		cfg.SweepInterval = d
	}

	return nil
}

// processHazardOverrides validates custom base weights from the config file.
// Overrides may only adjust codes the seed table already knows; weights must
// stay within the seed range.
func processHazardOverrides(cfg *Config, input *ConfigRawInput) error {
	if len(input.HazardWeights) == 0 {
		return nil
	}

	table := schema.DefaultHazardTable()
	overrides := make(map[string]float64, len(input.HazardWeights))
	for code, weight := range input.HazardWeights {
		code = strings.ToUpper(strings.TrimSpace(code))
		if _, ok := table[code]; !ok {
			return fmt.Errorf("hazard_weights: unknown hazard code %q", code)
		}
		if weight < MinBaseWeight || weight > MaxBaseWeight {
			return fmt.Errorf("hazard_weights: weight for %s must be between %.0f and %.0f (received %.2f)",
				code, MinBaseWeight, MaxBaseWeight, weight)
		}
		overrides[code] = weight
	}
	cfg.HazardOverrides = overrides
	return nil
}

// ParseBoolString interprets yes/no style flag values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "y", "true", "1", "on":
		return true, nil
	case "no", "n", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes/no style value, got %q", s)
	}
}
