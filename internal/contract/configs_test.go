package contract

import (
	"testing"
	"time"

	"github.com/clearlabel/clearlabel/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation unchanged.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:        "text",
		Precision:     2,
		Color:         "yes",
		RecordBackend: "sqlite",
	}
}

func TestProcessAndValidate(t *testing.T) {
	t.Run("valid defaults", func(t *testing.T) {
		cfg := &Config{}
		err := ProcessAndValidate(cfg, validInput())
		require.NoError(t, err)

		assert.Equal(t, schema.TextOut, cfg.Output)
		assert.Equal(t, schema.SQLiteBackend, cfg.RecordBackend)
		assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
		assert.Equal(t, DefaultFreshnessWindow, cfg.FreshnessWindow)
		assert.True(t, cfg.UseColors)
	})

	t.Run("invalid output format", func(t *testing.T) {
		input := validInput()
		input.Output = "xml"
		err := ProcessAndValidate(&Config{}, input)
		assert.ErrorContains(t, err, "invalid output format")
	})

	t.Run("invalid precision", func(t *testing.T) {
		input := validInput()
		input.Precision = MaxPrecision + 1
		err := ProcessAndValidate(&Config{}, input)
		assert.ErrorContains(t, err, "precision must be between")
	})

	t.Run("invalid backend", func(t *testing.T) {
		input := validInput()
		input.RecordBackend = "oracle"
		err := ProcessAndValidate(&Config{}, input)
		assert.ErrorContains(t, err, "invalid record backend")
	})

	t.Run("custom durations", func(t *testing.T) {
		input := validInput()
		input.FetchTimeout = "5s"
		input.Freshness = "48h"
		input.SweepInterval = "1m"

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
		assert.Equal(t, 48*time.Hour, cfg.FreshnessWindow)
		assert.Equal(t, time.Minute, cfg.SweepInterval)
	})

	t.Run("negative fetch timeout rejected", func(t *testing.T) {
		input := validInput()
		input.FetchTimeout = "-3s"
		err := ProcessAndValidate(&Config{}, input)
		assert.ErrorContains(t, err, "fetch-timeout must be positive")
	})

	t.Run("hazard overrides accepted", func(t *testing.T) {
		input := validInput()
		input.HazardWeights = map[string]float64{"h315": 7}

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, 7.0, cfg.HazardOverrides["H315"])
	})

	t.Run("unknown hazard override rejected", func(t *testing.T) {
		input := validInput()
		input.HazardWeights = map[string]float64{"H999": 7}
		err := ProcessAndValidate(&Config{}, input)
		assert.ErrorContains(t, err, "unknown hazard code")
	})

	t.Run("out of range hazard override rejected", func(t *testing.T) {
		input := validInput()
		input.HazardWeights = map[string]float64{"H315": 99}
		err := ProcessAndValidate(&Config{}, input)
		assert.ErrorContains(t, err, "must be between")
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{name: "sqlite needs nothing", backend: schema.SQLiteBackend, connStr: "", wantErr: false},
		{name: "none needs nothing", backend: schema.NoneBackend, connStr: "", wantErr: false},
		{name: "mysql valid", backend: schema.MySQLBackend, connStr: "user:pass@tcp(localhost:3306)/clearlabel", wantErr: false},
		{name: "mysql missing tcp", backend: schema.MySQLBackend, connStr: "user:pass@localhost/db", wantErr: true},
		{name: "mysql empty", backend: schema.MySQLBackend, connStr: "", wantErr: true},
		{name: "postgres valid", backend: schema.PostgreSQLBackend, connStr: "host=localhost port=5432 dbname=clearlabel", wantErr: false},
		{name: "postgres missing dbname", backend: schema.PostgreSQLBackend, connStr: "host=localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"", "yes", "Y", "true", "1", "on"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err, "input %q", s)
		assert.True(t, v, "input %q", s)
	}
	for _, s := range []string{"no", "N", "false", "0", "off"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err, "input %q", s)
		assert.False(t, v, "input %q", s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		UserID:          7,
		HazardOverrides: map[string]float64{"H315": 6},
	}
	clone := cfg.Clone()

	clone.HazardOverrides["H315"] = 9
	assert.Equal(t, 6.0, cfg.HazardOverrides["H315"], "clone must not alias the override map")
	assert.Equal(t, int64(7), clone.UserID)
}

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, ExcellentValue, GetPlainLabel(schema.ExcellentRisk))
	assert.Equal(t, GoodValue, GetPlainLabel(schema.GoodRisk))
	assert.Equal(t, PoorValue, GetPlainLabel(schema.PoorRisk))
	assert.Equal(t, BadValue, GetPlainLabel(schema.BadRisk))
}

func TestUnknownHazardCodeError(t *testing.T) {
	err := &UnknownHazardCodeError{Code: "H999"}
	assert.ErrorContains(t, err, "H999")
	assert.True(t, IsUnknownHazardCode(err))
	assert.False(t, IsUnknownHazardCode(ErrNoRecord))
}
