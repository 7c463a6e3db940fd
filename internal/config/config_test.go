package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-trichart/internal/ephem"
	"github.com/litescript/ls-trichart/internal/errors"
	"github.com/litescript/ls-trichart/internal/logging"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "builtin", cfg.Ephemeris.Mode)
	assert.Equal(t, "placidus", cfg.Ephemeris.HouseSystem)
	assert.Equal(t, ephem.HorizonsAPIURL, cfg.Ephemeris.HorizonsURL)
	assert.Equal(t, ephem.RequestTimeout, cfg.Ephemeris.Timeout)
	assert.Equal(t, "Tokyo", cfg.Chart.DefaultPlace)
	assert.Equal(t, 180.0, cfg.Chart.ReferenceAngle)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, logging.LevelInfo, cfg.Level())

	ec, err := cfg.EphemConfig()
	require.NoError(t, err)
	assert.Equal(t, ephem.ModeBuiltin, ec.Mode)
	assert.Equal(t, ephem.Placidus, ec.HouseSystem)
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{"log level", "LSTRICHART_LOG_LEVEL", "debug", func(c Config) any { return c.Level() }, logging.LevelDebug},
		{"mode", "LSTRICHART_EPHEMERIS_MODE", "auto", func(c Config) any { return c.Ephemeris.Mode }, "auto"},
		{"house system", "LSTRICHART_EPHEMERIS_HOUSE_SYSTEM", "whole-sign", func(c Config) any { return c.Ephemeris.HouseSystem }, "whole-sign"},
		{"timeout", "LSTRICHART_EPHEMERIS_TIMEOUT", "3s", func(c Config) any { return c.Ephemeris.Timeout }, 3 * time.Second},
		{"reference angle", "LSTRICHART_CHART_REFERENCE_ANGLE", "90", func(c Config) any { return c.Layout().ReferenceAngle }, 90.0},
		{"server addr", "LSTRICHART_SERVER_ADDR", "127.0.0.1:9000", func(c Config) any { return c.Server.Addr }, "127.0.0.1:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Setenv(tt.envKey, tt.envVal)
			t.Chdir(t.TempDir())
			require.NoError(t, Init(""))

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.field(cfg))
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	path := filepath.Join(dir, "trichart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: warn
ephemeris:
  mode: horizons
  house_system: porphyry
chart:
  default_place: Osaka
`), 0o600))

	require.NoError(t, Init(path))
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, logging.LevelWarn, cfg.Level())
	assert.Equal(t, "Osaka", cfg.Chart.DefaultPlace)
	ec, err := cfg.EphemConfig()
	require.NoError(t, err)
	assert.Equal(t, ephem.ModeHorizons, ec.Mode)
	assert.Equal(t, ephem.Porphyry, ec.HouseSystem)
}

func TestInit_MissingExplicitFile(t *testing.T) {
	viper.Reset()
	err := Init(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, errors.CodeInvalidConfig), "err = %v", err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{"ephemeris.mode", "telescope"},
		{"ephemeris.house_system", "koch"},
		{"log_level", "loud"},
		{"chart.reference_angle", "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			viper.Reset()
			viper.Set(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.CodeInvalidConfig), "err = %v", err)
		})
	}
}

func TestConfig_Places(t *testing.T) {
	viper.Reset()
	cfg, err := Load()
	require.NoError(t, err)

	table, err := cfg.Places()
	require.NoError(t, err)
	assert.Len(t, table.All(), 47)

	path := filepath.Join(t.TempDir(), "extra.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[place]]
name = "Longyearbyen"
lat = 78.22
lon = 15.65
tz = "Arctic/Longyearbyen"
`), 0o600))
	cfg.Chart.PlacesFile = path

	table, err = cfg.Places()
	require.NoError(t, err)
	p, err := table.Lookup("longyearbyen")
	require.NoError(t, err)
	assert.InDelta(t, 78.22, p.Lat, 1e-9)
}
