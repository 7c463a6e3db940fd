// Package config loads runtime settings from .ls-trichart.yaml,
// LSTRICHART_* environment variables and command-line flags via viper.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/litescript/ls-trichart/internal/chart"
	"github.com/litescript/ls-trichart/internal/ephem"
	trierrors "github.com/litescript/ls-trichart/internal/errors"
	"github.com/litescript/ls-trichart/internal/logging"
	"github.com/litescript/ls-trichart/internal/places"
)

// EnvPrefix prefixes every environment variable, e.g. LSTRICHART_LOG_LEVEL.
const EnvPrefix = "LSTRICHART"

// EphemerisConfig selects and tunes the ephemeris provider.
type EphemerisConfig struct {
	Mode        string        `mapstructure:"mode"`
	HouseSystem string        `mapstructure:"house_system"`
	HorizonsURL string        `mapstructure:"horizons_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ChartConfig holds chart defaults.
type ChartConfig struct {
	DefaultPlace   string  `mapstructure:"default_place"`
	PlacesFile     string  `mapstructure:"places_file"` // extra TOML places, merged over the built-ins
	ReferenceAngle float64 `mapstructure:"reference_angle"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Config holds all runtime configuration.
type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Ephemeris EphemerisConfig `mapstructure:"ephemeris"`
	Chart     ChartConfig     `mapstructure:"chart"`
	Server    ServerConfig    `mapstructure:"server"`
}

// Init points viper at the config file and environment. An explicit
// cfgFile must exist; otherwise .ls-trichart.yaml is looked up in the
// working directory and home directory, and its absence is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".ls-trichart")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return trierrors.Wrap(trierrors.CodeInvalidConfig, err, "reading config")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("ephemeris.mode", ephem.ModeBuiltin.String())
	viper.SetDefault("ephemeris.house_system", string(ephem.Placidus))
	viper.SetDefault("ephemeris.horizons_url", ephem.HorizonsAPIURL)
	viper.SetDefault("ephemeris.timeout", ephem.RequestTimeout)
	viper.SetDefault("chart.default_place", places.DefaultPlace)
	viper.SetDefault("chart.places_file", "")
	viper.SetDefault("chart.reference_angle", chart.DefaultReferenceAngle)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.shutdown_timeout", 5*time.Second)
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. The result is
// validated.
func Load() (Config, error) {
	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, trierrors.Wrap(trierrors.CodeInvalidConfig, err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	if _, err := c.EphemConfig(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return trierrors.New(trierrors.CodeInvalidConfig, "unknown log level %q", c.LogLevel)
	}
	if _, err := chart.NewAssembler(c.Layout()); err != nil {
		return err
	}
	return nil
}

// EphemConfig converts the ephemeris section to a provider config.
func (c Config) EphemConfig() (ephem.Config, error) {
	mode, err := ephem.ParseMode(c.Ephemeris.Mode)
	if err != nil {
		return ephem.Config{}, err
	}
	system, err := ephem.ParseHouseSystem(c.Ephemeris.HouseSystem)
	if err != nil {
		return ephem.Config{}, err
	}
	return ephem.Config{
		Mode:        mode,
		HouseSystem: system,
		HorizonsURL: c.Ephemeris.HorizonsURL,
		Timeout:     c.Ephemeris.Timeout,
	}, nil
}

// Level returns the parsed log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// Layout returns the default chart layout with the configured reference
// angle.
func (c Config) Layout() chart.Layout {
	l := chart.DefaultLayout()
	l.ReferenceAngle = c.Chart.ReferenceAngle
	return l
}

// Places returns the built-in place table, merged with PlacesFile when set.
func (c Config) Places() (*places.Table, error) {
	if c.Chart.PlacesFile == "" {
		return places.Default(), nil
	}
	return places.LoadFile(c.Chart.PlacesFile)
}
