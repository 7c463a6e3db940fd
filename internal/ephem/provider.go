// Package ephem provides geocentric ecliptic positions and house cusps for
// chart bodies.
package ephem

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-trichart/internal/astro"
	"github.com/litescript/ls-trichart/internal/errors"
	"github.com/litescript/ls-trichart/internal/logging"
)

// Position is a body's geocentric ecliptic longitude and its daily motion.
type Position struct {
	Longitude  float64 // degrees, [0, 360)
	Speed      float64 // degrees per day
	Retrograde bool    // Speed < 0
}

// Houses is the result of a house calculation.
type Houses struct {
	System    HouseSystem
	Cusps     [12]float64 // cusp longitudes, index 0 = house 1
	Ascendant float64
	Midheaven float64
}

// Provider defines the interface for ephemeris sources.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// PositionsAt returns positions for the requested bodies at a Julian
	// day (UT). Every requested body is present in the result or an error
	// is returned.
	PositionsAt(ctx context.Context, jdUT float64, bodies []astro.Body) (map[astro.Body]Position, error)

	// HousesAt returns house cusps and angles for an observer. It fails
	// with a HOUSE_CALCULATION error when the houses are undefined there.
	HousesAt(ctx context.Context, jdUT, latDeg, lonDeg float64) (Houses, error)
}

// Mode represents which ephemeris source to use.
type Mode int

const (
	ModeBuiltin  Mode = iota // Analytic series, no network (default)
	ModeHorizons             // Use JPL Horizons
	ModeAuto                 // Try Horizons, fall back to builtin
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeBuiltin:
		return "builtin"
	case ModeHorizons:
		return "horizons"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "builtin":
		return ModeBuiltin, nil
	case "horizons":
		return ModeHorizons, nil
	case "auto":
		return ModeAuto, nil
	default:
		return ModeBuiltin, errors.New(errors.CodeInvalidConfig, "unknown ephemeris mode %q", s)
	}
}

// Config configures a provider. It is passed by value to New; nothing in
// this package keeps global configuration.
type Config struct {
	Mode        Mode
	HouseSystem HouseSystem
	HorizonsURL string        // defaults to HorizonsAPIURL
	Timeout     time.Duration // per HTTP request, defaults to RequestTimeout
}

// DefaultConfig returns the builtin provider with Placidus houses.
func DefaultConfig() Config {
	return Config{
		Mode:        ModeBuiltin,
		HouseSystem: Placidus,
		HorizonsURL: HorizonsAPIURL,
		Timeout:     RequestTimeout,
	}
}

// New builds the provider selected by cfg.
func New(cfg Config, log *logging.Logger) (Provider, error) {
	if log == nil {
		log = logging.Discard()
	}
	if cfg.HouseSystem == "" {
		cfg.HouseSystem = Placidus
	}
	if _, err := ParseHouseSystem(string(cfg.HouseSystem)); err != nil {
		return nil, err
	}
	if cfg.HorizonsURL == "" {
		cfg.HorizonsURL = HorizonsAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = RequestTimeout
	}

	builtin := NewBuiltinProvider(cfg.HouseSystem)
	switch cfg.Mode {
	case ModeBuiltin:
		return builtin, nil
	case ModeHorizons:
		return NewHorizonsProvider(cfg, builtin), nil
	case ModeAuto:
		return NewAutoProvider(NewHorizonsProvider(cfg, builtin), builtin, log), nil
	default:
		return nil, errors.New(errors.CodeInvalidConfig, "unknown ephemeris mode %d", int(cfg.Mode))
	}
}

// missingBodies reports requested bodies absent from a result.
func missingBodies(got map[astro.Body]Position, want []astro.Body) error {
	var missing []string
	for _, b := range want {
		if _, ok := got[b]; !ok {
			missing = append(missing, string(b))
		}
	}
	if len(missing) > 0 {
		return errors.New(errors.CodeEphemeris, "no position for %s", strings.Join(missing, ", "))
	}
	return nil
}

// motion builds a Position from longitudes sampled dt days apart around
// the target moment.
func motion(before, at, after, dtDays float64) Position {
	speed := astro.SignedDelta(before, after) / dtDays
	return Position{
		Longitude:  astro.Normalize360(at),
		Speed:      speed,
		Retrograde: speed < 0,
	}
}

func checkLatitude(latDeg float64) error {
	if latDeg < -90 || latDeg > 90 {
		return errors.New(errors.CodeInputFormat, "latitude %.4f out of range", latDeg)
	}
	return nil
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ephemeris: %w", err)
	}
	return nil
}
