package ephem

import (
	"context"

	"github.com/litescript/ls-trichart/internal/astro"
	"github.com/litescript/ls-trichart/internal/errors"
)

// speedStep is the half-width, in days, of the central difference used
// for daily motion.
const speedStep = 0.5

// BuiltinProvider computes positions from analytic series. It needs no
// network and no data files.
type BuiltinProvider struct {
	system HouseSystem
}

// NewBuiltinProvider creates an analytic provider using the given house
// system.
func NewBuiltinProvider(system HouseSystem) *BuiltinProvider {
	if system == "" {
		system = Placidus
	}
	return &BuiltinProvider{system: system}
}

// Name implements Provider.
func (p *BuiltinProvider) Name() string {
	return "builtin"
}

// Supports reports whether the provider can compute a body.
func (p *BuiltinProvider) Supports(b astro.Body) bool {
	return longitudeFunc(b) != nil
}

// PositionsAt implements Provider.
func (p *BuiltinProvider) PositionsAt(ctx context.Context, jdUT float64, bodies []astro.Body) (map[astro.Body]Position, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	out := make(map[astro.Body]Position, len(bodies))
	for _, b := range bodies {
		f := longitudeFunc(b)
		if f == nil {
			return nil, errors.New(errors.CodeEphemeris, "builtin ephemeris has no model for %q", b)
		}
		out[b] = motion(f(jdUT-speedStep), f(jdUT), f(jdUT+speedStep), 2*speedStep)
	}
	return out, nil
}

// HousesAt implements Provider.
func (p *BuiltinProvider) HousesAt(ctx context.Context, jdUT, latDeg, lonDeg float64) (Houses, error) {
	if err := checkContext(ctx); err != nil {
		return Houses{}, err
	}
	if err := checkLatitude(latDeg); err != nil {
		return Houses{}, err
	}
	ramc := astro.LocalSiderealTime(jdUT, lonDeg)
	eps := astro.MeanObliquity(jdUT)
	return computeHouses(p.system, ramc, eps, latDeg)
}

// longitudeFunc returns the longitude model for a body, or nil. The south
// node and the angles are not ephemeris bodies.
func longitudeFunc(b astro.Body) func(jd float64) float64 {
	switch b {
	case astro.Sun:
		return astro.SunLongitude
	case astro.Moon:
		return moonLongitude
	case astro.NorthNode:
		return meanNodeLongitude
	case astro.Lilith:
		return meanApogeeLongitude
	}
	if el, ok := planetElements[b]; ok {
		return func(jd float64) float64 { return planetLongitude(el, jd) }
	}
	return nil
}
