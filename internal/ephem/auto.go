package ephem

import (
	"context"

	"github.com/litescript/ls-trichart/internal/astro"
	"github.com/litescript/ls-trichart/internal/logging"
)

// AutoProvider asks a primary provider first and falls back to a
// secondary one when the primary fails.
type AutoProvider struct {
	primary  Provider
	fallback Provider
	log      *logging.Logger
}

// NewAutoProvider wraps primary with a fallback.
func NewAutoProvider(primary, fallback Provider, log *logging.Logger) *AutoProvider {
	if log == nil {
		log = logging.Discard()
	}
	return &AutoProvider{primary: primary, fallback: fallback, log: log}
}

// Name implements Provider.
func (p *AutoProvider) Name() string {
	return "auto(" + p.primary.Name() + "," + p.fallback.Name() + ")"
}

// PositionsAt implements Provider.
func (p *AutoProvider) PositionsAt(ctx context.Context, jdUT float64, bodies []astro.Body) (map[astro.Body]Position, error) {
	out, err := p.primary.PositionsAt(ctx, jdUT, bodies)
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	p.log.Warn("%s positions failed, using %s: %v", p.primary.Name(), p.fallback.Name(), err)
	return p.fallback.PositionsAt(ctx, jdUT, bodies)
}

// HousesAt implements Provider. House failures are geometric, not
// transport errors, so they are returned as is.
func (p *AutoProvider) HousesAt(ctx context.Context, jdUT, latDeg, lonDeg float64) (Houses, error) {
	return p.primary.HousesAt(ctx, jdUT, latDeg, lonDeg)
}
