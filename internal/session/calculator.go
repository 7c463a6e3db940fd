package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-trichart/internal/astro"
	"github.com/litescript/ls-trichart/internal/chart"
	"github.com/litescript/ls-trichart/internal/ephem"
	"github.com/litescript/ls-trichart/internal/errors"
	"github.com/litescript/ls-trichart/internal/logging"
)

// Chart is the result of one successful calculation.
type Chart struct {
	ID           uuid.UUID         `json:"id"`
	Request      Request           `json:"request"`
	Natal        chart.Layer       `json:"natal"`
	Progressed   chart.Layer       `json:"progressed"`
	Transit      chart.Layer       `json:"transit"`
	Cusps        chart.Cusps       `json:"cusps"`
	Angles       chart.Angles      `json:"angles"`
	ProgressedAt time.Time         `json:"progressed_at"`
	HouseSystem  ephem.HouseSystem `json:"house_system"`
	Provider     string            `json:"provider"`
}

// Layers returns the three layers, innermost first.
func (c *Chart) Layers() []chart.Layer {
	return []chart.Layer{c.Natal, c.Progressed, c.Transit}
}

// Layer returns one layer by kind.
func (c *Chart) Layer(kind chart.LayerKind) chart.Layer {
	switch kind {
	case chart.Progressed:
		return c.Progressed
	case chart.Transit:
		return c.Transit
	default:
		return c.Natal
	}
}

// Geometry assembles the chart with the given assembler, or the default
// layout when a is nil.
func (c *Chart) Geometry(a *chart.Assembler) chart.RenderGeometry {
	if a == nil {
		return chart.Assemble(c.Natal, c.Progressed, c.Transit, c.Cusps, c.Angles)
	}
	return a.Assemble(c.Natal, c.Progressed, c.Transit, c.Cusps, c.Angles)
}

// Tables builds the body table of every layer.
func (c *Chart) Tables() []chart.Table {
	return chart.BuildTables(c.Cusps, c.Layers()...)
}

// Calculator computes charts from a provider. It holds no per-request
// state and is safe for concurrent use when its provider is.
type Calculator struct {
	provider ephem.Provider
	log      *logging.Logger
}

// NewCalculator creates a calculator on top of an ephemeris provider.
func NewCalculator(provider ephem.Provider, log *logging.Logger) *Calculator {
	if log == nil {
		log = logging.Discard()
	}
	return &Calculator{provider: provider, log: log}
}

// Provider returns the ephemeris provider name.
func (c *Calculator) Provider() string {
	return c.provider.Name()
}

// Compute builds the natal, progressed and transit layers for a request.
// Either every layer is produced or an error is returned; a failed house
// calculation yields no chart at all.
func (c *Calculator) Compute(ctx context.Context, req Request) (*Chart, error) {
	start := time.Now()
	log := c.log.With("place", req.Place.Name)

	natalJD := astro.JulianDay(req.Birth)
	houses, err := c.provider.HousesAt(ctx, natalJD, req.Place.Lat, req.Place.Lon)
	if err != nil {
		log.Warn("houses: %v", err)
		return nil, errors.Wrap(errors.CodeHouseCalculation, err, "calculation failed")
	}
	cusps, err := chart.NewCusps(houses.Cusps)
	if err != nil {
		return nil, errors.Wrap(errors.CodeHouseCalculation, err, "calculation failed")
	}
	angles := chart.Angles{Ascendant: houses.Ascendant, Midheaven: houses.Midheaven}

	natal, err := c.layer(ctx, chart.Natal, natalJD)
	if err != nil {
		return nil, err
	}
	natal.Bodies = append(natal.Bodies, angles.Positions()...)

	progressedAt := ProgressedMoment(req.Birth, req.Transit)
	progressed, err := c.layer(ctx, chart.Progressed, astro.JulianDay(progressedAt))
	if err != nil {
		return nil, err
	}

	transit, err := c.layer(ctx, chart.Transit, astro.JulianDay(req.Transit))
	if err != nil {
		return nil, err
	}

	out := &Chart{
		ID:           uuid.New(),
		Request:      req,
		Natal:        natal,
		Progressed:   progressed,
		Transit:      transit,
		Cusps:        cusps,
		Angles:       angles,
		ProgressedAt: progressedAt,
		HouseSystem:  houses.System,
		Provider:     c.provider.Name(),
	}
	log.Debug("chart %s: asc %.4f mc %.4f via %s", out.ID, angles.Ascendant, angles.Midheaven, out.Provider)
	log.Timed(start, "chart computed")
	return out, nil
}

// layer fetches every chart body for one moment and derives the south
// node from the north node.
func (c *Calculator) layer(ctx context.Context, kind chart.LayerKind, jd float64) (chart.Layer, error) {
	positions, err := c.provider.PositionsAt(ctx, jd, astro.ChartBodies)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.CodeEphemeris, err, "%s positions", kind)
		}
		return chart.Layer{}, err
	}

	bodies := make([]chart.BodyPosition, 0, len(astro.ChartBodies)+1)
	for _, b := range astro.ChartBodies {
		p, ok := positions[b]
		if !ok {
			return chart.Layer{}, errors.New(errors.CodeEphemeris, "%s positions: missing %s", kind, b)
		}
		bp := chart.BodyPosition{Body: b, Longitude: p.Longitude, Retrograde: p.Retrograde}
		bodies = append(bodies, bp)
		if b == astro.NorthNode {
			bodies = append(bodies, chart.SouthNodeFrom(bp))
		}
	}
	return chart.NewLayer(kind, bodies...), nil
}
