package chart

import (
	"fmt"
	"math"

	"github.com/litescript/ls-trichart/internal/astro"
	"github.com/litescript/ls-trichart/internal/errors"
)

// Layout fixes the radii of every chart element. Units are arbitrary; the
// frame radius is the outer edge of the drawing.
type Layout struct {
	NatalRadius      float64 `json:"natal_radius"`
	ProgressedRadius float64 `json:"progressed_radius"`
	TransitRadius    float64 `json:"transit_radius"`
	HouseLabelRadius float64 `json:"house_label_radius"`
	CuspInner        float64 `json:"cusp_inner"`
	CuspOuter        float64 `json:"cusp_outer"`
	SignInner        float64 `json:"sign_inner"`
	SignOuter        float64 `json:"sign_outer"`
	AngleLabelRadius float64 `json:"angle_label_radius"`
	FrameRadius      float64 `json:"frame_radius"`
	ReferenceAngle   float64 `json:"reference_angle"` // plot angle of the ascendant
}

// DefaultLayout returns the standard three-ring layout.
func DefaultLayout() Layout {
	return Layout{
		NatalRadius:      4.4,
		ProgressedRadius: 6.2,
		TransitRadius:    8.0,
		HouseLabelRadius: 3.5,
		CuspInner:        0,
		CuspOuter:        9,
		SignInner:        9,
		SignOuter:        10,
		AngleLabelRadius: 9.2,
		FrameRadius:      10,
		ReferenceAngle:   DefaultReferenceAngle,
	}
}

// Radius returns the ring radius for a layer kind.
func (l Layout) Radius(kind LayerKind) float64 {
	switch kind {
	case Natal:
		return l.NatalRadius
	case Progressed:
		return l.ProgressedRadius
	case Transit:
		return l.TransitRadius
	}
	return 0
}

// Validate checks that the rings are nested: natal inside progressed inside
// transit, all inside the angle labels, all inside the frame.
func (l Layout) Validate() error {
	order := []struct {
		name string
		r    float64
	}{
		{"natal radius", l.NatalRadius},
		{"progressed radius", l.ProgressedRadius},
		{"transit radius", l.TransitRadius},
		{"angle label radius", l.AngleLabelRadius},
		{"frame radius", l.FrameRadius},
	}
	if l.NatalRadius <= 0 {
		return errors.New(errors.CodeInvalidConfig, "natal radius must be positive")
	}
	for i := 1; i < len(order); i++ {
		if order[i].r <= order[i-1].r {
			return errors.New(errors.CodeInvalidConfig, "%s (%.2f) must exceed %s (%.2f)",
				order[i].name, order[i].r, order[i-1].name, order[i-1].r)
		}
	}
	if l.SignInner >= l.SignOuter || l.SignOuter > l.FrameRadius {
		return errors.New(errors.CodeInvalidConfig, "sign band %.2f-%.2f does not fit inside frame %.2f",
			l.SignInner, l.SignOuter, l.FrameRadius)
	}
	if l.CuspInner < 0 || l.CuspInner >= l.CuspOuter {
		return errors.New(errors.CodeInvalidConfig, "cusp lines %.2f-%.2f are empty", l.CuspInner, l.CuspOuter)
	}
	if math.IsNaN(l.ReferenceAngle) || math.IsInf(l.ReferenceAngle, 0) {
		return errors.New(errors.CodeInvalidConfig, "reference angle must be finite")
	}
	return nil
}

// Point is a plotted position in standard polar convention: Angle in
// degrees, 0 along +x, increasing counter-clockwise with y up.
type Point struct {
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
}

// XY converts the point to cartesian coordinates.
func (p Point) XY() (x, y float64) {
	rad := astro.DegToRad(p.Angle)
	return p.Radius * math.Cos(rad), p.Radius * math.Sin(rad)
}

// SignWedge is one 30° sector of the zodiac band.
type SignWedge struct {
	Sign  Sign    `json:"sign"`
	Glyph string  `json:"glyph"`
	Start float64 `json:"start"` // plot angle
	End   float64 `json:"end"`   // plot angle
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
	Label Point   `json:"label"`
	Fill  int     `json:"fill"` // 0 or 1, alternating by sign
}

// CuspLine is a dashed house boundary from Inner to Outer radius.
type CuspLine struct {
	House     int     `json:"house"`
	Longitude float64 `json:"longitude"`
	Angle     float64 `json:"angle"`
	Inner     float64 `json:"inner"`
	Outer     float64 `json:"outer"`
	Dashed    bool    `json:"dashed"`
}

// HouseLabel is a house number drawn mid-way along its house.
type HouseLabel struct {
	House int    `json:"house"`
	Text  string `json:"text"`
	At    Point  `json:"at"`
}

// GlyphPlacement is one body drawn on one ring.
type GlyphPlacement struct {
	Layer      LayerKind  `json:"layer"`
	Body       astro.Body `json:"body"`
	Glyph      string     `json:"glyph"`
	Longitude  float64    `json:"longitude"`
	Retrograde bool       `json:"retrograde"`
	Hover      string     `json:"hover"`
	At         Point      `json:"at"`
}

// AngleLabel marks the ascendant or midheaven outside the body rings.
type AngleLabel struct {
	Body      astro.Body `json:"body"`
	Text      string     `json:"text"`
	Longitude float64    `json:"longitude"`
	Hover     string     `json:"hover"`
	At        Point      `json:"at"`
}

// RenderGeometry is everything a renderer needs to paint the chart. All
// angles are already rotated so the ascendant sits on the reference angle.
type RenderGeometry struct {
	Rotation    Rotation         `json:"rotation"`
	Layout      Layout           `json:"layout"`
	Signs       []SignWedge      `json:"signs"`
	Cusps       []CuspLine       `json:"cusps"`
	HouseLabels []HouseLabel     `json:"house_labels"`
	Glyphs      []GlyphPlacement `json:"glyphs"`
	AngleLabels []AngleLabel     `json:"angle_labels"`
}

// GlyphsFor returns the placements belonging to one ring.
func (g RenderGeometry) GlyphsFor(kind LayerKind) []GlyphPlacement {
	var out []GlyphPlacement
	for _, p := range g.Glyphs {
		if p.Layer == kind {
			out = append(out, p)
		}
	}
	return out
}

// Assembler builds RenderGeometry for a fixed layout.
type Assembler struct {
	layout Layout
}

// NewAssembler validates the layout and returns an assembler for it.
func NewAssembler(layout Layout) (*Assembler, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &Assembler{layout: layout}, nil
}

// Layout returns the assembler's layout.
func (a *Assembler) Layout() Layout {
	return a.layout
}

// Assemble composes the three layers, cusps and angles with the default
// layout.
func Assemble(natal, progressed, transit Layer, cusps Cusps, angles Angles) RenderGeometry {
	a := &Assembler{layout: DefaultLayout()}
	return a.Assemble(natal, progressed, transit, cusps, angles)
}

// Assemble composes the three layers, cusps and angles into one geometry.
// The result depends only on its arguments.
func (a *Assembler) Assemble(natal, progressed, transit Layer, cusps Cusps, angles Angles) RenderGeometry {
	l := a.layout
	rot := NewRotation(l.ReferenceAngle, angles.Ascendant)

	g := RenderGeometry{
		Rotation:    rot,
		Layout:      l,
		Signs:       make([]SignWedge, 0, 12),
		Cusps:       make([]CuspLine, 0, NumHouses),
		HouseLabels: make([]HouseLabel, 0, NumHouses),
		AngleLabels: make([]AngleLabel, 0, 2),
	}

	for s := Aries; s <= Pisces; s++ {
		arc := astro.Arc{Start: rot.Apply(s.Start()), End: rot.Apply(s.Start() + DegreesPerSign)}
		g.Signs = append(g.Signs, SignWedge{
			Sign:  s,
			Glyph: s.Glyph(),
			Start: arc.Start,
			End:   arc.End,
			Inner: l.SignInner,
			Outer: l.SignOuter,
			Label: Point{Angle: arc.Midpoint(), Radius: (l.SignInner + l.SignOuter) / 2},
			Fill:  int(s) % 2,
		})
	}

	for h := 1; h <= NumHouses; h++ {
		cusp := cusps.Cusp(h)
		g.Cusps = append(g.Cusps, CuspLine{
			House:     h,
			Longitude: cusp,
			Angle:     rot.Apply(cusp),
			Inner:     l.CuspInner,
			Outer:     l.CuspOuter,
			Dashed:    true,
		})
		g.HouseLabels = append(g.HouseLabels, HouseLabel{
			House: h,
			Text:  fmt.Sprintf("%d", h),
			At:    Point{Angle: rot.Apply(cusps.Arc(h).Midpoint()), Radius: l.HouseLabelRadius},
		})
	}

	rings := []struct {
		kind   LayerKind
		layer  Layer
		radius float64
	}{
		{Natal, natal, l.NatalRadius},
		{Progressed, progressed, l.ProgressedRadius},
		{Transit, transit, l.TransitRadius},
	}
	for _, ring := range rings {
		for _, b := range ring.layer.Bodies {
			if b.Body.IsAngle() {
				continue
			}
			g.Glyphs = append(g.Glyphs, GlyphPlacement{
				Layer:      ring.kind,
				Body:       b.Body,
				Glyph:      b.Body.Glyph(),
				Longitude:  astro.Normalize360(b.Longitude),
				Retrograde: b.Retrograde,
				Hover:      HoverText(b),
				At:         Point{Angle: rot.Apply(b.Longitude), Radius: ring.radius},
			})
		}
	}

	for _, p := range angles.Positions() {
		g.AngleLabels = append(g.AngleLabels, AngleLabel{
			Body:      p.Body,
			Text:      p.Body.Glyph(),
			Longitude: p.Longitude,
			Hover:     HoverText(p),
			At:        Point{Angle: rot.Apply(p.Longitude), Radius: l.AngleLabelRadius},
		})
	}

	return g
}

// HoverText is the annotation shown for a body: name, sign glyph, degree
// string and an R suffix when retrograde.
func HoverText(b BodyPosition) string {
	pos := Decompose(b.Longitude)
	text := fmt.Sprintf("%s: %s %s", b.Body.Name(), pos.Sign.Glyph(), pos.DegreeString())
	if b.Retrograde {
		text += " " + RetrogradeMarker
	}
	return text
}
