package chart

import "github.com/litescript/ls-trichart/internal/astro"

// LayerKind names one of the three chart rings.
type LayerKind string

const (
	Natal      LayerKind = "natal"
	Progressed LayerKind = "progressed"
	Transit    LayerKind = "transit"
)

// LayerKinds lists the rings from innermost to outermost.
var LayerKinds = []LayerKind{Natal, Progressed, Transit}

// Title returns a capitalized label for headings.
func (k LayerKind) Title() string {
	switch k {
	case Natal:
		return "Natal"
	case Progressed:
		return "Progressed"
	case Transit:
		return "Transit"
	}
	return string(k)
}

// BodyPosition is one body's place on the ecliptic for a single layer.
type BodyPosition struct {
	Body       astro.Body `json:"body"`
	Longitude  float64    `json:"longitude"`
	Retrograde bool       `json:"retrograde"`
}

// Position returns the sign decomposition of the body's longitude.
func (p BodyPosition) Position() Position {
	return Decompose(p.Longitude)
}

// SouthNodeFrom derives the descending node from the ascending node. The
// south node is always exactly opposite and never flagged retrograde.
func SouthNodeFrom(north BodyPosition) BodyPosition {
	return BodyPosition{
		Body:      astro.SouthNode,
		Longitude: astro.Normalize360(north.Longitude + 180),
	}
}

// Layer is an ordered set of body positions for one chart moment.
type Layer struct {
	Kind   LayerKind      `json:"kind"`
	Bodies []BodyPosition `json:"bodies"`
}

// NewLayer builds a layer, normalizing every longitude.
func NewLayer(kind LayerKind, bodies ...BodyPosition) Layer {
	out := make([]BodyPosition, len(bodies))
	for i, b := range bodies {
		b.Longitude = astro.Normalize360(b.Longitude)
		out[i] = b
	}
	return Layer{Kind: kind, Bodies: out}
}

// Lookup finds a body in the layer.
func (l Layer) Lookup(body astro.Body) (BodyPosition, bool) {
	for _, b := range l.Bodies {
		if b.Body == body {
			return b, true
		}
	}
	return BodyPosition{}, false
}

// Angles holds the natal chart's ascendant and midheaven longitudes.
type Angles struct {
	Ascendant float64 `json:"ascendant"`
	Midheaven float64 `json:"midheaven"`
}

// Positions returns the angles as body positions, ascendant first.
func (a Angles) Positions() []BodyPosition {
	return []BodyPosition{
		{Body: astro.Ascendant, Longitude: astro.Normalize360(a.Ascendant)},
		{Body: astro.Midheaven, Longitude: astro.Normalize360(a.Midheaven)},
	}
}
