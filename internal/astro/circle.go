package astro

import "math"

// Normalize360 maps any angle onto [0, 360).
func Normalize360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// -1e-15 + 360 rounds to 360
	if a >= 360 {
		a = 0
	}
	return a
}

// SignedDelta returns the shortest signed angular distance from a to b,
// in (-180, 180].
func SignedDelta(a, b float64) float64 {
	d := Normalize360(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}

// Arc is a half-open circular interval [Start, End) walked in the
// direction of increasing longitude. An arc whose Start is greater than its
// End wraps through 0°.
type Arc struct {
	Start float64
	End   float64
}

// NewArc returns an arc with both endpoints normalized.
func NewArc(start, end float64) Arc {
	return Arc{Start: Normalize360(start), End: Normalize360(end)}
}

// Contains reports whether x lies on the arc. The start boundary belongs to
// the arc, the end boundary does not.
func (a Arc) Contains(x float64) bool {
	x = Normalize360(x)
	if a.Start > a.End {
		return x >= a.Start || x < a.End
	}
	return a.Start <= x && x < a.End
}

// Span returns the angular length of the arc in [0, 360).
func (a Arc) Span() float64 {
	return Normalize360(a.End - a.Start)
}

// Midpoint returns the angle halfway along the arc.
func (a Arc) Midpoint() float64 {
	return Normalize360(a.Start + a.Span()/2)
}

// Fraction returns the angle a given fraction of the way along the arc.
func (a Arc) Fraction(f float64) float64 {
	return Normalize360(a.Start + a.Span()*f)
}
