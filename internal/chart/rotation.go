package chart

import "github.com/litescript/ls-trichart/internal/astro"

// DefaultReferenceAngle is where the ascendant is drawn: the left end of the
// horizontal axis in counter-clockwise polar coordinates.
const DefaultReferenceAngle = 180.0

// Rotation maps ecliptic longitudes to plot angles so the ascendant always
// lands on a fixed reference angle. Inputs are rotated; the plot frame is
// not, so applying a Rotation once is the whole transform.
type Rotation struct {
	Offset float64 // reference - ascendant
}

// NewRotation returns the rotation that pins ascendant onto reference.
func NewRotation(reference, ascendant float64) Rotation {
	return Rotation{Offset: reference - ascendant}
}

// Apply returns the plot angle for a longitude.
func (r Rotation) Apply(longitude float64) float64 {
	return astro.Normalize360(longitude + r.Offset)
}

// Invert returns the longitude drawn at a plot angle.
func (r Rotation) Invert(angle float64) float64 {
	return astro.Normalize360(angle - r.Offset)
}
