package astro

import (
	"math"
)

// AU is the Astronomical Unit in kilometers.
const AU = 149597870.7

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// EclipticLongitude returns the longitude of an ecliptic-frame vector in degrees.
func (v Vec3) EclipticLongitude() float64 {
	return Normalize360(RadToDeg(math.Atan2(v.Y, v.X)))
}

// EclipticLatitude returns the latitude of an ecliptic-frame vector in degrees.
func (v Vec3) EclipticLatitude() float64 {
	r := v.Norm()
	if r == 0 {
		return 0
	}
	return RadToDeg(math.Asin(v.Z / r))
}
