// Package astro provides astronomical time, angle and coordinate math.
package astro

import (
	"math"
	"time"
)

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// JulianDay returns the Julian Day (UT) for a given time.
func JulianDay(t time.Time) float64 {
	// Convert to UTC
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	// Time of day as fraction
	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// Adjust for January/February (treat as months 13/14 of previous year)
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

// TimeFromJulianDay converts a Julian Day (UT) back to a UTC time,
// rounded to the nearest millisecond.
func TimeFromJulianDay(jd float64) time.Time {
	const unixEpochJD = 2440587.5
	ms := math.Round((jd - unixEpochJD) * 86400e3)
	return time.UnixMilli(int64(ms)).UTC()
}

// JulianCenturies returns Julian centuries since J2000.0.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / 36525.0
}

// GreenwichSiderealTime calculates GMST in degrees for a Julian Day (UT).
// Uses the IAU 1982 formula.
func GreenwichSiderealTime(jd float64) float64 {
	T := JulianCenturies(jd)

	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return Normalize360(gmst)
}

// LocalSiderealTime calculates the Local Sidereal Time in degrees
// for a Julian Day (UT) and observer longitude (east positive).
// This is also the right ascension of the meridian (RAMC).
func LocalSiderealTime(jd, lonDeg float64) float64 {
	return Normalize360(GreenwichSiderealTime(jd) + lonDeg)
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
func MeanObliquity(jd float64) float64 {
	T := JulianCenturies(jd)
	return 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
}

// EclipticToRightAscension returns the right ascension of a point on the
// ecliptic (zero latitude) at longitude lonDeg.
func EclipticToRightAscension(lonDeg, epsDeg float64) float64 {
	lon := DegToRad(lonDeg)
	eps := DegToRad(epsDeg)
	return Normalize360(RadToDeg(math.Atan2(math.Sin(lon)*math.Cos(eps), math.Cos(lon))))
}

// RightAscensionToEcliptic returns the ecliptic longitude of the point on the
// ecliptic whose right ascension is raDeg.
func RightAscensionToEcliptic(raDeg, epsDeg float64) float64 {
	ra := DegToRad(raDeg)
	eps := DegToRad(epsDeg)
	return Normalize360(RadToDeg(math.Atan2(math.Sin(ra), math.Cos(ra)*math.Cos(eps))))
}

// EclipticDeclination returns the declination of a point on the ecliptic.
func EclipticDeclination(lonDeg, epsDeg float64) float64 {
	return RadToDeg(math.Asin(math.Sin(DegToRad(epsDeg)) * math.Sin(DegToRad(lonDeg))))
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
