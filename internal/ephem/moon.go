package ephem

import (
	"math"

	"github.com/litescript/ls-trichart/internal/astro"
)

// lunarTerm is one periodic term of the Moon's longitude: multiples of
// D, M, M', F and the amplitude in 1e-6 degrees.
type lunarTerm struct {
	d, m, mp, f int
	amp         float64
}

// Principal terms of the ELP-2000/82 longitude series (Meeus, table 47.A).
var lunarTerms = []lunarTerm{
	{0, 0, 1, 0, 6288774},
	{2, 0, -1, 0, 1274027},
	{2, 0, 0, 0, 658314},
	{0, 0, 2, 0, 213618},
	{0, 1, 0, 0, -185116},
	{0, 0, 0, 2, -114332},
	{2, 0, -2, 0, 58793},
	{2, -1, -1, 0, 57066},
	{2, 0, 1, 0, 53322},
	{2, -1, 0, 0, 45758},
	{0, 1, -1, 0, -40923},
	{1, 0, 0, 0, -34720},
	{0, 1, 1, 0, -30383},
	{2, 0, 0, -2, 15327},
	{0, 0, 1, 2, -12528},
	{0, 0, 1, -2, 10980},
	{4, 0, -1, 0, 10675},
	{0, 0, 3, 0, 10034},
	{4, 0, -2, 0, 8548},
	{2, 1, -1, 0, -7888},
	{2, 1, 0, 0, -6766},
	{1, 0, -1, 0, -5163},
	{1, 1, 0, 0, 4987},
	{2, -1, 1, 0, 4036},
	{2, 0, 2, 0, 3994},
	{4, 0, 0, 0, 3861},
	{2, 0, -3, 0, 3665},
	{0, 1, -2, 0, -2689},
	{2, 0, -1, 2, -2602},
	{2, -1, -2, 0, 2390},
	{1, 0, 1, 0, -2348},
	{2, -2, 0, 0, 2236},
	{0, 1, 2, 0, -2120},
	{0, 2, 0, 0, -2069},
}

// moonLongitude returns the Moon's geometric ecliptic longitude referred
// to the mean equinox of date, good to roughly 0.01°.
func moonLongitude(jd float64) float64 {
	T := astro.JulianCenturies(jd)
	T2, T3, T4 := T*T, T*T*T, T*T*T*T

	Lp := 218.3164477 + 481267.88123421*T - 0.0015786*T2 + T3/538841 - T4/65194000
	D := 297.8501921 + 445267.1114034*T - 0.0018819*T2 + T3/545868 - T4/113065000
	M := 357.5291092 + 35999.0502909*T - 0.0001536*T2 + T3/24490000
	Mp := 134.9633964 + 477198.8675055*T + 0.0087414*T2 + T3/69699 - T4/14712000
	F := 93.2720950 + 483202.0175233*T - 0.0036539*T2 - T3/3526000 + T4/863310000
	E := 1 - 0.002516*T - 0.0000074*T2

	sum := 0.0
	for _, term := range lunarTerms {
		arg := float64(term.d)*D + float64(term.m)*M + float64(term.mp)*Mp + float64(term.f)*F
		amp := term.amp
		switch term.m {
		case 1, -1:
			amp *= E
		case 2, -2:
			amp *= E * E
		}
		sum += amp * math.Sin(astro.DegToRad(arg))
	}

	// Venus, Jupiter and flattening corrections
	A1 := 119.75 + 131.849*T
	A2 := 53.09 + 479264.290*T
	sum += 3958*math.Sin(astro.DegToRad(A1)) +
		1962*math.Sin(astro.DegToRad(Lp-F)) +
		318*math.Sin(astro.DegToRad(A2))

	return astro.Normalize360(Lp + sum/1e6)
}

// meanNodeLongitude returns the longitude of the Moon's mean ascending node.
func meanNodeLongitude(jd float64) float64 {
	T := astro.JulianCenturies(jd)
	return astro.Normalize360(125.0445479 - 1934.1362891*T + 0.0020754*T*T +
		T*T*T/467441 - T*T*T*T/60616000)
}

// meanApogeeLongitude returns the longitude of the mean lunar apogee
// (Black Moon Lilith): the mean perigee plus 180°.
func meanApogeeLongitude(jd float64) float64 {
	T := astro.JulianCenturies(jd)
	perigee := 83.3532465 + 4069.0137287*T - 0.0103200*T*T - T*T*T/80053 + T*T*T*T/18999000
	return astro.Normalize360(perigee + 180)
}
