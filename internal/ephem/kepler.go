package ephem

import (
	"math"

	"github.com/litescript/ls-trichart/internal/astro"
)

// elements are mean orbital elements at J2000 and their rates per Julian
// century, valid 1800-2050 AD (Standish, JPL "Approximate Positions of the
// Planets"). Angles in degrees, a in AU.
type elements struct {
	a, e, i, l, peri, node       float64
	da, de, di, dl, dperi, dnode float64
}

var (
	elemMercury = elements{0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081}
	elemVenus = elements{0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418}
	elemEMBary = elements{1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
		0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0}
	elemMars = elements{1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343}
	elemJupiter = elements{5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106}
	elemSaturn = elements{9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794}
	elemUranus = elements{19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
		-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589}
	elemNeptune = elements{30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
		0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664}
	elemPluto = elements{39.48211675, 0.24882730, 17.14001206, 238.92903833, 224.06891629, 110.30393684,
		-0.00031596, 0.00005170, 0.00004818, 145.20780515, -0.04062942, -0.01183482}
)

var planetElements = map[astro.Body]elements{
	astro.Mercury: elemMercury,
	astro.Venus:   elemVenus,
	astro.Mars:    elemMars,
	astro.Jupiter: elemJupiter,
	astro.Saturn:  elemSaturn,
	astro.Uranus:  elemUranus,
	astro.Neptune: elemNeptune,
	astro.Pluto:   elemPluto,
}

// precessionRate is the general precession in longitude, degrees per
// Julian century.
const precessionRate = 1.3969713

// heliocentric returns the heliocentric ecliptic position (J2000 frame, AU)
// for T Julian centuries past J2000.
func (el elements) heliocentric(T float64) astro.Vec3 {
	a := el.a + el.da*T
	e := el.e + el.de*T
	inc := astro.DegToRad(el.i + el.di*T)
	L := el.l + el.dl*T
	peri := el.peri + el.dperi*T
	node := el.node + el.dnode*T

	w := astro.DegToRad(peri - node)
	omega := astro.DegToRad(node)
	M := astro.DegToRad(astro.Normalize360(L - peri))

	E := solveKepler(M, e)
	xOrb := a * (math.Cos(E) - e)
	yOrb := a * math.Sqrt(1-e*e) * math.Sin(E)

	cosW, sinW := math.Cos(w), math.Sin(w)
	cosO, sinO := math.Cos(omega), math.Sin(omega)
	cosI, sinI := math.Cos(inc), math.Sin(inc)

	return astro.Vec3{
		X: (cosW*cosO-sinW*sinO*cosI)*xOrb + (-sinW*cosO-cosW*sinO*cosI)*yOrb,
		Y: (cosW*sinO+sinW*cosO*cosI)*xOrb + (-sinW*sinO+cosW*cosO*cosI)*yOrb,
		Z: (sinW*sinI)*xOrb + (cosW*sinI)*yOrb,
	}
}

// solveKepler solves M = E - e sin E for the eccentric anomaly (radians)
// by Newton-Raphson.
func solveKepler(M, e float64) float64 {
	E := M + e*math.Sin(M)*(1+e*math.Cos(M))
	for iter := 0; iter < 15; iter++ {
		f := E - e*math.Sin(E) - M
		if math.Abs(f) < 1e-12 {
			break
		}
		E -= f / (1 - e*math.Cos(E))
	}
	return E
}

// planetLongitude returns the geocentric ecliptic longitude of a planet,
// referred to the mean equinox of date.
func planetLongitude(el elements, jd float64) float64 {
	T := astro.JulianCenturies(jd)
	geo := el.heliocentric(T).Sub(elemEMBary.heliocentric(T))
	return astro.Normalize360(geo.EclipticLongitude() + precessionRate*T)
}
