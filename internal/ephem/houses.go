package ephem

import (
	"math"
	"strings"

	"github.com/litescript/ls-trichart/internal/astro"
	"github.com/litescript/ls-trichart/internal/errors"
)

// HouseSystem names a house division method.
type HouseSystem string

const (
	Placidus  HouseSystem = "placidus"
	Porphyry  HouseSystem = "porphyry"
	Equal     HouseSystem = "equal"
	WholeSign HouseSystem = "whole_sign"
)

// HouseSystems lists the supported systems.
var HouseSystems = []HouseSystem{Placidus, Porphyry, Equal, WholeSign}

// ParseHouseSystem parses a house system name.
func ParseHouseSystem(s string) (HouseSystem, error) {
	name := strings.ToLower(strings.ReplaceAll(s, "-", "_"))
	if name == "" {
		return Placidus, nil
	}
	for _, hs := range HouseSystems {
		if string(hs) == name {
			return hs, nil
		}
	}
	return "", errors.New(errors.CodeInvalidConfig, "unknown house system %q", s)
}

const (
	placidusIterations = 50
	placidusTolerance  = 1e-9
)

// Angles returns the midheaven and ascendant for a local sidereal time
// (RAMC), obliquity and geographic latitude, all in degrees.
func Angles(ramc, eps, latDeg float64) (asc, mc float64) {
	r := astro.DegToRad(ramc)
	e := astro.DegToRad(eps)
	phi := astro.DegToRad(latDeg)

	mc = astro.Normalize360(astro.RadToDeg(math.Atan2(math.Sin(r), math.Cos(r)*math.Cos(e))))
	asc = astro.Normalize360(astro.RadToDeg(math.Atan2(
		math.Cos(r),
		-(math.Sin(r)*math.Cos(e) + math.Tan(phi)*math.Sin(e)),
	)))
	return asc, mc
}

func computeHouses(system HouseSystem, ramc, eps, latDeg float64) (Houses, error) {
	if math.Abs(latDeg) >= 90 {
		return Houses{}, errors.New(errors.CodeHouseCalculation, "houses are undefined at the poles")
	}

	asc, mc := Angles(ramc, eps, latDeg)
	h := Houses{System: system, Ascendant: asc, Midheaven: mc}

	var c [12]float64
	switch system {
	case Placidus, "":
		h.System = Placidus
		if math.Abs(latDeg) >= 90-eps {
			return Houses{}, errors.New(errors.CodeHouseCalculation,
				"Placidus houses are undefined at latitude %.2f (polar circle at %.2f)", latDeg, 90-eps)
		}
		c[0], c[9] = asc, mc
		var err error
		if c[10], err = placidusCusp(ramc, eps, latDeg, 1.0/3, true); err != nil {
			return Houses{}, err
		}
		if c[11], err = placidusCusp(ramc, eps, latDeg, 2.0/3, true); err != nil {
			return Houses{}, err
		}
		if c[1], err = placidusCusp(ramc, eps, latDeg, 2.0/3, false); err != nil {
			return Houses{}, err
		}
		if c[2], err = placidusCusp(ramc, eps, latDeg, 1.0/3, false); err != nil {
			return Houses{}, err
		}
	case Porphyry:
		c[0], c[9] = asc, mc
		upper := astro.NewArc(mc, asc)
		lower := astro.NewArc(asc, mc+180)
		c[10], c[11] = upper.Fraction(1.0/3), upper.Fraction(2.0/3)
		c[1], c[2] = lower.Fraction(1.0/3), lower.Fraction(2.0/3)
	case Equal:
		for i := range c {
			c[i] = astro.Normalize360(asc + 30*float64(i))
		}
	case WholeSign:
		start := math.Floor(asc/30) * 30
		for i := range c {
			c[i] = astro.Normalize360(start + 30*float64(i))
		}
	default:
		return Houses{}, errors.New(errors.CodeInvalidConfig, "unknown house system %q", system)
	}

	if system != Equal && system != WholeSign {
		// Houses 4-9 mirror houses 10-3.
		for i := 3; i < 9; i++ {
			c[i] = astro.Normalize360(c[(i+6)%12] + 180)
		}
	}
	h.Cusps = c
	return h, nil
}

// placidusCusp finds the ecliptic point that has covered the given
// fraction of its semi-arc. Above the horizon (houses 11 and 12) the
// fraction is of the diurnal semi-arc measured east from the MC; below it
// (houses 2 and 3) the fraction is of the nocturnal semi-arc measured back
// from the IC.
func placidusCusp(ramc, eps, latDeg, fraction float64, above bool) (float64, error) {
	tanPhi := math.Tan(astro.DegToRad(latDeg))

	ra := ramc + 90*fraction
	if !above {
		ra = ramc + 180 - 90*fraction
	}
	lon := astro.RightAscensionToEcliptic(ra, eps)

	for iter := 0; iter < placidusIterations; iter++ {
		decl := astro.EclipticDeclination(lon, eps)
		x := tanPhi * math.Tan(astro.DegToRad(decl))
		if math.Abs(x) > 1 {
			return 0, errors.New(errors.CodeHouseCalculation,
				"semi-arc undefined at latitude %.2f (declination %.2f never rises)", latDeg, decl)
		}
		ad := astro.RadToDeg(math.Asin(x))

		if above {
			ra = ramc + fraction*(90+ad)
		} else {
			ra = ramc + 180 - fraction*(90-ad)
		}
		next := astro.RightAscensionToEcliptic(ra, eps)
		if math.Abs(astro.SignedDelta(lon, next)) < placidusTolerance {
			return next, nil
		}
		lon = next
	}
	return lon, nil
}
