// Package chart turns raw ecliptic longitudes into the zodiac, house and
// polar-layout data a three-ring chart renderer consumes.
//
// Everything here is pure: no ephemeris lookups, no time zones, no I/O.
package chart

import (
	"fmt"
	"math"

	"github.com/litescript/ls-trichart/internal/astro"
)

// DegreesPerSign is the width of one zodiac sign.
const DegreesPerSign = 30

// Sign is a zodiac sign index, 0 (Aries) through 11 (Pisces).
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signGlyphs = [12]string{"♈", "♉", "♊", "♋", "♌", "♍", "♎", "♏", "♐", "♑", "♒", "♓"}

// String returns the sign name.
func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return "Unknown"
	}
	return signNames[s]
}

// Glyph returns the sign symbol.
func (s Sign) Glyph() string {
	if s < Aries || s > Pisces {
		return "?"
	}
	return signGlyphs[s]
}

// Start returns the ecliptic longitude where the sign begins.
func (s Sign) Start() float64 {
	return float64(s) * DegreesPerSign
}

// Position is a longitude expressed as sign plus whole degrees and minutes
// within the sign.
type Position struct {
	Sign    Sign
	Degrees int // 0..29
	Minutes int // 0..59
}

// Decompose maps any longitude onto its sign and sign-local degrees and
// minutes. Values are truncated, never rounded, so 29°59.99' stays in the
// same sign.
func Decompose(longitude float64) Position {
	lon := astro.Normalize360(longitude)

	sign := int(math.Floor(lon / DegreesPerSign))
	if sign > 11 {
		sign = 11
	}

	inSign := lon - float64(sign)*DegreesPerSign
	if inSign < 0 {
		inSign = 0
	}
	deg := int(math.Floor(inSign))
	if deg > DegreesPerSign-1 {
		deg = DegreesPerSign - 1
	}
	min := int(math.Floor((inSign - float64(deg)) * 60))
	if min > 59 {
		min = 59
	}

	return Position{Sign: Sign(sign), Degrees: deg, Minutes: min}
}

// DegreeString formats the sign-local position as DD°MM'.
func (p Position) DegreeString() string {
	return fmt.Sprintf("%02d°%02d'", p.Degrees, p.Minutes)
}

// String formats the position as "Sign DD°MM'".
func (p Position) String() string {
	return p.Sign.String() + " " + p.DegreeString()
}

// MarshalText encodes the sign by name.
func (s Sign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a sign name.
func (s *Sign) UnmarshalText(text []byte) error {
	for i, name := range signNames {
		if name == string(text) {
			*s = Sign(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sign %q", text)
}
