package chart

import (
	"encoding/json"
	"math"

	"github.com/litescript/ls-trichart/internal/astro"
	"github.com/litescript/ls-trichart/internal/errors"
)

// NumHouses is the number of houses in a chart.
const NumHouses = 12

// turnTolerance absorbs floating error when checking that cusp arcs add up
// to one full turn.
const turnTolerance = 1e-6

// Cusps holds the twelve house cusp longitudes, index 0 being the start of
// house 1. The zero value is not a valid cusp set; build one with NewCusps.
type Cusps struct {
	lon [NumHouses]float64
}

// NewCusps validates and normalizes a cusp set. The cusps must be finite,
// pairwise distinct and in circular order, so that the twelve arcs
// cusp[i] -> cusp[i+1] (with cusp[11] -> cusp[0] closing the circle) tile
// the zodiac exactly once.
func NewCusps(lon [NumHouses]float64) (Cusps, error) {
	var c Cusps
	for i, v := range lon {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Cusps{}, errors.New(errors.CodeInvalidCusps, "cusp %d is not a finite longitude", i+1)
		}
		c.lon[i] = astro.Normalize360(v)
	}

	total := 0.0
	for i := 0; i < NumHouses; i++ {
		arc := c.Arc(i + 1)
		if arc.Span() == 0 {
			return Cusps{}, errors.New(errors.CodeInvalidCusps, "cusps %d and %d coincide", i+1, (i+1)%NumHouses+1)
		}
		total += arc.Span()
	}
	if math.Abs(total-360) > turnTolerance {
		return Cusps{}, errors.New(errors.CodeInvalidCusps, "cusps are not in zodiacal order (arcs total %.3f°)", total)
	}
	return c, nil
}

// MustCusps is NewCusps for fixed tables; it panics on malformed input.
func MustCusps(lon [NumHouses]float64) Cusps {
	c, err := NewCusps(lon)
	if err != nil {
		panic(err)
	}
	return c
}

// Longitudes returns a copy of the normalized cusp longitudes.
func (c Cusps) Longitudes() [NumHouses]float64 {
	return c.lon
}

// Cusp returns the starting longitude of a house (1..12).
func (c Cusps) Cusp(house int) float64 {
	return c.lon[(house-1)%NumHouses]
}

// Arc returns the segment of a house (1..12), from its own cusp up to the
// next house's cusp. House 12 closes back onto cusp 1.
func (c Cusps) Arc(house int) astro.Arc {
	i := (house - 1) % NumHouses
	return astro.Arc{Start: c.lon[i], End: c.lon[(i+1)%NumHouses]}
}

// HouseOf returns the house (1..12) containing a longitude. A longitude
// exactly on a cusp belongs to the house that starts there. The zero
// Cusps classify nothing and return 0.
func (c Cusps) HouseOf(longitude float64) int {
	house, _ := c.classify(longitude)
	return house
}

func (c Cusps) classify(longitude float64) (int, bool) {
	lon := astro.Normalize360(longitude)
	for h := 1; h <= NumHouses; h++ {
		if c.Arc(h).Contains(lon) {
			return h, true
		}
	}
	return 0, false
}

// HouseOf classifies a longitude against a raw cusp array. Malformed cusps
// fail with INVALID_CUSPS; a longitude that no segment contains fails with
// UNCLASSIFIABLE rather than being assigned a default house.
func HouseOf(longitude float64, cusps [NumHouses]float64) (int, error) {
	c, err := NewCusps(cusps)
	if err != nil {
		return 0, err
	}
	house, ok := c.classify(longitude)
	if !ok {
		return 0, errors.New(errors.CodeUnclassifiable, "longitude %.4f is outside every house", longitude)
	}
	return house, nil
}

// MarshalJSON encodes the cusps as an array of twelve longitudes.
func (c Cusps) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.lon)
}

// UnmarshalJSON decodes and validates an array of twelve longitudes.
func (c *Cusps) UnmarshalJSON(data []byte) error {
	var lon [NumHouses]float64
	if err := json.Unmarshal(data, &lon); err != nil {
		return err
	}
	parsed, err := NewCusps(lon)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
