// Package session turns user input into the three chart layers: it parses
// civil times, derives the progressed moment and drives the ephemeris.
package session

import (
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-trichart/internal/errors"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	// DaysPerYear converts elapsed days to age in years.
	DaysPerYear = 365.2425
)

// MomentKind says which input a moment came from; it picks the validation
// message shown to the user.
type MomentKind string

const (
	BirthMoment   MomentKind = "birth"
	TransitMoment MomentKind = "transit"
)

// civil is a wall-clock reading not yet bound to a zone.
type civil struct {
	date  time.Time
	clock time.Time
}

func (c civil) in(loc *time.Location) time.Time {
	return time.Date(c.date.Year(), c.date.Month(), c.date.Day(), c.clock.Hour(), c.clock.Minute(), 0, 0, loc)
}

func parseCivil(kind MomentKind, date, clock string) (civil, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return civil{}, errors.Wrap(errors.CodeInputFormat, err, "%s date must be YYYY-MM-DD", kind)
	}

	clock = strings.TrimSpace(clock)
	c, err := time.Parse(clockLayout, clock)
	if err != nil || len(clock) != len(clockLayout) {
		return civil{}, errors.Wrap(errors.CodeInputFormat, err, "%s time must be HH:MM", kind)
	}
	return civil{date: d, clock: c}, nil
}

// ParseMoment combines a YYYY-MM-DD date and an HH:MM clock reading in loc.
// Failures are INPUT_FORMAT errors whose message is meant for the user.
func ParseMoment(kind MomentKind, date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	c, err := parseCivil(kind, date, clock)
	if err != nil {
		return time.Time{}, err
	}
	return c.in(loc), nil
}

// ProgressedMoment returns the secondary-progressed moment for a birth:
// one day after birth for every year of age at the given moment. Age is
// counted in whole elapsed days divided by DaysPerYear.
func ProgressedMoment(birth, at time.Time) time.Time {
	days := math.Floor(at.Sub(birth).Hours() / 24)
	age := days / DaysPerYear
	return birth.Add(time.Duration(age * 24 * float64(time.Hour)))
}

// AgeYears returns the age in years used for the progression.
func AgeYears(birth, at time.Time) float64 {
	return math.Floor(at.Sub(birth).Hours()/24) / DaysPerYear
}
