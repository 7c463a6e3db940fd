package session

import (
	"time"

	"github.com/litescript/ls-trichart/internal/errors"
	"github.com/litescript/ls-trichart/internal/places"
)

// Request is one fully resolved chart request.
type Request struct {
	Birth   time.Time    `json:"birth"`
	Transit time.Time    `json:"transit"`
	Place   places.Place `json:"place"`
}

// ShiftTransit returns a copy of the request with the transit moment moved
// by whole calendar days, keeping the local clock reading.
func (r Request) ShiftTransit(days int) Request {
	r.Transit = r.Transit.AddDate(0, 0, days)
	return r
}

// Form is raw user input as typed into a form, flag set or query string.
type Form struct {
	BirthDate   string `json:"birth_date"`
	BirthTime   string `json:"birth_time"`
	Place       string `json:"place"`
	TransitDate string `json:"transit_date"` // empty means now
	TransitTime string `json:"transit_time"` // empty means now
	TimeZone    string `json:"tz"`           // overrides the place's zone
}

// Resolve validates the form against a place table. Birth input is
// checked first so a malformed birth time fails before anything else.
// now supplies the transit moment when the form leaves it blank.
func (f Form) Resolve(table *places.Table, now time.Time) (Request, error) {
	if table == nil {
		table = places.Default()
	}

	birth, err := parseCivil(BirthMoment, f.BirthDate, f.BirthTime)
	if err != nil {
		return Request{}, err
	}

	place, err := table.Lookup(f.Place)
	if err != nil {
		return Request{}, err
	}
	if f.TimeZone != "" {
		place.TimeZone = f.TimeZone
	}
	loc, err := place.Location()
	if err != nil {
		return Request{}, errors.Wrap(errors.CodeInputFormat, err, "unknown time zone %q", place.TimeZone)
	}

	local := now.In(loc)
	date, clock := f.TransitDate, f.TransitTime
	if date == "" {
		date = local.Format(dateLayout)
	}
	if clock == "" {
		clock = local.Format(clockLayout)
	}
	transit, err := ParseMoment(TransitMoment, date, clock, loc)
	if err != nil {
		return Request{}, err
	}

	return Request{Birth: birth.in(loc), Transit: transit, Place: place}, nil
}

// FormFor renders a request back into form fields.
func FormFor(r Request) Form {
	return Form{
		BirthDate:   r.Birth.Format(dateLayout),
		BirthTime:   r.Birth.Format(clockLayout),
		Place:       r.Place.Name,
		TransitDate: r.Transit.Format(dateLayout),
		TransitTime: r.Transit.Format(clockLayout),
		TimeZone:    r.Place.TimeZone,
	}
}
