package session

import (
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-trichart/internal/errors"
	"github.com/litescript/ls-trichart/internal/places"
)

func tokyo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	return loc
}

func TestParseMoment(t *testing.T) {
	loc := tokyo(t)

	got, err := ParseMoment(BirthMoment, "1990-01-01", "12:00", loc)
	if err != nil {
		t.Fatalf("ParseMoment: %v", err)
	}
	want := time.Date(1990, 1, 1, 3, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseMoment = %v, want %v", got.UTC(), want)
	}

	tests := []struct {
		kind    MomentKind
		date    string
		clock   string
		message string
	}{
		{BirthMoment, "1990-01-01", "25:00", "birth time must be HH:MM"},
		{BirthMoment, "1990-01-01", "12:0", "birth time must be HH:MM"},
		{BirthMoment, "1990-01-01", "9:05", "birth time must be HH:MM"},
		{BirthMoment, "1990-01-01", "12:00:30", "birth time must be HH:MM"},
		{TransitMoment, "2024-03-20", "noon", "transit time must be HH:MM"},
		{TransitMoment, "2024-13-20", "12:00", "transit date must be YYYY-MM-DD"},
		{BirthMoment, "", "12:00", "birth date must be YYYY-MM-DD"},
	}
	for _, tt := range tests {
		_, err := ParseMoment(tt.kind, tt.date, tt.clock, loc)
		if !errors.Is(err, errors.CodeInputFormat) {
			t.Errorf("ParseMoment(%q, %q) err = %v, want INPUT_FORMAT", tt.date, tt.clock, err)
			continue
		}
		if msg := errors.UserMessage(err); msg != tt.message {
			t.Errorf("ParseMoment(%q, %q) message = %q, want %q", tt.date, tt.clock, msg, tt.message)
		}
	}
}

func TestProgressedMoment(t *testing.T) {
	birth := time.Date(1990, 1, 1, 12, 0, 0, 0, tokyo(t))

	if got := ProgressedMoment(birth, birth); !got.Equal(birth) {
		t.Errorf("ProgressedMoment(birth, birth) = %v", got)
	}

	// 730 whole days is just under two years: just under two days of
	// progression. The partial 23 hours do not count.
	at := birth.AddDate(0, 0, 730).Add(23 * time.Hour)
	got := ProgressedMoment(birth, at)
	wantHours := 730 / DaysPerYear * 24
	if d := got.Sub(birth).Hours(); d < wantHours-1e-6 || d > wantHours+1e-6 {
		t.Errorf("progression = %.6fh, want %.6fh", d, wantHours)
	}

	// Thirty years of age moves the chart about thirty days.
	at = birth.AddDate(30, 0, 0)
	days := ProgressedMoment(birth, at).Sub(birth).Hours() / 24
	if days < 29.99 || days > 30.0 {
		t.Errorf("30 years progressed by %.4f days", days)
	}
	if age := AgeYears(birth, at); age < 29.99 || age > 30 {
		t.Errorf("AgeYears = %v", age)
	}

	// A transit before birth progresses backwards.
	if got := ProgressedMoment(birth, birth.AddDate(-1, 0, 0)); !got.Before(birth) {
		t.Errorf("ProgressedMoment before birth = %v, want before %v", got, birth)
	}
}

func TestForm_Resolve(t *testing.T) {
	now := time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC)

	req, err := Form{BirthDate: "1990-01-01", BirthTime: "12:00"}.Resolve(nil, now)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if req.Place.Name != places.DefaultPlace {
		t.Errorf("default place = %q", req.Place.Name)
	}
	if !req.Transit.Equal(now) {
		t.Errorf("blank transit = %v, want %v", req.Transit, now)
	}
	if got := req.Birth.UTC().Hour(); got != 3 {
		t.Errorf("birth UTC hour = %d, want 3 (JST)", got)
	}

	req, err = Form{
		BirthDate: "1990-01-01", BirthTime: "12:00", Place: "osaka",
		TransitDate: "2024-01-01", TransitTime: "00:30", TimeZone: "UTC",
	}.Resolve(places.Default(), now)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if req.Place.Name != "Osaka" || req.Birth.UTC().Hour() != 12 {
		t.Errorf("tz override ignored: %+v", req)
	}
	if back := FormFor(req); back.TransitTime != "00:30" || back.Place != "Osaka" {
		t.Errorf("FormFor = %+v", back)
	}
}

func TestForm_ResolveErrors(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		form Form
		code errors.Code
		msg  string
	}{
		{
			name: "bad birth time checked before place",
			form: Form{BirthDate: "1990-01-01", BirthTime: "noon", Place: "Atlantis"},
			code: errors.CodeInputFormat,
			msg:  "birth time must be HH:MM",
		},
		{
			name: "unknown place",
			form: Form{BirthDate: "1990-01-01", BirthTime: "12:00", Place: "Atlantis"},
			code: errors.CodeUnknownPlace,
		},
		{
			name: "bad transit time",
			form: Form{BirthDate: "1990-01-01", BirthTime: "12:00", TransitDate: "2024-01-01", TransitTime: "7pm"},
			code: errors.CodeInputFormat,
			msg:  "transit time must be HH:MM",
		},
		{
			name: "bad zone",
			form: Form{BirthDate: "1990-01-01", BirthTime: "12:00", TimeZone: "Nowhere/Else"},
			code: errors.CodeInputFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Resolve(nil, now)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if tt.msg != "" && !strings.Contains(errors.UserMessage(err), tt.msg) {
				t.Errorf("message = %q, want %q", errors.UserMessage(err), tt.msg)
			}
		})
	}
}

func TestRequest_ShiftTransit(t *testing.T) {
	loc := tokyo(t)
	req := Request{Transit: time.Date(2024, 3, 1, 21, 15, 0, 0, loc)}

	next := req.ShiftTransit(1)
	if next.Transit.Day() != 2 || next.Transit.Hour() != 21 || next.Transit.Minute() != 15 {
		t.Errorf("ShiftTransit(1) = %v", next.Transit)
	}
	prev := req.ShiftTransit(-1)
	if prev.Transit.Month() != time.February || prev.Transit.Day() != 29 {
		t.Errorf("ShiftTransit(-1) = %v, want 2024-02-29", prev.Transit)
	}
	if !req.Transit.Equal(time.Date(2024, 3, 1, 21, 15, 0, 0, loc)) {
		t.Error("ShiftTransit mutated the receiver")
	}
}
