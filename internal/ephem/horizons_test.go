package ephem

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-trichart/internal/astro"
	"github.com/litescript/ls-trichart/internal/errors"
)

// integrationEnv opts in to tests that reach the live Horizons API.
const integrationEnv = "LSTRICHART_INTEGRATION"

func TestHorizonsProvider_PositionsAt_Integration(t *testing.T) {
	if testing.Short() || os.Getenv(integrationEnv) != "1" {
		t.Skip("Skipping integration test; set " + integrationEnv + "=1 to run against JPL")
	}

	provider := NewHorizonsProvider(DefaultConfig(), nil)
	jd := astro.JulianDay(time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC))

	got, err := provider.PositionsAt(context.Background(), jd, []astro.Body{astro.Sun, astro.Mars})
	if err != nil {
		t.Fatalf("PositionsAt failed: %v", err)
	}
	for b, pos := range got {
		t.Logf("  %s: lon=%.4f speed=%.4f", b, pos.Longitude, pos.Speed)
	}
	if math.Abs(astro.SignedDelta(got[astro.Sun].Longitude, 0)) > 0.05 {
		t.Errorf("Sun at equinox = %v", got[astro.Sun].Longitude)
	}
}

func TestParseEphemerisLine(t *testing.T) {
	tests := []struct {
		line    string
		wantLon float64
		wantLat float64
		wantErr bool
	}{
		{
			line:    "2024-Mar-20 03:00 *   359.9992311   0.0001542",
			wantLon: 359.9992311,
			wantLat: 0.0001542,
		},
		{
			line:    "2024-Mar-20 04:00 Cm  15.2551030  -1.6687540",
			wantLon: 15.255103,
			wantLat: -1.668754,
		},
		{
			line:    "2024-Mar-20 04:00:00  m  285.908122  -1.510301",
			wantLon: 285.908122,
			wantLat: -1.510301,
		},
		{
			line:    "2024-Mar-20 04:00   400.0  1.0",
			wantErr: true,
		},
		{
			line:    "invalid",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		name := tc.line
		if len(name) > 20 {
			name = name[:20]
		}
		t.Run(name, func(t *testing.T) {
			pt, err := parseEphemerisLine(tc.line)
			if tc.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if math.Abs(pt.Lon-tc.wantLon) > 1e-9 {
				t.Errorf("Lon = %v, want %v", pt.Lon, tc.wantLon)
			}
			if math.Abs(pt.Lat-tc.wantLat) > 1e-9 {
				t.Errorf("Lat = %v, want %v", pt.Lat, tc.wantLat)
			}
		})
	}
}

func TestParseHorizonsResponse(t *testing.T) {
	if _, err := parseHorizonsResponse([]byte(`{"result": "no markers here"}`)); err == nil {
		t.Error("expected error without $$SOE/$$EOE")
	}
	if _, err := parseHorizonsResponse([]byte(`{"error": "Cannot interpret date"}`)); err == nil ||
		!strings.Contains(err.Error(), "Cannot interpret date") {
		t.Errorf("API error not surfaced: %v", err)
	}
	if _, err := parseHorizonsResponse([]byte(`not json`)); err == nil {
		t.Error("expected JSON error")
	}
}

func horizonsResult(lines ...string) string {
	body, _ := json.Marshal(horizonsResponse{
		Result: "header\n$$SOE\n" + strings.Join(lines, "\n") + "\n$$EOE\nfooter",
	})
	return string(body)
}

func TestHorizonsProvider_Server(t *testing.T) {
	var commands []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		commands = append(commands, q.Get("COMMAND"))
		if q.Get("QUANTITIES") != "'31'" || q.Get("CENTER") != "'500@399'" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		switch q.Get("COMMAND") {
		case "'10'":
			w.Write([]byte(horizonsResult(
				" 2024-Mar-20 03:06 *   359.9990000   0.0000100",
				" 2024-Mar-20 04:06 *     0.0400000   0.0000100",
			)))
		case "'199'":
			w.Write([]byte(horizonsResult(
				" 2024-Apr-12 00:00    20.5000000   2.1000000",
				" 2024-Apr-12 01:00    20.4800000   2.1000000",
			)))
		default:
			http.Error(w, "unknown target", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.HorizonsURL = srv.URL
	p := NewHorizonsProvider(cfg, nil)

	got, err := p.PositionsAt(context.Background(), astro.J2000, []astro.Body{astro.Sun, astro.Mercury, astro.NorthNode})
	if err != nil {
		t.Fatalf("PositionsAt: %v", err)
	}
	if len(commands) != 2 {
		t.Errorf("Horizons queried %d times (%v), want 2", len(commands), commands)
	}

	sun := got[astro.Sun]
	if math.Abs(sun.Longitude-359.999) > 1e-9 || sun.Retrograde {
		t.Errorf("Sun = %+v", sun)
	}
	if math.Abs(sun.Speed-0.041*24) > 1e-6 {
		t.Errorf("Sun speed = %v, want %v", sun.Speed, 0.041*24)
	}
	if !got[astro.Mercury].Retrograde {
		t.Errorf("Mercury = %+v, want retrograde", got[astro.Mercury])
	}
	if _, ok := got[astro.NorthNode]; !ok {
		t.Error("north node missing; should come from builtin")
	}

	_, err = p.PositionsAt(context.Background(), astro.J2000, []astro.Body{astro.Pluto})
	if !errors.Is(err, errors.CodeEphemeris) {
		t.Errorf("PositionsAt(pluto) err = %v, want EPHEMERIS", err)
	}
}

func TestFormatHelpers(t *testing.T) {
	ts := time.Date(2024, 3, 20, 3, 6, 30, 0, time.FixedZone("JST", 9*3600))
	if got := formatHorizonsTime(ts); got != "2024-03-19 18:06:30" {
		t.Errorf("formatHorizonsTime = %q", got)
	}

	tests := []struct {
		d    time.Duration
		want string
	}{
		{time.Hour, "1 h"},
		{2 * time.Hour, "2 h"},
		{10 * time.Minute, "10 m"},
		{90 * time.Minute, "90 m"},
	}
	for _, tc := range tests {
		if got := formatStepSize(tc.d); got != tc.want {
			t.Errorf("formatStepSize(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
