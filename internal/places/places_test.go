package places

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/litescript/ls-trichart/internal/errors"
)

func TestDefault(t *testing.T) {
	all := Default().All()
	if len(all) != 47 {
		t.Fatalf("len(All()) = %d, want 47", len(all))
	}
	if all[0].Name != "Hokkaido" || all[46].Name != "Okinawa" {
		t.Errorf("order: first %q last %q", all[0].Name, all[46].Name)
	}
	for _, p := range all {
		if p.Lat < 24 || p.Lat > 46 || p.Lon < 122 || p.Lon > 146 {
			t.Errorf("%s at %.3f,%.3f is outside Japan", p.Name, p.Lat, p.Lon)
		}
		if p.TimeZone != "Asia/Tokyo" {
			t.Errorf("%s tz = %q", p.Name, p.TimeZone)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		input string
		name  string
		lat   float64
		lon   float64
	}{
		{"Tokyo", "Tokyo", 35.690, 139.692},
		{"tokyo", "Tokyo", 35.690, 139.692},
		{"  OSAKA ", "Osaka", 34.686, 135.520},
		{"東京都", "Tokyo", 35.690, 139.692},
		{"東京", "Tokyo", 35.690, 139.692},
		{"北海道", "Hokkaido", 43.064, 141.348},
		{"沖縄県", "Okinawa", 26.212, 127.681},
		{"", "Tokyo", 35.690, 139.692},
	}
	for _, tt := range tests {
		p, err := Lookup(tt.input)
		if err != nil {
			t.Errorf("Lookup(%q): %v", tt.input, err)
			continue
		}
		if p.Name != tt.name || p.Lat != tt.lat || p.Lon != tt.lon {
			t.Errorf("Lookup(%q) = %+v, want %s %.3f,%.3f", tt.input, p, tt.name, tt.lat, tt.lon)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("Atlantis")
	if !errors.Is(err, errors.CodeUnknownPlace) {
		t.Errorf("Lookup(Atlantis) err = %v, want UNKNOWN_PLACE", err)
	}
}

func TestPlace_Location(t *testing.T) {
	p, _ := Lookup("Kyoto")
	loc, err := p.Location()
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if loc.String() != "Asia/Tokyo" {
		t.Errorf("Location = %v", loc)
	}

	bad := Place{Name: "Nowhere", TimeZone: "Mars/Olympus_Mons"}
	if _, err := bad.Location(); !errors.Is(err, errors.CodeInvalidConfig) {
		t.Errorf("bad zone err = %v", err)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[[place]\nname = "},
		{"no name", "[[place]]\nlat = 1.0\nlon = 2.0\n"},
		{"bad latitude", "[[place]]\nname = \"X\"\nlat = 91.0\nlon = 2.0\n"},
		{"duplicate", "[[place]]\nname = \"X\"\n[[place]]\nname = \"x\"\n"},
	}
	for _, tt := range tests {
		if _, err := Parse([]byte(tt.data)); !errors.Is(err, errors.CodeInvalidConfig) {
			t.Errorf("%s: err = %v, want INVALID_CONFIG", tt.name, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.toml")
	data := `
[[place]]
name = "Honolulu"
lat = 21.307
lon = -157.858
tz = "Pacific/Honolulu"

[[place]]
name = "Tokyo"
local = "東京都"
lat = 35.6812
lon = 139.7671
tz = "Asia/Tokyo"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if n := len(table.All()); n != 48 {
		t.Errorf("merged table has %d places, want 48", n)
	}
	p, err := table.Lookup("honolulu")
	if err != nil || p.TimeZone != "Pacific/Honolulu" {
		t.Errorf("Lookup(honolulu) = %+v, %v", p, err)
	}
	p, _ = table.Lookup("東京")
	if p.Lat != 35.6812 {
		t.Errorf("Tokyo override not applied: %+v", p)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.CodeInvalidConfig) {
		t.Errorf("missing file err = %v", err)
	}
}
