// Package places resolves birth place names to coordinates and time zones.
package places

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/litescript/ls-trichart/internal/errors"
)

//go:embed prefectures.toml
var prefecturesTOML []byte

// DefaultPlace is used when no place is given.
const DefaultPlace = "Tokyo"

// Place is a named location.
type Place struct {
	Name     string  `toml:"name" json:"name"`
	Local    string  `toml:"local" json:"local,omitempty"` // name in the local script
	Lat      float64 `toml:"lat" json:"lat"`
	Lon      float64 `toml:"lon" json:"lon"`
	TimeZone string  `toml:"tz" json:"tz"` // IANA zone
}

// Location loads the place's time zone.
func (p Place) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidConfig, err, "time zone for %s", p.Name)
	}
	return loc, nil
}

// Table is an immutable, ordered set of places.
type Table struct {
	places []Place
	index  map[string]int
}

type tableFile struct {
	Place []Place `toml:"place"`
}

// Parse decodes a TOML place list.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.CodeInvalidConfig, err, "parse place table")
	}
	return newTable(f.Place)
}

// LoadFile returns the built-in table extended with the places in a TOML
// file. File entries replace built-in entries of the same name.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidConfig, err, "read place table")
	}
	extra, err := Parse(data)
	if err != nil {
		return nil, err
	}

	base := Default()
	merged := make([]Place, 0, len(base.places)+len(extra.places))
	for _, p := range base.places {
		if _, err := extra.Lookup(p.Name); err == nil {
			continue
		}
		merged = append(merged, p)
	}
	merged = append(merged, extra.places...)
	return newTable(merged)
}

func newTable(list []Place) (*Table, error) {
	t := &Table{places: list, index: make(map[string]int, 2*len(list))}
	for i, p := range list {
		if p.Name == "" {
			return nil, errors.New(errors.CodeInvalidConfig, "place %d has no name", i+1)
		}
		if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
			return nil, errors.New(errors.CodeInvalidConfig, "place %s has invalid coordinates %.3f,%.3f", p.Name, p.Lat, p.Lon)
		}
		if p.TimeZone == "" {
			list[i].TimeZone = "UTC"
		}
		for _, key := range keys(p) {
			if _, dup := t.index[key]; dup {
				return nil, errors.New(errors.CodeInvalidConfig, "duplicate place %q", key)
			}
			t.index[key] = i
		}
	}
	return t, nil
}

// keys returns the lookup keys for a place: its name and local name,
// lower-cased, with the local administrative suffix also dropped.
func keys(p Place) []string {
	out := []string{normalize(p.Name)}
	if p.Local != "" {
		local := normalize(p.Local)
		out = append(out, local)
		if short := trimSuffix(local); short != local && short != "" {
			out = append(out, short)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// trimSuffix drops a trailing 県, 府 or 都 (but not 道, which is part of
// 北海道's short form).
func trimSuffix(s string) string {
	for _, suffix := range []string{"県", "府", "都"} {
		if strings.HasSuffix(s, suffix) {
			return strings.TrimSuffix(s, suffix)
		}
	}
	return s
}

// Lookup finds a place by name, case-insensitively. Local names match
// with or without their administrative suffix.
func (t *Table) Lookup(name string) (Place, error) {
	key := normalize(name)
	if key == "" {
		key = normalize(DefaultPlace)
	}
	if i, ok := t.index[key]; ok {
		return t.places[i], nil
	}
	return Place{}, errors.New(errors.CodeUnknownPlace, "unknown place %q", name)
}

// All returns the places in table order.
func (t *Table) All() []Place {
	out := make([]Place, len(t.places))
	copy(out, t.places)
	return out
}

// Names returns the place names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.places))
	for i, p := range t.places {
		out[i] = p.Name
	}
	return out
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := Parse(prefecturesTOML)
	if err != nil {
		panic(fmt.Sprintf("places: embedded table: %v", err))
	}
	return t
})

// Default returns the built-in table of Japanese prefectural capitals.
func Default() *Table {
	return defaultTable()
}

// Lookup finds a place in the built-in table.
func Lookup(name string) (Place, error) {
	return Default().Lookup(name)
}
