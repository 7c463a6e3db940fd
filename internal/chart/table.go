package chart

import (
	"strconv"

	"github.com/litescript/ls-trichart/internal/astro"
)

const (
	// RetrogradeMarker flags a body moving backwards along the ecliptic.
	RetrogradeMarker = "R"
	// NoHouse is shown in place of a house number for angle points.
	NoHouse = "-"
)

// Row is one line of a layer's body table.
type Row struct {
	Body        astro.Body `json:"body"`
	DisplayName string     `json:"display_name"` // "{glyph} {name}"
	Sign        Sign       `json:"sign"`
	Degree      string     `json:"degree"`     // DD°MM'
	Retrograde  string     `json:"retrograde"` // RetrogradeMarker or ""
	House       string     `json:"house"`      // 1..12 or NoHouse
}

// Table is the tabular projection of one layer.
type Table struct {
	Layer LayerKind `json:"layer"`
	Rows  []Row     `json:"rows"`
}

// BuildTable produces one row per body, in the layer's order. Ordinary
// bodies are classified against the natal cusps; angle points, and bodies
// no cusp segment contains, get NoHouse.
func BuildTable(layer Layer, cusps Cusps) Table {
	rows := make([]Row, 0, len(layer.Bodies))
	for _, b := range layer.Bodies {
		pos := Decompose(b.Longitude)
		row := Row{
			Body:        b.Body,
			DisplayName: b.Body.Glyph() + " " + b.Body.Name(),
			Sign:        pos.Sign,
			Degree:      pos.DegreeString(),
			House:       NoHouse,
		}
		if b.Retrograde {
			row.Retrograde = RetrogradeMarker
		}
		if !b.Body.IsAngle() {
			if h, ok := cusps.classify(b.Longitude); ok {
				row.House = strconv.Itoa(h)
			}
		}
		rows = append(rows, row)
	}
	return Table{Layer: layer.Kind, Rows: rows}
}

// BuildTables builds a table per layer, in the order given.
func BuildTables(cusps Cusps, layers ...Layer) []Table {
	tables := make([]Table, 0, len(layers))
	for _, l := range layers {
		tables = append(tables, BuildTable(l, cusps))
	}
	return tables
}
