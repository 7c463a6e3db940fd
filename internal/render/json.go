package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-trichart/internal/chart"
	"github.com/litescript/ls-trichart/internal/places"
	"github.com/litescript/ls-trichart/internal/session"
)

// ChartExport is the JSON document for one computed chart.
type ChartExport struct {
	ID           uuid.UUID            `json:"id"`
	GeneratedAt  time.Time            `json:"generated_at"`
	Provider     string               `json:"provider"`
	HouseSystem  string               `json:"house_system"`
	Place        places.Place         `json:"place"`
	Birth        time.Time            `json:"birth"`
	Transit      time.Time            `json:"transit"`
	ProgressedAt time.Time            `json:"progressed_at"`
	Cusps        chart.Cusps          `json:"cusps"`
	Angles       chart.Angles         `json:"angles"`
	Layers       []chart.Layer        `json:"layers"`
	Tables       []chart.Table        `json:"tables"`
	Geometry     chart.RenderGeometry `json:"geometry"`
}

// ExportChart converts a chart, its geometry and tables to an exportable
// document.
func ExportChart(c *session.Chart, g chart.RenderGeometry, tables []chart.Table) *ChartExport {
	if c == nil {
		return &ChartExport{GeneratedAt: time.Now().UTC()}
	}
	return &ChartExport{
		ID:           c.ID,
		GeneratedAt:  time.Now().UTC(),
		Provider:     c.Provider,
		HouseSystem:  string(c.HouseSystem),
		Place:        c.Request.Place,
		Birth:        c.Request.Birth,
		Transit:      c.Request.Transit,
		ProgressedAt: c.ProgressedAt,
		Cusps:        c.Cusps,
		Angles:       c.Angles,
		Layers:       c.Layers(),
		Tables:       tables,
		Geometry:     g,
	}
}

// WriteJSON writes the export as indented JSON to the given writer.
func (e *ChartExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
