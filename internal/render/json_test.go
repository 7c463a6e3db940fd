package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/litescript/ls-trichart/internal/chart"
)

func TestExportChart(t *testing.T) {
	c := sampleChart()
	export := ExportChart(c, c.Geometry(nil), c.Tables())

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var doc struct {
		ID          string          `json:"id"`
		Provider    string          `json:"provider"`
		HouseSystem string          `json:"house_system"`
		Cusps       chart.Cusps     `json:"cusps"`
		Layers      []chart.Layer   `json:"layers"`
		Tables      []chart.Table   `json:"tables"`
		Geometry    json.RawMessage `json:"geometry"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, buf.String())
	}

	if doc.ID != c.ID.String() {
		t.Errorf("id = %q, want %q", doc.ID, c.ID)
	}
	if doc.Provider != "builtin" || doc.HouseSystem != "equal" {
		t.Errorf("provider/system = %q/%q", doc.Provider, doc.HouseSystem)
	}
	if doc.Cusps.Cusp(1) != 100 {
		t.Errorf("cusp 1 = %v, want 100", doc.Cusps.Cusp(1))
	}
	if len(doc.Layers) != 3 || doc.Layers[2].Kind != chart.Transit {
		t.Errorf("layers = %+v", doc.Layers)
	}
	if len(doc.Tables) != 3 || doc.Tables[0].Rows[0].Sign != chart.Aries {
		t.Errorf("tables = %+v", doc.Tables)
	}
	if !bytes.Contains(doc.Geometry, []byte(`"angle_labels"`)) {
		t.Error("geometry missing angle labels")
	}
}

func TestExportChart_Nil(t *testing.T) {
	export := ExportChart(nil, chart.RenderGeometry{}, nil)
	if export == nil || export.GeneratedAt.IsZero() {
		t.Fatalf("ExportChart(nil) = %+v", export)
	}
}
