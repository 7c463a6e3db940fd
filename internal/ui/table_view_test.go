package ui

import (
	"strings"
	"testing"

	"github.com/litescript/ls-trichart/internal/chart"
)

func TestTableView_NextLayer(t *testing.T) {
	m := NewTableViewModel()
	want := []chart.LayerKind{chart.Natal, chart.Progressed, chart.Transit, chart.Natal}
	for i, kind := range want {
		if m.Layer() != kind {
			t.Errorf("step %d: Layer() = %s, want %s", i, m.Layer(), kind)
		}
		m = m.NextLayer()
	}
}

func TestTableView_View(t *testing.T) {
	m := NewTableViewModel().SetSize(60, 30)
	if !strings.Contains(m.View(), "No chart") {
		t.Error("empty table should say so")
	}

	m = m.SetChart(computeChart(t, testRequest(t)))
	view := m.View()
	for _, want := range []string{"▶ Natal", "☉ Sun", "Ascendant", "House"} {
		if !strings.Contains(view, want) {
			t.Errorf("natal view missing %q", want)
		}
	}

	m = m.NextLayer().NextLayer()
	view = m.View()
	if !strings.Contains(view, "▶ Transit") || strings.Contains(view, "Ascendant") {
		t.Errorf("transit view:\n%s", view)
	}
	if !strings.Contains(view, "☋ South Node") {
		t.Error("transit view missing south node")
	}
}

func TestTableView_KeepsLayerAcrossCharts(t *testing.T) {
	m := NewTableViewModel().NextLayer()
	m = m.SetChart(computeChart(t, testRequest(t)))
	if m.Layer() != chart.Progressed {
		t.Errorf("Layer() = %s after SetChart, want progressed", m.Layer())
	}
}
