package render

import (
	"strings"
	"testing"
)

func TestSVG(t *testing.T) {
	c := sampleChart()
	g := c.Geometry(nil)
	out := string(SVG(g, WithTitle("Tokyo <1990>"), WithSize(300)))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg root: %.60s", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("svg not closed")
	}

	checks := []struct {
		name string
		sub  string
		want int
	}{
		{"sign wedges", "<path ", 12},
		{"cusp lines", "<line ", 12},
		{"dashed cusps", "stroke-dasharray", 12},
		{"layer groups", `<g class="layer `, 3},
		{"size", `width="300" height="300"`, 1},
		{"escaped title", "<title>Tokyo &lt;1990&gt;</title>", 1},
	}
	for _, tt := range checks {
		if n := strings.Count(out, tt.sub); n != tt.want {
			t.Errorf("%s: count(%q) = %d, want %d", tt.name, tt.sub, n, tt.want)
		}
	}

	// Every glyph and angle label carries its hover text.
	for _, p := range g.Glyphs {
		if !strings.Contains(out, strings.ReplaceAll(p.Hover, "'", "&#39;")) {
			t.Errorf("hover %q missing", p.Hover)
		}
	}
	if !strings.Contains(out, "Mercury: ♈ 05°00&#39; R") {
		t.Error("retrograde hover text missing")
	}
}

func TestSVG_Defaults(t *testing.T) {
	out := string(SVG(sampleChart().Geometry(nil), WithSize(-5)))
	if !strings.Contains(out, `width="600"`) {
		t.Error("default size not applied")
	}
	if strings.Contains(out, "<title>Tokyo") {
		t.Error("unexpected document title")
	}
}

func TestSVG_Deterministic(t *testing.T) {
	g := sampleChart().Geometry(nil)
	if string(SVG(g)) != string(SVG(g)) {
		t.Error("SVG output differs between calls")
	}
}
