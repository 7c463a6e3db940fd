package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/litescript/ls-trichart/internal/chart"
)

const (
	defaultSVGSize = 600
	svgPadding     = 0.4 // chart units around the frame
)

var layerColors = map[chart.LayerKind]string{
	chart.Natal:      "#6b3fa0",
	chart.Progressed: "#2a7f62",
	chart.Transit:    "#c0392b",
}

// SVGOption configures SVG output.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	size  int
	title string
}

// WithSize sets the width and height of the image in pixels.
func WithSize(px int) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.size = px
		}
	}
}

// WithTitle adds a document title.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// SVG renders the geometry as a standalone SVG document. Every body glyph
// carries its hover text as a <title> tooltip.
func SVG(g chart.RenderGeometry, opts ...SVGOption) []byte {
	r := svgRenderer{size: defaultSVGSize}
	for _, opt := range opts {
		opt(&r)
	}

	R := g.Layout.FrameRadius + svgPadding
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%d" height="%d" font-family="sans-serif">`+"\n",
		-R, -R, 2*R, 2*R, r.size, r.size)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}

	renderSigns(&buf, g)
	renderCusps(&buf, g)
	renderHouseLabels(&buf, g)
	renderGlyphs(&buf, g)
	renderAngles(&buf, g)

	fmt.Fprintf(&buf, `  <circle cx="0" cy="0" r="%.3f" fill="none" stroke="#333" stroke-width="0.05"/>`+"\n", g.Layout.FrameRadius)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// svgXY converts a chart point to SVG user space, where y grows downward.
func svgXY(p chart.Point) (float64, float64) {
	x, y := p.XY()
	return x, -y
}

func renderSigns(buf *bytes.Buffer, g chart.RenderGeometry) {
	buf.WriteString(`  <g class="signs">` + "\n")
	for _, w := range g.Signs {
		fill := "#f4f0fa"
		if w.Fill == 1 {
			fill = "#e6def3"
		}
		ox1, oy1 := svgXY(chart.Point{Angle: w.Start, Radius: w.Outer})
		ox2, oy2 := svgXY(chart.Point{Angle: w.End, Radius: w.Outer})
		ix2, iy2 := svgXY(chart.Point{Angle: w.End, Radius: w.Inner})
		ix1, iy1 := svgXY(chart.Point{Angle: w.Start, Radius: w.Inner})
		// Counter-clockwise in chart space is clockwise on screen.
		fmt.Fprintf(buf, `    <path d="M %.3f %.3f A %.3f %.3f 0 0 1 %.3f %.3f L %.3f %.3f A %.3f %.3f 0 0 0 %.3f %.3f Z" fill="%s" stroke="#999" stroke-width="0.03"><title>%s</title></path>`+"\n",
			ox1, oy1, w.Outer, w.Outer, ox2, oy2, ix2, iy2, w.Inner, w.Inner, ix1, iy1, fill, w.Sign)
		lx, ly := svgXY(w.Label)
		fmt.Fprintf(buf, `    <text x="%.3f" y="%.3f" font-size="0.6" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			lx, ly, w.Glyph)
	}
	buf.WriteString("  </g>\n")
}

func renderCusps(buf *bytes.Buffer, g chart.RenderGeometry) {
	buf.WriteString(`  <g class="cusps" stroke="#777" stroke-width="0.04">` + "\n")
	for _, c := range g.Cusps {
		x1, y1 := svgXY(chart.Point{Angle: c.Angle, Radius: c.Inner})
		x2, y2 := svgXY(chart.Point{Angle: c.Angle, Radius: c.Outer})
		dash := ""
		if c.Dashed {
			dash = ` stroke-dasharray="0.2 0.15"`
		}
		fmt.Fprintf(buf, `    <line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f"%s/>`+"\n", x1, y1, x2, y2, dash)
	}
	buf.WriteString("  </g>\n")
}

func renderHouseLabels(buf *bytes.Buffer, g chart.RenderGeometry) {
	buf.WriteString(`  <g class="houses" fill="#555" font-size="0.45" text-anchor="middle" dominant-baseline="central">` + "\n")
	for _, h := range g.HouseLabels {
		x, y := svgXY(h.At)
		fmt.Fprintf(buf, `    <text x="%.3f" y="%.3f">%s</text>`+"\n", x, y, h.Text)
	}
	buf.WriteString("  </g>\n")
}

func renderGlyphs(buf *bytes.Buffer, g chart.RenderGeometry) {
	for _, kind := range chart.LayerKinds {
		fmt.Fprintf(buf, `  <g class="layer %s" fill="%s" font-size="0.55" text-anchor="middle" dominant-baseline="central">`+"\n",
			kind, layerColors[kind])
		for _, p := range g.GlyphsFor(kind) {
			x, y := svgXY(p.At)
			fmt.Fprintf(buf, `    <text x="%.3f" y="%.3f"><title>%s</title>%s</text>`+"\n",
				x, y, html.EscapeString(p.Hover), p.Glyph)
		}
		buf.WriteString("  </g>\n")
	}
}

func renderAngles(buf *bytes.Buffer, g chart.RenderGeometry) {
	buf.WriteString(`  <g class="angles" fill="#000" font-size="0.4" font-weight="bold" text-anchor="middle" dominant-baseline="central">` + "\n")
	for _, a := range g.AngleLabels {
		x, y := svgXY(a.At)
		fmt.Fprintf(buf, `    <text x="%.3f" y="%.3f"><title>%s</title>%s</text>`+"\n",
			x, y, html.EscapeString(a.Hover), a.Text)
	}
	buf.WriteString("  </g>\n")
}
