// Package render draws an assembled chart: a character canvas for the
// terminal, SVG for browsers, JSON for tools and plain-text tables.
package render

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/litescript/ls-trichart/internal/chart"
)

// Terminal cells are about twice as tall as they are wide.
const cellAspect = 2.0

// CellKind says what a canvas cell belongs to; terminal front ends color
// cells by kind.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellFrame
	CellSign
	CellCusp
	CellHouse
	CellNatal
	CellProgressed
	CellTransit
	CellAngle
)

// KindFor returns the cell kind used for a layer's glyphs.
func KindFor(kind chart.LayerKind) CellKind {
	switch kind {
	case chart.Progressed:
		return CellProgressed
	case chart.Transit:
		return CellTransit
	default:
		return CellNatal
	}
}

// Cell is one character position. Wide runes occupy two cells; the second
// has Rune 0 and is skipped when printing.
type Cell struct {
	Rune rune
	Kind CellKind
}

// Canvas is a rasterized chart wheel.
type Canvas struct {
	Width  int
	Height int
	Cells  [][]Cell
}

func newCanvas(width, height int) Canvas {
	c := Canvas{Width: width, Height: height, Cells: make([][]Cell, height)}
	for y := range c.Cells {
		c.Cells[y] = make([]Cell, width)
		for x := range c.Cells[y] {
			c.Cells[y][x] = Cell{Rune: ' '}
		}
	}
	return c
}

// At returns the cell at x, y; out-of-range positions are empty.
func (c Canvas) At(x, y int) Cell {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return Cell{Rune: ' '}
	}
	return c.Cells[y][x]
}

// Lines returns the canvas as plain text rows.
func (c Canvas) Lines() []string {
	lines := make([]string, c.Height)
	for y, row := range c.Cells {
		var b strings.Builder
		for _, cell := range row {
			if cell.Rune != 0 {
				b.WriteRune(cell.Rune)
			}
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

// String renders the canvas as plain text.
func (c Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// Count returns how many cells have the given kind.
func (c Canvas) Count(kind CellKind) int {
	n := 0
	for _, row := range c.Cells {
		for _, cell := range row {
			if cell.Kind == kind && cell.Rune != 0 {
				n++
			}
		}
	}
	return n
}

// projection maps chart units onto cells.
type projection struct {
	cx, cy float64
	scale  float64 // cells per unit, vertically
}

func newProjection(width, height int, radius float64) projection {
	sy := (float64(height) - 1) / 2 / radius
	sx := (float64(width) - 1) / 2 / (radius * cellAspect)
	return projection{
		cx:    float64(width-1) / 2,
		cy:    float64(height-1) / 2,
		scale: math.Min(sx, sy),
	}
}

func (p projection) cell(pt chart.Point) (int, int) {
	x, y := pt.XY()
	return int(math.Round(p.cx + x*p.scale*cellAspect)), int(math.Round(p.cy - y*p.scale))
}

// Rasterize draws the geometry onto a width×height character canvas.
// Later layers overwrite earlier ones: frame, sign band, cusps, house
// numbers, body glyphs from the inner ring out, then angle labels.
func Rasterize(g chart.RenderGeometry, width, height int) Canvas {
	c := newCanvas(width, height)
	if width < 3 || height < 3 || g.Layout.FrameRadius <= 0 {
		return c
	}
	p := newProjection(width, height, g.Layout.FrameRadius)

	c.circle(p, g.Layout.FrameRadius, '·', CellFrame)
	c.circle(p, g.Layout.SignInner, '·', CellFrame)

	for _, w := range g.Signs {
		x, y := p.cell(w.Label)
		c.put(x, y, w.Glyph, CellSign)
	}

	for _, cl := range g.Cusps {
		c.cusp(p, cl)
	}

	for _, hl := range g.HouseLabels {
		x, y := p.cell(hl.At)
		c.put(x, y, hl.Text, CellHouse)
	}

	for _, kind := range chart.LayerKinds {
		for _, gp := range g.GlyphsFor(kind) {
			x, y := p.cell(gp.At)
			c.place(x, y, gp.Glyph, KindFor(kind))
		}
	}

	for _, al := range g.AngleLabels {
		x, y := p.cell(al.At)
		c.put(x-runewidth.StringWidth(al.Text)/2, y, al.Text, CellAngle)
	}
	return c
}

func (c Canvas) circle(p projection, r float64, ch rune, kind CellKind) {
	steps := int(2 * math.Pi * r * p.scale * cellAspect * 2)
	if steps < 36 {
		steps = 36
	}
	for i := 0; i < steps; i++ {
		x, y := p.cell(chart.Point{Angle: 360 * float64(i) / float64(steps), Radius: r})
		if c.At(x, y).Kind == CellEmpty {
			c.set(x, y, ch, kind)
		}
	}
}

// cusp draws a dashed radial line, skipping every other sample.
func (c Canvas) cusp(p projection, cl chart.CuspLine) {
	length := (cl.Outer - cl.Inner) * p.scale * cellAspect
	steps := int(length)
	if steps < 2 {
		steps = 2
	}
	ch := cuspRune(cl.Angle)
	for i := 1; i <= steps; i++ {
		if cl.Dashed && i%2 == 1 {
			continue
		}
		r := cl.Inner + (cl.Outer-cl.Inner)*float64(i)/float64(steps)
		x, y := p.cell(chart.Point{Angle: cl.Angle, Radius: r})
		c.set(x, y, ch, CellCusp)
	}
}

// cuspRune picks a line character close to the line's slope on screen.
func cuspRune(angle float64) rune {
	a := math.Mod(math.Mod(angle, 180)+180, 180)
	switch {
	case a < 22.5 || a >= 157.5:
		return '-'
	case a < 67.5:
		return '/'
	case a < 112.5:
		return '|'
	default:
		return '\\'
	}
}

// place writes a body glyph, moving sideways when another body already
// holds the cell.
func (c Canvas) place(x, y int, s string, kind CellKind) {
	for _, dx := range []int{0, 1, -1, 2, -2} {
		if !isBody(c.At(x+dx, y).Kind) && !isBody(c.At(x+dx+runewidth.StringWidth(s)-1, y).Kind) {
			c.put(x+dx, y, s, kind)
			return
		}
	}
	c.put(x, y, s, kind)
}

func isBody(k CellKind) bool {
	return k == CellNatal || k == CellProgressed || k == CellTransit
}

// put writes s starting at x, y, honoring rune widths.
func (c Canvas) put(x, y int, s string, kind CellKind) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 || (w == 2 && x+1 >= c.Width) {
			continue
		}
		c.set(x, y, r, kind)
		if w == 2 {
			c.set(x+1, y, 0, kind)
		}
		x += w
	}
}

func (c Canvas) set(x, y int, r rune, kind CellKind) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	row := c.Cells[y]
	// Never leave half of a wide rune behind.
	if r != 0 && row[x].Rune == 0 && x > 0 {
		row[x-1] = Cell{Rune: ' '}
	}
	if x+1 < c.Width && row[x+1].Rune == 0 {
		row[x+1] = Cell{Rune: ' '}
	}
	row[x] = Cell{Rune: r, Kind: kind}
}
