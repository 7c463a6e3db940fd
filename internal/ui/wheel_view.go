package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-trichart/internal/chart"
	"github.com/litescript/ls-trichart/internal/render"
	"github.com/litescript/ls-trichart/internal/session"
)

const (
	// Glyph animation after a transit shift
	animDuration  = 400 * time.Millisecond
	animFrameRate = 30 * time.Millisecond

	colorBackground = "236"
	colorFrame      = "60"  // muted purple
	colorSign       = "183" // lavender
	colorCusp       = "240"
	colorHouse      = "244"
	colorNatal      = "#d0c8ff"
	colorProgressed = "#7fd1b9"
	colorTransit    = "229" // bright gold
	colorAngle      = "255"
)

var cellColors = map[render.CellKind]lipgloss.Color{
	render.CellEmpty:      colorBackground,
	render.CellFrame:      colorFrame,
	render.CellSign:       colorSign,
	render.CellCusp:       colorCusp,
	render.CellHouse:      colorHouse,
	render.CellNatal:      colorNatal,
	render.CellProgressed: colorProgressed,
	render.CellTransit:    colorTransit,
	render.CellAngle:      colorAngle,
}

// glyphKey identifies one placement across recomputations.
type glyphKey struct {
	layer chart.LayerKind
	body  string
}

// WheelViewModel renders the three-ring chart wheel.
type WheelViewModel struct {
	width  int
	height int

	assembler *chart.Assembler
	chart     *session.Chart
	geometry  chart.RenderGeometry

	// Animation state: glyphs slide from their previous plot angle.
	animating bool
	animStart time.Time
	animFrom  map[glyphKey]float64
}

// NewWheelViewModel creates a wheel view. A nil assembler uses the
// default layout.
func NewWheelViewModel(a *chart.Assembler) WheelViewModel {
	return WheelViewModel{assembler: a}
}

// SetSize updates the viewport size.
func (m WheelViewModel) SetSize(width, height int) WheelViewModel {
	m.width = width
	m.height = height
	return m
}

// SetChart shows a new chart. When a chart was already shown, glyphs
// animate from their old positions.
func (m WheelViewModel) SetChart(c *session.Chart) (WheelViewModel, tea.Cmd) {
	if c == nil {
		m.chart = nil
		m.animating = false
		return m, nil
	}

	var from map[glyphKey]float64
	if m.chart != nil {
		from = make(map[glyphKey]float64, len(m.geometry.Glyphs))
		for _, g := range m.geometry.Glyphs {
			from[glyphKey{g.Layer, string(g.Body)}] = g.At.Angle
		}
	}

	m.chart = c
	m.geometry = c.Geometry(m.assembler)
	if from == nil {
		return m, nil
	}
	m.animFrom = from
	m.animStart = time.Now()
	m.animating = true
	return m, animTick()
}

// animTickMsg is sent during animation
type animTickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(animFrameRate, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Update handles messages.
func (m WheelViewModel) Update(msg tea.Msg) (WheelViewModel, tea.Cmd) {
	if _, ok := msg.(animTickMsg); ok && m.animating {
		if time.Since(m.animStart) >= animDuration {
			m.animating = false
			return m, nil
		}
		return m, animTick()
	}
	return m, nil
}

// frame returns the geometry to draw, interpolated while animating.
func (m WheelViewModel) frame() chart.RenderGeometry {
	if !m.animating {
		return m.geometry
	}
	t := float64(time.Since(m.animStart)) / float64(animDuration)
	if t >= 1 {
		return m.geometry
	}
	t = easeOut(t)

	g := m.geometry
	g.Glyphs = make([]chart.GlyphPlacement, len(m.geometry.Glyphs))
	for i, p := range m.geometry.Glyphs {
		if from, ok := m.animFrom[glyphKey{p.Layer, string(p.Body)}]; ok {
			p.At.Angle = lerpAngle(from, p.At.Angle, t)
		}
		g.Glyphs[i] = p
	}
	return g
}

// View renders the wheel view.
func (m WheelViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Wheel view requires larger terminal"
	}
	if m.chart == nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorFrame)).Render("No chart")
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(renderCanvas(render.Rasterize(m.frame(), m.width, m.height-2)))
	b.WriteString("\n")
	b.WriteString(m.renderLegend())
	return b.String()
}

func (m WheelViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")) // violet
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorFrame))

	req := m.chart.Request
	return fmt.Sprintf("%s | %s | %s",
		titleStyle.Render(req.Place.Name),
		dimStyle.Render("birth "+req.Birth.Format("2006-01-02 15:04")),
		lipgloss.NewStyle().Foreground(lipgloss.Color(colorTransit)).Render("transit "+req.Transit.Format("2006-01-02 15:04")),
	)
}

func (m WheelViewModel) renderLegend() string {
	var parts []string
	for _, kind := range chart.LayerKinds {
		style := lipgloss.NewStyle().Foreground(cellColors[render.KindFor(kind)])
		parts = append(parts, style.Render("● "+kind.Title()))
	}
	return strings.Join(parts, "  ")
}

// renderCanvas colors each cell by kind.
func renderCanvas(c render.Canvas) string {
	var b strings.Builder
	for y, row := range c.Cells {
		for _, cell := range row {
			if cell.Rune == 0 {
				continue
			}
			style := lipgloss.NewStyle().Foreground(cellColors[cell.Kind])
			b.WriteString(style.Render(string(cell.Rune)))
		}
		if y < c.Height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a < -180 {
		a += 360
	}
	return a
}

// lerpAngle interpolates between angles, taking shortest path
func lerpAngle(a, b, t float64) float64 {
	diff := normalizeAngle(b - a)
	return a + diff*t
}

func easeOut(t float64) float64 {
	return 1 - (1-t)*(1-t)
}
