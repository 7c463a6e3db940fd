package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-trichart/internal/chart"
	"github.com/litescript/ls-trichart/internal/render"
	"github.com/litescript/ls-trichart/internal/session"
)

// Styles for the body table
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	retroRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("209"))

	angleRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAngle)).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// TableViewModel shows the body table of one layer at a time.
type TableViewModel struct {
	width  int
	height int
	layer  int // index into chart.LayerKinds
	tables []chart.Table
}

// NewTableViewModel creates a table view showing the natal layer.
func NewTableViewModel() TableViewModel {
	return TableViewModel{}
}

// SetSize updates the viewport size.
func (m TableViewModel) SetSize(width, height int) TableViewModel {
	m.width = width
	m.height = height
	return m
}

// SetChart replaces the tables. The selected layer is kept.
func (m TableViewModel) SetChart(c *session.Chart) TableViewModel {
	if c == nil {
		m.tables = nil
		return m
	}
	m.tables = c.Tables()
	return m
}

// NextLayer selects the next layer, wrapping after the transit layer.
func (m TableViewModel) NextLayer() TableViewModel {
	m.layer = (m.layer + 1) % len(chart.LayerKinds)
	return m
}

// Layer returns the selected layer kind.
func (m TableViewModel) Layer() chart.LayerKind {
	return chart.LayerKinds[m.layer]
}

// View renders the tabs and the selected table.
func (m TableViewModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.layer >= len(m.tables) {
		b.WriteString(rowStyle.Render("No chart"))
		return b.String()
	}

	b.WriteString(headerStyle.Render(render.FormatHeader()))
	b.WriteString("\n")
	for i, r := range m.tables[m.layer].Rows {
		if m.height > 3 && i >= m.height-3 {
			break
		}
		style := rowStyle
		switch {
		case r.Body.IsAngle():
			style = angleRowStyle
		case r.Retrograde != "":
			style = retroRowStyle
		}
		b.WriteString(style.Render(render.FormatRow(r)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m TableViewModel) renderTabs() string {
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorFrame))

	var parts []string
	for i, kind := range chart.LayerKinds {
		if i == m.layer {
			parts = append(parts, activeStyle.Render("▶ "+kind.Title()))
		} else {
			parts = append(parts, dimStyle.Render("  "+kind.Title()))
		}
	}
	return strings.Join(parts, "  ")
}
