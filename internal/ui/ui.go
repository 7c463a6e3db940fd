// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-trichart/internal/chart"
	"github.com/litescript/ls-trichart/internal/errors"
	"github.com/litescript/ls-trichart/internal/session"
	"github.com/litescript/ls-trichart/internal/version"
)

// minimum width for showing the wheel and table side by side
const sideBySideWidth = 100

// Msg types for Bubble Tea
type (
	// AnimTickMsg triggers spinner updates.
	AnimTickMsg time.Time

	// ChartMsg carries the result of a recomputation. The model shows the
	// session snapshot rather than the message, so stale results are ignored.
	ChartMsg struct {
		Chart *session.Chart
		Err   error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	ctx     context.Context
	session *session.Manager

	// UI state
	width     int
	height    int
	ready    bool
	pending  int // recomputations in flight
	animTick int // Animation tick for the spinner

	// Sub-models
	wheel WheelViewModel
	table TableViewModel

	snapshot session.Snapshot
}

// New creates a new root UI model. A nil assembler uses the default layout.
// Init starts the first computation.
func New(ctx context.Context, mgr *session.Manager, a *chart.Assembler) Model {
	return Model{
		ctx:     ctx,
		session: mgr,
		pending: 1,
		wheel:   NewWheelViewModel(a),
		table:   NewTableViewModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(animTickCmd(), m.recompute())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "left", "h":
			m.session.ShiftTransit(-1)
			m.pending++
			cmds = append(cmds, m.recompute())
		case "right", "l":
			m.session.ShiftTransit(1)
			m.pending++
			cmds = append(cmds, m.recompute())
		case "r":
			m.pending++
			cmds = append(cmds, m.recompute())

		case "tab":
			m.table = m.table.NextLayer()
		}
		m.snapshot = m.session.Snapshot()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case ChartMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.snapshot = m.session.Snapshot()
		// A stale result is dropped by the session; show what it holds.
		var cmd tea.Cmd
		m.wheel, cmd = m.wheel.SetChart(m.snapshot.Chart)
		m.table = m.table.SetChart(m.snapshot.Chart)
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		m.wheel, cmd = m.wheel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) resize() {
	contentHeight := m.height - 4 // header 2, footer 2
	if m.width >= sideBySideWidth {
		m.wheel = m.wheel.SetSize(m.width-52, contentHeight)
		m.table = m.table.SetSize(50, contentHeight)
		return
	}
	m.wheel = m.wheel.SetSize(m.width, contentHeight-17)
	m.table = m.table.SetSize(m.width, 17)
}

// recompute runs the calculation off the UI goroutine.
func (m Model) recompute() tea.Cmd {
	mgr, ctx := m.session, m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		c, err := mgr.Recompute(ctx)
		return ChartMsg{Chart: c, Err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	if m.width >= sideBySideWidth {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.wheel.View(), "  ", m.table.View())
	} else {
		content = m.wheel.View() + "\n\n" + m.table.View()
	}
	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	title := "ls-trichart"
	for col, r := range title {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(col, 0, len(title), 1)))
		b.WriteString(style.Render(string(r)))
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(colorFrame))
	b.WriteString(muted.Render(fmt.Sprintf("  natal · progressed · transit | v%s", version.Version)))
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color for a position in the title gradient:
// blue -> purple -> magenta -> pink.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.33 {
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	// Vertical fade: brighter at top, darker toward bottom
	f := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X", clamp8(r*f), clamp8(g*f), clamp8(b*f))
}

func clamp8(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return int(v)
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorFrame))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.pending > 0:
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Computing...")
	case m.snapshot.LastErr != nil:
		status = errorStyle.Render("ERROR: " + errors.UserMessage(m.snapshot.LastErr))
	case !m.snapshot.LastRun.IsZero():
		status = dimStyle.Render(fmt.Sprintf("computed in %s", m.snapshot.Duration.Round(time.Millisecond)))
		if m.snapshot.Chart != nil {
			status += dimStyle.Render(" via " + m.snapshot.Chart.Provider)
		}
	}

	help := dimStyle.Render("←/h: transit -1 day | →/l: +1 day | tab: layer | r: recompute | q: quit")
	return "\n" + status + "  " + dimStyle.Render("|") + "  " + help
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	pos := m.animTick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}
