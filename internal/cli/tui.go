package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-trichart/internal/session"
	"github.com/litescript/ls-trichart/internal/ui"
)

const tuiEvents = 20

func (c *CLI) runTUI(ctx context.Context, form session.Form) error {
	req, err := c.resolve(form)
	if err != nil {
		return err
	}
	calc, err := c.calculator()
	if err != nil {
		return err
	}
	a, err := c.assembler()
	if err != nil {
		return err
	}

	// Log lines would scribble over the alt screen.
	c.log.SetOutput(io.Discard)
	defer c.log.SetOutput(c.errOut)

	mgr := session.NewManager(calc, req, tuiEvents)
	p := tea.NewProgram(ui.New(ctx, mgr, a), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
