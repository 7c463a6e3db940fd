package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/litescript/ls-trichart/internal/chart"
	"github.com/litescript/ls-trichart/internal/session"
)

const (
	colBody   = 16
	colSign   = 14
	colDegree = 7
	colRetro  = 2
	colHouse  = 5

	ruleWidth = colBody + colSign + colDegree + colRetro + colHouse + 4
)

// FormatRow lays out one table row in fixed display-width columns.
func FormatRow(r chart.Row) string {
	return strings.Join([]string{
		cell(r.DisplayName, colBody),
		cell(r.Sign.Glyph()+" "+r.Sign.String(), colSign),
		cell(r.Degree, colDegree),
		cell(r.Retrograde, colRetro),
		cell(r.House, colHouse),
	}, " ")
}

// FormatHeader returns the column headings matching FormatRow.
func FormatHeader() string {
	return strings.Join([]string{
		cell("Body", colBody),
		cell("Sign", colSign),
		cell("Degree", colDegree),
		cell("R", colRetro),
		cell("House", colHouse),
	}, " ")
}

// cell pads or truncates s to exactly width terminal columns.
func cell(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// WriteTables writes one aligned text table per layer.
func WriteTables(w io.Writer, tables []chart.Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		fmt.Fprintln(w, t.Layer.Title())
		fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
		fmt.Fprintln(w, strings.TrimRight(FormatHeader(), " "))
		for _, r := range t.Rows {
			if _, err := fmt.Fprintln(w, strings.TrimRight(FormatRow(r), " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSummary writes a chart heading followed by its tables.
func WriteSummary(w io.Writer, c *session.Chart) error {
	req := c.Request
	fmt.Fprintf(w, "Chart @ %s (%s, %s)\n", req.Place.Name, c.HouseSystem, c.Provider)
	fmt.Fprintf(w, "  birth       %s\n", req.Birth.Format(time.RFC3339))
	fmt.Fprintf(w, "  progressed  %s\n", c.ProgressedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "  transit     %s\n", req.Transit.Format(time.RFC3339))
	asc := chart.Decompose(c.Angles.Ascendant)
	mc := chart.Decompose(c.Angles.Midheaven)
	fmt.Fprintf(w, "  ASC %s  MC %s\n\n", asc, mc)
	return WriteTables(w, c.Tables())
}
