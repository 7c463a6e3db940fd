package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-trichart/internal/errors"
	"github.com/litescript/ls-trichart/internal/render"
	"github.com/litescript/ls-trichart/internal/session"
)

const (
	formatText  = "text"
	formatJSON  = "json"
	formatSVG   = "svg"
	formatWheel = "wheel"
)

type chartOptions struct {
	format string
	size   int // svg pixels
	width  int // wheel columns
	height int // wheel rows
}

func (c *CLI) chartCommand() *cobra.Command {
	var (
		form session.Form
		opts chartOptions
	)
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute a chart and print it",
		Example: `  ls-trichart chart --birth-date 1990-01-01 --birth-time 12:00 --place Tokyo
  ls-trichart chart --birth-date 1990-01-01 --birth-time 12:00 --format svg > chart.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runChart(cmd.Context(), form, opts)
		},
	}
	addFormFlags(cmd, &form)
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format (text, json, svg, wheel)")
	cmd.Flags().IntVar(&opts.size, "size", 0, "svg size in pixels")
	cmd.Flags().IntVar(&opts.width, "width", 61, "wheel width in columns")
	cmd.Flags().IntVar(&opts.height, "height", 31, "wheel height in rows")
	return cmd
}

func (c *CLI) runChart(ctx context.Context, form session.Form, opts chartOptions) error {
	switch opts.format {
	case formatText, formatJSON, formatSVG, formatWheel:
	default:
		return errors.New(errors.CodeInputFormat, "unknown format %q (want text, json, svg or wheel)", opts.format)
	}

	ch, err := c.compute(ctx, form)
	if err != nil {
		return err
	}
	if opts.format == formatText {
		return render.WriteSummary(c.out, ch)
	}

	a, err := c.assembler()
	if err != nil {
		return err
	}
	g := ch.Geometry(a)

	switch opts.format {
	case formatJSON:
		return render.ExportChart(ch, g, ch.Tables()).WriteJSON(c.out)
	case formatSVG:
		svg := render.SVG(g,
			render.WithSize(opts.size),
			render.WithTitle(fmt.Sprintf("%s %s", ch.Request.Place.Name, ch.Request.Birth.Format("2006-01-02 15:04"))),
		)
		_, err = c.out.Write(svg)
		return err
	default:
		_, err = fmt.Fprintln(c.out, render.Rasterize(g, opts.width, opts.height).String())
		return err
	}
}
