// Package cli implements the ls-trichart command line.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/litescript/ls-trichart/internal/chart"
	"github.com/litescript/ls-trichart/internal/config"
	"github.com/litescript/ls-trichart/internal/ephem"
	"github.com/litescript/ls-trichart/internal/logging"
	"github.com/litescript/ls-trichart/internal/session"
	"github.com/litescript/ls-trichart/internal/version"
)

// CLI holds state shared by all commands.
type CLI struct {
	out    io.Writer
	errOut io.Writer
	log    *logging.Logger

	cfgFile string
	cfg     config.Config

	// isTerminal reports whether out is an interactive terminal.
	isTerminal func() bool
	now        func() time.Time
}

// New creates a CLI writing results to out and logs to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{
		out:        out,
		errOut:     errOut,
		log:        logging.NewWriter(errOut, logging.LevelInfo),
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
		now:        time.Now,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var form session.Form

	root := &cobra.Command{
		Use:   "ls-trichart",
		Short: "Natal, progressed and transit chart wheel",
		Long: `ls-trichart draws a three-ring astrological chart: the natal chart at
the birth moment, secondary progressions and the transits of a chosen moment,
all placed on the natal houses.

Without a subcommand it opens the interactive wheel when stdout is a
terminal and prints the tables otherwise.`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.loadConfig() },
		RunE: func(cmd *cobra.Command, args []string) error {
			if form.BirthDate == "" {
				return cmd.Help()
			}
			if c.isTerminal() {
				return c.runTUI(cmd.Context(), form)
			}
			return c.runChart(cmd.Context(), form, chartOptions{format: formatText})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default .ls-trichart.yaml)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("ephemeris", "", "ephemeris provider (builtin, horizons, auto)")
	pf.String("houses", "", "house system (placidus, porphyry, equal, whole_sign)")
	_ = viper.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("ephemeris.mode", pf.Lookup("ephemeris"))
	_ = viper.BindPFlag("ephemeris.house_system", pf.Lookup("houses"))

	addFormFlags(root, &form)

	root.AddCommand(c.chartCommand())
	root.AddCommand(c.serveCommand())
	return root
}

func addFormFlags(cmd *cobra.Command, f *session.Form) {
	fl := cmd.Flags()
	fl.StringVar(&f.BirthDate, "birth-date", "", "birth date, YYYY-MM-DD")
	fl.StringVar(&f.BirthTime, "birth-time", "", "birth time, HH:MM local")
	fl.StringVar(&f.Place, "place", "", "birth place (default from config)")
	fl.StringVar(&f.TransitDate, "transit-date", "", "transit date, YYYY-MM-DD (default today)")
	fl.StringVar(&f.TransitTime, "transit-time", "", "transit time, HH:MM (default now)")
	fl.StringVar(&f.TimeZone, "tz", "", "IANA time zone overriding the place's")
}

func (c *CLI) loadConfig() error {
	if err := config.Init(c.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log.SetLevel(cfg.Level())
	c.log.Debug("config: ephemeris %s, houses %s", cfg.Ephemeris.Mode, cfg.Ephemeris.HouseSystem)
	return nil
}

func (c *CLI) calculator() (*session.Calculator, error) {
	ecfg, err := c.cfg.EphemConfig()
	if err != nil {
		return nil, err
	}
	provider, err := ephem.New(ecfg, c.log)
	if err != nil {
		return nil, err
	}
	return session.NewCalculator(provider, c.log), nil
}

func (c *CLI) assembler() (*chart.Assembler, error) {
	return chart.NewAssembler(c.cfg.Layout())
}

// resolve turns flag input into a request, filling the configured
// default place.
func (c *CLI) resolve(f session.Form) (session.Request, error) {
	table, err := c.cfg.Places()
	if err != nil {
		return session.Request{}, err
	}
	if f.Place == "" {
		f.Place = c.cfg.Chart.DefaultPlace
	}
	return f.Resolve(table, c.now())
}

func (c *CLI) compute(ctx context.Context, f session.Form) (*session.Chart, error) {
	req, err := c.resolve(f)
	if err != nil {
		return nil, err
	}
	calc, err := c.calculator()
	if err != nil {
		return nil, err
	}
	return calc.Compute(ctx, req)
}
