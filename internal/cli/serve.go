package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/ls-trichart/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve charts over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := c.newServer()
			if err != nil {
				return err
			}
			sc := c.cfg.Server
			return srv.ListenAndServe(cmd.Context(), sc.Addr, sc.ReadTimeout, sc.ShutdownTimeout)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func (c *CLI) newServer() (*server.Server, error) {
	calc, err := c.calculator()
	if err != nil {
		return nil, err
	}
	table, err := c.cfg.Places()
	if err != nil {
		return nil, err
	}
	a, err := c.assembler()
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return server.New(server.Deps{
		Calculator:   calc,
		Places:       table,
		Assembler:    a,
		DefaultPlace: c.cfg.Chart.DefaultPlace,
		Log:          c.log.With("component", "server"),
		Registry:     reg,
	}), nil
}
