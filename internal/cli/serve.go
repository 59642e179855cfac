package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/railing/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz
  GET  /v1/offsets?length=200&post_width=5&target_gap=18
  POST /v1/offsets   {"length": 200}

Omitted dimensions use the values from the config file. The server stops
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			ttl, err := cfg.Cache.TTLDuration()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, cfg.Placement, ttl, c.Logger)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
