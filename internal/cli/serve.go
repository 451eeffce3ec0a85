package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilestack/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the tilestack HTTP API.

Routes:
  GET /themes                   list theme ids
  GET /theme/{id}               show a theme
  GET /theme/{id}/generate      generate a board (?rowSize=5&columnSize=6&seed=N)
  GET /healthz                  health check

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}

			cfg := c.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}
			srv := server.New(runner, logger, server.Options{
				Addr:            cfg.Addr,
				AllowedOrigins:  cfg.AllowedOrigins,
				ReadTimeout:     cfg.ReadTimeout,
				WriteTimeout:    cfg.WriteTimeout,
				ShutdownTimeout: cfg.ShutdownTimeout,
			})

			logger.Info("starting server",
				"addr", cfg.Addr,
				"themes", c.Config.Themes.Backend,
				"cache", c.Config.Cache.Backend)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
