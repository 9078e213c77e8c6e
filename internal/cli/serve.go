package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/paragon/pkg/config"
	"github.com/matzehuels/paragon/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen   string
		maxLimit int
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve enumeration results over HTTP",
		Long: `Serve exposes the classes under the class directory as a JSON API:

  GET /healthz
  GET /classes
  GET /classes/{class}/boards
  GET /classes/{class}/layouts?limit=N

Results are cached with the configured cache backend. Runs are not stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Server.Listen = listen
			}
			if !cmd.Flags().Changed("max-limit") {
				maxLimit = cfg.Search.Limit
			}

			// Requests never persist runs.
			cfg.Store.Backend = config.BackendNone

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:       cfg.Server.Listen,
				ClassDir:   cfg.ClassDir,
				EdgeLength: cfg.Edge,
				Workers:    cfg.Search.Workers,
				MaxLimit:   maxLimit,
				Timeout:    cfg.Search.Timeout(),
			}, runner, loggerFromContext(ctx))

			printInfo("Serving %s on %s", cfg.ClassDir, StyleHighlight.Render(cfg.Server.Listen))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, :8080)")
	cmd.Flags().IntVar(&maxLimit, "max-limit", 0, "cap on the limit query parameter (default search.limit)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")

	return cmd
}
