package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bisegni/qprint/pkg/config"
	"github.com/bisegni/qprint/pkg/server"
	"github.com/bisegni/qprint/pkg/telemetry/metrics"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	listenAddress string
	baseURL       string
	dataDir       string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve exports and export links over HTTP",
	Long: `Start an HTTP server that exports query results on demand.

  GET /export   run a query and download the result
  GET /link     return a link to /export for the same query
  GET /datasets list the configured datasets

Examples:
  qprint serve --config qprint.yaml
  qprint serve --listen 0.0.0.0:8080 --data-dir ./data`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.baseURL, "base-url", "", "override the public URL used in links")
	serveCmd.Flags().StringVar(&serveFlags.dataDir, "data-dir", "", "override the data directory")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.baseURL != "" {
		cfg.Server.BaseURL = serveFlags.baseURL
	}
	if serveFlags.dataDir != "" {
		cfg.Server.DataDir = serveFlags.dataDir
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	catalog, err := newCatalog(cfg)
	if err != nil {
		return err
	}

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Telemetry.Metrics.Namespace, nil)
	}

	srv, err := server.New(cfg, catalog, collector, slog.Default())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
