// Package server serves exports over HTTP.
//
// GET /export materializes a query as a CSV or DSV download. GET /link
// returns the deferred form: a link that leads back to /export with the
// same dataset, query and export parameters.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/bisegni/qprint/pkg/config"
	"github.com/bisegni/qprint/pkg/database"
	"github.com/bisegni/qprint/pkg/engine"
	"github.com/bisegni/qprint/pkg/link"
	"github.com/bisegni/qprint/pkg/telemetry/metrics"
)

// Server holds the state shared by all requests. Handlers keep no per-request
// state on it, so it is safe for concurrent use.
type Server struct {
	cfg      config.ServerConfig
	export   config.ExportConfig
	catalog  *database.Catalog
	executor *engine.Executor
	links    *link.Builder
	metrics  *metrics.Collector
	// metricsPath is empty when metrics are not served
	metricsPath string
	logger      *slog.Logger
}

// New builds a server from cfg. collector may be nil to disable metrics.
func New(cfg *config.Config, catalog *database.Catalog, collector *metrics.Collector, logger *slog.Logger) (*Server, error) {
	base := strings.TrimSuffix(cfg.Server.LinkBase(), "/")
	links, err := link.NewBuilder(base + "/export")
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:      cfg.Server,
		export:   cfg.Export,
		catalog:  catalog,
		executor: engine.NewExecutor(catalog),
		links:    links,
		metrics:  collector,
		logger:   logger,
	}
	if collector != nil {
		s.metricsPath = cfg.Telemetry.Metrics.Path
	}
	return s, nil
}

// Handler returns the routed handler with request ID, logging and panic
// recovery applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("GET /link", s.handleLink)
	mux.HandleFunc("GET /datasets", s.handleDatasets)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.metricsPath != "" {
		mux.Handle("GET "+s.metricsPath, s.metrics.Handler())
	}
	return withRequestID(withLogging(s.logger, withRecovery(s.logger, mux)))
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()
	s.logger.Info("server started", "address", l.Addr().String(), "datasets", len(s.catalog.Names()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddress, err)
	}
	return s.Serve(ctx, l)
}
