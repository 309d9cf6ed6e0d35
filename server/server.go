// Package server provides the HTTP sync service for the timetrack ledger.
//
// The service exposes the persisted ledger file for pull/push by a
// remote peer. Synchronization is whole-file and last-write-wins; there
// is no merge logic by design.
//
// # Endpoints
//
//   - GET / - Raw ledger text (empty body when no ledger exists yet)
//   - POST /sync - Replace the entire ledger file (password-gated)
//   - POST /retrieve - Return the ledger text (password-gated variant)
//   - GET /health - Simple health check, returns "ok"
//   - GET /metrics - Prometheus metrics
//
// # Status signaling
//
// Success is 200. Authentication failure is 401, a malformed request
// body is 400, and unknown paths are 404 - distinct codes rather than
// one collapsed failure status. No single request failure ever stops
// the listener.
//
// The service reads and overwrites the same file a local tracker
// session saves to, with no cross-process coordination; the operator
// assumption is at most one writer active at a time.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nomis52/timetrack/ledger"
	"github.com/nomis52/timetrack/server/handlers"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// Server is the HTTP sync service.
type Server struct {
	addr       string
	logger     *slog.Logger
	store      *ledger.FileStore
	auth       *Auth
	registry   *prometheus.Registry
	metrics    *handlers.Metrics
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server) error

// WithListenAddr configures the address the server listens on, replacing
// the port-derived default.
func WithListenAddr(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// New creates a new Server bound to the given ledger store and secret.
func New(port int, store *ledger.FileStore, auth *Auth, logger *slog.Logger, opts ...Option) (*Server, error) {
	if port <= 0 {
		return nil, fmt.Errorf("server port is required")
	}

	registry := prometheus.NewRegistry()
	s := &Server{
		addr:     fmt.Sprintf(":%d", port),
		logger:   logger,
		store:    store,
		auth:     auth,
		registry: registry,
		metrics:  handlers.NewMetrics(registry),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It performs a graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      mux,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting sync service",
			"addr", s.addr,
			"ledger", s.store.Path(),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down sync service")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	ledgerHandler := handlers.NewLedgerHandler(s.logger, s.store)
	syncHandler := handlers.NewSyncHandler(s.logger, s.store, s.auth, s.metrics)
	retrieveHandler := handlers.NewRetrieveHandler(s.logger, s.store, s.auth, s.metrics)

	// "/{$}" keeps unknown paths on the mux's 404 instead of the
	// ledger subtree.
	mux.Handle("GET /{$}", ledgerHandler)
	mux.Handle("POST /sync", syncHandler)
	mux.Handle("POST /retrieve", retrieveHandler)
	mux.HandleFunc("GET /health", handlers.HandleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}
