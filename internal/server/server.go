// Package server exposes a data source over the distributions HTTP API. It
// backs the demo mode of the dashboard when no real backend is configured.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cdnctl/internal/api"
	"cdnctl/internal/datasource"
	"cdnctl/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	router  chi.Router
	source  datasource.DataSource[api.Distribution]
	metrics *metrics.Metrics
}

// New creates a server answering list requests from source.
func New(source datasource.DataSource[api.Distribution], m *metrics.Metrics) *Server {
	if m == nil {
		m = metrics.Default()
	}
	s := &Server{
		router:  chi.NewRouter(),
		source:  source,
		metrics: m,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(s.accessLogMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	r.Get(api.DistributionsPath, s.handleListDistributions)
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down the server.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
