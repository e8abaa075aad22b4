package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/warpglobe/metrics"
)

// metricsServer exposes /healthz and /metrics while the presenter runs
type metricsServer struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// newMetricsServer creates the HTTP server for addr
func newMetricsServer(addr string, logger *zap.Logger) *metricsServer {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})
	mux.Handle("GET /metrics", metrics.Handler())

	return &metricsServer{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start listens until Shutdown; a closed server is not an error
func (s *metricsServer) Start() error {
	s.logger.Info("metrics server starting", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains connections within the context deadline
func (s *metricsServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the handler, used by tests
func (s *metricsServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
