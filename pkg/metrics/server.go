package metrics

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the Prometheus scrape handler for the default gatherer.
// Mount it on an existing mux when the host application already serves HTTP.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Server exposes the /metrics endpoint on its own listener with graceful
// shutdown, for deployments that keep diagnostics off the main surface.
type Server struct {
	addr   string
	server *http.Server
}

// NewServer creates a metrics HTTP server for the given address
// (e.g. ":9100"). The server exposes GET /metrics and GET /health.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Printf("metrics: health handler write error: %v", err)
		}
	})

	return &Server{
		addr: addr,
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start begins serving HTTP requests on the configured address. It blocks
// until the server is shut down or fails; http.ErrServerClosed is treated
// as a clean shutdown.
func (s *Server) Start() error {
	log.Printf("metrics: serving on %s", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully, waiting for in-flight scrapes.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
