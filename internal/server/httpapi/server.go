// Package httpapi exposes the user-registry operations over HTTP. Routing,
// status mapping, and middleware live here; all record semantics stay in
// the services layer.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cuidarmais/registry/internal/logging"
	"github.com/cuidarmais/registry/internal/server/services"
)

const shutdownTimeout = 15 * time.Second

type HTTPServer struct {
	address   string
	users     *services.UserService
	logger    logging.Logger
	startedAt time.Time
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		startedAt: time.Now(),
	}
}

// Handler builds the full middleware-wrapped route tree.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/users", s.handleList)
	mux.HandleFunc("POST /api/users", s.handleCreate)
	mux.HandleFunc("GET /api/users/{id}", s.handleGet)
	mux.HandleFunc("PUT /api/users/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /api/users/{id}", s.handleDelete)

	return s.requestLogger(cors(mux))
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "graceful shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
