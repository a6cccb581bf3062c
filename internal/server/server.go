// Package server exposes the pipeline over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hbmp/go-formbank/internal/store"
	"github.com/hbmp/go-formbank/pkg/form"
	"github.com/hbmp/go-formbank/pkg/orchestrator"
)

// Pipeline is the subset of the orchestrator the server drives.
type Pipeline interface {
	Validate(ctx context.Context, req orchestrator.Request) (form.ValidationStats, error)
	Generate(ctx context.Context, req orchestrator.Request) (*orchestrator.GenerateResult, error)
}

// ResultLister lists recorded build results. Implemented by internal/store.
type ResultLister interface {
	Recent(ctx context.Context, limit int) ([]store.Record, error)
}

// Option customises the server configuration.
type Option func(*Server)

// WithLogger installs the request logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithToken enables bearer-token authentication on the API routes. An empty
// token leaves the API open.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithBankPath sets the question bank used when a request body supplies none.
func WithBankPath(path string) Option {
	return func(s *Server) {
		s.bankPath = path
	}
}

// WithResults installs the store backing the results listing endpoint.
func WithResults(results ResultLister) Option {
	return func(s *Server) {
		s.results = results
	}
}

// Server serves the form pipeline API.
type Server struct {
	pipeline Pipeline
	results  ResultLister
	logger   *zap.Logger
	token    string
	bankPath string
}

// New constructs a Server around the given pipeline.
func New(pipeline Pipeline, options ...Option) *Server {
	s := &Server{
		pipeline: pipeline,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Handler builds the route table with logging, CORS, and auth middleware
// applied to the API routes. The health endpoint stays unauthenticated.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/v1/forms/validate", s.requireAuth(s.handleValidate))
	mux.HandleFunc("POST /api/v1/forms/generate", s.requireAuth(s.handleGenerate))
	mux.HandleFunc("GET /api/v1/forms/results", s.requireAuth(s.handleResults))
	mux.HandleFunc("OPTIONS /api/v1/", s.handlePreflight)
	return s.logRequests(s.cors(mux))
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
