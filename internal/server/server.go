// Package server exposes the drawing pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz       liveness probe
//	GET  /v1/version    build information
//	GET  /v1/options    default drawing options
//	POST /v1/render     draw a document (JSON or BSON body)
//	POST /v1/graph      node-link export of one molecule
//
// A render request with a JSON body carries the document and the options:
//
//	{"document": {"molecules": [...]}, "options": {"mode": "grid", "formats": ["png"]}}
//
// A BSON body (Content-Type: application/bson) is the document alone, and
// the options come from the query string. The response is the artifact
// itself when one format is requested, otherwise a JSON envelope with every
// artifact.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/FabioUrbina/rdkit/pkg/pipeline"
)

// Options tunes request handling.
type Options struct {
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	MaxConcurrent  int
}

// Server serves drawings rendered by a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
	// slots bounds concurrent renders.
	slots chan struct{}
}

// New creates a server. Zero options get defaults.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 8
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		logger: logger,
		opts:   opts,
		slots:  make(chan struct{}, opts.MaxConcurrent),
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/options", s.handleOptions)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(s.opts.RequestTimeout))
			r.Use(middleware.AllowContentType("application/json", "application/bson"))
			r.Post("/render", s.handleRender)
			r.Post("/graph", s.handleGraph)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.opts.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// acquire takes a render slot, waiting until one frees up or ctx ends.
func (s *Server) acquire(ctx context.Context) (release func(), err error) {
	select {
	case s.slots <- struct{}{}:
		return func() { <-s.slots }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
