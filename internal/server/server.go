// Package server exposes pagination, preflight, export and share links
// over HTTP, and renders the read-only share view.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/alnah/go-draftkit"
	"github.com/alnah/go-draftkit/internal/assets"
	"github.com/alnah/go-draftkit/internal/preview"
)

// Defaults applied by New when Options leaves a field zero.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 4 << 20

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Exporter is the part of draftkit.Exporter the server needs.
type Exporter interface {
	Export(ctx context.Context, input draftkit.ExportInput) (*draftkit.ExportResult, error)
}

// ExporterPool hands out exporters for the duration of one request.
// Acquire returns nil when no exporter can be provided.
type ExporterPool interface {
	Acquire() Exporter
	Release(Exporter)
}

// Options configures a Server.
type Options struct {
	Addr         string
	MaxBodyBytes int64
	// ShareBaseURL is the base of generated share links. Empty derives
	// it from the request host.
	ShareBaseURL string
	Logger       zerolog.Logger
	// Assets overrides the embedded share view assets.
	Assets *assets.AssetResolver
	Now    func() time.Time
}

// Server serves the HTTP API.
type Server struct {
	opts    Options
	pool    ExporterPool
	preview *preview.Renderer
	router  chi.Router
}

// New builds a Server around pool.
func New(pool ExporterPool, opts Options) (*Server, error) {
	if pool == nil {
		return nil, errors.New("server: nil exporter pool")
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	renderer, err := preview.NewRenderer(opts.Assets)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{opts: opts, pool: pool, preview: renderer}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	r.Get("/healthz", s.handleHealth)
	r.Get("/share", s.handleShareView)

	r.Route("/api", func(r chi.Router) {
		r.Use(limitBody(s.opts.MaxBodyBytes))
		r.Post("/paginate", s.handlePaginate)
		r.Post("/preflight", s.handlePreflight)
		r.Post("/export", s.handleExport)
		r.Post("/share", s.handleShare)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info().Str("addr", ln.Addr().String()).Msg("server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	s.opts.Logger.Info().Msg("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	// Serve returns ErrServerClosed once Shutdown has closed the listener.
	<-errCh
	return nil
}

// FromPool adapts a draftkit.ExporterPool.
func FromPool(p *draftkit.ExporterPool) ExporterPool {
	return poolAdapter{p: p}
}

type poolAdapter struct {
	p *draftkit.ExporterPool
}

func (a poolAdapter) Acquire() Exporter {
	exp := a.p.Acquire()
	if exp == nil {
		return nil
	}
	return exp
}

func (a poolAdapter) Release(exp Exporter) {
	if e, ok := exp.(*draftkit.Exporter); ok {
		a.p.Release(e)
	}
}
