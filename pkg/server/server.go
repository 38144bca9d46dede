package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/feather/internal/errors"
	"github.com/vango-dev/feather/pkg/middleware"
	"github.com/vango-dev/feather/pkg/render"
)

// PageFunc produces the render for a request. A nil render with a nil
// error is answered with 404.
type PageFunc func(r *http.Request) (*render.Render, error)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records request metrics into m and exposes gatherer at
// Config.MetricsPath.
func WithMetrics(m *middleware.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

// WithTracing starts an OpenTelemetry span for every request.
func WithTracing(opts ...middleware.OTelOption) Option {
	return func(s *Server) {
		s.tracing = append([]middleware.OTelOption{}, opts...)
		s.traced = true
	}
}

// Server is the HTTP front of a feather application.
type Server struct {
	config   *Config
	router   *chi.Mux
	static   *staticFiles
	logger   *slog.Logger
	metrics  *middleware.Metrics
	gatherer prometheus.Gatherer
	tracing  []middleware.OTelOption
	traced   bool

	mu         sync.Mutex
	httpServer *http.Server
}

// New creates a Server. A nil config means DefaultConfig().
func New(config *Config, opts ...Option) *Server {
	s := &Server{
		config: config.withDefaults(),
		router: chi.NewRouter(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")

	s.router.Use(chimw.RequestID, chimw.RealIP, s.logRequests, chimw.Recoverer)
	if s.traced {
		s.router.Use(middleware.OpenTelemetry(s.tracing...))
	}
	if s.metrics != nil {
		s.router.Use(s.metrics.Handler)
		if s.gatherer != nil {
			s.router.Method(http.MethodGet, s.config.MetricsPath,
				promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
		}
	}

	if s.config.StaticDir != "" {
		s.static = newStaticFiles(s.config)
	}
	s.router.NotFound(s.notFound)
	return s
}

// Page registers fn for GET and HEAD requests matching pattern.
func (s *Server) Page(pattern string, fn PageFunc) {
	h := s.pageHandler(pattern, fn)
	s.router.Get(pattern, h)
	s.router.Head(pattern, h)
}

// Handle registers an arbitrary handler.
func (s *Server) Handle(pattern string, h http.Handler) {
	s.router.Handle(pattern, h)
}

// Router returns the underlying chi router.
func (s *Server) Router() chi.Router {
	return s.router
}

// Config returns the effective configuration.
func (s *Server) Config() *Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) pageHandler(pattern string, fn PageFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := fn(r)
		if err != nil {
			ferr := errors.New("E080").WithDetailf("route %s", pattern).Wrap(err)
			s.logger.Error("page render failed", "route", pattern, "code", ferr.Code, "error", err)
			if s.metrics != nil {
				s.metrics.RenderFailed(pattern)
			}
			middleware.RecordError(r, ferr)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if page == nil {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if r.Method == http.MethodHead {
			return
		}
		if _, err := page.WriteTo(w); err != nil {
			s.logger.Warn("response write failed", "route", pattern, "error", err)
		}
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	if s.static != nil && s.static.serve(w, r) {
		return
	}
	http.NotFound(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully within Config.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return errors.New("E081").WithDetailf("listen on %s", s.config.Address).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.New("E081").Wrap(err)
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return errors.New("E081").WithDetail("graceful shutdown").Wrap(err)
	}
	s.logger.Info("server shutdown complete")
	return nil
}
