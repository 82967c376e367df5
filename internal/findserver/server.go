// Package findserver serves find queries against a loaded genome over HTTP.
package findserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/buildkite/orffinder/logger"
	"github.com/buildkite/orffinder/metrics"
	"github.com/buildkite/orffinder/orf"
)

const (
	DefaultCacheSize     = 1024
	DefaultCacheMatches  = 1 << 20
	defaultShutdownGrace = 10 * time.Second
)

// ServerOpts provides a way to configure a Server
type ServerOpts func(*Server)

// WithLogger sets the logger for the server
func WithLogger(l logger.Logger) ServerOpts {
	return func(s *Server) {
		s.logger = l
	}
}

// WithCacheSize bounds the number of cached query results. Zero disables the
// cache.
func WithCacheSize(n int) ServerOpts {
	return func(s *Server) {
		s.cacheSize = n
	}
}

// WithCacheMatches bounds the total number of matches held across all cached
// results. A result that would take the cache over the bound isn't cached.
func WithCacheMatches(n int) ServerOpts {
	return func(s *Server) {
		s.cacheMatches = n
	}
}

// WithMetricsScope sends query metrics to a dogstatsd scope as well as
// Prometheus.
func WithMetricsScope(scope *metrics.Scope) ServerOpts {
	return func(s *Server) {
		s.scope = scope
	}
}

// WithShutdownGrace sets how long Run waits for in-flight requests when its
// context is cancelled.
func WithShutdownGrace(d time.Duration) ServerOpts {
	return func(s *Server) {
		s.shutdownGrace = d
	}
}

// Server answers find queries for a single Finder.
type Server struct {
	finder        *orf.Finder
	logger        logger.Logger
	scope         *metrics.Scope
	cache         *resultCache
	cacheSize     int
	cacheMatches  int
	shutdownGrace time.Duration
	started       time.Time
}

// NewServer creates a server for finder.
func NewServer(finder *orf.Finder, opts ...ServerOpts) (*Server, error) {
	if finder == nil {
		return nil, errors.New("finder is required")
	}

	s := &Server{
		finder:        finder,
		logger:        logger.Discard,
		cacheSize:     DefaultCacheSize,
		cacheMatches:  DefaultCacheMatches,
		shutdownGrace: defaultShutdownGrace,
		started:       time.Now(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.cacheSize < 0 {
		return nil, fmt.Errorf("cache size must not be negative, got %d", s.cacheSize)
	}
	if s.cacheMatches < 0 {
		return nil, fmt.Errorf("cache match limit must not be negative, got %d", s.cacheMatches)
	}
	s.cache = newResultCache(s.cacheSize, s.cacheMatches)

	return s, nil
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.router()
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully,
// waiting up to the shutdown grace period for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	svr := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- svr.Serve(ln)
	}()

	s.logger.Notice("Find server listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownGrace)
	defer cancel()

	if err := svr.Shutdown(shutdownCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("Find server shutdown timed out, server shutdown forced")
		}
		return fmt.Errorf("shutting down find server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	s.logger.Info("Successfully shut down find server")
	return nil
}
