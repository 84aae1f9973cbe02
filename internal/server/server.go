package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/five82/beerdex/internal/logging"
)

const (
	defaultRate     = 20
	defaultBurst    = 40
	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// DataDir holds beers/beers.json, beers/details/ and the beer images.
	DataDir string
	// ImgDir is served under /img/. Empty or missing disables the route.
	ImgDir string

	// RateLimit is the per-client request rate; Burst the bucket size.
	RateLimit rate.Limit
	Burst     int

	// TrustProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable it only behind a proxy that sets those headers.
	TrustProxy bool

	Logger *logrus.Logger
	// AccessLog receives one combined-format line per request.
	AccessLog io.Writer
}

// Server publishes a beer catalog directory over HTTP.
type Server struct {
	dataDir string
	imgDir  string
	logger  *logrus.Logger
	access  io.Writer
	proxied bool
	limiter *limiter
	metrics *metrics
	handler http.Handler
}

// New validates opts and builds the handler chain.
func New(opts Options) (*Server, error) {
	dataDir, err := filepath.Abs(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	info, err := os.Stat(dataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data dir %s is not a directory", dataDir)
	}

	s := &Server{
		dataDir: dataDir,
		logger:  opts.Logger,
		access:  opts.AccessLog,
		proxied: opts.TrustProxy,
	}
	if opts.ImgDir != "" {
		if info, err := os.Stat(opts.ImgDir); err == nil && info.IsDir() {
			s.imgDir = opts.ImgDir
		}
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.access == nil {
		s.access = io.Discard
	}

	limit, burst := opts.RateLimit, opts.Burst
	if limit <= 0 {
		limit = defaultRate
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	s.limiter = newLimiter(limit, burst)
	s.metrics = newMetrics(prometheus.NewRegistry())
	s.handler = s.routes()
	return s, nil
}

// Handler returns the full middleware chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.metrics.middleware)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodHead)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.HandleFunc(catalogRoute, s.handleCatalog).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(detailRoute, s.handleDetail).Methods(http.MethodGet, http.MethodHead)

	data := http.StripPrefix("/data/", http.FileServer(http.Dir(s.dataDir)))
	r.PathPrefix("/data/").Handler(data).Methods(http.MethodGet, http.MethodHead)
	if s.imgDir != "" {
		img := http.StripPrefix("/img/", http.FileServer(http.Dir(s.imgDir)))
		r.PathPrefix("/img/").Handler(img).Methods(http.MethodGet, http.MethodHead)
	}
	// mux skips Use middleware for these, so they are wrapped directly.
	r.NotFoundHandler = s.metrics.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	}))
	r.MethodNotAllowedHandler = s.metrics.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}))

	var h http.Handler = r
	h = s.limiter.middleware(h)
	h = requestID(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(s.logger))(h)
	h = handlers.CombinedLoggingHandler(s.access, h)
	if s.proxied {
		h = handlers.ProxyHeaders(h)
	}
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
		handlers.ExposedHeaders([]string{"Content-Length", RequestIDHeader}),
	)(h)
	return h
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. A clean shutdown returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go s.limiter.sweep(ctx, time.Minute, 3*time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithFields(logrus.Fields{
			"addr":     ln.Addr().String(),
			"data_dir": s.dataDir,
		}).Info("serving beer catalog")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server shutdown complete")
	return nil
}
