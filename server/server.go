// Package server exposes a mess.Service over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzhttp"
	mess "github.com/sudharshan-del/Hostel-Management"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const shutdownTimeout = 10 * time.Second

// Config holds the listener settings.
type Config struct {
	Addr         string
	AdminToken   string
	MaxConns     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server routes HTTP requests to a mess.Service.
type Server struct {
	svc    *mess.Service
	cfg    Config
	hub    *Hub
	logger *zap.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for access logs and failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithHub sets the hub that serves /stats/stream. The same hub's Publish
// should be registered with mess.WithOnVote so subscribers see new votes.
func WithHub(h *Hub) Option {
	return func(s *Server) {
		s.hub = h
	}
}

// New creates a Server for svc.
func New(svc *mess.Service, cfg Config, opts ...Option) *Server {
	s := &Server{svc: svc, cfg: cfg}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.hub == nil {
		s.hub = NewHub(s.logger)
	}
	return s
}

// Handler returns the full route tree with middleware applied.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /submit", s.handleSubmit)
	api.HandleFunc("GET /stats", s.handleStats)
	api.HandleFunc("GET /menu", s.handleMenu)
	api.HandleFunc("POST /admin/update", s.requireAdmin(s.handleAdminUpdate))
	api.HandleFunc("GET /healthz", s.handleHealth)

	root := http.NewServeMux()
	root.HandleFunc("GET /stats/stream", s.handleStream)
	root.Handle("/", gzhttp.GzipHandler(api))

	var h http.Handler = root
	h = s.withRecovery(h)
	h = withCORS(h)
	h = s.withAccessLog(h)
	h = withRequestID(h)
	return h
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConns)
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     zap.NewStdLog(s.logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
