// Package server exposes the solver over HTTP.
//
// Endpoints:
//
//	POST /v1/solve          body {"operands":[a,b,c,d]}
//	GET  /v1/solve/:digits  e.g. /v1/solve/1234 or /v1/solve/1,2,3,-4
//	GET  /healthz
//	GET  /metrics           when enabled
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"traingame/internal/config"
	"traingame/internal/solver"
)

const shutdownTimeout = 5 * time.Second

// Server serves one shared Solver.
type Server struct {
	solver   *solver.Solver
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	router   *gin.Engine
}

// New wires routes and metrics. A nil logger logs nothing.
func New(s *solver.Solver, cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	srv := &Server{
		solver:   s,
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		metrics:  newMetrics(reg),
	}
	srv.router = srv.routes()
	return srv
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.HandleHealth)
	if s.cfg.Server.EnableMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/v1")
	v1.POST("/solve", s.HandleSolve)
	v1.GET("/solve/:digits", s.HandleSolveDigits)
	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.GetReadTimeout(),
		WriteTimeout: s.cfg.GetWriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- hs.Serve(ln)
	}()
	s.logger.Info("listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", c.Writer.Header().Get("X-Request-ID")))
	}
}
