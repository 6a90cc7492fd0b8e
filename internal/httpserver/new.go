package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"line-knowledge-assistant/internal/middleware"
	"line-knowledge-assistant/pkg/log"
	"line-knowledge-assistant/pkg/metrics"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Observability
	metrics *metrics.Metrics
	mw      middleware.Middleware

	// LINE webhook
	lineHandler LineHandler

	// Readiness
	readyChecks map[string]ReadyCheck
}

// ReadyCheck reports whether a dependency can serve traffic.
type ReadyCheck func(ctx context.Context) error

// LineHandler serves the LINE callback endpoint.
type LineHandler interface {
	Callback(c *gin.Context)
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	Metrics     *metrics.Metrics

	// TrustedProxies may set X-Forwarded-For / X-Real-IP. Empty trusts none,
	// so the client IP is always the socket peer.
	TrustedProxies []string

	LineHandler LineHandler
	ReadyChecks map[string]ReadyCheck
}

// New creates a new HTTPServer instance with every route mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		metrics:     cfg.Metrics,
		lineHandler: cfg.LineHandler,
		readyChecks: cfg.ReadyChecks,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	srv.mw = middleware.New(logger, cfg.Metrics)

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

// Handler exposes the routed engine.
func (srv HTTPServer) Handler() http.Handler {
	return srv.gin
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.metrics == nil {
		return errors.New("metrics is required")
	}
	return nil
}
