package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"line-knowledge-assistant/pkg/log"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an id, reusing the caller's when present,
// and stores it in the request context for the logger.
func (mw Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), log.RequestIDKey, id))
		c.Next()
	}
}

// AccessLog logs one line per request and records HTTP metrics.
func (mw Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		mw.metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(status), elapsed)
		mw.l.Infof(c.Request.Context(), "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, elapsed)
	}
}
