package httpserver

import (
	"context"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"line-knowledge-assistant/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "LINE knowledge assistant is running"
	HealthVersion = "1.0.0"
	ServiceName   = "line-knowledge-assistant"
)

// readyCheckTimeout bounds each dependency check on /ready.
const readyCheckTimeout = 2 * time.Second

func statusBody(status string) gin.H {
	return gin.H{
		"status":  status,
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, statusBody("healthy"))
}

// readyCheck runs every registered dependency check. Any failure turns the
// endpoint into a 503 listing the failing dependency.
// @Summary Readiness Check
// @Description Check whether the session backend and other dependencies are reachable
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "A dependency is unreachable"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	checks, ready := srv.runReadyChecks(c.Request.Context())

	body := statusBody("ready")
	body["checks"] = checks
	if !ready {
		body["status"] = "not_ready"
		response.ServiceUnavailable(c, body)
		return
	}
	response.OK(c, body)
}

// runReadyChecks returns one "ok" or error string per dependency name.
func (srv HTTPServer) runReadyChecks(ctx context.Context) (map[string]string, bool) {
	names := make([]string, 0, len(srv.readyChecks))
	for name := range srv.readyChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, readyCheckTimeout)
		err := srv.readyChecks[name](checkCtx)
		cancel()

		if err != nil {
			srv.l.Warnf(ctx, "httpserver.readyCheck: %s not ready: %v", name, err)
			results[name] = err.Error()
			ready = false
			continue
		}
		results[name] = "ok"
	}
	return results, ready
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, statusBody("alive"))
}
