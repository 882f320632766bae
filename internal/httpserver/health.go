package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkscan/internal/monitor"
	pkgErrors "inkscan/pkg/errors"
	"inkscan/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "From Inkscan API V1 With Love"
	HealthVersion = "1.0.0"
	ServiceName   = "inkscan"
)

func healthPayload(status string) gin.H {
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
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, healthPayload("healthy"))
}

// readyCheck reports whether the instance can take traffic. When the
// folder monitor runs in-process, a stopped monitor means the deployment
// is degraded and readiness fails so the balancer drains us.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "Folder monitor is down"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if srv.monitor != nil && srv.monitor.Status() == monitor.StatusStopped {
		response.Error(c, pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "folder monitor is not running"), nil)
		return
	}
	response.OK(c, healthPayload("ready"))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, healthPayload("alive"))
}
