package routes

import (
	"net/http"

	"tripbid/internal/middleware"
	"tripbid/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthCheck reports liveness of a dependency.
type HealthCheck func(c *gin.Context) error

// SetupSystemRoutes registers health, metrics and the socket endpoint. The
// socket route is skipped when wsHandler is nil.
func SetupSystemRoutes(r *gin.Engine, version string, checks map[string]HealthCheck, jwtSecret, wsPath string, wsHandler *websocket.Handler) {
	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		components := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(c); err != nil {
				status = http.StatusServiceUnavailable
				components[name] = err.Error()
				continue
			}
			components[name] = "ok"
		}

		state := "healthy"
		if status != http.StatusOK {
			state = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status":     state,
			"version":    version,
			"components": components,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if wsHandler != nil {
		r.GET(wsPath, middleware.AuthRequired(jwtSecret), wsHandler.HandleWebSocket)
	}
}
