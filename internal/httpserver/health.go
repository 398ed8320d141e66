package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shop-notification-srv/pkg/errors"
	"shop-notification-srv/pkg/response"
)

const readyTimeout = 2 * time.Second

// healthCheck handles GET /health. It only reports that the process serves HTTP.
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c)
}

// readyCheck handles GET /ready. When Redis ingress is configured it must answer a PING.
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if srv.redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, readyTimeout)
		defer cancel()
		if err := srv.redis.Ping(pingCtx); err != nil {
			srv.logger.Warnf(ctx, "readiness: redis ping failed: %v", err)
			response.Error(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Redis connection not available"))
			return
		}
	}

	stats, _ := srv.wsUC.GetStats(ctx)
	response.OKWith(c, gin.H{
		"ok":               true,
		"connectedSockets": stats.ConnectedSockets,
		"redis":            srv.redis != nil,
		"kafka":            srv.kafkaConsumer != nil,
	})
}
