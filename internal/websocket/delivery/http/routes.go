package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the WebSocket upgrade endpoint at path.
// Browsers cannot set headers on the upgrade, so authentication happens
// in-band after the connection opens.
func (h *Handler) RegisterRoutes(r *gin.Engine, path string) {
	r.GET(path, h.HandleWebSocket)
}
