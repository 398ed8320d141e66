package http

import (
	"github.com/gin-gonic/gin"

	"shop-notification-srv/internal/middleware"
)

// RegisterRoutes registers the control-plane routes under /admin.
func (h *Handler) RegisterRoutes(r *gin.Engine, mw middleware.Middleware) {
	admin := r.Group("/admin")
	admin.GET("/stats", h.Stats)

	gated := admin.Group("", mw.AdminSecret())
	{
		gated.POST("/notify-user", h.NotifyUser)
		gated.POST("/system-notify", h.SystemNotify)
		gated.POST("/admin-notify", h.AdminNotify)
		gated.POST("/order-update", h.OrderUpdate)
		gated.POST("/product-alert", h.ProductAlert)
		gated.POST("/product-alert-all", h.ProductAlertAll)
	}
}
