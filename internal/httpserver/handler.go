package httpserver

import (
	"github.com/gin-gonic/gin"

	adminHTTP "shop-notification-srv/internal/admin/delivery/http"
	"shop-notification-srv/internal/middleware"
	wsHTTP "shop-notification-srv/internal/websocket/delivery/http"
)

func (srv *HTTPServer) mapHandlers() {
	srv.gin.Use(middleware.Recovery(srv.logger))
	if gin.Mode() != gin.ReleaseMode {
		srv.gin.Use(gin.Logger())
	}

	// Apply CORS middleware globally
	corsConfig := middleware.NewCORSConfig(srv.allowedOrigins, srv.mw.SecretHeader())
	srv.gin.Use(middleware.CORS(corsConfig))

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)

	// WebSocket upgrade
	environment := "development"
	if srv.production {
		environment = "production"
	}
	wsHandler := wsHTTP.New(srv.wsUC, srv.logger, wsHTTP.Config{
		Environment:     environment,
		AllowedOrigins:  srv.allowedOrigins,
		ReadBufferSize:  srv.wsConfig.ReadBufferSize,
		WriteBufferSize: srv.wsConfig.WriteBufferSize,
	})
	wsHandler.RegisterRoutes(srv.gin, srv.wsPath)

	// Control plane
	adminHandler := adminHTTP.New(srv.wsUC, srv.logger)
	adminHandler.RegisterRoutes(srv.gin, srv.mw)
}
