package http

import (
	"github.com/gorilla/websocket"

	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/log"
)

// Config is the upgrade configuration.
type Config struct {
	Environment     string
	AllowedOrigins  []string
	ReadBufferSize  int
	WriteBufferSize int
}

type Handler struct {
	uc       ws.UseCase
	logger   log.Logger
	upgrader websocket.Upgrader
}

func New(uc ws.UseCase, logger log.Logger, cfg Config) *Handler {
	return &Handler{
		uc:       uc,
		logger:   logger,
		upgrader: newUpgrader(cfg),
	}
}
