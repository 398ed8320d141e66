package http

import (
	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/log"
)

// Handler exposes the fan-out use case to backend processes that are not
// connected peers.
type Handler struct {
	uc     ws.UseCase
	logger log.Logger
}

func New(uc ws.UseCase, logger log.Logger) *Handler {
	return &Handler{uc: uc, logger: logger}
}
