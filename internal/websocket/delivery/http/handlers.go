package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	ws "shop-notification-srv/internal/websocket"
)

// HandleWebSocket upgrades the request and hands the transport to the use
// case. Identity is established later by the in-band authenticate event.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		h.logger.Warnf(ctx, "upgrade failed: origin=%q err=%v", c.GetHeader("Origin"), err)
		return
	}

	input := ws.ConnectionInput{
		Conn:       conn,
		RemoteAddr: c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}
	if err := h.uc.Register(ctx, input); err != nil {
		h.logger.Warnf(ctx, "register failed: %v", err)
		_ = conn.WriteControl(websocket.CloseMessage, closeMessage(err), deadline())
		_ = conn.Close()
		return
	}
}

const closeWriteTimeout = time.Second

func deadline() time.Time {
	return time.Now().Add(closeWriteTimeout)
}

func closeMessage(err error) []byte {
	switch {
	case errors.Is(err, ws.ErrMaxConnectionsReached):
		return websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server full")
	case errors.Is(err, ws.ErrHubClosed):
		return websocket.FormatCloseMessage(websocket.CloseServiceRestart, "shutting down")
	default:
		return websocket.FormatCloseMessage(websocket.CloseInternalServerErr, http.StatusText(http.StatusInternalServerError))
	}
}
