package usecase

import (
	"context"
	"encoding/json"
	"time"

	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/auth"
)

// handleFrame decodes one inbound frame and routes it by event name.
// Protocol errors are answered with an error event; the connection stays open.
func (uc *implUseCase) handleFrame(c *Connection, data []byte) {
	ctx := c.ctx

	var env ws.Envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Event == "" {
		c.logger.Warnf(ctx, "dropping malformed frame: %v", err)
		c.emitError(ws.EventError, ws.ErrInvalidMessage)
		return
	}

	switch env.Event {
	case ws.EventAuthenticate:
		uc.authenticate(ctx, c, env.Data)
	case ws.EventJoinOrder:
		uc.joinEntity(ctx, c, env.Data, "orderId", ws.OrderChannel)
	case ws.EventLeaveOrder:
		uc.leaveEntity(ctx, c, env.Data, "orderId", ws.OrderChannel)
	case ws.EventJoinProduct:
		uc.joinEntity(ctx, c, env.Data, "productId", ws.ProductChannel)
	case ws.EventLeaveProduct:
		uc.leaveEntity(ctx, c, env.Data, "productId", ws.ProductChannel)
	case ws.EventPing:
		c.emit(ws.EventPong, ws.PongPayload{Timestamp: time.Now().UTC()})
	default:
		c.logger.Warnf(ctx, "dropping unknown event %q", env.Event)
		c.emitError(ws.EventError, ws.ErrUnknownEvent)
	}
}

func (uc *implUseCase) joinEntity(ctx context.Context, c *Connection, raw json.RawMessage, key string, channelOf func(string) string) {
	identity, ok := uc.hub.identityOf(c)
	if !ok {
		c.emitError(ws.EventError, ws.ErrNotAuthenticated)
		return
	}

	entityID, err := ws.ParseEntityID(raw, key)
	if err != nil {
		c.emitError(ws.EventError, err)
		return
	}

	channel := channelOf(entityID)
	subject := auth.Subject{UserID: identity.UserID, Admin: identity.IsAdmin()}
	if err := uc.authorizer.CanJoin(ctx, subject, channel); err != nil {
		uc.security.LogAccessDenied(ctx, identity.UserID, channel, err.Error())
		c.emitError(ws.EventError, ws.ErrChannelForbidden)
		return
	}

	uc.hub.join(c.id, channel)
	c.logger.Debugf(ctx, "joined %s", channel)
}

func (uc *implUseCase) leaveEntity(ctx context.Context, c *Connection, raw json.RawMessage, key string, channelOf func(string) string) {
	entityID, err := ws.ParseEntityID(raw, key)
	if err != nil {
		c.emitError(ws.EventError, err)
		return
	}

	channel := channelOf(entityID)
	uc.hub.leave(c.id, channel)
	c.logger.Debugf(ctx, "left %s", channel)
}
