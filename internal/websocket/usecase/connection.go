package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/log"
)

// Connection is one accepted transport. identity is nil until the handshake
// succeeds and is only touched under the hub lock.
type Connection struct {
	id       string
	hub      *Hub
	conn     *websocket.Conn
	identity *ws.Identity
	joinedAt time.Time

	// Buffered channel of outbound messages. Closed by the hub only.
	send chan []byte

	limiter *rate.Limiter
	opts    Options

	ctx    context.Context
	logger log.Logger
}

func newConnection(ctx context.Context, hub *Hub, conn *websocket.Conn, connID string, opts Options, logger log.Logger) *Connection {
	return &Connection{
		id:       connID,
		hub:      hub,
		conn:     conn,
		joinedAt: time.Now(),
		send:     make(chan []byte, opts.SendBufferSize),
		limiter:  rate.NewLimiter(rate.Limit(opts.InboundRate), opts.InboundBurst),
		opts:     opts,
		ctx:      ctx,
		logger:   logger.With("connection_id", connID),
	}
}

// readPump pumps frames from the transport into handle.
//
// The application runs readPump in a per-connection goroutine, so inbound
// messages of one connection never run concurrently. Returning from
// readPump always removes the connection from the hub.
func (c *Connection) readPump(handle func(*Connection, []byte)) {
	reason := "closed by peer"
	defer func() {
		if r := recover(); r != nil {
			reason = "handler panic"
			c.logger.Errorf(c.ctx, "panic while handling frame: %v", r)
		}
		c.hub.remove(c)
		_ = c.conn.Close()
		c.logDisconnect(reason)
	}()

	c.conn.SetReadLimit(c.opts.MaxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	})

	for {
		msgType, r, err := c.conn.NextReader()
		if err != nil {
			reason = closeReason(err)
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.Warnf(c.ctx, "read error: %v", err)
			}
			return
		}

		data, err := io.ReadAll(io.LimitReader(r, c.opts.MaxMessageSize+1))
		if err != nil {
			reason = closeReason(err)
			return
		}
		if int64(len(data)) > c.opts.MaxMessageSize {
			if _, err := io.Copy(io.Discard, r); err != nil {
				reason = closeReason(err)
				return
			}
			c.logger.Warnf(c.ctx, "dropping oversized frame (limit %d bytes)", c.opts.MaxMessageSize)
			continue
		}

		if msgType != websocket.TextMessage {
			c.logger.Warnf(c.ctx, "dropping non-text frame of type %d", msgType)
			continue
		}
		if !c.limiter.Allow() {
			c.logger.Warnf(c.ctx, "inbound rate exceeded, dropping frame")
			continue
		}

		handle(c, data)
	}
}

// writePump pumps messages from the send buffer to the transport and
// sends pings on a fixed interval.
//
// A goroutine running writePump is started for each connection. It is the
// only writer on the transport.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debugf(c.ctx, "write failed: %v", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debugf(c.ctx, "ping failed: %v", err)
				return
			}
		}
	}
}

// emit encodes and queues a single event for this connection.
func (c *Connection) emit(event string, data any) {
	msg, err := ws.NewEnvelope(event, data)
	if err != nil {
		c.logger.Errorf(c.ctx, "encode %s: %v", event, err)
		return
	}
	c.hub.sendToConn(c, msg)
}

func (c *Connection) emitError(event string, err error) {
	c.emit(event, ws.ErrorPayload{Message: err.Error()})
}

func (c *Connection) logDisconnect(reason string) {
	identity, _ := c.hub.identityOf(c)
	userID := identity.UserID
	if userID == "" {
		userID = "-"
	}
	c.logger.Infof(c.ctx, "connection closed: user=%s reason=%q duration=%s",
		userID, reason, time.Since(c.joinedAt).Round(time.Millisecond))
}

func closeReason(err error) string {
	var closeErr *websocket.CloseError
	switch {
	case errors.As(err, &closeErr):
		if closeErr.Text != "" {
			return closeErr.Text
		}
		return fmt.Sprintf("close code %d", closeErr.Code)
	case errors.Is(err, websocket.ErrReadLimit):
		return "frame exceeds hard limit"
	default:
		return err.Error()
	}
}
