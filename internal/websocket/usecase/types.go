package usecase

import (
	"time"

	ws "shop-notification-srv/internal/websocket"
)

// Options tunes connection handling. Zero values fall back to defaults.
type Options struct {
	PingInterval   time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
	MaxFrameSize   int64
	SendBufferSize int
	MaxConnections int
	InboundRate    float64
	InboundBurst   int
}

const (
	defaultPingInterval   = 25 * time.Second
	defaultPongWait       = 60 * time.Second
	defaultWriteWait      = 10 * time.Second
	defaultMaxMessageSize = 4096
	defaultMaxFrameSize   = 64 * 1024
	defaultSendBufferSize = 256
	defaultInboundRate    = 20
	defaultInboundBurst   = 40
)

func (o Options) withDefaults() Options {
	if o.PingInterval <= 0 {
		o.PingInterval = defaultPingInterval
	}
	if o.PongWait <= 0 {
		o.PongWait = defaultPongWait
	}
	if o.WriteWait <= 0 {
		o.WriteWait = defaultWriteWait
	}
	if o.MaxMessageSize <= 0 {
		o.MaxMessageSize = defaultMaxMessageSize
	}
	if o.MaxFrameSize < o.MaxMessageSize {
		o.MaxFrameSize = max(o.MaxMessageSize, defaultMaxFrameSize)
	}
	if o.SendBufferSize <= 0 {
		o.SendBufferSize = defaultSendBufferSize
	}
	if o.InboundRate <= 0 {
		o.InboundRate = defaultInboundRate
	}
	if o.InboundBurst <= 0 {
		o.InboundBurst = defaultInboundBurst
	}
	return o
}

// --- Ingress bodies (Redis / Kafka) ---

type notifyUserMessage struct {
	UserID       ws.FlexString          `json:"userId"`
	Notification ws.NotificationContent `json:"notification"`
}

type notifyAllMessage struct {
	Notification ws.NotificationContent `json:"notification"`
}

type orderUpdateMessage struct {
	UserID  ws.FlexString         `json:"userId"`
	OrderID ws.FlexString         `json:"orderId"`
	Update  ws.OrderUpdateContent `json:"update"`
}

type productAlertMessage struct {
	UserID    ws.FlexString          `json:"userId"`
	ProductID ws.FlexString          `json:"productId"`
	Alert     ws.ProductAlertContent `json:"alert"`
}
