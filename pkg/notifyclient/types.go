package notifyclient

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"shop-notification-srv/pkg/log"
)

// State is the lifecycle state of a Manager.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
)

// Local events published to subscribers registered with On.
const (
	EventConnectionEstablished  = "connection:established"
	EventConnectionLost         = "connection:lost"
	EventConnectionReconnecting = "connection:reconnecting"
	EventConnectionReconnected  = "connection:reconnected"
	EventConnectionError        = "connection:error"
	EventConnectionFailed       = "connection:failed"
	EventAuthSuccess            = "auth:success"
	EventAuthError              = "auth:error"
	EventServerError            = "server:error"
	EventPong                   = "pong"
	EventNotification           = "notification:received"
	EventSystemNotification     = "system:notification"
	EventOrderUpdate            = "order:update"
	EventProductAlert           = "product:alert"
	EventAdminNotification      = "admin:notification"
)

// Wire events exchanged with the server.
const (
	wireAuthenticate       = "authenticate"
	wireJoinOrder          = "join:order"
	wireLeaveOrder         = "leave:order"
	wireJoinProduct        = "join:product"
	wireLeaveProduct       = "leave:product"
	wirePing               = "ping"
	wireAuthenticated      = "authenticated"
	wireAuthError          = "auth_error"
	wireError              = "error"
	wirePong               = "pong"
	wireNotification       = "notification"
	wireSystemNotification = "system_notification"
	wireOrderUpdate        = "order_update"
	wireProductAlert       = "product_alert"
	wireAdminNotification  = "admin_notification"
)

const (
	defaultConnectTimeout    = 10 * time.Second
	defaultReconnectAttempts = 20
	defaultReconnectDelay    = time.Second
	defaultReconnectDelayMax = 10 * time.Second
	defaultReadTimeout       = 60 * time.Second
	defaultWriteTimeout      = 10 * time.Second
)

var (
	ErrNotConnected = errors.New("not connected")
	ErrMissingURL   = errors.New("url is required")
)

// Config configures a Manager. Zero values fall back to defaults.
type Config struct {
	URL    string
	Header http.Header

	ConnectTimeout    time.Duration
	ReconnectAttempts int
	ReconnectDelay    time.Duration
	ReconnectDelayMax time.Duration

	// ReadTimeout bounds the silence between server frames or pings.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Logger log.Logger
	Dialer *websocket.Dialer
}

func (c Config) withDefaults() Config {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.ReconnectAttempts <= 0 {
		c.ReconnectAttempts = defaultReconnectAttempts
	}
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = defaultReconnectDelay
	}
	if c.ReconnectDelayMax < c.ReconnectDelay {
		c.ReconnectDelayMax = max(c.ReconnectDelay, defaultReconnectDelayMax)
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = defaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultWriteTimeout
	}
	if c.Logger == nil {
		c.Logger = log.NewNop()
	}
	if c.Dialer == nil {
		c.Dialer = &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: c.ConnectTimeout,
		}
	}
	return c
}

// Identity is sent in the authenticate handshake. Token is only needed when
// the server verifies JWTs.
type Identity struct {
	UserID string `json:"userId"`
	Role   string `json:"userRole,omitempty"`
	Token  string `json:"token,omitempty"`
}

// --- Local event payloads ---

type Notification struct {
	ID        string
	Type      string
	Title     string
	Message   string
	Data      any
	Timestamp time.Time
	Read      bool
}

type OrderUpdate struct {
	ID        string
	OrderID   string
	Status    string
	Type      string
	Title     string
	Message   string
	Data      any
	Timestamp time.Time
	Read      bool
}

type ProductAlert struct {
	ID        string
	ProductID string
	AlertType string
	Type      string
	Title     string
	Message   string
	Data      any
	Timestamp time.Time
	Read      bool
}

type AuthSuccess struct {
	UserID string
	Role   string
}

// ServerMessage carries auth_error and error payloads.
type ServerMessage struct {
	Message string
}

type Pong struct {
	Timestamp time.Time
}

type ConnectionLost struct {
	Reason string
}

type Reconnecting struct {
	Attempt int
}

type Reconnected struct {
	Attempts int
}

type ConnectionError struct {
	Err error
}

// Callback receives one of the payload types above, nil for
// connection:established and connection:failed.
type Callback func(data any)

// SubscriptionID identifies a registration made with On.
type SubscriptionID uint64
