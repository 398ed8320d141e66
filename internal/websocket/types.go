package websocket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// --- Identity ---

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// NormalizeRole trims and upper-cases r. Anything other than ADMIN,
// including empty input, yields RoleUser.
func NormalizeRole(r string) Role {
	if Role(strings.ToUpper(strings.TrimSpace(r))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Identity is the {userId, role} pair bound to a connection by the handshake.
type Identity struct {
	UserID string
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// --- Wire Events ---

// Client -> server.
const (
	EventAuthenticate = "authenticate"
	EventJoinOrder    = "join:order"
	EventLeaveOrder   = "leave:order"
	EventJoinProduct  = "join:product"
	EventLeaveProduct = "leave:product"
	EventPing         = "ping"
)

// Server -> client.
const (
	EventAuthenticated      = "authenticated"
	EventAuthError          = "auth_error"
	EventError              = "error"
	EventPong               = "pong"
	EventNotification       = "notification"
	EventSystemNotification = "system_notification"
	EventOrderUpdate        = "order_update"
	EventProductAlert       = "product_alert"
	EventAdminNotification  = "admin_notification"
)

// Envelope is the JSON text frame exchanged in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope encodes data and wraps it with event.
func NewEnvelope(event string, data any) ([]byte, error) {
	env := Envelope{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", event, err)
		}
		env.Data = raw
	}
	return json.Marshal(env)
}

// FlexString accepts a JSON string or number. Browser clients send numeric
// database ids as often as string ones.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// --- Inbound Payloads ---

type AuthenticatePayload struct {
	UserID   FlexString `json:"userId"`
	UserRole string     `json:"userRole"`
	Token    string     `json:"token"`
}

// --- Outbound Payloads ---

type AuthenticatedPayload struct {
	UserID   string `json:"userId"`
	UserRole Role   `json:"userRole"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type PongPayload struct {
	Timestamp time.Time `json:"timestamp"`
}

// Notification is delivered as notification, system_notification and
// admin_notification.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

type OrderUpdate struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status,omitempty"`
	Type      string    `json:"type"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

type ProductAlert struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	AlertType string    `json:"alertType"`
	Type      string    `json:"type"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

const (
	DefaultNotificationType = "info"
	DefaultOrderUpdateType  = "order_update"
	DefaultProductAlertType = "product_alert"
)

// --- UseCase Inputs ---

// ConnectionInput is a freshly upgraded transport.
type ConnectionInput struct {
	Conn       *websocket.Conn
	RemoteAddr string
	UserAgent  string
}

// NotificationContent is the caller-supplied part of a Notification.
type NotificationContent struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type OrderUpdateContent struct {
	Status  string `json:"status"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ProductAlertContent struct {
	AlertType string `json:"alertType"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

type NotifyUserInput struct {
	UserID       string
	Notification NotificationContent
}

type NotifySystemInput struct {
	Notification NotificationContent
}

type NotifyAdminsInput struct {
	Notification NotificationContent
}

type UpdateOrderInput struct {
	UserID  string
	OrderID string
	Update  OrderUpdateContent
}

type AlertProductInput struct {
	UserID    string
	ProductID string
	Alert     ProductAlertContent
}

type AlertProductAllInput struct {
	ProductID string
	Alert     ProductAlertContent
}

// DispatchKind names one fan-out pattern for broker ingress.
type DispatchKind string

const (
	KindNotifyUser      DispatchKind = "notify-user"
	KindSystemNotify    DispatchKind = "system-notify"
	KindAdminNotify     DispatchKind = "admin-notify"
	KindOrderUpdate     DispatchKind = "order-update"
	KindProductAlert    DispatchKind = "product-alert"
	KindProductAlertAll DispatchKind = "product-alert-all"
)

// ProcessMessageInput is a raw dispatch request from Redis or Kafka.
type ProcessMessageInput struct {
	Source  string
	Kind    DispatchKind
	Payload []byte
}

// --- UseCase Outputs ---

type DispatchOutput struct {
	Delivered int
	Dropped   int
}

type HubStats struct {
	// Authenticated connections.
	TotalConnections int
	// Every live transport, authenticated or not.
	ConnectedSockets int
	UniqueUsers      int
	MessagesSent     uint64
	MessagesFailed   uint64
}
