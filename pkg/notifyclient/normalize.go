package notifyclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shop-notification-srv/pkg/id"
)

const (
	defaultNotificationType = "info"
	defaultOrderUpdateType  = "order_update"
	defaultProductAlertType = "product_alert"
)

// ErrMalformedPayload wraps every reason a payload is dropped.
var ErrMalformedPayload = errors.New("malformed payload")

// fields is a decoded JSON object whose values are coerced on access.
type fields map[string]any

func decodeFields(raw json.RawMessage) (fields, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var f fields
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedPayload)
	}
	return f, nil
}

// str coerces strings and numbers. Anything else reads as "".
func (f fields) str(key string) string {
	switch v := f[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func (f fields) strOr(key, fallback string) string {
	if s := f.str(key); s != "" {
		return s
	}
	return fallback
}

func (f fields) id() string {
	return f.strOr("id", id.New())
}

// timestamp accepts RFC 3339 strings and unix milliseconds.
func (f fields) timestamp(now time.Time) time.Time {
	switch v := f["timestamp"].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v)); err == nil {
			return t
		}
		if ms, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil && ms > 0 {
			return time.UnixMilli(ms)
		}
	case json.Number:
		if ms, err := v.Int64(); err == nil && ms > 0 {
			return time.UnixMilli(ms)
		}
	}
	return now
}

func (f fields) boolean(key string) bool {
	switch v := f[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	default:
		return false
	}
}

func (f fields) data() any {
	v, ok := f["data"]
	if !ok {
		return nil
	}
	return v
}

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedPayload, field)
}

func normalizeNotification(raw json.RawMessage, now time.Time) (Notification, error) {
	f, err := decodeFields(raw)
	if err != nil {
		return Notification{}, err
	}
	title := f.str("title")
	if title == "" {
		return Notification{}, missing("title")
	}
	return Notification{
		ID:        f.id(),
		Type:      f.strOr("type", defaultNotificationType),
		Title:     title,
		Message:   f.str("message"),
		Data:      f.data(),
		Timestamp: f.timestamp(now),
		Read:      f.boolean("read"),
	}, nil
}

func normalizeOrderUpdate(raw json.RawMessage, now time.Time) (OrderUpdate, error) {
	f, err := decodeFields(raw)
	if err != nil {
		return OrderUpdate{}, err
	}
	orderID := f.str("orderId")
	if orderID == "" {
		return OrderUpdate{}, missing("orderId")
	}
	return OrderUpdate{
		ID:        f.id(),
		OrderID:   orderID,
		Status:    f.str("status"),
		Type:      f.strOr("type", defaultOrderUpdateType),
		Title:     f.str("title"),
		Message:   f.str("message"),
		Data:      f.data(),
		Timestamp: f.timestamp(now),
		Read:      f.boolean("read"),
	}, nil
}

func normalizeProductAlert(raw json.RawMessage, now time.Time) (ProductAlert, error) {
	f, err := decodeFields(raw)
	if err != nil {
		return ProductAlert{}, err
	}
	productID := f.str("productId")
	if productID == "" {
		return ProductAlert{}, missing("productId")
	}
	alertType := f.str("alertType")
	if alertType == "" {
		return ProductAlert{}, missing("alertType")
	}
	return ProductAlert{
		ID:        f.id(),
		ProductID: productID,
		AlertType: alertType,
		Type:      f.strOr("type", defaultProductAlertType),
		Title:     f.str("title"),
		Message:   f.str("message"),
		Data:      f.data(),
		Timestamp: f.timestamp(now),
		Read:      f.boolean("read"),
	}, nil
}

// normalizeMessage reads the message field of auth_error and error. A missing
// payload is tolerated.
func normalizeMessage(raw json.RawMessage, fallback string) ServerMessage {
	if f, err := decodeFields(raw); err == nil {
		return ServerMessage{Message: f.strOr("message", fallback)}
	}
	var s string
	if json.Unmarshal(raw, &s) == nil && s != "" {
		return ServerMessage{Message: s}
	}
	return ServerMessage{Message: fallback}
}

func normalizeAuthSuccess(raw json.RawMessage, identity Identity) AuthSuccess {
	out := AuthSuccess{UserID: identity.UserID, Role: identity.Role}
	if f, err := decodeFields(raw); err == nil {
		out.UserID = f.strOr("userId", out.UserID)
		out.Role = f.strOr("userRole", out.Role)
	}
	return out
}

func normalizePong(raw json.RawMessage, now time.Time) Pong {
	if f, err := decodeFields(raw); err == nil {
		return Pong{Timestamp: f.timestamp(now)}
	}
	return Pong{Timestamp: now}
}
