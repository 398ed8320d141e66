package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/id"
)

// Dispatch is fire-and-forget: messages are queued on each recipient's send
// buffer and never retried.

func (uc *implUseCase) NotifyUser(ctx context.Context, input ws.NotifyUserInput) (ws.DispatchOutput, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" || input.Notification.Title == "" {
		return ws.DispatchOutput{}, fmt.Errorf("%w: userId and notification.title are required", ws.ErrInvalidInput)
	}
	if !ws.ValidUserID(userID) {
		return ws.DispatchOutput{}, ws.ErrInvalidUserID
	}

	msg, err := ws.NewEnvelope(ws.EventNotification, newNotification(input.Notification))
	if err != nil {
		return ws.DispatchOutput{}, err
	}
	return uc.deliver(ctx, ws.EventNotification, msg, ws.UserChannel(userID)), nil
}

func (uc *implUseCase) NotifySystem(ctx context.Context, input ws.NotifySystemInput) (ws.DispatchOutput, error) {
	if input.Notification.Title == "" {
		return ws.DispatchOutput{}, fmt.Errorf("%w: notification.title is required", ws.ErrInvalidInput)
	}

	msg, err := ws.NewEnvelope(ws.EventSystemNotification, newNotification(input.Notification))
	if err != nil {
		return ws.DispatchOutput{}, err
	}
	return uc.deliverAll(ctx, ws.EventSystemNotification, msg), nil
}

func (uc *implUseCase) NotifyAdmins(ctx context.Context, input ws.NotifyAdminsInput) (ws.DispatchOutput, error) {
	if input.Notification.Title == "" {
		return ws.DispatchOutput{}, fmt.Errorf("%w: notification.title is required", ws.ErrInvalidInput)
	}

	msg, err := ws.NewEnvelope(ws.EventAdminNotification, newNotification(input.Notification))
	if err != nil {
		return ws.DispatchOutput{}, err
	}
	return uc.deliver(ctx, ws.EventAdminNotification, msg, ws.ChannelAdmin), nil
}

// UpdateOrder reaches the order owner and every watcher of the order, each
// connection once.
func (uc *implUseCase) UpdateOrder(ctx context.Context, input ws.UpdateOrderInput) (ws.DispatchOutput, error) {
	userID := strings.TrimSpace(input.UserID)
	orderID := strings.TrimSpace(input.OrderID)
	if userID == "" || orderID == "" {
		return ws.DispatchOutput{}, fmt.Errorf("%w: userId and orderId are required", ws.ErrInvalidInput)
	}
	if !ws.ValidUserID(userID) {
		return ws.DispatchOutput{}, ws.ErrInvalidUserID
	}
	if !ws.ValidEntityID(orderID) {
		return ws.DispatchOutput{}, fmt.Errorf("%w: orderId", ws.ErrInvalidEntityID)
	}

	u := input.Update
	payload := ws.OrderUpdate{
		ID:        id.New(),
		OrderID:   orderID,
		Status:    u.Status,
		Type:      orDefault(u.Type, ws.DefaultOrderUpdateType),
		Title:     u.Title,
		Message:   u.Message,
		Data:      u.Data,
		Timestamp: time.Now().UTC(),
	}
	msg, err := ws.NewEnvelope(ws.EventOrderUpdate, payload)
	if err != nil {
		return ws.DispatchOutput{}, err
	}
	return uc.deliver(ctx, ws.EventOrderUpdate, msg, ws.UserChannel(userID), ws.OrderChannel(orderID)), nil
}

func (uc *implUseCase) AlertProduct(ctx context.Context, input ws.AlertProductInput) (ws.DispatchOutput, error) {
	userID := strings.TrimSpace(input.UserID)
	msg, productID, err := buildProductAlert(input.ProductID, input.Alert)
	if err == nil && userID == "" {
		err = fmt.Errorf("%w: userId is required", ws.ErrInvalidInput)
	}
	if err == nil && !ws.ValidUserID(userID) {
		err = ws.ErrInvalidUserID
	}
	if err != nil {
		return ws.DispatchOutput{}, err
	}
	return uc.deliver(ctx, ws.EventProductAlert, msg, ws.UserChannel(userID), ws.ProductChannel(productID)), nil
}

// AlertProductAll broadcasts to every connection and then sends again to
// the product channel. Watchers of the product receive the alert twice.
func (uc *implUseCase) AlertProductAll(ctx context.Context, input ws.AlertProductAllInput) (ws.DispatchOutput, error) {
	msg, productID, err := buildProductAlert(input.ProductID, input.Alert)
	if err != nil {
		return ws.DispatchOutput{}, err
	}

	all := uc.deliverAll(ctx, ws.EventProductAlert, msg)
	watchers := uc.deliver(ctx, ws.EventProductAlert, msg, ws.ProductChannel(productID))
	return ws.DispatchOutput{
		Delivered: all.Delivered + watchers.Delivered,
		Dropped:   all.Dropped + watchers.Dropped,
	}, nil
}

func (uc *implUseCase) deliver(ctx context.Context, event string, msg []byte, channels ...string) ws.DispatchOutput {
	delivered, dropped := uc.hub.sendToChannels(msg, channels...)
	uc.logger.Infof(ctx, "dispatched %s to %v: delivered=%d dropped=%d", event, channels, delivered, dropped)
	return ws.DispatchOutput{Delivered: delivered, Dropped: dropped}
}

func (uc *implUseCase) deliverAll(ctx context.Context, event string, msg []byte) ws.DispatchOutput {
	delivered, dropped := uc.hub.broadcast(msg)
	uc.logger.Infof(ctx, "broadcast %s: delivered=%d dropped=%d", event, delivered, dropped)
	return ws.DispatchOutput{Delivered: delivered, Dropped: dropped}
}

func newNotification(n ws.NotificationContent) ws.Notification {
	return ws.Notification{
		ID:        id.New(),
		Type:      orDefault(n.Type, ws.DefaultNotificationType),
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		Timestamp: time.Now().UTC(),
	}
}

func buildProductAlert(productID string, a ws.ProductAlertContent) ([]byte, string, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" || strings.TrimSpace(a.AlertType) == "" {
		return nil, "", fmt.Errorf("%w: productId and alert.alertType are required", ws.ErrInvalidInput)
	}
	if !ws.ValidEntityID(productID) {
		return nil, "", fmt.Errorf("%w: productId", ws.ErrInvalidEntityID)
	}

	payload := ws.ProductAlert{
		ID:        id.New(),
		ProductID: productID,
		AlertType: strings.TrimSpace(a.AlertType),
		Type:      orDefault(a.Type, ws.DefaultProductAlertType),
		Title:     a.Title,
		Message:   a.Message,
		Data:      a.Data,
		Timestamp: time.Now().UTC(),
	}
	msg, err := ws.NewEnvelope(ws.EventProductAlert, payload)
	if err != nil {
		return nil, "", err
	}
	return msg, productID, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
