package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	ws "shop-notification-srv/internal/websocket"
)

// ProcessMessage decodes a broker message into one dispatch call.
func (uc *implUseCase) ProcessMessage(ctx context.Context, input ws.ProcessMessageInput) error {
	var (
		out ws.DispatchOutput
		err error
	)

	switch input.Kind {
	case ws.KindNotifyUser:
		var m notifyUserMessage
		if err = decode(input.Payload, &m); err == nil {
			out, err = uc.NotifyUser(ctx, ws.NotifyUserInput{UserID: m.UserID.String(), Notification: m.Notification})
		}
	case ws.KindSystemNotify:
		var m notifyAllMessage
		if err = decode(input.Payload, &m); err == nil {
			out, err = uc.NotifySystem(ctx, ws.NotifySystemInput{Notification: m.Notification})
		}
	case ws.KindAdminNotify:
		var m notifyAllMessage
		if err = decode(input.Payload, &m); err == nil {
			out, err = uc.NotifyAdmins(ctx, ws.NotifyAdminsInput{Notification: m.Notification})
		}
	case ws.KindOrderUpdate:
		var m orderUpdateMessage
		if err = decode(input.Payload, &m); err == nil {
			out, err = uc.UpdateOrder(ctx, ws.UpdateOrderInput{UserID: m.UserID.String(), OrderID: m.OrderID.String(), Update: m.Update})
		}
	case ws.KindProductAlert:
		var m productAlertMessage
		if err = decode(input.Payload, &m); err == nil {
			out, err = uc.AlertProduct(ctx, ws.AlertProductInput{UserID: m.UserID.String(), ProductID: m.ProductID.String(), Alert: m.Alert})
		}
	case ws.KindProductAlertAll:
		var m productAlertMessage
		if err = decode(input.Payload, &m); err == nil {
			out, err = uc.AlertProductAll(ctx, ws.AlertProductAllInput{ProductID: m.ProductID.String(), Alert: m.Alert})
		}
	default:
		err = fmt.Errorf("%w: %q", ws.ErrUnknownDispatchKind, input.Kind)
	}

	if err != nil {
		return fmt.Errorf("process %s message: %w", input.Source, err)
	}
	uc.logger.Debugf(ctx, "processed %s message kind=%s delivered=%d", input.Source, input.Kind, out.Delivered)
	return nil
}

func decode(payload []byte, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ws.ErrInvalidMessage, err)
	}
	return nil
}
