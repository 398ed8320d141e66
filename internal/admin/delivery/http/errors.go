package http

import (
	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/errors"
	"shop-notification-srv/pkg/response"
)

var errInvalidBody = errors.NewBadRequestHTTPError("invalid JSON body")

var errorMapping = response.ErrorMapping{
	ws.ErrInvalidInput:        errors.NewBadRequestHTTPError("missing required fields"),
	ws.ErrInvalidEntityID:     errors.NewBadRequestHTTPError("invalid entity id"),
	ws.ErrInvalidUserID:       errors.NewBadRequestHTTPError("invalid userId"),
	ws.ErrInvalidMessage:      errInvalidBody,
	ws.ErrUnknownDispatchKind: errors.NewBadRequestHTTPError("unknown dispatch kind"),
}
