package websocket

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidMessage        = errors.New("malformed message")
	ErrUnknownEvent          = errors.New("unknown event")
	ErrUnknownDispatchKind   = errors.New("unknown dispatch kind")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrMissingUserID         = errors.New("userId is required")
	ErrInvalidUserID         = errors.New("invalid userId")
	ErrMissingToken          = errors.New("token is required")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrIdentityMismatch      = errors.New("userId does not match token subject")
	ErrInvalidEntityID       = errors.New("invalid entity id")
	ErrChannelForbidden      = errors.New("channel not allowed")
	ErrMaxConnectionsReached = errors.New("maximum connections reached")
	ErrHubClosed             = errors.New("hub is shut down")
)
