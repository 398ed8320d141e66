package response

import "shop-notification-srv/pkg/errors"

// Resp is the envelope every control-plane endpoint answers with.
type Resp struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ErrorMapping maps domain errors to the HTTP error reported for them.
type ErrorMapping map[error]*errors.HTTPError
