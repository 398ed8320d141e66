package errors

const (
	MessageBadRequest   = "Bad request"
	MessageUnauthorized = "Unauthorized"
	MessageForbidden    = "Forbidden"
	MessageInternal     = "Internal server error"
)
