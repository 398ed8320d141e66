package auth

const (
	SecurityEventAuthFailure    SecurityEventType = "auth_failure"
	SecurityEventAccessDenied   SecurityEventType = "access_denied"
	SecurityEventSecretMismatch SecurityEventType = "secret_mismatch"
)

const (
	channelAdmin         = "admin:all"
	channelUserPrefix    = "user:"
	channelOrderPrefix   = "order:"
	channelProductPrefix = "product:"
)
