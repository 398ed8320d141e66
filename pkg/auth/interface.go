package auth

import (
	"context"

	"shop-notification-srv/pkg/log"
)

// Authorizer decides whether a subject may join a channel. It is the only
// authorization policy in the service.
type Authorizer interface {
	CanJoin(ctx context.Context, subject Subject, channel string) error
}

// NewChannelPolicy returns the default Authorizer:
//   - admin:all requires an admin subject;
//   - user:<id> is only joinable by that user;
//   - order:<id> and product:<id> are open to any authenticated user.
func NewChannelPolicy() Authorizer {
	return channelPolicy{}
}

// NewSecurityLogger creates a SecurityLogger on top of logger.
func NewSecurityLogger(logger log.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger}
}
