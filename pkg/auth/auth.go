package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("user %q may not join %s: %s", e.UserID, e.Channel, e.Reason)
}

// IsAuthorizationError reports whether err is (or wraps) an AuthorizationError.
func IsAuthorizationError(err error) bool {
	var authErr *AuthorizationError
	return errors.As(err, &authErr)
}

func (channelPolicy) CanJoin(_ context.Context, subject Subject, channel string) error {
	deny := func(reason string) error {
		return &AuthorizationError{UserID: subject.UserID, Channel: channel, Reason: reason}
	}

	if subject.UserID == "" {
		return deny("not authenticated")
	}

	switch {
	case channel == channelAdmin:
		if !subject.Admin {
			return deny("admin role required")
		}
		return nil
	case strings.HasPrefix(channel, channelUserPrefix):
		if strings.TrimPrefix(channel, channelUserPrefix) != subject.UserID {
			return deny("not the channel owner")
		}
		return nil
	case strings.HasPrefix(channel, channelOrderPrefix), strings.HasPrefix(channel, channelProductPrefix):
		return nil
	default:
		return deny("unknown channel")
	}
}

// Log writes event at warn level.
func (s *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.logger.Warnf(ctx, "SECURITY %s subject=%q resource=%q reason=%q at=%s",
		event.Type, event.Subject, event.Resource, event.Reason, event.Timestamp.UTC().Format(time.RFC3339))
}

// LogAuthFailure records a rejected handshake on a connection.
func (s *SecurityLogger) LogAuthFailure(ctx context.Context, connectionID, reason string) {
	s.Log(ctx, SecurityEvent{Type: SecurityEventAuthFailure, Subject: connectionID, Reason: reason})
}

// LogAccessDenied records a refused channel join.
func (s *SecurityLogger) LogAccessDenied(ctx context.Context, userID, channel, reason string) {
	s.Log(ctx, SecurityEvent{Type: SecurityEventAccessDenied, Subject: userID, Resource: channel, Reason: reason})
}

// LogSecretMismatch records a control-plane request with a bad shared secret.
func (s *SecurityLogger) LogSecretMismatch(ctx context.Context, remoteAddr, path string) {
	s.Log(ctx, SecurityEvent{Type: SecurityEventSecretMismatch, Subject: remoteAddr, Resource: path, Reason: "shared secret mismatch"})
}
