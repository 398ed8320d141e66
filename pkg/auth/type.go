package auth

import (
	"time"

	"shop-notification-srv/pkg/log"
)

// Subject is the identity asking to join a channel.
type Subject struct {
	UserID string
	Admin  bool
}

// AuthorizationError is returned when a subject may not join a channel.
type AuthorizationError struct {
	UserID  string
	Channel string
	Reason  string
}

// SecurityEventType names a security-relevant event.
type SecurityEventType string

// SecurityEvent is a single security-relevant occurrence.
type SecurityEvent struct {
	Type      SecurityEventType
	Subject   string
	Resource  string
	Reason    string
	Timestamp time.Time
}

// SecurityLogger writes security events with a stable prefix so they can be
// grepped out of the regular log stream.
type SecurityLogger struct {
	logger log.Logger
}

type channelPolicy struct{}
