package auth

import (
	"context"
	"testing"
)

func TestChannelPolicyCanJoin(t *testing.T) {
	policy := NewChannelPolicy()
	ctx := context.Background()

	tests := []struct {
		name    string
		subject Subject
		channel string
		wantErr bool
	}{
		{"anonymous order", Subject{}, "order:O1", true},
		{"user order", Subject{UserID: "u1"}, "order:O1", false},
		{"user product", Subject{UserID: "u1"}, "product:P1", false},
		{"own user channel", Subject{UserID: "u1"}, "user:u1", false},
		{"foreign user channel", Subject{UserID: "u1"}, "user:u2", true},
		{"admin channel as user", Subject{UserID: "u1"}, "admin:all", true},
		{"admin channel as admin", Subject{UserID: "u1", Admin: true}, "admin:all", false},
		{"unknown channel", Subject{UserID: "u1", Admin: true}, "room:lobby", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CanJoin(ctx, tt.subject, tt.channel)
			if (err != nil) != tt.wantErr {
				t.Errorf("CanJoin(%+v, %q) error = %v, wantErr %v", tt.subject, tt.channel, err, tt.wantErr)
			}
			if err != nil && !IsAuthorizationError(err) {
				t.Errorf("CanJoin(%+v, %q) returned %T, want *AuthorizationError", tt.subject, tt.channel, err)
			}
		})
	}
}
