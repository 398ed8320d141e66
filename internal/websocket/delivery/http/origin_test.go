package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckOrigin(t *testing.T) {
	allowed := []string{"https://shop.example.com"}

	tests := []struct {
		name   string
		env    string
		origin string
		want   bool
	}{
		{"no origin", "production", "", true},
		{"allowed in production", "production", "https://shop.example.com", true},
		{"localhost in production", "production", "http://localhost:3000", false},
		{"unknown in production", "production", "https://evil.example", false},
		{"empty env is production", "", "http://localhost:3000", false},
		{"localhost in development", "development", "http://localhost:3000", true},
		{"loopback in development", "development", "http://127.0.0.1:5173", true},
		{"private subnet in staging", "staging", "http://192.168.1.20:3000", true},
		{"public ip in staging", "staging", "http://8.8.8.8", false},
		{"garbage origin", "development", "::not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newUpgrader(Config{Environment: tt.env, AllowedOrigins: allowed})
			req := httptest.NewRequest("GET", "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, up.CheckOrigin(req))
		})
	}
}
