package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidatesAddress(t *testing.T) {
	tests := []struct {
		name string
		cfg  RedisConfig
		want error
	}{
		{name: "empty host", cfg: RedisConfig{Port: 6379}, want: ErrHostRequired},
		{name: "zero port", cfg: RedisConfig{Host: "localhost"}, want: ErrInvalidPort},
		{name: "port out of range", cfg: RedisConfig{Host: "localhost", Port: 70000}, want: ErrInvalidPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
