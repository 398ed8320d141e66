package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25*time.Second, cfg.WebSocket.PingInterval)
	assert.Equal(t, 60*time.Second, cfg.WebSocket.PongWait)
	assert.Equal(t, "X-Admin-Secret", cfg.Admin.SecretHeader)
	assert.Equal(t, 256, cfg.WebSocket.SendBufferSize)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"notify:*"}, cfg.Redis.Patterns)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("WS_PING_INTERVAL", "5s")
	t.Setenv("WS_PONG_WAIT", "15s")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Environment.IsProduction())
	assert.Equal(t, 5*time.Second, cfg.WebSocket.PingInterval)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 3001},
			WebSocket: WebSocketConfig{
				PingInterval:   25 * time.Second,
				PongWait:       60 * time.Second,
				MaxMessageSize: 4096,
				MaxFrameSize:   65536,
				SendBufferSize: 256,
				InboundRate:    20,
				InboundBurst:   40,
			},
			Admin: AdminConfig{SecretHeader: "X-Admin-Secret"},
		}
	}

	require.NoError(t, validate(base()))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"ping not shorter than pong", func(c *Config) { c.WebSocket.PingInterval = c.WebSocket.PongWait }},
		{"frame smaller than message", func(c *Config) { c.WebSocket.MaxFrameSize = 10 }},
		{"zero send buffer", func(c *Config) { c.WebSocket.SendBufferSize = 0 }},
		{"kafka without topic", func(c *Config) { c.Kafka = KafkaConfig{Enabled: true, Brokers: []string{"k:9092"}} }},
		{"empty secret header", func(c *Config) { c.Admin.SecretHeader = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, validate(cfg))
		})
	}
}
