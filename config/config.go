package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// EnvProduction is the environment name that enables strict checks.
const EnvProduction = "production"

type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	Server ServerConfig
	Logger LoggerConfig

	// Broker Configuration
	Redis RedisConfig
	Kafka KafkaConfig

	// WebSocket Configuration
	WebSocket WebSocketConfig

	// Authentication & Security Configuration
	JWT   JWTConfig
	Admin AdminConfig
}

// EnvironmentConfig is the configuration for environment-aware features
type EnvironmentConfig struct {
	Name string `env:"ENV" envDefault:"development"`
}

// IsProduction reports whether the service runs in production.
func (e EnvironmentConfig) IsProduction() bool {
	return e.Name == EnvProduction
}

// ServerConfig is the configuration for the HTTP and WebSocket listener
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"3001"`
	Mode            string        `env:"SERVER_MODE" envDefault:"release"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// RedisConfig is the configuration for the optional Redis ingress.
// Only standalone mode is supported.
type RedisConfig struct {
	Enabled  bool     `env:"REDIS_ENABLED" envDefault:"false"`
	Host     string   `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int      `env:"REDIS_PORT" envDefault:"6379"`
	Password string   `env:"REDIS_PASSWORD"`
	DB       int      `env:"REDIS_DB" envDefault:"0"`
	UseTLS   bool     `env:"REDIS_USE_TLS" envDefault:"false"`
	Patterns []string `env:"REDIS_PATTERNS" envSeparator:"," envDefault:"notify:*"`

	// Connection pool settings
	MaxRetries      int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	MinIdleConns    int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"10"`
	PoolSize        int           `env:"REDIS_POOL_SIZE" envDefault:"100"`
	PoolTimeout     time.Duration `env:"REDIS_POOL_TIMEOUT" envDefault:"4s"`
	ConnMaxIdleTime time.Duration `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"REDIS_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// KafkaConfig is the configuration for the optional Kafka ingress
type KafkaConfig struct {
	Enabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"notifications"`
	GroupID string   `env:"KAFKA_GROUP_ID" envDefault:"shop-notification-srv"`
}

// WebSocketConfig is the configuration for WebSocket connections
type WebSocketConfig struct {
	Path            string        `env:"WS_PATH" envDefault:"/ws"`
	PingInterval    time.Duration `env:"WS_PING_INTERVAL" envDefault:"25s"`
	PongWait        time.Duration `env:"WS_PONG_WAIT" envDefault:"60s"`
	WriteWait       time.Duration `env:"WS_WRITE_WAIT" envDefault:"10s"`
	MaxMessageSize  int64         `env:"WS_MAX_MESSAGE_SIZE" envDefault:"4096"`
	MaxFrameSize    int64         `env:"WS_MAX_FRAME_SIZE" envDefault:"65536"`
	ReadBufferSize  int           `env:"WS_READ_BUFFER_SIZE" envDefault:"1024"`
	WriteBufferSize int           `env:"WS_WRITE_BUFFER_SIZE" envDefault:"1024"`
	SendBufferSize  int           `env:"WS_SEND_BUFFER_SIZE" envDefault:"256"`
	MaxConnections  int           `env:"WS_MAX_CONNECTIONS" envDefault:"10000"`
	InboundRate     float64       `env:"WS_INBOUND_RATE" envDefault:"20"`
	InboundBurst    int           `env:"WS_INBOUND_BURST" envDefault:"40"`
}

// JWTConfig is the configuration for optional handshake token verification.
// An empty SecretKey disables verification.
type JWTConfig struct {
	SecretKey string `env:"JWT_SECRET_KEY"`
	Issuer    string `env:"JWT_ISSUER"`
}

// AdminConfig is the configuration for the control-plane shared secret
type AdminConfig struct {
	Secret       string `env:"ADMIN_SECRET"`
	SecretHeader string `env:"ADMIN_SECRET_HEADER" envDefault:"X-Admin-Secret"`
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string `env:"LOGGER_LEVEL" envDefault:"info"`
	Mode         string `env:"LOGGER_MODE" envDefault:"production"`
	Encoding     string `env:"LOGGER_ENCODING" envDefault:"json"`
	ColorEnabled bool   `env:"LOGGER_COLOR_ENABLED" envDefault:"false"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT %d is out of range", cfg.Server.Port)
	}

	ws := cfg.WebSocket
	if ws.PingInterval <= 0 || ws.PongWait <= 0 {
		return errors.New("WS_PING_INTERVAL and WS_PONG_WAIT must be positive")
	}
	if ws.PingInterval >= ws.PongWait {
		return fmt.Errorf("WS_PING_INTERVAL (%s) must be shorter than WS_PONG_WAIT (%s)", ws.PingInterval, ws.PongWait)
	}
	if ws.MaxMessageSize <= 0 {
		return errors.New("WS_MAX_MESSAGE_SIZE must be positive")
	}
	if ws.MaxFrameSize < ws.MaxMessageSize {
		return errors.New("WS_MAX_FRAME_SIZE must not be smaller than WS_MAX_MESSAGE_SIZE")
	}
	if ws.SendBufferSize <= 0 {
		return errors.New("WS_SEND_BUFFER_SIZE must be positive")
	}
	if ws.InboundRate <= 0 || ws.InboundBurst <= 0 {
		return errors.New("WS_INBOUND_RATE and WS_INBOUND_BURST must be positive")
	}

	if cfg.Kafka.Enabled {
		if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "" {
			return errors.New("KAFKA_BROKERS and KAFKA_TOPIC are required when KAFKA_ENABLED is set")
		}
	}

	if cfg.Admin.SecretHeader == "" {
		return errors.New("ADMIN_SECRET_HEADER must not be empty")
	}

	return nil
}
