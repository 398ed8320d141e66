package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shop-notification-srv/config"
	configRedis "shop-notification-srv/config/redis"
	"shop-notification-srv/internal/httpserver"
	"shop-notification-srv/internal/middleware"
	"shop-notification-srv/internal/websocket/delivery/kafka"
	"shop-notification-srv/internal/websocket/usecase"
	"shop-notification-srv/pkg/jwt"
	"shop-notification-srv/pkg/log"
	pkgRedis "shop-notification-srv/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	defer logger.Sync()

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof(ctx, "Starting notification service (env=%s)...", cfg.Environment.Name)

	// Redis - optional Pub/Sub ingress
	var redisClient pkgRedis.IRedis
	if cfg.Redis.Enabled {
		redisClient, err = configRedis.Connect(ctx, cfg.Redis)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
			return
		}
		defer configRedis.Disconnect(redisClient)
		logger.Infof(ctx, "Redis client initialized (patterns=%v)", cfg.Redis.Patterns)
	}

	// JWT - optional handshake verification
	var jwtValidator jwt.Validator
	if cfg.JWT.SecretKey != "" {
		jwtValidator, err = jwt.NewValidator(jwt.Config{
			SecretKey: cfg.JWT.SecretKey,
			Issuer:    cfg.JWT.Issuer,
		})
		if err != nil {
			logger.Errorf(ctx, "Failed to initialize JWT validator: %v", err)
			return
		}
		logger.Info(ctx, "JWT validator initialized")
	}

	// Kafka - optional ingress
	var kafkaCfg *kafka.Config
	if cfg.Kafka.Enabled {
		kafkaCfg = &kafka.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		}
		logger.Infof(ctx, "Kafka ingress enabled (topic=%s, group=%s)", cfg.Kafka.Topic, cfg.Kafka.GroupID)
	}

	srv, err := httpserver.New(logger, httpserver.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		Mode:            cfg.Server.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		WebSocket: httpserver.WSConfig{
			Path:            cfg.WebSocket.Path,
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
			Options: usecase.Options{
				PingInterval:   cfg.WebSocket.PingInterval,
				PongWait:       cfg.WebSocket.PongWait,
				WriteWait:      cfg.WebSocket.WriteWait,
				MaxMessageSize: cfg.WebSocket.MaxMessageSize,
				MaxFrameSize:   cfg.WebSocket.MaxFrameSize,
				SendBufferSize: cfg.WebSocket.SendBufferSize,
				MaxConnections: cfg.WebSocket.MaxConnections,
				InboundRate:    cfg.WebSocket.InboundRate,
				InboundBurst:   cfg.WebSocket.InboundBurst,
			},
		},
		JWTValidator: jwtValidator,
		Admin: middleware.Config{
			AdminSecret:  cfg.Admin.Secret,
			SecretHeader: cfg.Admin.SecretHeader,
		},
		Redis:         redisClient,
		RedisPatterns: cfg.Redis.Patterns,
		Kafka:         kafkaCfg,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize server: %v", err)
		return
	}

	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "Server error: %v", err)
		return
	}

	logger.Info(context.Background(), "Notification service stopped gracefully")
}
