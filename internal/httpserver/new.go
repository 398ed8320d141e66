package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"shop-notification-srv/internal/middleware"
	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/internal/websocket/delivery/kafka"
	"shop-notification-srv/internal/websocket/delivery/redis"
	"shop-notification-srv/internal/websocket/usecase"
	"shop-notification-srv/pkg/auth"
	"shop-notification-srv/pkg/jwt"
	"shop-notification-srv/pkg/log"
	pkgRedis "shop-notification-srv/pkg/redis"
)

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) is responsible for starting background services and HTTP serving.
type HTTPServer struct {
	// Server configuration
	gin             *gin.Engine
	logger          log.Logger
	host            string
	port            int
	production      bool
	shutdownTimeout time.Duration

	// WebSocket core
	wsUC     ws.UseCase
	wsPath   string
	wsConfig WSConfig

	// Control plane
	mw             middleware.Middleware
	allowedOrigins []string

	// Brokers (optional)
	redis           pkgRedis.IRedis
	redisSubscriber redis.Subscriber
	kafkaConsumer   *kafka.Consumer
}

// WSConfig is the WebSocket part of Config.
type WSConfig struct {
	Path            string
	ReadBufferSize  int
	WriteBufferSize int
	Options         usecase.Options
}

// Config is the constructor input for HTTPServer.
type Config struct {
	// Server configuration
	Host            string
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// WebSocket configuration
	WebSocket WSConfig

	// Auth & security
	JWTValidator jwt.Validator // optional
	Admin        middleware.Config

	// Brokers (optional)
	Redis         pkgRedis.IRedis
	RedisPatterns []string
	Kafka         *kafka.Config
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start any goroutines. Use (*HTTPServer).Run() to start the service.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	if cfg.Mode == "" {
		cfg.Mode = gin.ReleaseMode
	}
	gin.SetMode(cfg.Mode)

	if cfg.WebSocket.Path == "" {
		cfg.WebSocket.Path = "/ws"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	production := cfg.Environment == "production"
	cfg.Admin.Production = production
	if production && cfg.Admin.AdminSecret == "" {
		logger.Error(context.Background(), "ADMIN_SECRET is not set: control-plane requests will fail with 500")
	}

	wsUC := usecase.New(logger, cfg.WebSocket.Options, auth.NewChannelPolicy(), cfg.JWTValidator)

	srv := &HTTPServer{
		// Server configuration
		gin:             gin.New(),
		logger:          logger,
		host:            cfg.Host,
		port:            cfg.Port,
		production:      production,
		shutdownTimeout: cfg.ShutdownTimeout,

		// WebSocket core
		wsUC:     wsUC,
		wsPath:   cfg.WebSocket.Path,
		wsConfig: cfg.WebSocket,

		// Control plane
		mw:             middleware.New(logger, cfg.Admin),
		allowedOrigins: cfg.AllowedOrigins,

		// Brokers
		redis: cfg.Redis,
	}

	if cfg.Redis != nil {
		srv.redisSubscriber = redis.New(cfg.Redis, wsUC, logger, cfg.RedisPatterns)
	}
	if cfg.Kafka != nil {
		srv.kafkaConsumer = kafka.New(*cfg.Kafka, wsUC, logger)
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

// validate ensures all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.port <= 0 {
		return errors.New("port is required")
	}
	return nil
}
