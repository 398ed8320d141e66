package redis

import (
	"context"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/log"
	pkgRedis "shop-notification-srv/pkg/redis"
)

// Subscriber turns Redis pub/sub messages on notify:<kind> channels into
// dispatch calls.
type Subscriber interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type subscriber struct {
	redis    pkgRedis.IRedis
	uc       ws.UseCase
	logger   log.Logger
	patterns []string

	// Lifecycle fields
	pubsub *goredis.PubSub
	wg     sync.WaitGroup
	quit   chan struct{}
	once   sync.Once
}

func New(redis pkgRedis.IRedis, uc ws.UseCase, logger log.Logger, patterns []string) Subscriber {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}
	return &subscriber{
		redis:    redis,
		uc:       uc,
		logger:   logger,
		patterns: patterns,
		quit:     make(chan struct{}),
	}
}
