package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// IRedis is the subset of Redis the service relies on: health checks and
// pattern subscriptions for the control-plane ingress.
type IRedis interface {
	Ping(ctx context.Context) error
	PSubscribe(ctx context.Context, patterns ...string) *goredis.PubSub
	Close() error
}
