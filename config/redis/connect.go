package redis

import (
	"context"
	"fmt"

	"shop-notification-srv/config"
	pkgRedis "shop-notification-srv/pkg/redis"
)

// Connect opens the Redis client used by the pub/sub ingress and readiness probe.
func Connect(ctx context.Context, cfg config.RedisConfig) (pkgRedis.IRedis, error) {
	client, err := pkgRedis.New(ctx, pkgRedis.RedisConfig{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Password:        cfg.Password,
		DB:              cfg.DB,
		UseTLS:          cfg.UseTLS,
		MaxRetries:      cfg.MaxRetries,
		MinIdleConns:    cfg.MinIdleConns,
		PoolSize:        cfg.PoolSize,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("redis connect %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return client, nil
}

// Disconnect closes client if it is non-nil.
func Disconnect(client pkgRedis.IRedis) error {
	if client == nil {
		return nil
	}
	return client.Close()
}
