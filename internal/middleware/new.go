package middleware

import (
	"shop-notification-srv/pkg/auth"
	"shop-notification-srv/pkg/log"
)

// Config configures the control-plane middlewares.
type Config struct {
	Production   bool
	AdminSecret  string
	SecretHeader string
}

type Middleware struct {
	l        log.Logger
	security *auth.SecurityLogger
	cfg      Config
}

func New(logger log.Logger, cfg Config) Middleware {
	if cfg.SecretHeader == "" {
		cfg.SecretHeader = DefaultSecretHeader
	}
	return Middleware{
		l:        logger,
		security: auth.NewSecurityLogger(logger),
		cfg:      cfg,
	}
}

// SecretHeader is the header carrying the control-plane secret.
func (m Middleware) SecretHeader() string {
	return m.cfg.SecretHeader
}
