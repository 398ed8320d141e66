package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"shop-notification-srv/pkg/errors"
	"shop-notification-srv/pkg/response"
)

const DefaultSecretHeader = "X-Admin-Secret"

// AdminSecret gates control-plane requests behind the shared secret header.
// Outside production the check is skipped. In production an unset secret
// fails every request with 500 instead of disabling the check.
func (m Middleware) AdminSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.cfg.Production {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		if m.cfg.AdminSecret == "" {
			m.l.Errorf(ctx, "Admin secret not configured in production | Path: %s", c.Request.URL.Path)
			response.Error(c, errors.NewInternalHTTPError("admin secret not configured"))
			c.Abort()
			return
		}

		got := c.GetHeader(m.cfg.SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(m.cfg.AdminSecret)) != 1 {
			m.security.LogSecretMismatch(ctx, c.ClientIP(), c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
