package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"shop-notification-srv/pkg/log"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw Middleware, reached *bool) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(log.NewNop()))
	r.POST("/admin/x", mw.AdminSecret(), func(c *gin.Context) {
		*reached = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestAdminSecret(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		header      string
		wantStatus  int
		wantReached bool
	}{
		{"non-production bypass", Config{Production: false, AdminSecret: "s3cret"}, "", http.StatusOK, true},
		{"non-production without secret", Config{}, "", http.StatusOK, true},
		{"production match", Config{Production: true, AdminSecret: "s3cret"}, "s3cret", http.StatusOK, true},
		{"production mismatch", Config{Production: true, AdminSecret: "s3cret"}, "wrong", http.StatusUnauthorized, false},
		{"production missing header", Config{Production: true, AdminSecret: "s3cret"}, "", http.StatusUnauthorized, false},
		{"production unset secret", Config{Production: true}, "anything", http.StatusInternalServerError, false},
		{"custom header", Config{Production: true, AdminSecret: "s3cret", SecretHeader: "X-Internal-Key"}, "s3cret", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			r := newRouter(New(log.NewNop(), tt.cfg), &reached)

			req := httptest.NewRequest(http.MethodPost, "/admin/x", nil)
			if tt.header != "" {
				name := tt.cfg.SecretHeader
				if name == "" {
					name = DefaultSecretHeader
				}
				req.Header.Set(name, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantReached, reached)
			if tt.wantStatus != http.StatusOK {
				assert.Contains(t, w.Body.String(), `"ok":false`)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	reached := false
	r := newRouter(New(log.NewNop(), Config{}), &reached)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(NewCORSConfig([]string{"https://shop.example.com"}, "")))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), DefaultSecretHeader)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
