package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-notification-srv/internal/middleware"
	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/log"
)

const testSecret = "s3cret"

func startServer(t *testing.T) (*HTTPServer, *httptest.Server) {
	t.Helper()
	srv, err := New(log.NewNop(), Config{
		Port:           3001,
		Mode:           gin.TestMode,
		Environment:    "production",
		AllowedOrigins: []string{"https://shop.example.com"},
		Admin:          middleware.Config{AdminSecret: testSecret},
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		_ = srv.wsUC.Shutdown(context.Background())
		ts.Close()
	})
	return srv, ts
}

func dialAuthenticated(t *testing.T, ts *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	frame, err := ws.NewEnvelope(ws.EventAuthenticate, map[string]string{"userId": userID})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, frame))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env ws.Envelope
	require.NoError(t, conn.ReadJSON(&env))
	require.Equal(t, ws.EventAuthenticated, env.Event)
	return conn
}

func post(t *testing.T, ts *httptest.Server, path, body, secret string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(middleware.DefaultSecretHeader, secret)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	_, ts := startServer(t)

	for _, path := range []string{"/health", "/ready"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, true, body["ok"], path)
	}
}

func TestWrongSecretNeverDelivers(t *testing.T) {
	_, ts := startServer(t)
	conn := dialAuthenticated(t, ts, "u1")

	body := `{"userId":"u1","notification":{"title":"hello"}}`
	resp := post(t, ts, "/admin/notify-user", body, "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	var netErr interface{ Timeout() bool }
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}

func TestRightSecretDelivers(t *testing.T) {
	srv, ts := startServer(t)
	conn := dialAuthenticated(t, ts, "u1")

	body := `{"userId":"u1","notification":{"title":"hello","message":"world"}}`
	resp := post(t, ts, "/admin/notify-user", body, testSecret)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env ws.Envelope
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, ws.EventNotification, env.Event)

	var n ws.Notification
	require.NoError(t, json.Unmarshal(env.Data, &n))
	assert.Equal(t, "hello", n.Title)
	assert.Equal(t, "world", n.Message)

	stats, err := srv.wsUC.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalConnections)
	// authenticated + notification
	assert.EqualValues(t, 2, stats.MessagesSent)
}

func TestStatsEndpoint(t *testing.T) {
	_, ts := startServer(t)
	dialAuthenticated(t, ts, "u1")
	dialAuthenticated(t, ts, "u1")

	resp, err := http.Get(ts.URL + "/admin/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		OK    bool           `json:"ok"`
		Stats map[string]int `json:"stats"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.OK)
	assert.Equal(t, 2, body.Stats["totalConnections"])
	assert.Equal(t, 1, body.Stats["uniqueUsers"])
}

func TestNewRequiresPort(t *testing.T) {
	_, err := New(log.NewNop(), Config{Mode: gin.TestMode})
	assert.Error(t, err)
}
