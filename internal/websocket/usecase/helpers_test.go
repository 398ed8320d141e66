package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/id"
	"shop-notification-srv/pkg/jwt"
	"shop-notification-srv/pkg/log"
)

func newTestUseCase(t *testing.T, verifier jwt.Validator) *implUseCase {
	t.Helper()
	return newUseCase(log.NewNop(), Options{}, nil, verifier)
}

// newTestConn registers a transport-less connection. Frames are fed with
// handleFrame and outbound events are read from send.
func newTestConn(t *testing.T, uc *implUseCase) *Connection {
	t.Helper()
	return newBufferedTestConn(t, uc, 32)
}

func newBufferedTestConn(t *testing.T, uc *implUseCase, buffer int) *Connection {
	t.Helper()
	c := &Connection{
		id:       id.NewConnectionID(),
		hub:      uc.hub,
		joinedAt: time.Now(),
		send:     make(chan []byte, buffer),
		opts:     uc.opts,
		ctx:      context.Background(),
		logger:   log.NewNop(),
	}
	require.NoError(t, uc.hub.add(c))
	return c
}

func sendFrame(t *testing.T, uc *implUseCase, c *Connection, event string, data any) {
	t.Helper()
	frame, err := ws.NewEnvelope(event, data)
	require.NoError(t, err)
	uc.handleFrame(c, frame)
}

// drain returns every queued event on c without blocking.
func drain(t *testing.T, c *Connection) []ws.Envelope {
	t.Helper()
	var out []ws.Envelope
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return out
			}
			var env ws.Envelope
			require.NoError(t, json.Unmarshal(msg, &env))
			out = append(out, env)
		default:
			return out
		}
	}
}

func eventNames(envs []ws.Envelope) []string {
	names := make([]string, 0, len(envs))
	for _, e := range envs {
		names = append(names, e.Event)
	}
	return names
}

func authenticate(t *testing.T, uc *implUseCase, c *Connection, userID, role string) {
	t.Helper()
	sendFrame(t, uc, c, ws.EventAuthenticate, map[string]string{"userId": userID, "userRole": role})
	envs := drain(t, c)
	require.Len(t, envs, 1)
	require.Equal(t, ws.EventAuthenticated, envs[0].Event)
}
