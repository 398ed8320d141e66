package websocket

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleUser, NormalizeRole(""))
	assert.Equal(t, RoleUser, NormalizeRole("  "))
	assert.Equal(t, RoleAdmin, NormalizeRole(" admin "))
	assert.Equal(t, RoleUser, NormalizeRole("staff"))
	assert.Equal(t, RoleUser, NormalizeRole("superadmin"))
}

func TestValidUserID(t *testing.T) {
	for _, id := range []string{"u1", "42", "alice@example.com", "user.42", "auth0|5f7c8ec7", strings.Repeat("a", MaxUserIDLength)} {
		assert.True(t, ValidUserID(id), id)
	}
	for _, id := range []string{"", "a\nb", "a\x7fb", strings.Repeat("a", MaxUserIDLength+1)} {
		assert.False(t, ValidUserID(id), "%q", id)
	}
}

func TestFlexString(t *testing.T) {
	var p AuthenticatePayload
	require.NoError(t, json.Unmarshal([]byte(`{"userId": 42}`), &p))
	assert.Equal(t, "42", p.UserID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"userId": " u-7 "}`), &p))
	assert.Equal(t, "u-7", p.UserID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"userId": null}`), &p))
	assert.Empty(t, p.UserID.String())

	assert.Error(t, json.Unmarshal([]byte(`{"userId": true}`), &p))
}

func TestParseEntityID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"bare string", `"O1"`, "O1", false},
		{"bare number", `17`, "17", false},
		{"object", `{"orderId":"O-2"}`, "O-2", false},
		{"object number", `{"orderId":5}`, "5", false},
		{"object wrong key", `{"productId":"P1"}`, "", true},
		{"empty", ``, "", true},
		{"empty string", `""`, "", true},
		{"bad characters", `"a:b"`, "", true},
		{"too long", `"` + strings.Repeat("a", 65) + `"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntityID(json.RawMessage(tt.raw), "orderId")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEntityID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewEnvelope(t *testing.T) {
	b, err := NewEnvelope(EventPong, PongPayload{})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(b, &env))
	assert.Equal(t, EventPong, env.Event)
	assert.Contains(t, string(env.Data), "timestamp")

	b, err = NewEnvelope(EventPing, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"ping"}`, string(b))
}
