package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/log"
)

func TestHubJoinIsIdempotent(t *testing.T) {
	uc := newTestUseCase(t, nil)
	c := newTestConn(t, uc)

	uc.hub.join(c.id, "order:O1")
	uc.hub.join(c.id, "order:O1")

	assert.Equal(t, []string{c.id}, uc.hub.membersOf("order:O1"))
	assert.Equal(t, []string{"order:O1"}, uc.hub.channelsOf(c.id))
}

func TestHubLeaveWhenAbsentIsNoop(t *testing.T) {
	uc := newTestUseCase(t, nil)
	c := newTestConn(t, uc)
	other := newTestConn(t, uc)

	uc.hub.join(other.id, "order:O1")
	uc.hub.leave(c.id, "order:O1")
	uc.hub.leave(c.id, "order:missing")

	assert.Equal(t, []string{other.id}, uc.hub.membersOf("order:O1"))
	assert.Empty(t, uc.hub.membersOf("order:missing"))
}

func TestHubRemoveClearsEveryChannel(t *testing.T) {
	uc := newTestUseCase(t, nil)
	c := newTestConn(t, uc)
	other := newTestConn(t, uc)

	authenticate(t, uc, c, "u1", "ADMIN")
	channels := []string{"order:O1", "order:O2", "product:P1"}
	for _, name := range channels {
		uc.hub.join(c.id, name)
		uc.hub.join(other.id, name)
	}

	require.True(t, uc.hub.remove(c))

	for _, name := range append(channels, ws.UserChannel("u1"), ws.ChannelAdmin) {
		assert.NotContains(t, uc.hub.membersOf(name), c.id, name)
	}
	assert.Len(t, uc.hub.membersOf("order:O1"), 1)
	assert.Empty(t, uc.hub.channelsOf(c.id))

	_, open := <-c.send
	assert.False(t, open, "send buffer must be closed")

	assert.False(t, uc.hub.remove(c), "second remove is a no-op")
	assert.Equal(t, 1, uc.hub.stats().ConnectedSockets)
}

func TestHubMembersOfReturnsSnapshot(t *testing.T) {
	uc := newTestUseCase(t, nil)
	c := newTestConn(t, uc)
	uc.hub.join(c.id, "product:P1")

	members := uc.hub.membersOf("product:P1")
	uc.hub.leave(c.id, "product:P1")

	assert.Equal(t, []string{c.id}, members)
	assert.Empty(t, uc.hub.membersOf("product:P1"))
}

func TestHubSendToChannelsDeliversOncePerConnection(t *testing.T) {
	uc := newTestUseCase(t, nil)
	both := newTestConn(t, uc)
	onlyB := newTestConn(t, uc)

	uc.hub.join(both.id, "a")
	uc.hub.join(both.id, "b")
	uc.hub.join(onlyB.id, "b")

	delivered, dropped := uc.hub.sendToChannels([]byte(`{"event":"x"}`), "a", "b")

	assert.Equal(t, 2, delivered)
	assert.Zero(t, dropped)
	assert.Len(t, drain(t, both), 1)
	assert.Len(t, drain(t, onlyB), 1)
}

func TestHubFullBufferDropsWithoutBlocking(t *testing.T) {
	uc := newTestUseCase(t, nil)
	slow := newBufferedTestConn(t, uc, 1)
	fast := newTestConn(t, uc)

	msg := []byte(`{"event":"system_notification"}`)
	uc.hub.broadcast(msg)
	delivered, dropped := uc.hub.broadcast(msg)

	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, dropped)
	assert.Len(t, drain(t, slow), 1)
	assert.Len(t, drain(t, fast), 2)
	assert.Equal(t, uint64(1), uc.hub.stats().MessagesFailed)
}

func TestHubMaxConnections(t *testing.T) {
	uc := newUseCase(log.NewNop(), Options{MaxConnections: 1}, nil, nil)
	newTestConn(t, uc)

	err := uc.hub.add(&Connection{id: "second", send: make(chan []byte, 1)})
	assert.ErrorIs(t, err, ws.ErrMaxConnectionsReached)
}

func TestHubCloseAllRefusesNewConnections(t *testing.T) {
	uc := newTestUseCase(t, nil)
	c := newTestConn(t, uc)
	uc.hub.join(c.id, "order:O1")

	assert.Equal(t, 1, uc.hub.closeAll())
	assert.Empty(t, uc.hub.membersOf("order:O1"))
	assert.ErrorIs(t, uc.hub.add(&Connection{id: "late", send: make(chan []byte, 1)}), ws.ErrHubClosed)
}

func TestHubStats(t *testing.T) {
	uc := newTestUseCase(t, nil)
	a1 := newTestConn(t, uc)
	a2 := newTestConn(t, uc)
	b := newTestConn(t, uc)
	newTestConn(t, uc) // never authenticates

	authenticate(t, uc, a1, "A", "")
	authenticate(t, uc, a2, "A", "")
	authenticate(t, uc, b, "B", "")

	stats := uc.hub.stats()
	assert.Equal(t, 3, stats.TotalConnections)
	assert.Equal(t, 4, stats.ConnectedSockets)
	assert.Equal(t, 2, stats.UniqueUsers)
}
