package usecase

import (
	"sync"
	"sync/atomic"

	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/log"
)

// Hub is the single registry of live connections and channel membership.
// One RWMutex guards all maps; sends happen under the read lock so a
// connection's send channel is never closed while a writer holds it.
type Hub struct {
	mu sync.RWMutex

	// connection id -> connection
	connections map[string]*Connection

	// channel name -> set of connection ids
	channels map[string]map[string]struct{}

	// connection id -> set of channel names
	memberships map[string]map[string]struct{}

	maxConnections int
	closed         bool

	sent   atomic.Uint64
	failed atomic.Uint64

	logger log.Logger
}

func newHub(logger log.Logger, maxConnections int) *Hub {
	return &Hub{
		connections:    make(map[string]*Connection),
		channels:       make(map[string]map[string]struct{}),
		memberships:    make(map[string]map[string]struct{}),
		maxConnections: maxConnections,
		logger:         logger,
	}
}

// add registers c. It fails once the hub is shut down or full.
func (h *Hub) add(c *Connection) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ws.ErrHubClosed
	}
	if h.maxConnections > 0 && len(h.connections) >= h.maxConnections {
		return ws.ErrMaxConnectionsReached
	}
	h.connections[c.id] = c
	h.memberships[c.id] = make(map[string]struct{})
	return nil
}

// remove drops c from the arena and from every channel, then closes its
// send buffer. It reports false if c was already gone.
func (h *Hub) remove(c *Connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Connection) bool {
	if _, ok := h.connections[c.id]; !ok {
		return false
	}
	for name := range h.memberships[c.id] {
		h.leaveLocked(c.id, name)
	}
	delete(h.memberships, c.id)
	delete(h.connections, c.id)
	close(c.send)
	return true
}

// join is idempotent. Unknown connection ids are ignored.
func (h *Hub) join(connID, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.joinLocked(connID, channel)
}

func (h *Hub) joinLocked(connID, channel string) {
	joined, ok := h.memberships[connID]
	if !ok {
		return
	}
	members, ok := h.channels[channel]
	if !ok {
		members = make(map[string]struct{})
		h.channels[channel] = members
	}
	members[connID] = struct{}{}
	joined[channel] = struct{}{}
}

// leave is a no-op when connID is not a member.
func (h *Hub) leave(connID, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(connID, channel)
}

func (h *Hub) leaveLocked(connID, channel string) {
	if members, ok := h.channels[channel]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.channels, channel)
		}
	}
	if joined, ok := h.memberships[connID]; ok {
		delete(joined, channel)
	}
}

// membersOf returns a snapshot of the connection ids in channel.
func (h *Hub) membersOf(channel string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := h.channels[channel]
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	return ids
}

// channelsOf returns a snapshot of the channels connID belongs to.
func (h *Hub) channelsOf(connID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	joined := h.memberships[connID]
	names := make([]string, 0, len(joined))
	for name := range joined {
		names = append(names, name)
	}
	return names
}

// bind attaches identity to c and swaps its default channels. A previous
// identity's user channel is left when the user changes, and admin:all is
// left when the new role is not admin. Other channels are kept.
func (h *Hub) bind(c *Connection, identity ws.Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.connections[c.id]; !ok {
		return
	}
	if prev := c.identity; prev != nil {
		if prev.UserID != identity.UserID {
			h.leaveLocked(c.id, ws.UserChannel(prev.UserID))
		}
		if prev.IsAdmin() && !identity.IsAdmin() {
			h.leaveLocked(c.id, ws.ChannelAdmin)
		}
	}

	c.identity = &identity
	h.joinLocked(c.id, ws.UserChannel(identity.UserID))
	if identity.IsAdmin() {
		h.joinLocked(c.id, ws.ChannelAdmin)
	}
}

// identityOf returns the identity bound to c, if any.
func (h *Hub) identityOf(c *Connection) (ws.Identity, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if c.identity == nil {
		return ws.Identity{}, false
	}
	return *c.identity, true
}

// sendToConn queues message for one connection.
func (h *Hub) sendToConn(c *Connection, message []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.connections[c.id]; !ok {
		return false
	}
	return h.enqueueLocked(c, message)
}

// sendToChannels queues message once for every connection in the union of
// channels. It returns delivered and dropped counts.
func (h *Hub) sendToChannels(message []byte, channels ...string) (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[string]struct{})
	delivered, dropped := 0, 0
	for _, name := range channels {
		for id := range h.channels[name] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if h.enqueueLocked(h.connections[id], message) {
				delivered++
			} else {
				dropped++
			}
		}
	}
	return delivered, dropped
}

// broadcast queues message for every live connection.
func (h *Hub) broadcast(message []byte) (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered, dropped := 0, 0
	for _, c := range h.connections {
		if h.enqueueLocked(c, message) {
			delivered++
		} else {
			dropped++
		}
	}
	return delivered, dropped
}

// enqueueLocked never blocks. A full send buffer drops the message.
func (h *Hub) enqueueLocked(c *Connection, message []byte) bool {
	if c == nil {
		return false
	}
	select {
	case c.send <- message:
		h.sent.Add(1)
		return true
	default:
		h.failed.Add(1)
		h.logger.Warnf(c.ctx, "send buffer full, dropping message for connection %s", c.id)
		return false
	}
}

func (h *Hub) stats() ws.HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make(map[string]struct{})
	authenticated := 0
	for _, c := range h.connections {
		if c.identity != nil {
			authenticated++
			users[c.identity.UserID] = struct{}{}
		}
	}
	return ws.HubStats{
		TotalConnections: authenticated,
		ConnectedSockets: len(h.connections),
		UniqueUsers:      len(users),
		MessagesSent:     h.sent.Load(),
		MessagesFailed:   h.failed.Load(),
	}
}

// closeAll removes every connection and refuses new ones.
func (h *Hub) closeAll() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	n := 0
	for _, c := range h.connections {
		if h.removeLocked(c) {
			n++
		}
	}
	return n
}
