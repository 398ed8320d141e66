package notifyclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"shop-notification-srv/pkg/log"
)

type outboundEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

var notificationEvents = map[string]string{
	wireNotification:       EventNotification,
	wireSystemNotification: EventSystemNotification,
	wireAdminNotification:  EventAdminNotification,
}

// Manager owns one logical session with the notification server. It keeps
// at most one transport open, re-authenticates after every reconnect and
// republishes normalized server events to local subscribers.
type Manager struct {
	cfg    Config
	logger log.Logger
	subs   *registry
	now    func() time.Time

	mu       sync.Mutex
	state    State
	identity Identity
	conn     *websocket.Conn
	session  context.Context
	cancel   context.CancelFunc

	writeMu sync.Mutex
}

func New(cfg Config) (*Manager, error) {
	if cfg.URL == "" {
		return nil, ErrMissingURL
	}
	cfg = cfg.withDefaults()
	return &Manager{
		cfg:    cfg,
		logger: cfg.Logger,
		subs:   newRegistry(cfg.Logger),
		now:    time.Now,
		state:  StateDisconnected,
	}, nil
}

// On registers cb for a local event. Callbacks run synchronously on the
// manager's read goroutine in registration order.
func (m *Manager) On(event string, cb Callback) SubscriptionID {
	return m.subs.add(event, cb)
}

// Off removes the given subscriptions, or all of them for event when no id
// is passed.
func (m *Manager) Off(event string, ids ...SubscriptionID) {
	m.subs.remove(event, ids...)
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns the identity sent on every (re)authentication.
func (m *Manager) Identity() (Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity, m.identity.UserID != ""
}

// Connect opens the transport and authenticates. A non-empty identity
// replaces the stored one; an empty one reuses it.
//
// When already connected no second transport is opened: authenticate is sent
// again on the live one. While connecting or reconnecting the identity is
// stored and used by the pending attempt.
//
// Only the default channels survive a reconnect. Orders and products joined
// with JoinOrder or JoinProduct must be joined again after
// connection:reconnected.
//
// A failed initial dial is returned and does not start the reconnect loop.
func (m *Manager) Connect(ctx context.Context, identity Identity) error {
	m.mu.Lock()
	if identity.UserID != "" {
		m.identity = identity
	}
	switch m.state {
	case StateConnected:
		conn, current := m.conn, m.identity
		m.mu.Unlock()
		if current.UserID == "" {
			return nil
		}
		return m.write(conn, wireAuthenticate, current)
	case StateConnecting, StateReconnecting:
		m.mu.Unlock()
		return nil
	}
	m.state = StateConnecting
	m.session, m.cancel = context.WithCancel(context.Background())
	session := m.session
	m.mu.Unlock()

	conn, err := m.dial(ctx, session)
	if err != nil {
		m.mu.Lock()
		if m.session == session {
			m.endSessionLocked()
		}
		m.mu.Unlock()
		m.subs.emit(EventConnectionError, ConnectionError{Err: err})
		return err
	}

	if !m.attach(session, conn) {
		conn.Close()
		return ErrNotConnected
	}
	return nil
}

// Disconnect stops any reconnect attempt and closes the transport
// immediately. The stored identity is kept.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	conn := m.conn
	wasConnected := m.state == StateConnected
	m.endSessionLocked()
	m.mu.Unlock()

	if conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
	}
	if wasConnected {
		m.subs.emit(EventConnectionLost, ConnectionLost{Reason: "client disconnect"})
	}
}

func (m *Manager) JoinOrder(orderID string) error {
	return m.send(wireJoinOrder, map[string]string{"orderId": orderID})
}

func (m *Manager) LeaveOrder(orderID string) error {
	return m.send(wireLeaveOrder, map[string]string{"orderId": orderID})
}

func (m *Manager) JoinProduct(productID string) error {
	return m.send(wireJoinProduct, map[string]string{"productId": productID})
}

func (m *Manager) LeaveProduct(productID string) error {
	return m.send(wireLeaveProduct, map[string]string{"productId": productID})
}

// Ping asks the server for a pong event.
func (m *Manager) Ping() error {
	return m.send(wirePing, nil)
}

func (m *Manager) endSessionLocked() {
	if m.cancel != nil {
		m.cancel()
	}
	m.conn = nil
	m.session, m.cancel = nil, nil
	m.state = StateDisconnected
}

// dial is bounded by ConnectTimeout and aborted when the session ends.
func (m *Manager) dial(ctx, session context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout)
	defer cancel()
	stop := context.AfterFunc(session, cancel)
	defer stop()

	conn, resp, err := m.cfg.Dialer.DialContext(dialCtx, m.cfg.URL, m.cfg.Header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %d)", m.cfg.URL, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", m.cfg.URL, err)
	}
	return conn, nil
}

// attach makes conn the live transport of session. It returns false when
// the session ended while dialing.
func (m *Manager) attach(session context.Context, conn *websocket.Conn) bool {
	m.mu.Lock()
	if m.session != session || session.Err() != nil {
		m.mu.Unlock()
		return false
	}
	m.conn = conn
	m.state = StateConnected
	identity := m.identity
	m.mu.Unlock()

	m.watchLiveness(conn)
	go m.readLoop(session, conn)

	m.subs.emit(EventConnectionEstablished, nil)
	if identity.UserID != "" {
		if err := m.write(conn, wireAuthenticate, identity); err != nil {
			m.logger.Warnf(context.Background(), "notifyclient: send authenticate: %v", err)
		}
	}
	return true
}

// watchLiveness drops the transport when neither frames nor server pings
// arrive within ReadTimeout.
func (m *Manager) watchLiveness(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(m.cfg.ReadTimeout))
	conn.SetPingHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(m.cfg.ReadTimeout))
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(m.cfg.WriteTimeout))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil
		}
		return err
	})
}

func (m *Manager) readLoop(session context.Context, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			m.lost(session, conn, err)
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(m.cfg.ReadTimeout))
		m.dispatch(data)
	}
}

// lost runs on the read goroutine of a transport that failed. Transports
// closed by Disconnect are no longer current and end here.
func (m *Manager) lost(session context.Context, conn *websocket.Conn, err error) {
	conn.Close()

	m.mu.Lock()
	if m.conn != conn {
		m.mu.Unlock()
		return
	}
	m.conn = nil
	m.state = StateReconnecting
	m.mu.Unlock()

	m.logger.Warnf(context.Background(), "notifyclient: connection lost: %v", err)
	m.subs.emit(EventConnectionLost, ConnectionLost{Reason: closeReason(err)})
	m.reconnect(session)
}

// reconnect retries with a doubling delay capped at ReconnectDelayMax.
func (m *Manager) reconnect(session context.Context) {
	ctx := context.Background()
	delay := m.cfg.ReconnectDelay

	for attempt := 1; attempt <= m.cfg.ReconnectAttempts; attempt++ {
		timer := time.NewTimer(delay)
		select {
		case <-session.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		m.subs.emit(EventConnectionReconnecting, Reconnecting{Attempt: attempt})
		conn, err := m.dial(session, session)
		if err != nil {
			if session.Err() != nil {
				return
			}
			m.logger.Warnf(ctx, "notifyclient: reconnect attempt %d/%d failed: %v", attempt, m.cfg.ReconnectAttempts, err)
			m.subs.emit(EventConnectionError, ConnectionError{Err: err})
			delay = min(delay*2, m.cfg.ReconnectDelayMax)
			continue
		}

		if !m.attach(session, conn) {
			conn.Close()
			return
		}
		m.logger.Infof(ctx, "notifyclient: reconnected after %d attempt(s)", attempt)
		m.subs.emit(EventConnectionReconnected, Reconnected{Attempts: attempt})
		return
	}

	m.mu.Lock()
	if m.session != session {
		m.mu.Unlock()
		return
	}
	m.endSessionLocked()
	m.mu.Unlock()

	m.logger.Errorf(ctx, "notifyclient: giving up after %d reconnect attempts", m.cfg.ReconnectAttempts)
	m.subs.emit(EventConnectionFailed, nil)
}

func (m *Manager) send(event string, data any) error {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	return m.write(conn, event, data)
}

func (m *Manager) write(conn *websocket.Conn, event string, data any) error {
	frame, err := json.Marshal(outboundEnvelope{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s: %w", event, err)
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(m.cfg.WriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return fmt.Errorf("write %s: %w", event, err)
	}
	return nil
}

// dispatch normalizes one server frame and republishes it. Frames that
// cannot be made sense of are logged and dropped.
func (m *Manager) dispatch(frame []byte) {
	ctx := context.Background()

	var env inboundEnvelope
	if err := json.Unmarshal(frame, &env); err != nil || env.Event == "" {
		m.logger.Warnf(ctx, "notifyclient: dropping malformed frame: %v", err)
		return
	}

	now := m.now()
	switch env.Event {
	case wireAuthenticated:
		identity, _ := m.Identity()
		m.subs.emit(EventAuthSuccess, normalizeAuthSuccess(env.Data, identity))
	case wireAuthError:
		m.subs.emit(EventAuthError, normalizeMessage(env.Data, "authentication failed"))
	case wireError:
		m.subs.emit(EventServerError, normalizeMessage(env.Data, "server error"))
	case wirePong:
		m.subs.emit(EventPong, normalizePong(env.Data, now))
	case wireNotification, wireSystemNotification, wireAdminNotification:
		n, err := normalizeNotification(env.Data, now)
		if err != nil {
			m.logger.Warnf(ctx, "notifyclient: dropping %s: %v", env.Event, err)
			return
		}
		m.subs.emit(notificationEvents[env.Event], n)
	case wireOrderUpdate:
		u, err := normalizeOrderUpdate(env.Data, now)
		if err != nil {
			m.logger.Warnf(ctx, "notifyclient: dropping %s: %v", env.Event, err)
			return
		}
		m.subs.emit(EventOrderUpdate, u)
	case wireProductAlert:
		a, err := normalizeProductAlert(env.Data, now)
		if err != nil {
			m.logger.Warnf(ctx, "notifyclient: dropping %s: %v", env.Event, err)
			return
		}
		m.subs.emit(EventProductAlert, a)
	default:
		m.logger.Debugf(ctx, "notifyclient: ignoring event %q", env.Event)
	}
}

func closeReason(err error) string {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		if closeErr.Text != "" {
			return closeErr.Text
		}
		return fmt.Sprintf("close code %d", closeErr.Code)
	}
	return err.Error()
}
