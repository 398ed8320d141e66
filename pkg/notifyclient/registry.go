package notifyclient

import (
	"context"
	"sync"

	"shop-notification-srv/pkg/log"
)

type subscription struct {
	id SubscriptionID
	cb Callback
}

// registry maps local event names to callbacks in registration order.
type registry struct {
	mu     sync.RWMutex
	nextID SubscriptionID
	subs   map[string][]subscription
	logger log.Logger
}

func newRegistry(logger log.Logger) *registry {
	return &registry{subs: make(map[string][]subscription), logger: logger}
}

func (r *registry) add(event string, cb Callback) SubscriptionID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.subs[event] = append(r.subs[event], subscription{id: r.nextID, cb: cb})
	return r.nextID
}

// remove drops the given subscriptions, or every subscription for event
// when ids is empty.
func (r *registry) remove(event string, ids ...SubscriptionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(ids) == 0 {
		delete(r.subs, event)
		return
	}

	drop := make(map[SubscriptionID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	var kept []subscription
	for _, s := range r.subs[event] {
		if _, ok := drop[s.id]; !ok {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		delete(r.subs, event)
		return
	}
	r.subs[event] = kept
}

// emit calls every callback for event synchronously. Callbacks may register
// or remove subscriptions; the change applies from the next emit.
func (r *registry) emit(event string, data any) {
	r.mu.RLock()
	subs := append([]subscription(nil), r.subs[event]...)
	r.mu.RUnlock()

	for _, s := range subs {
		r.call(event, s, data)
	}
}

func (r *registry) call(event string, s subscription, data any) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Errorf(context.Background(), "subscriber %d for %s panicked: %v", s.id, event, rec)
		}
	}()
	s.cb(data)
}
