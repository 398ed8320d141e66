package notifyclient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shop-notification-srv/pkg/log"
)

func TestRegistryOrder(t *testing.T) {
	r := newRegistry(log.NewNop())
	var calls []string

	r.add("e", func(any) { calls = append(calls, "first") })
	r.add("e", func(any) { calls = append(calls, "second") })
	r.add("e", func(any) { calls = append(calls, "third") })
	r.add("other", func(any) { calls = append(calls, "other") })

	r.emit("e", nil)
	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestRegistryRemove(t *testing.T) {
	r := newRegistry(log.NewNop())
	var calls []string

	a := r.add("e", func(any) { calls = append(calls, "a") })
	r.add("e", func(any) { calls = append(calls, "b") })
	c := r.add("e", func(any) { calls = append(calls, "c") })

	r.remove("e", a, c)
	r.emit("e", nil)
	assert.Equal(t, []string{"b"}, calls)

	calls = nil
	r.remove("e")
	r.emit("e", nil)
	assert.Empty(t, calls)
}

func TestRegistryRecoversPanics(t *testing.T) {
	r := newRegistry(log.NewNop())
	var calls []string

	r.add("e", func(any) { calls = append(calls, "before") })
	r.add("e", func(any) { panic("boom") })
	r.add("e", func(any) { calls = append(calls, "after") })

	assert.NotPanics(t, func() { r.emit("e", nil) })
	assert.Equal(t, []string{"before", "after"}, calls)
}

func TestRegistryMutationDuringEmit(t *testing.T) {
	r := newRegistry(log.NewNop())
	n := 0

	var id SubscriptionID
	id = r.add("e", func(any) {
		n++
		r.remove("e", id)
	})

	r.emit("e", nil)
	r.emit("e", nil)
	assert.Equal(t, 1, n)
}
