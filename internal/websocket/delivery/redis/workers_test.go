package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/log"
)

type fakeUseCase struct {
	ws.UseCase
	inputs []ws.ProcessMessageInput
	err    error
}

func (f *fakeUseCase) ProcessMessage(_ context.Context, input ws.ProcessMessageInput) error {
	f.inputs = append(f.inputs, input)
	return f.err
}

func TestKindFromChannel(t *testing.T) {
	assert.Equal(t, ws.KindOrderUpdate, kindFromChannel("notify:order-update"))
	assert.Equal(t, ws.KindProductAlertAll, kindFromChannel("notify:product-alert-all"))
	assert.Equal(t, ws.DispatchKind("bare"), kindFromChannel("bare"))
}

func TestHandleMessage(t *testing.T) {
	uc := &fakeUseCase{}
	s := New(nil, uc, log.NewNop(), nil).(*subscriber)

	s.handleMessage(context.Background(), "notify:notify-user", `{"userId":"u1"}`)

	assert.Equal(t, []ws.ProcessMessageInput{{
		Source:  "redis",
		Kind:    ws.KindNotifyUser,
		Payload: []byte(`{"userId":"u1"}`),
	}}, uc.inputs)
	assert.Equal(t, []string{DefaultPattern}, s.patterns)

	// Failures are logged, never propagated.
	uc.err = errors.New("boom")
	s.handleMessage(context.Background(), "notify:system-notify", `{}`)
	assert.Len(t, uc.inputs, 2)
}
