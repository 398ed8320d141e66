package redis

import (
	"context"
	"strings"

	ws "shop-notification-srv/internal/websocket"
)

const source = "redis"

func (s *subscriber) handleMessage(ctx context.Context, channel, payload string) {
	input := ws.ProcessMessageInput{
		Source:  source,
		Kind:    kindFromChannel(channel),
		Payload: []byte(payload),
	}

	if err := s.uc.ProcessMessage(ctx, input); err != nil {
		s.logger.Warnf(ctx, "process message failed: channel=%s err=%v", channel, err)
	}
}

// kindFromChannel maps notify:order-update to order-update.
func kindFromChannel(channel string) ws.DispatchKind {
	if _, kind, ok := strings.Cut(channel, ":"); ok {
		return ws.DispatchKind(kind)
	}
	return ws.DispatchKind(channel)
}
