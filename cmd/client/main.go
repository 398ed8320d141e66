// Command client connects to the notification server and prints every
// event it receives. It is meant for manual testing.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shop-notification-srv/pkg/jwt"
	"shop-notification-srv/pkg/log"
	"shop-notification-srv/pkg/notifyclient"
)

func main() {
	url := flag.String("url", "ws://localhost:3001/ws", "WebSocket endpoint")
	userID := flag.String("user", "", "user id to authenticate as (required)")
	role := flag.String("role", "USER", "USER or ADMIN")
	secret := flag.String("jwt-secret", "", "sign a handshake token with this secret")
	orders := flag.String("orders", "", "comma-separated order ids to watch")
	products := flag.String("products", "", "comma-separated product ids to watch")
	flag.Parse()

	if *userID == "" {
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger := log.Init(log.ZapConfig{
		Level:        log.LevelInfo,
		Mode:         log.ModeDevelopment,
		Encoding:     log.EncodingConsole,
		ColorEnabled: true,
	})
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	identity := notifyclient.Identity{UserID: *userID, Role: strings.ToUpper(*role)}
	if *secret != "" {
		token, err := jwt.Sign(*secret, identity.UserID, identity.Role, time.Hour)
		if err != nil {
			logger.Fatalf(ctx, "sign token: %v", err)
		}
		identity.Token = token
	}

	m, err := notifyclient.New(notifyclient.Config{URL: *url, Logger: logger})
	if err != nil {
		logger.Fatalf(ctx, "create client: %v", err)
	}

	watch := func() {
		for _, id := range split(*orders) {
			if err := m.JoinOrder(id); err != nil {
				logger.Warnf(ctx, "join order %s: %v", id, err)
			}
		}
		for _, id := range split(*products) {
			if err := m.JoinProduct(id); err != nil {
				logger.Warnf(ctx, "join product %s: %v", id, err)
			}
		}
	}

	// Ad hoc channels are not restored by the server after a reconnect.
	m.On(notifyclient.EventAuthSuccess, func(any) { watch() })

	for _, event := range []string{
		notifyclient.EventConnectionEstablished,
		notifyclient.EventConnectionLost,
		notifyclient.EventConnectionReconnecting,
		notifyclient.EventConnectionReconnected,
		notifyclient.EventConnectionError,
		notifyclient.EventConnectionFailed,
		notifyclient.EventAuthSuccess,
		notifyclient.EventAuthError,
		notifyclient.EventServerError,
		notifyclient.EventPong,
		notifyclient.EventNotification,
		notifyclient.EventSystemNotification,
		notifyclient.EventOrderUpdate,
		notifyclient.EventProductAlert,
		notifyclient.EventAdminNotification,
	} {
		m.On(event, func(data any) {
			if data == nil {
				fmt.Printf("%-24s\n", event)
				return
			}
			fmt.Printf("%-24s %+v\n", event, data)
		})
	}

	if err := m.Connect(ctx, identity); err != nil {
		logger.Fatalf(ctx, "connect: %v", err)
	}

	<-ctx.Done()
	m.Disconnect()
}

func split(list string) []string {
	var out []string
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
