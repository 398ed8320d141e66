package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
)

// Handler returns the root HTTP handler. Tests serve it with httptest.
func (srv *HTTPServer) Handler() http.Handler {
	return srv.gin
}

// Run starts the HTTP server and all background services, then blocks until
// ctx is cancelled:
//  1. Start WebSocket UseCase (Hub)
//  2. Start broker ingress (Redis, Kafka) when configured
//  3. Start HTTP server
//  4. Wait for ctx, then shut everything down in reverse order
func (srv *HTTPServer) Run(ctx context.Context) error {
	hubCtx, stopHub := context.WithCancel(context.WithoutCancel(ctx))
	defer stopHub()

	// 1. Start UseCase (Hub)
	go srv.wsUC.Run(hubCtx)
	srv.logger.Info(ctx, "WebSocket UseCase background service started")

	// 2. Start broker ingress
	if srv.redisSubscriber != nil {
		if err := srv.redisSubscriber.Start(ctx); err != nil {
			return fmt.Errorf("start redis subscriber: %w", err)
		}
	}
	if srv.kafkaConsumer != nil {
		srv.kafkaConsumer.Start(ctx)
	}

	// 3. Start HTTP server in background
	httpSrv := &http.Server{
		Addr:    net.JoinHostPort(srv.host, strconv.Itoa(srv.port)),
		Handler: srv.gin,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	srv.logger.Infof(ctx, "HTTP server started on %s", httpSrv.Addr)

	// 4. Wait for shutdown
	var runErr error
	select {
	case <-ctx.Done():
		srv.logger.Info(context.Background(), "Stopping notification service...")
	case err := <-errCh:
		runErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.shutdownTimeout)
	defer cancel()

	if srv.kafkaConsumer != nil {
		if err := srv.kafkaConsumer.Shutdown(shutdownCtx); err != nil {
			srv.logger.Errorf(shutdownCtx, "Kafka consumer shutdown error: %v", err)
		}
	}
	if srv.redisSubscriber != nil {
		if err := srv.redisSubscriber.Shutdown(shutdownCtx); err != nil {
			srv.logger.Errorf(shutdownCtx, "Redis subscriber shutdown error: %v", err)
		}
	}
	if err := srv.wsUC.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(shutdownCtx, "WebSocket UseCase shutdown error: %v", err)
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(shutdownCtx, "HTTP server shutdown error: %v", err)
	}

	return runErr
}
