package usecase

import (
	"context"
	"fmt"

	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/auth"
	"shop-notification-srv/pkg/id"
	"shop-notification-srv/pkg/jwt"
	"shop-notification-srv/pkg/log"
)

// implUseCase implements websocket.UseCase.
type implUseCase struct {
	hub        *Hub
	opts       Options
	authorizer auth.Authorizer
	verifier   jwt.Validator
	security   *auth.SecurityLogger
	logger     log.Logger
}

// New creates a new WebSocket UseCase. verifier may be nil, in which case
// the handshake trusts the supplied userId.
func New(logger log.Logger, opts Options, authorizer auth.Authorizer, verifier jwt.Validator) ws.UseCase {
	return newUseCase(logger, opts, authorizer, verifier)
}

func newUseCase(logger log.Logger, opts Options, authorizer auth.Authorizer, verifier jwt.Validator) *implUseCase {
	opts = opts.withDefaults()
	if authorizer == nil {
		authorizer = auth.NewChannelPolicy()
	}
	return &implUseCase{
		hub:        newHub(logger, opts.MaxConnections),
		opts:       opts,
		authorizer: authorizer,
		verifier:   verifier,
		security:   auth.NewSecurityLogger(logger),
		logger:     logger,
	}
}

// Run blocks until ctx is done, then closes every connection.
func (uc *implUseCase) Run(ctx context.Context) {
	<-ctx.Done()
	n := uc.hub.closeAll()
	uc.logger.Infof(context.Background(), "hub stopped, closed %d connections", n)
}

func (uc *implUseCase) Shutdown(ctx context.Context) error {
	n := uc.hub.closeAll()
	uc.logger.Infof(ctx, "hub shut down, closed %d connections", n)
	return nil
}

func (uc *implUseCase) Register(ctx context.Context, input ws.ConnectionInput) error {
	if input.Conn == nil {
		return fmt.Errorf("%w: nil connection", ws.ErrInvalidInput)
	}

	connID := id.NewConnectionID()
	c := newConnection(context.WithoutCancel(ctx), uc.hub, input.Conn, connID, uc.opts, uc.logger)
	if err := uc.hub.add(c); err != nil {
		return err
	}

	c.logger.Infof(c.ctx, "connection opened: remote=%s agent=%q", input.RemoteAddr, input.UserAgent)

	// Start the pumps
	go c.writePump()
	go c.readPump(uc.handleFrame)

	return nil
}

func (uc *implUseCase) GetStats(ctx context.Context) (ws.HubStats, error) {
	return uc.hub.stats(), nil
}
