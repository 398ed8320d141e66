package websocket

import (
	"context"
)

// UseCase defines the business logic for the WebSocket domain.
// It owns connection lifecycle, the handshake, channel membership and fan-out.
type UseCase interface {
	// Lifecycle
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error

	// Connection Management
	Register(ctx context.Context, input ConnectionInput) error

	// Stats
	GetStats(ctx context.Context) (HubStats, error)

	// Fan-out (called by the control plane)
	NotifyUser(ctx context.Context, input NotifyUserInput) (DispatchOutput, error)
	NotifySystem(ctx context.Context, input NotifySystemInput) (DispatchOutput, error)
	NotifyAdmins(ctx context.Context, input NotifyAdminsInput) (DispatchOutput, error)
	UpdateOrder(ctx context.Context, input UpdateOrderInput) (DispatchOutput, error)
	AlertProduct(ctx context.Context, input AlertProductInput) (DispatchOutput, error)
	AlertProductAll(ctx context.Context, input AlertProductAllInput) (DispatchOutput, error)

	// Message Processing (called by Redis and Kafka delivery)
	ProcessMessage(ctx context.Context, input ProcessMessageInput) error
}
