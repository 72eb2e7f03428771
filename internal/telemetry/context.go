package telemetry

import (
	"context"

	"github.com/google/uuid"
)

type turnKey struct{}

// NewTurnID returns a fresh identifier for one user submission.
func NewTurnID() string {
	return uuid.NewString()
}

// WithTurnID tags ctx with the submission's turn ID so events and log lines
// from the router, the window and the gateway can be joined later.
func WithTurnID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, turnKey{}, id)
}

// TurnIDFromContext returns the turn ID carried by ctx. An empty ID counts
// as missing.
func TurnIDFromContext(ctx context.Context) (string, bool) {
	id, _ := ctx.Value(turnKey{}).(string)
	return id, id != ""
}
