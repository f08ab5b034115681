package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// Timeout bounds every unary request with a deadline. The deadline reaches
// the store through the request context.
type Timeout struct {
	timeout time.Duration
}

// NewTimeout creates a Timeout middleware. A non-positive timeout disables it.
func NewTimeout(timeout time.Duration) *Timeout {
	return &Timeout{timeout: timeout}
}

// HandleGRPC runs handler under the configured deadline.
func (t *Timeout) HandleGRPC(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if t.timeout <= 0 {
		return handler(ctx, req)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return handler(ctx, req)
}
