package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
)

func TestTimeout_HandleGRPC(t *testing.T) {
	t.Parallel()

	info := &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}

	t.Run("sets deadline", func(t *testing.T) {
		t.Parallel()

		tm := NewTimeout(50 * time.Millisecond)
		_, err := tm.HandleGRPC(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
			<-ctx.Done()
			return nil, ctx.Err()
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		tm := NewTimeout(0)
		resp, err := tm.HandleGRPC(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
			_, ok := ctx.Deadline()
			assert.False(t, ok)
			return "ok", nil
		})
		assert.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})
}
