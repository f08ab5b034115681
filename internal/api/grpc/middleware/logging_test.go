package middleware

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/testutil"
)

func TestLogging_HandleGRPC(t *testing.T) {
	t.Parallel()

	lg := NewLogging(testutil.MakeNoopLogger())

	tests := []struct {
		name     string
		handler  grpc.UnaryHandler
		wantCode codes.Code
	}{
		{
			name: "success path",
			handler: func(ctx context.Context, req any) (any, error) {
				time.Sleep(10 * time.Millisecond)
				return "ok", nil
			},
			wantCode: codes.OK,
		},
		{
			name: "grpc error propagates",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, status.Error(codes.InvalidArgument, "bad input")
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "non-grpc error becomes Internal",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, errors.New("boom")
			},
			wantCode: codes.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}
			resp, err := lg.HandleGRPC(context.Background(), struct{}{}, info, tt.handler)

			if tt.wantCode == codes.OK {
				assert.NoError(t, err)
				assert.Equal(t, "ok", resp)
				return
			}

			assert.Equal(t, tt.wantCode, codeOf(err))
		})
	}
}

func TestLogging_DoesNotLogPayload(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogging(logger.NewWithWriter(&buf, -4))

	info := &grpc.UnaryServerInfo{FullMethod: "/identity.v1.Identity/Login"}
	_, _ = lg.HandleGRPC(context.Background(), struct{ Password string }{"Sup3r$ecret"}, info,
		func(ctx context.Context, req any) (any, error) {
			return nil, status.Error(codes.Unauthenticated, "Invalid username or password")
		})

	assert.Contains(t, buf.String(), "/identity.v1.Identity/Login")
	assert.Contains(t, buf.String(), "Unauthenticated")
	assert.NotContains(t, buf.String(), "Sup3r$ecret")
}
