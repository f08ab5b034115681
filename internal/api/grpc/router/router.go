package router

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dtroode/identity-server/internal/api/grpc/handler"
	"github.com/dtroode/identity-server/internal/api/grpc/middleware"
	"github.com/dtroode/identity-server/internal/api/grpc/proto"
	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

// Router represents a gRPC router for identity operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	registration   model.RegistrationService
	authentication model.AuthenticationService
	logger         *logger.Logger
	timeout        time.Duration
	health         *health.Server
}

// New creates new gRPC Router instance.
//
// Parameters:
//   - registration: The account registration service
//   - authentication: The credential verification service
//   - logger: The logger for request logging
//   - timeout: Per-request deadline, disabled when not positive
//
// Returns a pointer to the newly created Router instance.
func New(
	registration model.RegistrationService,
	authentication model.AuthenticationService,
	logger *logger.Logger,
	timeout time.Duration,
) *Router {
	return &Router{
		registration:   registration,
		authentication: authentication,
		logger:         logger,
		timeout:        timeout,
		health:         health.NewServer(),
	}
}

// Register registers all gRPC services and middleware.
// Interceptors run in order: logging, timeout, panic recovery.
//
// Returns the configured gRPC server instance.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	timeout := middleware.NewTimeout(r.timeout)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			timeout.HandleGRPC,
			recovery.UnaryServerInterceptor(
				recovery.WithRecoveryHandlerContext(r.recoverPanic),
			),
		),
	)
	r.registerIdentityRoutes(s)
	r.registerHealthRoutes(s)

	return s
}

// Health returns the health server so callers can flip serving status on shutdown.
func (r *Router) Health() *health.Server {
	return r.health
}

func (r *Router) registerIdentityRoutes(server *grpc.Server) {
	identityHandler := handler.NewIdentity(r.registration, r.authentication, r.logger)
	proto.RegisterIdentityServer(server, identityHandler)
}

func (r *Router) registerHealthRoutes(server *grpc.Server) {
	r.health.SetServingStatus(proto.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, r.health)
}

func (r *Router) recoverPanic(_ context.Context, p any) error {
	r.logger.Error("gRPC handler panicked",
		"panic", p)
	return status.Error(codes.Internal, "internal server error")
}
