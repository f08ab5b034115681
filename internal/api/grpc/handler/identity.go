package handler

import (
	"context"

	"github.com/dtroode/identity-server/internal/api/grpc/proto"
	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

// Identity handles gRPC endpoints for registration and login.
type Identity struct {
	proto.UnimplementedIdentityServer
	registration   model.RegistrationService
	authentication model.AuthenticationService
	logger         *logger.Logger
}

var _ proto.IdentityServer = (*Identity)(nil)

// NewIdentity creates a new Identity handler.
func NewIdentity(
	registration model.RegistrationService,
	authentication model.AuthenticationService,
	logger *logger.Logger,
) *Identity {
	return &Identity{
		registration:   registration,
		authentication: authentication,
		logger:         logger,
	}
}

// Register creates an account from the registration form.
func (h *Identity) Register(ctx context.Context, req *proto.RegisterRequest) (*proto.RegisterResponse, error) {
	h.logger.Debug("Identity handler: processing registration request",
		"username", req.Username)

	err := h.registration.Register(ctx, model.RegisterRequest{
		Username:             req.Username,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		h.logger.Info("Identity handler: registration rejected",
			"username", req.Username,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &proto.RegisterResponse{}, nil
}

// Login verifies credentials. Every failed attempt gets the same status.
func (h *Identity) Login(ctx context.Context, req *proto.LoginRequest) (*proto.LoginResponse, error) {
	h.logger.Debug("Identity handler: processing login request",
		"username", req.Username)

	ok, err := h.authentication.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.Error("Identity handler: login failed",
			"username", req.Username,
			"error", err.Error())
		return nil, handleError(err)
	}
	if !ok {
		return nil, errInvalidCredentials
	}

	return &proto.LoginResponse{}, nil
}
