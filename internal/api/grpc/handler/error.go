package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/identity-server/internal/service"
	"github.com/dtroode/identity-server/internal/validator"
)

// InvalidCredentialsMessage is the only message a failed login ever returns.
const InvalidCredentialsMessage = "Invalid username or password"

var errInvalidCredentials = status.Error(codes.Unauthenticated, InvalidCredentialsMessage)

func handleError(err error) error {
	var verr *validator.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, service.ErrPasswordMismatch):
		return status.Error(codes.InvalidArgument, service.ErrPasswordMismatch.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		return status.Error(codes.AlreadyExists, service.ErrUsernameTaken.Error())
	case errors.Is(err, service.ErrStorageUnavailable):
		return status.Error(codes.Unavailable, "service temporarily unavailable, try again later")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
