package service

import "errors"

var (
	// ErrPasswordMismatch is returned when the password and its confirmation differ.
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	// ErrUsernameTaken is returned when the requested username already belongs to an account.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrStorageUnavailable is returned when the account store cannot serve the request.
	// The operation may be retried by the caller.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
