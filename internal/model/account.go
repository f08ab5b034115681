package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for accounts.
//
// Insert is the only operation that guards username uniqueness; Exists is
// advisory and may be stale by the time the caller acts on it.
type AccountStore interface {
	Exists(ctx context.Context, username string) (bool, error)
	Insert(ctx context.Context, account Account) error
	FindByUsername(ctx context.Context, username string) (Account, error)
}

// PasswordHasher derives and checks credential representations.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// RegistrationService creates accounts.
type RegistrationService interface {
	Register(ctx context.Context, req RegisterRequest) error
}

// AuthenticationService checks credentials. A false result carries no
// information about which part of the credential was wrong.
type AuthenticationService interface {
	Authenticate(ctx context.Context, username, password string) (bool, error)
}

// Account represents a registered identity.
type Account struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// RegisterRequest carries raw registration input.
type RegisterRequest struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
}
