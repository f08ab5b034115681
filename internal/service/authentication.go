package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/model"
)

var _ model.AuthenticationService = (*Authentication)(nil)

// Authentication verifies login credentials.
type Authentication struct {
	store     model.AccountStore
	hasher    model.PasswordHasher
	logger    *logger.Logger
	metrics   *metrics.Recorder
	dummyHash string
}

// NewAuthentication creates an Authentication service. A throwaway hash is
// computed up front so that unknown usernames cost one verification too.
func NewAuthentication(
	store model.AccountStore,
	hasher model.PasswordHasher,
	logger *logger.Logger,
	rec *metrics.Recorder,
) (*Authentication, error) {
	secret := make([]byte, 24)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate dummy password: %w", err)
	}

	dummyHash, err := hasher.Hash(base64.RawStdEncoding.EncodeToString(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to compute dummy hash: %w", err)
	}

	return &Authentication{
		store:     store,
		hasher:    hasher,
		logger:    logger,
		metrics:   rec,
		dummyHash: dummyHash,
	}, nil
}

// Authenticate reports whether password matches the account registered
// under username. Unknown usernames and wrong passwords both yield false
// after the same amount of work. The only error is ErrStorageUnavailable.
func (a *Authentication) Authenticate(ctx context.Context, username, password string) (bool, error) {
	a.logger.Debug("Authentication service: checking credentials",
		"username", username)

	encoded := a.dummyHash
	account, err := a.store.FindByUsername(ctx, username)
	switch {
	case err == nil:
		encoded = account.PasswordHash
	case errors.Is(err, model.ErrNotFound):
	default:
		a.logger.Error("Authentication service: failed to get account",
			"username", username,
			"error", err.Error())
		a.metrics.Login(metrics.OutcomeUnavailable)
		return false, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	ok, verifyErr := a.hasher.Verify(password, encoded)
	if verifyErr != nil && err == nil {
		a.logger.Error("Authentication service: stored credential is unreadable",
			"username", username,
			"error", verifyErr.Error())
	}

	if err != nil || verifyErr != nil || !ok {
		a.logger.Info("Authentication service: authentication failed",
			"username", username)
		a.metrics.Login(metrics.OutcomeRejected)
		return false, nil
	}

	a.logger.Info("Authentication service: authentication succeeded",
		"username", username)
	a.metrics.Login(metrics.OutcomeSuccess)

	return true, nil
}
