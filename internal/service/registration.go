package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/model"
	"github.com/dtroode/identity-server/internal/validator"
)

var _ model.RegistrationService = (*Registration)(nil)

// Registration creates accounts from validated registration requests.
type Registration struct {
	store   model.AccountStore
	hasher  model.PasswordHasher
	logger  *logger.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewRegistration creates a Registration service. rec may be nil.
func NewRegistration(
	store model.AccountStore,
	hasher model.PasswordHasher,
	logger *logger.Logger,
	rec *metrics.Recorder,
) *Registration {
	return &Registration{
		store:   store,
		hasher:  hasher,
		logger:  logger,
		metrics: rec,
		now:     time.Now,
	}
}

// Register validates req and persists a new account.
//
// The store's unique constraint is the only uniqueness guarantee: of several
// concurrent requests for one username exactly one succeeds and the rest get
// ErrUsernameTaken. Store faults surface as ErrStorageUnavailable and are
// never retried here.
func (r *Registration) Register(ctx context.Context, req model.RegisterRequest) error {
	r.logger.Debug("Registration service: starting registration",
		"username", req.Username)

	if req.Password != req.PasswordConfirmation {
		r.logger.Info("Registration service: password confirmation mismatch",
			"username", req.Username)
		r.metrics.Registration(metrics.OutcomeMismatch)
		return ErrPasswordMismatch
	}

	if err := validate(req); err != nil {
		r.logger.Info("Registration service: invalid registration request",
			"username", req.Username,
			"error", err.Error())
		r.metrics.Registration(metrics.OutcomeInvalid)
		return err
	}

	// Fast path only; a concurrent Insert can still win after this check.
	taken, err := r.store.Exists(ctx, req.Username)
	if err != nil {
		r.logger.Error("Registration service: failed to check username",
			"username", req.Username,
			"error", err.Error())
		r.metrics.Registration(metrics.OutcomeUnavailable)
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if taken {
		r.logger.Info("Registration service: username already taken",
			"username", req.Username)
		r.metrics.Registration(metrics.OutcomeTaken)
		return ErrUsernameTaken
	}

	hash, err := r.hasher.Hash(req.Password)
	if err != nil {
		r.logger.Error("Registration service: failed to hash password",
			"username", req.Username,
			"error", err.Error())
		r.metrics.Registration(metrics.OutcomeError)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account := model.Account{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    r.now().UTC(),
	}

	err = r.store.Insert(ctx, account)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrDuplicateKey):
		r.logger.Info("Registration service: username already taken",
			"username", req.Username)
		r.metrics.Registration(metrics.OutcomeTaken)
		return ErrUsernameTaken
	default:
		r.logger.Error("Registration service: failed to insert account",
			"username", req.Username,
			"error", err.Error())
		r.metrics.Registration(metrics.OutcomeUnavailable)
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	r.logger.Info("Registration service: account created",
		"username", account.Username,
		"account_id", account.ID)
	r.metrics.Registration(metrics.OutcomeSuccess)

	return nil
}

func validate(req model.RegisterRequest) error {
	if err := validator.ValidateUsername(req.Username); err != nil {
		return err
	}
	if err := validator.ValidateEmail(req.Email); err != nil {
		return err
	}
	return validator.ValidatePassword(req.Password)
}
