package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/identity-server/internal/model"
)

// usernameConstraint is the unique constraint created by the accounts migration.
const usernameConstraint = "accounts_username_key"

var _ model.AccountStore = (*AccountRepository)(nil)

// DBTX is the subset of the pgx pool API the repository needs. Each call
// acquires a pooled connection and releases it before returning.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository persists accounts in PostgreSQL.
type AccountRepository struct {
	db DBTX
}

// NewAccountRepository creates a repository over db.
func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// Exists reports whether username is currently taken.
func (r *AccountRepository) Exists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, unavailable("check account existence", err)
	}

	return exists, nil
}

// Insert creates account in a single statement; the username constraint
// decides between concurrent inserts.
func (r *AccountRepository) Insert(ctx context.Context, account model.Account) error {
	query := `INSERT INTO accounts (id, username, email, password_hash, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		account.ID, account.Username, account.Email, account.PasswordHash, account.CreatedAt,
	)
	if err != nil {
		if isUsernameViolation(err) {
			return fmt.Errorf("failed to insert account: %w", model.ErrDuplicateKey)
		}
		return unavailable("insert account", err)
	}

	return nil
}

// FindByUsername returns the account or model.ErrNotFound.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (model.Account, error) {
	query := `SELECT id, username, email, password_hash, created_at
			  FROM accounts WHERE username = $1`

	var account model.Account
	err := r.db.QueryRow(ctx, query, username).Scan(
		&account.ID, &account.Username, &account.Email, &account.PasswordHash, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, unavailable("get account by username", err)
	}

	return account, nil
}

func isUsernameViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == usernameConstraint
}

func unavailable(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, model.ErrUnavailable, err)
}
