package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

// DBTX is the subset of *sql.DB the repository needs.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// AccountRepository persists accounts in a sqlite database.
type AccountRepository struct {
	db DBTX
}

// NewAccountRepository creates a repository over db.
func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// Exists reports whether username is currently taken.
func (r *AccountRepository) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE username = ?)`, username,
	).Scan(&exists)
	if err != nil {
		return false, unavailable("check account existence", err)
	}
	return exists, nil
}

// Insert creates account in a single statement.
func (r *AccountRepository) Insert(ctx context.Context, account model.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, username, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		account.ID.String(), account.Username, account.Email, account.PasswordHash, toMillis(account.CreatedAt),
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
	var (
		id        string
		createdAt int64
		account   model.Account
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM accounts WHERE username = ?`, username,
	).Scan(&id, &account.Username, &account.Email, &account.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, unavailable("get account by username", err)
	}

	account.ID, err = uuid.Parse(id)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to parse account id %q: %w", id, err)
	}
	account.CreatedAt = fromMillis(createdAt)

	return account, nil
}

func isUsernameViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3lib.SQLITE_CONSTRAINT:
		return strings.Contains(err.Error(), "accounts.username")
	}
	return false
}

func unavailable(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, model.ErrUnavailable, err)
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}
