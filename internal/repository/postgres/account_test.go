package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-server/internal/model"
)

func newMockRepo(t *testing.T) (*AccountRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(mock.Close)
	return NewAccountRepository(mock), mock
}

func TestAccountRepository_Exists(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      bool
		wantErr   error
	}{
		{
			name: "username taken",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM accounts WHERE username = \$1\)`).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			want: true,
		},
		{
			name: "username free",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			want: false,
		},
		{
			name: "connection refused",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("alice").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: model.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setupMock(mock)

			got, err := repo.Exists(context.Background(), "alice")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestAccountRepository_Insert(t *testing.T) {
	account := model.Account{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		CreatedAt:    time.Now().UTC(),
	}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs(account.ID, account.Username, account.Email, account.PasswordHash, account.CreatedAt).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "username unique violation",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs(account.ID, account.Username, account.Email, account.PasswordHash, account.CreatedAt).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: usernameConstraint})
			},
			wantErr: model.ErrDuplicateKey,
		},
		{
			name: "other unique violation is not a duplicate username",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs(account.ID, account.Username, account.Email, account.PasswordHash, account.CreatedAt).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_pkey"})
			},
			wantErr: model.ErrUnavailable,
		},
		{
			name: "deadline exceeded",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs(account.ID, account.Username, account.Email, account.PasswordHash, account.CreatedAt).
					WillReturnError(context.DeadlineExceeded)
			},
			wantErr: model.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setupMock(mock)

			err := repo.Insert(context.Background(), account)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestAccountRepository_Insert_DeadlineKeepsCause(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`INSERT INTO accounts`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(context.DeadlineExceeded)

	err := repo.Insert(context.Background(), model.Account{ID: uuid.New(), Username: "alice"})
	assert.ErrorIs(t, err, model.ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAccountRepository_FindByUsername(t *testing.T) {
	id := uuid.New()
	createdAt := time.Now().UTC()
	columns := []string{"id", "username", "email", "password_hash", "created_at"}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      model.Account
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at\s+FROM accounts WHERE username = \$1`).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows(columns).AddRow(id, "alice", "alice@example.com", "hash", createdAt))
			},
			want: model.Account{
				ID:           id,
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: "hash",
				CreatedAt:    createdAt,
			},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, username`).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows(columns))
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "pool closed",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, username`).
					WithArgs("alice").
					WillReturnError(errors.New("closed pool"))
			},
			wantErr: model.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setupMock(mock)

			got, err := repo.FindByUsername(context.Background(), "alice")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, model.Account{}, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestNewAccountRepository(t *testing.T) {
	db := &Connection{}
	repo := NewAccountRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}
