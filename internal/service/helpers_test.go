package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-server/internal/config"
	"github.com/dtroode/identity-server/internal/credential"
	"github.com/dtroode/identity-server/internal/repository/sqlite"
)

func newTestHasher(t *testing.T) *credential.Argon2id {
	t.Helper()
	h, err := credential.NewArgon2id(credential.Params{Time: 1, MemKiB: 1024, Par: 1})
	require.NoError(t, err)
	return h
}

func newSQLiteStore(t *testing.T) *sqlite.AccountRepository {
	t.Helper()
	conn, err := sqlite.NewConnection(context.Background(), config.Database{
		Driver:         config.DriverSQLite,
		DSN:            filepath.Join(t.TempDir(), "identity.db"),
		MaxConns:       1,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return sqlite.NewAccountRepository(conn)
}
