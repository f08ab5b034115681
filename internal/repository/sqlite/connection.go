package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dtroode/identity-server/database"
	"github.com/dtroode/identity-server/internal/config"
)

// Connection owns the sqlite handle shared by every repository.
type Connection struct {
	*sql.DB
}

// NewConnection opens (or creates) the database file named by cfg.DSN and
// applies pending migrations. The caller owns the returned Connection and
// must Close it.
func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	path := strings.TrimSpace(cfg.DSN)
	if path == "" {
		return nil, fmt.Errorf("sqlite database path is required")
	}
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database dir: %w", err)
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// sqlite allows one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := pingContext(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach sqlite db: %w", err)
	}

	if err := database.Migrate(ctx, db, config.DriverSQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Connection{DB: db}, nil
}

// Close closes the underlying database handle.
func (c *Connection) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

func pingContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
