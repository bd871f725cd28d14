package slots

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Storage drivers understood by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the database named by driver and dsn and verifies the
// connection. A plain file path given to the sqlite driver is turned into a
// go-sqlite3 DSN and its parent directory is created.
func Open(ctx context.Context, driver, dsn string) (*bun.DB, error) {
	switch NormalizeDriver(driver) {
	case DriverSQLite:
		source, err := sqliteDSN(dsn)
		if err != nil {
			return nil, err
		}
		sqldb, err := sql.Open("sqlite3", source)
		if err != nil {
			return nil, fmt.Errorf("slots: open sqlite: %w", err)
		}
		// sqlite allows a single writer
		sqldb.SetMaxOpenConns(1)
		return ping(ctx, bun.NewDB(sqldb, sqlitedialect.New()))
	case DriverPostgres:
		if strings.TrimSpace(dsn) == "" {
			return nil, fmt.Errorf("slots: postgres driver requires a dsn")
		}
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("slots: open postgres: %w", err)
		}
		return ping(ctx, bun.NewDB(sqldb, pgdialect.New()))
	default:
		return nil, fmt.Errorf("slots: unsupported driver %q", driver)
	}
}

// NormalizeDriver lowercases driver names and folds aliases.
func NormalizeDriver(driver string) string {
	switch d := strings.ToLower(strings.TrimSpace(driver)); d {
	case "sqlite3":
		return DriverSQLite
	case "pg", "postgresql":
		return DriverPostgres
	default:
		return d
	}
}

func ping(ctx context.Context, db *bun.DB) (*bun.DB, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("slots: ping database: %w", err)
	}
	return db, nil
}

func sqliteDSN(dsn string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return "", fmt.Errorf("slots: sqlite driver requires a dsn")
	}
	if strings.HasPrefix(dsn, "file:") || dsn == ":memory:" {
		return dsn, nil
	}
	if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
		return "", fmt.Errorf("slots: create sqlite directory: %w", err)
	}
	return "file:" + dsn + "?_busy_timeout=5000", nil
}
