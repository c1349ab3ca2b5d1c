// Package dbtest hands out isolated, fully migrated PostgreSQL databases
// to tests.
package dbtest

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/peterldowns/pgtestdb"
	"github.com/peterldowns/pgtestdb/migrators/golangmigrator"
)

// NewDB returns a connection pool to a unique and isolated test database,
// fully migrated and ready for testing. Tests are skipped when
// PGTEST_DISABLE is set.
func NewDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("PGTEST_DISABLE") != "" {
		t.Skip("PGTEST_DISABLE is set, skipping postgres test")
	}

	conf := pgtestdb.Config{
		DriverName: "pgx",
		User:       getEnvOr("PGTEST_USER", "proglv"), // local dev pg user
		Password:   getEnvOr("PGTEST_PASSWORD", "proglv"),
		Host:       getEnvOr("PGTEST_HOST", "localhost"),
		Port:       getEnvOr("PGTEST_PORT", "5433"),
		Options:    "sslmode=disable",
	}
	gm := golangmigrator.New(migrationsDir())
	config := pgtestdb.Custom(t, conf, gm)

	pool, err := pgxpool.New(context.Background(), config.URL())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// migrationsDir resolves migrate/ relative to this file so that any
// package's tests can use it.
func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "migrate")
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
