// Package pgtest starts a throwaway Postgres container with the dig schema
// applied, for integration tests of the pgx repositories.
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/DigSite_Go/internal/database"
	"github.com/osse101/DigSite_Go/migrations"
)

// StartContainer runs postgres:15-alpine and returns its connection string.
// An empty string means docker is unavailable; callers should skip.
func StartContainer(ctx context.Context) (connString string, terminate func()) {
	// testcontainers panics when no docker socket is reachable
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in StartContainer: %v\n", r)
			connString, terminate = "", func() {}
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

// MigratedPool opens a pool on connStr and applies the embedded migrations.
// The pool is closed when the test ends.
func MigratedPool(t *testing.T, connStr string) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if connStr == "" {
		t.Skip("Skipping integration test: database not available")
	}

	pool, err := database.NewPool(context.Background(), connStr, database.PoolOptions{
		MaxConns: 5,
		MaxIdle:  time.Minute,
		MaxLife:  5 * time.Minute,
	})
	if err != nil {
		t.Fatalf("failed to open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Migrate(context.Background(), pool, migrations.FS); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	return pool
}
