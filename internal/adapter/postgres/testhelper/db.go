// Package testhelper provides a migrated PostgreSQL database for
// integration tests.
//
// TEST_DATABASE_DSN points the tests at an existing database. Without it
// a postgres container is started once per test binary. Either way the
// tests are skipped under -short.
package testhelper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/appraisal-annotator/internal/adapter/postgres"
)

const (
	envDSN       = "TEST_DATABASE_DSN"
	image        = "postgres:17-alpine"
	dbName       = "annotations"
	dbUser       = "annotator"
	dbPassword   = "annotator"
	startTimeout = 2 * time.Minute
)

var (
	once   sync.Once
	dsn    string
	dsnErr error
)

// SetupTestDB returns a pool on a migrated database. The pool is closed
// when t finishes; the database is shared by every test in the binary, so
// tests must not assume empty tables.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres integration test skipped in -short mode")
	}

	once.Do(func() { dsn, dsnErr = prepare() })
	if dsnErr != nil {
		t.Fatalf("testhelper: %v", dsnErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("testhelper: open pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func prepare() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	target := os.Getenv(envDSN)
	if target == "" {
		var err error
		if target, err = startContainer(ctx); err != nil {
			return "", err
		}
	}

	if err := postgres.Migrate(ctx, target, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		return "", fmt.Errorf("migrate: %w", err)
	}
	return target, nil
}

func startContainer(ctx context.Context) (string, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       dbName,
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbPassword,
			},
			// postgres logs readiness twice: once for the init run, once for real.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return "", fmt.Errorf("container port: %w", err)
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, host, port.Port(), dbName), nil
}
