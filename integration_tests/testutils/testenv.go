// Package testutils provides the shared Postgres-backed environment for
// integration tests.
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"log/slog"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Black-And-White-Club/quiz-host/app"
	"github.com/Black-And-White-Club/quiz-host/config"
	"github.com/Black-And-White-Club/quiz-host/integration_tests/containers"
)

// TestEnvironment holds all resources needed for integration testing
type TestEnvironment struct {
	Ctx         context.Context
	Cancel      context.CancelFunc
	PgContainer *postgres.PostgresContainer
	ConnStr     string
	Config      *config.Config
	App         *app.App
}

// NewTestEnvironment starts Postgres, then builds, migrates and seeds an app on it.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	log.Println("Starting PostgreSQL container...")
	pgContainer, connStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	if err := pingPostgres(ctx, connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		cancel()
		return nil, err
	}

	cfg := config.Default()
	cfg.Database.Driver = "postgres"
	cfg.Database.URL = connStr
	cfg.Observability.MetricsEnabled = true

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := app.NewApp(ctx, &cfg, logger)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to create app: %w", err)
	}

	env := &TestEnvironment{
		Ctx:         ctx,
		Cancel:      cancel,
		PgContainer: pgContainer,
		ConnStr:     connStr,
		Config:      &cfg,
		App:         a,
	}

	if err := a.Migrate(ctx); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if _, err := a.Seed(ctx, false); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to seed catalogue: %w", err)
	}
	return env, nil
}

// pingPostgres checks the container accepts connections through the pgx stdlib
// driver before the app opens its own pool.
func pingPostgres(ctx context.Context, connStr string) error {
	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer sqlDB.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Reset removes every round and team. The seeded catalogue is kept.
func (env *TestEnvironment) Reset(t *testing.T) {
	t.Helper()
	for _, table := range []string{"rounds", "teams"} {
		if _, err := env.App.DB.ExecContext(env.Ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}
}

// Cleanup releases the app and terminates the container.
func (env *TestEnvironment) Cleanup() {
	if env.App != nil {
		if err := env.App.Close(); err != nil {
			log.Printf("Error closing app: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(context.Background()); err != nil {
			log.Printf("Error terminating PostgreSQL container: %v", err)
		}
	}
	env.Cancel()
}
