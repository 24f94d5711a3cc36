package database

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrations is one module's migration set. Modules are migrated in the
// order given, so a module must come after the modules it references.
type ModuleMigrations struct {
	Name       string
	Migrations *migrate.Migrations
}

// ModuleMigrator is a bun migrator bound to one module's bookkeeping tables.
type ModuleMigrator struct {
	Name     string
	Migrator *migrate.Migrator
}

// NewMigrators creates one migrator per module. Each module keeps its own
// bun_migrations_<name> table so rollback only touches that module's group.
func NewMigrators(db *bun.DB, modules []ModuleMigrations) []ModuleMigrator {
	out := make([]ModuleMigrator, 0, len(modules))
	for _, m := range modules {
		out = append(out, ModuleMigrator{
			Name: m.Name,
			Migrator: migrate.NewMigrator(db, m.Migrations,
				migrate.WithTableName("bun_migrations_"+m.Name),
				migrate.WithLocksTableName("bun_migration_locks_"+m.Name),
				migrate.WithMarkAppliedOnSuccess(true),
			),
		})
	}
	return out
}

// InitAll creates the bookkeeping tables of every module.
func InitAll(ctx context.Context, migrators []ModuleMigrator) error {
	for _, m := range migrators {
		if err := m.Migrator.Init(ctx); err != nil {
			return fmt.Errorf("init migrations for %s: %w", m.Name, err)
		}
	}
	return nil
}

// MigrateAll initializes and applies pending migrations of every module in order.
func MigrateAll(ctx context.Context, logger *slog.Logger, migrators []ModuleMigrator) error {
	if err := InitAll(ctx, migrators); err != nil {
		return err
	}
	for _, m := range migrators {
		group, err := m.Migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migrate %s: %w", m.Name, err)
		}
		if group.IsZero() {
			logger.DebugContext(ctx, "No new migrations", "module", m.Name)
			continue
		}
		logger.InfoContext(ctx, "Migrated module", "module", m.Name, "group", group.String())
	}
	return nil
}

// RollbackAll rolls back the last group of every module, dependents first.
func RollbackAll(ctx context.Context, logger *slog.Logger, migrators []ModuleMigrator) error {
	for _, m := range slices.Backward(migrators) {
		group, err := m.Migrator.Rollback(ctx)
		if err != nil {
			return fmt.Errorf("rollback %s: %w", m.Name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No groups to roll back", "module", m.Name)
			continue
		}
		logger.InfoContext(ctx, "Rolled back module", "module", m.Name, "group", group.String())
	}
	return nil
}

// MigrationStatus describes one module's applied and pending migrations.
type MigrationStatus struct {
	Module  string
	Applied []string
	Pending []string
}

// StatusAll reports migration status for every module.
func StatusAll(ctx context.Context, migrators []ModuleMigrator) ([]MigrationStatus, error) {
	out := make([]MigrationStatus, 0, len(migrators))
	for _, m := range migrators {
		ms, err := m.Migrator.MigrationsWithStatus(ctx)
		if err != nil {
			return nil, fmt.Errorf("status of %s: %w", m.Name, err)
		}
		st := MigrationStatus{Module: m.Name}
		for _, mig := range ms.Applied() {
			st.Applied = append(st.Applied, mig.Name)
		}
		for _, mig := range ms.Unapplied() {
			st.Pending = append(st.Pending, mig.Name)
		}
		out = append(out, st)
	}
	return out, nil
}
