package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Black-And-White-Club/quiz-host/app/shared/database"
	"github.com/urfave/cli/v2"
)

// withMigrators runs fn with the per-module migrators of the configured database.
func withMigrators(c *cli.Context, fn func(migrators []database.ModuleMigrator) error) (err error) {
	a, err := loadApp(c)
	if err != nil {
		return err
	}
	defer closeApp(a, &err)
	return fn(a.Migrators)
}

func findMigrator(migrators []database.ModuleMigrator, name string) (database.ModuleMigrator, error) {
	for _, m := range migrators {
		if m.Name == name {
			return m, nil
		}
	}
	return database.ModuleMigrator{}, fmt.Errorf("invalid module name: %s", name)
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators []database.ModuleMigrator) error {
						return database.InitAll(c.Context, migrators)
					})
				},
			},
			{
				Name:  "up",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators []database.ModuleMigrator) error {
						if err := database.InitAll(c.Context, migrators); err != nil {
							return err
						}
						for _, m := range migrators {
							group, err := m.Migrator.Migrate(c.Context)
							if err != nil {
								return fmt.Errorf("migrate %s: %w", m.Name, err)
							}
							if group.IsZero() {
								fmt.Printf("No new migrations to run for module: %s\n", m.Name)
							} else {
								fmt.Printf("Migrated module: %s to %s\n", m.Name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group of every module",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators []database.ModuleMigrator) error {
						// Dependents first.
						for _, m := range slices.Backward(migrators) {
							group, err := m.Migrator.Rollback(c.Context)
							if err != nil {
								return fmt.Errorf("rollback %s: %w", m.Name, err)
							}
							if group.IsZero() {
								fmt.Printf("No groups to roll back for module: %s\n", m.Name)
							} else {
								fmt.Printf("Rolled back module: %s to %s\n", m.Name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators []database.ModuleMigrator) error {
						m, err := findMigrator(migrators, c.Args().First())
						if err != nil {
							return err
						}
						name := strings.Join(c.Args().Tail(), "_")
						mf, err := m.Migrator.CreateGoMigration(c.Context, name)
						if err != nil {
							return err
						}
						fmt.Printf("Created migration for module %s: %s (%s)\n", m.Name, mf.Name, mf.Path)
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators []database.ModuleMigrator) error {
						for _, m := range migrators {
							ms, err := m.Migrator.MigrationsWithStatus(c.Context)
							if err != nil {
								return err
							}
							fmt.Printf("Migrations for module: %s\n", m.Name)
							fmt.Printf("  %s\n", ms)
							fmt.Printf("  Applied: %s\n", ms.Applied())
							fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						}
						return nil
					})
				},
			},
		},
	}
}
