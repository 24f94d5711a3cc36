package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Black-And-White-Club/quiz-host/app"
	"github.com/urfave/cli/v2"
)

func newTeamsCommand() *cli.Command {
	return &cli.Command{
		Name:  "teams",
		Usage: "team administration",
		Subcommands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "create teams from a .csv or .xlsx roster",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return cli.Exit("a roster file is required", 1)
					}
					data, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("read roster: %w", err)
					}

					return withMigratedApp(c, func(a *app.App) error {
						result, err := a.Modules.Team.Service.ImportRoster(c.Context, filepath.Base(path), data)
						if err != nil {
							return err
						}
						for _, t := range result.Created {
							fmt.Printf("created %s (%s)\n", t.Name, t.Slug)
						}
						for _, name := range result.Skipped {
							fmt.Printf("skipped %s (already exists)\n", name)
						}
						return nil
					})
				},
			},
		},
	}
}
