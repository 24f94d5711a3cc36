package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/quiz-host/app"
	"github.com/Black-And-White-Club/quiz-host/config"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "quizhost",
		Usage: "quiz host round configuration and ordering service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"QUIZHOST_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			newServeCommand(),
			newMigrateCommand(),
			newSeedCommand(),
			newTeamsCommand(),
			newPositionsCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadApp reads the configuration named by --config and initializes the app.
func loadApp(c *cli.Context) (*app.App, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return app.NewApp(c.Context, cfg, nil)
}

// withMigratedApp runs fn on an app whose migrations are applied.
func withMigratedApp(c *cli.Context, fn func(a *app.App) error) (err error) {
	a, err := loadApp(c)
	if err != nil {
		return err
	}
	defer closeApp(a, &err)

	if err := a.Migrate(c.Context); err != nil {
		return err
	}
	return fn(a)
}

// closeApp closes a and joins a close failure into *err.
func closeApp(a *app.App, err *error) {
	if cerr := a.Close(); cerr != nil {
		*err = errors.Join(*err, fmt.Errorf("close app: %w", cerr))
	}
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP RPC server",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withMigratedApp(c, func(a *app.App) error {
				if a.Config.Seed.OnStart {
					if _, err := a.Seed(ctx, false); err != nil {
						return fmt.Errorf("seed catalogue: %w", err)
					}
				}
				return a.Start(ctx)
			})
		},
	}
}

func newSeedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "install lifelines and round categories from a YAML seed",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "seed file (default: embedded catalogue)"},
		},
		Action: func(c *cli.Context) error {
			return withMigratedApp(c, func(a *app.App) error {
				if f := c.String("file"); f != "" {
					a.Config.Seed.File = f
				}
				res, err := a.Seed(c.Context, true)
				if err != nil {
					return err
				}
				fmt.Printf("Inserted %d lifelines and %d round categories\n", res.Lifelines, res.Categories)
				return nil
			})
		},
	}
}
