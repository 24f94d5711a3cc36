package main

import (
	"fmt"

	"github.com/Black-And-White-Club/quiz-host/app"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/urfave/cli/v2"
)

func newPositionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "positions",
		Usage: "check that round positions and team display orders are dense",
		Subcommands: []*cli.Command{
			{
				Name:   "verify",
				Usage:  "report scopes whose positions are not 0..n-1",
				Action: checkPositions(false),
			},
			{
				Name:   "repair",
				Usage:  "renumber scopes whose positions are not 0..n-1",
				Action: checkPositions(true),
			},
		},
	}
}

func checkPositions(repair bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		return withMigratedApp(c, func(a *app.App) error {
			reports, err := a.Modules.Round.RoundService.CheckPositions(c.Context, repair)
			if err != nil {
				return err
			}
			teamReport, err := a.Modules.Team.Service.CheckPositions(c.Context, repair)
			if err != nil {
				return err
			}
			reports = append(reports, teamReport)

			broken := 0
			for _, r := range reports {
				printReport(r, repair)
				if r.Problem != "" {
					broken++
				}
			}
			if broken > 0 && !repair {
				return cli.Exit(fmt.Sprintf("%d scope(s) not dense; run `quizhost positions repair`", broken), 1)
			}
			return nil
		})
	}
}

func printReport(r ordering.Report, repair bool) {
	switch {
	case r.Problem == "":
		fmt.Printf("%s: ok\n", r.Scope)
	case repair:
		fmt.Printf("%s: repaired, %d moved (%s)\n", r.Scope, r.Moved, r.Problem)
	default:
		fmt.Printf("%s: %s\n", r.Scope, r.Problem)
	}
}
