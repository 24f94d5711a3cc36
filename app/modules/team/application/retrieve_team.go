package teamservice

import (
	"context"
	"errors"

	teamdb "github.com/Black-And-White-Club/quiz-host/app/modules/team/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/uptrace/bun"
)

// GetTeam returns a team by id.
func (s *TeamService) GetTeam(ctx context.Context, id string) (*teamdb.Team, error) {
	return operation.Run(s.runner, ctx, "GetTeam", id, func(ctx context.Context, db bun.IDB) (operation.Result[*teamdb.Team], error) {
		team, err := s.repo.Get(ctx, db, id)
		if err != nil {
			if errors.Is(err, teamdb.ErrNotFound) {
				return operation.Failure[*teamdb.Team](apperr.NotFound("team", id)), nil
			}
			return operation.FromError[*teamdb.Team]("get team", err)
		}
		return operation.Success(team), nil
	})
}

// ListTeams returns every team in display order.
func (s *TeamService) ListTeams(ctx context.Context) ([]teamdb.Team, error) {
	return operation.Run(s.runner, ctx, "ListTeams", "teams", func(ctx context.Context, db bun.IDB) (operation.Result[[]teamdb.Team], error) {
		teams, err := s.repo.List(ctx, db)
		if err != nil {
			return operation.FromError[[]teamdb.Team]("list teams", err)
		}
		if teams == nil {
			teams = []teamdb.Team{}
		}
		return operation.Success(teams), nil
	})
}

// CheckPositions verifies the team display order and, with repair, compacts it.
func (s *TeamService) CheckPositions(ctx context.Context, repair bool) (ordering.Report, error) {
	return operation.Run(s.runner, ctx, "CheckTeamPositions", "teams", func(ctx context.Context, db bun.IDB) (operation.Result[ordering.Report], error) {
		report, err := s.ordering.Check(ctx, db, ordering.Teams(), repair)
		if err != nil {
			return operation.FromError[ordering.Report]("check positions", err)
		}
		return operation.Success(report), nil
	})
}
