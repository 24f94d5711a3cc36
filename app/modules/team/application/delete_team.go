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

// DeleteTeam removes a team and closes the gap in the display order within
// the same transaction.
func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	team, err := operation.Run(s.runner, ctx, "DeleteTeam", id, func(ctx context.Context, db bun.IDB) (operation.Result[*teamdb.Team], error) {
		team, err := s.repo.Get(ctx, db, id)
		if err != nil {
			if errors.Is(err, teamdb.ErrNotFound) {
				return operation.Failure[*teamdb.Team](apperr.NotFound("team", id)), nil
			}
			return operation.FromError[*teamdb.Team]("get team", err)
		}
		if err := s.repo.Delete(ctx, db, team.ID); err != nil {
			if errors.Is(err, teamdb.ErrNoRowsAffected) {
				return operation.Failure[*teamdb.Team](apperr.NotFound("team", id)), nil
			}
			return operation.FromError[*teamdb.Team]("delete team", err)
		}
		if err := s.ordering.OnDelete(ctx, db, ordering.Teams(), team.DisplayOrder); err != nil {
			return operation.FromError[*teamdb.Team]("close display order gap", err)
		}
		return operation.Success(team), nil
	})
	if err != nil {
		return err
	}
	s.publish(ctx, TopicTeamDeleted, TeamEvent{TeamID: team.ID, Slug: team.Slug})
	return nil
}
