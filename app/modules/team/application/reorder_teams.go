package teamservice

import (
	"context"

	teamdb "github.com/Black-And-White-Club/quiz-host/app/modules/team/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/uptrace/bun"
)

// ReorderTeams assigns display orders in the order of orderedIDs, which must
// list every team exactly once.
func (s *TeamService) ReorderTeams(ctx context.Context, orderedIDs []string) ([]teamdb.Team, error) {
	teams, err := operation.Run(s.runner, ctx, "ReorderTeams", "teams", func(ctx context.Context, db bun.IDB) (operation.Result[[]teamdb.Team], error) {
		if err := s.ordering.Reorder(ctx, db, ordering.Teams(), orderedIDs); err != nil {
			return operation.FromError[[]teamdb.Team]("reorder teams", err)
		}
		teams, err := s.repo.List(ctx, db)
		if err != nil {
			return operation.FromError[[]teamdb.Team]("list teams", err)
		}
		return operation.Success(teams), nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, TopicTeamsReordered, TeamsReorderedEvent{TeamIDs: orderedIDs})
	return teams, nil
}
