package roundservice

import (
	"context"
	"strings"

	rounddb "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/uptrace/bun"
)

// ReorderRounds assigns positions in the order of roundIDs, which must list
// every round of the set exactly once, and returns the reordered set.
func (s *RoundService) ReorderRounds(ctx context.Context, setID string, roundIDs []string) ([]rounddb.Round, error) {
	setID = strings.TrimSpace(setID)
	rounds, err := operation.Run(s.runner, ctx, "ReorderRounds", setID, func(ctx context.Context, db bun.IDB) (operation.Result[[]rounddb.Round], error) {
		if setID == "" {
			return operation.Failure[[]rounddb.Round](apperr.Validation("setId", "setId is required")), nil
		}
		if err := s.ordering.Reorder(ctx, db, ordering.RoundSet(setID), roundIDs); err != nil {
			return operation.FromError[[]rounddb.Round]("reorder rounds", err)
		}
		rounds, err := s.repo.ListBySet(ctx, db, setID)
		if err != nil {
			return operation.FromError[[]rounddb.Round]("list rounds", err)
		}
		return operation.Success(rounds), nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, TopicRoundsReordered, RoundsReorderedEvent{SetID: setID, RoundIDs: roundIDs})
	return rounds, nil
}
