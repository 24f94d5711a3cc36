package roundservice

import (
	"context"
	"errors"

	rounddb "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/uptrace/bun"
)

// DeleteRound removes a round and closes the gap it leaves in its set within the
// same transaction.
func (s *RoundService) DeleteRound(ctx context.Context, id string) error {
	deleted, err := operation.Run(s.runner, ctx, "DeleteRound", id, func(ctx context.Context, db bun.IDB) (operation.Result[*rounddb.Round], error) {
		round, err := s.repo.Get(ctx, db, id)
		if err != nil {
			if errors.Is(err, rounddb.ErrNotFound) {
				return operation.Failure[*rounddb.Round](apperr.NotFound("round", id)), nil
			}
			return operation.FromError[*rounddb.Round]("get round", err)
		}
		if err := s.repo.Delete(ctx, db, round.ID); err != nil {
			if errors.Is(err, rounddb.ErrNoRowsAffected) {
				return operation.Failure[*rounddb.Round](apperr.NotFound("round", id)), nil
			}
			return operation.FromError[*rounddb.Round]("delete round", err)
		}
		if err := s.ordering.OnDelete(ctx, db, ordering.RoundSet(round.SetID), round.Position); err != nil {
			return operation.FromError[*rounddb.Round]("close position gap", err)
		}
		return operation.Success(round), nil
	})
	if err != nil {
		return err
	}
	s.publish(ctx, TopicRoundDeleted, RoundEvent{RoundID: deleted.ID, SetID: deleted.SetID})
	return nil
}
