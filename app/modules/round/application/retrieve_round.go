package roundservice

import (
	"context"
	"errors"
	"strings"

	rounddb "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/uptrace/bun"
)

// GetRound returns a round by id.
func (s *RoundService) GetRound(ctx context.Context, id string) (*rounddb.Round, error) {
	return operation.Run(s.runner, ctx, "GetRound", id, func(ctx context.Context, db bun.IDB) (operation.Result[*rounddb.Round], error) {
		round, err := s.repo.Get(ctx, db, id)
		if err != nil {
			if errors.Is(err, rounddb.ErrNotFound) {
				return operation.Failure[*rounddb.Round](apperr.NotFound("round", id)), nil
			}
			return operation.FromError[*rounddb.Round]("get round", err)
		}
		return operation.Success(round), nil
	})
}

// ListRounds returns the rounds of a set ordered by position.
func (s *RoundService) ListRounds(ctx context.Context, setID string) ([]rounddb.Round, error) {
	setID = strings.TrimSpace(setID)
	return operation.Run(s.runner, ctx, "ListRounds", setID, func(ctx context.Context, db bun.IDB) (operation.Result[[]rounddb.Round], error) {
		if setID == "" {
			return operation.Failure[[]rounddb.Round](apperr.Validation("setId", "setId is required")), nil
		}
		rounds, err := s.repo.ListBySet(ctx, db, setID)
		if err != nil {
			return operation.FromError[[]rounddb.Round]("list rounds", err)
		}
		if rounds == nil {
			rounds = []rounddb.Round{}
		}
		return operation.Success(rounds), nil
	})
}

// CheckPositions verifies every round set and, with repair, compacts the ones
// that are not dense.
func (s *RoundService) CheckPositions(ctx context.Context, repair bool) ([]ordering.Report, error) {
	return operation.Run(s.runner, ctx, "CheckRoundPositions", "all", func(ctx context.Context, db bun.IDB) (operation.Result[[]ordering.Report], error) {
		setIDs, err := s.repo.ListSetIDs(ctx, db)
		if err != nil {
			return operation.FromError[[]ordering.Report]("list set ids", err)
		}
		reports := make([]ordering.Report, 0, len(setIDs))
		for _, setID := range setIDs {
			report, err := s.ordering.Check(ctx, db, ordering.RoundSet(setID), repair)
			if err != nil {
				return operation.FromError[[]ordering.Report]("check positions", err)
			}
			reports = append(reports, report)
		}
		return operation.Success(reports), nil
	})
}
