package roundservice

import (
	"context"
	"errors"
	"strings"

	rounddomain "github.com/Black-And-White-Club/quiz-host/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CreateRound resolves the round configuration from its category default and
// the optional override, then appends the round to the end of its set.
func (s *RoundService) CreateRound(ctx context.Context, req CreateRoundRequest) (*rounddb.Round, error) {
	round, err := operation.Run(s.runner, ctx, "CreateRound", req.SetID, func(ctx context.Context, db bun.IDB) (operation.Result[*rounddb.Round], error) {
		return s.executeCreateRound(ctx, db, req)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, TopicRoundCreated, RoundEvent{RoundID: round.ID, SetID: round.SetID})
	return round, nil
}

func (s *RoundService) executeCreateRound(ctx context.Context, db bun.IDB, req CreateRoundRequest) (operation.Result[*rounddb.Round], error) {
	setID := strings.TrimSpace(req.SetID)
	name := strings.TrimSpace(req.Name)
	switch {
	case setID == "":
		return operation.Failure[*rounddb.Round](apperr.Validation("setId", "setId is required")), nil
	case req.CategoryID == "":
		return operation.Failure[*rounddb.Round](apperr.Validation("categoryId", "categoryId is required")), nil
	case name == "":
		return operation.Failure[*rounddb.Round](apperr.Validation("name", "name is required")), nil
	}

	category, err := s.categories.Get(ctx, db, req.CategoryID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return operation.Failure[*rounddb.Round](apperr.NotFound("category", req.CategoryID)), nil
		}
		return operation.FromError[*rounddb.Round]("get category", err)
	}

	cfg, err := rounddomain.Resolve(rounddomain.ResolveDefault(category.Domain()), req.ConfigurationOverride)
	if err != nil {
		return operation.FromError[*rounddb.Round]("resolve configuration", err)
	}
	if err := validateLifelines(ctx, db, s.lifelines, cfg); err != nil {
		return operation.FromError[*rounddb.Round]("list lifeline slugs", err)
	}

	position, err := s.ordering.OnCreate(ctx, db, ordering.RoundSet(setID))
	if err != nil {
		return operation.FromError[*rounddb.Round]("assign position", err)
	}

	round := &rounddb.Round{
		ID:            uuid.NewString(),
		SetID:         setID,
		CategoryID:    category.ID,
		Name:          name,
		Position:      position,
		Configuration: rounddb.Configuration{RoundConfiguration: cfg},
	}
	if req.Description != nil {
		round.Description = strings.TrimSpace(*req.Description)
	}
	if req.ConfirmationRequired != nil {
		round.ConfirmationRequired = *req.ConfirmationRequired
	}
	if err := s.repo.Insert(ctx, db, round); err != nil {
		return operation.FromError[*rounddb.Round]("insert round", err)
	}
	return operation.Success(round), nil
}
