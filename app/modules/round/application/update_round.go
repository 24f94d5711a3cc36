package roundservice

import (
	"context"
	"errors"
	"strings"

	rounddomain "github.com/Black-And-White-Club/quiz-host/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/uptrace/bun"
)

// UpdateRound applies the provided fields. The configuration is re-resolved
// from the existing one, or from the new category's default when the category
// changes.
func (s *RoundService) UpdateRound(ctx context.Context, req UpdateRoundRequest) (*rounddb.Round, error) {
	round, err := operation.Run(s.runner, ctx, "UpdateRound", req.ID, func(ctx context.Context, db bun.IDB) (operation.Result[*rounddb.Round], error) {
		return s.executeUpdateRound(ctx, db, req)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, TopicRoundUpdated, RoundEvent{RoundID: round.ID, SetID: round.SetID})
	return round, nil
}

func (s *RoundService) executeUpdateRound(ctx context.Context, db bun.IDB, req UpdateRoundRequest) (operation.Result[*rounddb.Round], error) {
	if req.ID == "" {
		return operation.Failure[*rounddb.Round](apperr.Validation("id", "id is required")), nil
	}

	existing, err := s.repo.Get(ctx, db, req.ID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return operation.Failure[*rounddb.Round](apperr.NotFound("round", req.ID)), nil
		}
		return operation.FromError[*rounddb.Round]("get round", err)
	}

	updates := &rounddb.UpdateFields{
		ConfirmationRequired: req.ConfirmationRequired,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return operation.Failure[*rounddb.Round](apperr.Validation("name", "name must not be empty")), nil
		}
		updates.Name = &name
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		updates.Description = &desc
	}

	base := existing.Configuration.RoundConfiguration
	categoryChanged := req.CategoryID != nil && *req.CategoryID != existing.CategoryID
	if categoryChanged {
		category, err := s.categories.Get(ctx, db, *req.CategoryID)
		if err != nil {
			if errors.Is(err, rounddb.ErrNotFound) {
				return operation.Failure[*rounddb.Round](apperr.NotFound("category", *req.CategoryID)), nil
			}
			return operation.FromError[*rounddb.Round]("get category", err)
		}
		base = rounddomain.ResolveDefault(category.Domain())
		updates.CategoryID = &category.ID
	}

	if categoryChanged || !req.ConfigurationOverride.IsEmpty() {
		cfg, err := rounddomain.Resolve(base, req.ConfigurationOverride)
		if err != nil {
			return operation.FromError[*rounddb.Round]("resolve configuration", err)
		}
		if err := validateLifelines(ctx, db, s.lifelines, cfg); err != nil {
			return operation.FromError[*rounddb.Round]("list lifeline slugs", err)
		}
		updates.Configuration = &cfg
	}

	if updates.IsEmpty() {
		return operation.Success(existing), nil
	}
	if err := s.repo.Update(ctx, db, existing.ID, updates); err != nil {
		if errors.Is(err, rounddb.ErrNoRowsAffected) {
			return operation.Failure[*rounddb.Round](apperr.NotFound("round", req.ID)), nil
		}
		return operation.FromError[*rounddb.Round]("update round", err)
	}

	updated, err := s.repo.Get(ctx, db, existing.ID)
	if err != nil {
		return operation.FromError[*rounddb.Round]("reload round", err)
	}
	return operation.Success(updated), nil
}
