package teamservice

import (
	"context"
	"errors"
	"strings"

	teamdb "github.com/Black-And-White-Club/quiz-host/app/modules/team/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/uptrace/bun"
)

// UpdateTeam applies the provided fields. Renaming re-derives the slug.
func (s *TeamService) UpdateTeam(ctx context.Context, req UpdateTeamRequest) (*teamdb.Team, error) {
	team, err := operation.Run(s.runner, ctx, "UpdateTeam", req.ID, func(ctx context.Context, db bun.IDB) (operation.Result[*teamdb.Team], error) {
		existing, err := s.repo.Get(ctx, db, req.ID)
		if err != nil {
			if errors.Is(err, teamdb.ErrNotFound) {
				return operation.Failure[*teamdb.Team](apperr.NotFound("team", req.ID)), nil
			}
			return operation.FromError[*teamdb.Team]("get team", err)
		}

		updates := &teamdb.UpdateFields{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return operation.Failure[*teamdb.Team](apperr.Validation("name", "name must not be empty")), nil
			}
			if name != existing.Name {
				slug, err := s.uniqueSlug(ctx, db, Slugify(name), existing.ID)
				if err != nil {
					return operation.FromError[*teamdb.Team]("derive slug", err)
				}
				updates.Name = &name
				if slug != existing.Slug {
					updates.Slug = &slug
				}
			}
		}
		if req.Color != nil {
			color := strings.TrimSpace(*req.Color)
			updates.Color = &color
		}
		if req.Lifelines != nil {
			lifelines, err := s.normalizeLifelines(ctx, db, *req.Lifelines)
			if err != nil {
				return operation.FromError[*teamdb.Team]("validate lifelines", err)
			}
			updates.Lifelines = &lifelines
		}

		if updates.IsEmpty() {
			return operation.Success(existing), nil
		}
		if err := s.repo.Update(ctx, db, existing.ID, updates); err != nil {
			if errors.Is(err, teamdb.ErrNoRowsAffected) {
				return operation.Failure[*teamdb.Team](apperr.NotFound("team", req.ID)), nil
			}
			return operation.FromError[*teamdb.Team]("update team", err)
		}
		updated, err := s.repo.Get(ctx, db, existing.ID)
		if err != nil {
			return operation.FromError[*teamdb.Team]("reload team", err)
		}
		return operation.Success(updated), nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, TopicTeamUpdated, TeamEvent{TeamID: team.ID, Slug: team.Slug})
	return team, nil
}
