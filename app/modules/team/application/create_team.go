package teamservice

import (
	"context"
	"strings"

	rounddomain "github.com/Black-And-White-Club/quiz-host/app/modules/round/domain"
	teamdb "github.com/Black-And-White-Club/quiz-host/app/modules/team/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CreateTeam stores a new team at the end of the display order.
func (s *TeamService) CreateTeam(ctx context.Context, req CreateTeamRequest) (*teamdb.Team, error) {
	team, err := operation.Run(s.runner, ctx, "CreateTeam", req.Name, func(ctx context.Context, db bun.IDB) (operation.Result[*teamdb.Team], error) {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return operation.Failure[*teamdb.Team](apperr.Validation("name", "name is required")), nil
		}
		lifelines, err := s.normalizeLifelines(ctx, db, req.Lifelines)
		if err != nil {
			return operation.FromError[*teamdb.Team]("validate lifelines", err)
		}
		color := ""
		if req.Color != nil {
			color = strings.TrimSpace(*req.Color)
		}

		team, err := s.insertTeam(ctx, db, name, color, lifelines)
		if err != nil {
			return operation.FromError[*teamdb.Team]("insert team", err)
		}
		return operation.Success(team), nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, TopicTeamCreated, TeamEvent{TeamID: team.ID, Slug: team.Slug})
	return team, nil
}

// insertTeam derives a free slug, appends the team to the display order and
// stores it.
func (s *TeamService) insertTeam(ctx context.Context, db bun.IDB, name, color string, lifelines teamdb.Lifelines) (*teamdb.Team, error) {
	slug, err := s.uniqueSlug(ctx, db, Slugify(name), "")
	if err != nil {
		return nil, err
	}
	position, err := s.ordering.OnCreate(ctx, db, ordering.Teams())
	if err != nil {
		return nil, err
	}
	team := &teamdb.Team{
		ID:           uuid.NewString(),
		Name:         name,
		Slug:         slug,
		DisplayOrder: position,
		Color:        color,
		Lifelines:    lifelines,
	}
	if err := s.repo.Insert(ctx, db, team); err != nil {
		return nil, err
	}
	return team, nil
}

// normalizeLifelines validates slugs against the catalogue and clamps counts.
func (s *TeamService) normalizeLifelines(ctx context.Context, db bun.IDB, in []teamdb.Lifeline) (teamdb.Lifelines, error) {
	out := make(teamdb.Lifelines, 0, len(in))
	if len(in) == 0 {
		return out, nil
	}
	known, err := s.lifelines.Slugs(ctx, db)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(in))
	for _, l := range in {
		slug := strings.TrimSpace(l.Slug)
		if slug == "" {
			return nil, apperr.Validation("lifelines", "lifeline slug must not be empty")
		}
		if _, ok := known[slug]; !ok {
			return nil, apperr.Validation("lifelines", "unknown lifeline %q", slug)
		}
		if _, dup := seen[slug]; dup {
			return nil, apperr.Validation("lifelines", "lifeline %q listed more than once", slug)
		}
		seen[slug] = struct{}{}
		out = append(out, teamdb.Lifeline{
			Slug:         slug,
			DefaultCount: rounddomain.LifelineRange.ClampQuota(l.DefaultCount),
			Enabled:      l.Enabled,
		})
	}
	return out, nil
}
