package teamservice

import (
	"context"
	"errors"
	"strings"

	teamdb "github.com/Black-And-White-Club/quiz-host/app/modules/team/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability/attr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/uptrace/bun"
)

// ImportRoster creates one team per roster row in a single transaction. Rows
// naming an existing team are skipped, so importing the same file twice is
// harmless.
func (s *TeamService) ImportRoster(ctx context.Context, filename string, data []byte) (*ImportResult, error) {
	result, err := operation.Run(s.runner, ctx, "ImportRoster", filename, func(ctx context.Context, db bun.IDB) (operation.Result[*ImportResult], error) {
		parser, err := s.parsers.GetParser(filename)
		if err != nil {
			return operation.Failure[*ImportResult](apperr.Validation("file", "%v", err)), nil
		}
		entries, err := parser.Parse(data)
		if err != nil {
			return operation.Failure[*ImportResult](apperr.Validation("file", "%v", err)), nil
		}

		result := &ImportResult{Created: []teamdb.Team{}, Skipped: []string{}}
		for _, entry := range entries {
			existing, err := s.repo.GetBySlug(ctx, db, Slugify(entry.Name))
			switch {
			case err == nil && strings.EqualFold(existing.Name, entry.Name):
				result.Skipped = append(result.Skipped, entry.Name)
				continue
			case err != nil && !errors.Is(err, teamdb.ErrNotFound):
				return operation.FromError[*ImportResult]("get team by slug", err)
			}

			team, err := s.insertTeam(ctx, db, entry.Name, entry.Color, teamdb.Lifelines{})
			if err != nil {
				return operation.FromError[*ImportResult]("insert team", err)
			}
			result.Created = append(result.Created, *team)
		}
		return operation.Success(result), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Roster imported",
		attr.ExtractCorrelationID(ctx),
		attr.String("file", filename),
		attr.Int("created", len(result.Created)),
		attr.Int("skipped", len(result.Skipped)),
	)
	if len(result.Created) > 0 {
		s.publish(ctx, TopicTeamsImported, result.Created)
	}
	return result, nil
}
