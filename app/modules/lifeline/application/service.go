package lifelineservice

import (
	"context"
	"log/slog"
	"strings"

	lifelinedb "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Service is the lifeline catalogue.
type Service interface {
	ListLifelines(ctx context.Context) ([]lifelinedb.LifelineDefinition, error)
	SeedLifelines(ctx context.Context, defs []SeedLifeline) (int, error)
}

// SeedLifeline is one catalogue entry supplied by a seed file.
type SeedLifeline struct {
	Slug        string `yaml:"slug"`
	DisplayName string `yaml:"displayName"`
	Description string `yaml:"description"`
}

// LifelineService implements Service.
type LifelineService struct {
	repo   lifelinedb.Repository
	runner *operation.Runner
}

// NewLifelineService creates a new LifelineService.
func NewLifelineService(
	repo lifelinedb.Repository,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) *LifelineService {
	return &LifelineService{
		repo:   repo,
		runner: operation.NewRunner("LifelineService", db, logger, metrics, tracer),
	}
}

// ListLifelines returns the catalogue ordered by display name.
func (s *LifelineService) ListLifelines(ctx context.Context) ([]lifelinedb.LifelineDefinition, error) {
	return operation.Run(s.runner, ctx, "ListLifelines", "all", func(ctx context.Context, db bun.IDB) (operation.Result[[]lifelinedb.LifelineDefinition], error) {
		defs, err := s.repo.List(ctx, db)
		if err != nil {
			return operation.Result[[]lifelinedb.LifelineDefinition]{}, apperr.Persistence("list lifelines", err)
		}
		if defs == nil {
			defs = []lifelinedb.LifelineDefinition{}
		}
		return operation.Success(defs), nil
	})
}

// SeedLifelines upserts defs by slug and returns how many were inserted.
func (s *LifelineService) SeedLifelines(ctx context.Context, defs []SeedLifeline) (int, error) {
	return operation.Run(s.runner, ctx, "SeedLifelines", "seed", func(ctx context.Context, db bun.IDB) (operation.Result[int], error) {
		inserted := 0
		for i, d := range defs {
			slug := strings.TrimSpace(d.Slug)
			if slug == "" {
				return operation.Failure[int](apperr.Validation("lifelines", "entry %d has no slug", i)), nil
			}
			name := strings.TrimSpace(d.DisplayName)
			if name == "" {
				name = slug
			}
			created, err := s.repo.Upsert(ctx, db, &lifelinedb.LifelineDefinition{
				Slug:        slug,
				DisplayName: name,
				Description: strings.TrimSpace(d.Description),
			})
			if err != nil {
				return operation.Result[int]{}, apperr.Persistence("upsert lifeline", err)
			}
			if created {
				inserted++
			}
		}
		return operation.Success(inserted), nil
	})
}
