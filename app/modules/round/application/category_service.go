package roundservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	lifelinedb "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/repositories"
	rounddomain "github.com/Black-And-White-Club/quiz-host/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/eventbus"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability/attr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const (
	TopicCategoryCreated = "round_category.created"
	TopicCategoryUpdated = "round_category.updated"
	TopicCategoryDeleted = "round_category.deleted"
)

// CategoryEvent is the payload of the category topics.
type CategoryEvent struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
}

// CategoryService administers round categories.
type CategoryService interface {
	ListRoundCategories(ctx context.Context) ([]rounddb.RoundCategory, error)
	GetRoundCategory(ctx context.Context, id string) (*rounddb.RoundCategory, error)
	CreateRoundCategory(ctx context.Context, req CreateCategoryRequest) (*rounddb.RoundCategory, error)
	UpdateRoundCategory(ctx context.Context, req UpdateCategoryRequest) (*rounddb.RoundCategory, error)
	DeleteRoundCategory(ctx context.Context, id string) error
	SeedCategories(ctx context.Context, seeds []SeedCategory) (int, error)
}

// RoundCategoryService implements CategoryService.
type RoundCategoryService struct {
	repo      rounddb.CategoryRepository
	rounds    rounddb.Repository
	lifelines lifelinedb.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
	runner    *operation.Runner
}

// NewCategoryService creates a new RoundCategoryService.
func NewCategoryService(
	repo rounddb.CategoryRepository,
	rounds rounddb.Repository,
	lifelines lifelinedb.Repository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) *RoundCategoryService {
	if publisher == nil {
		publisher = eventbus.Nop{}
	}
	runner := operation.NewRunner("RoundCategoryService", db, logger, metrics, tracer)
	return &RoundCategoryService{
		repo:      repo,
		rounds:    rounds,
		lifelines: lifelines,
		publisher: publisher,
		logger:    runner.Logger,
		runner:    runner,
	}
}

func (s *RoundCategoryService) publish(ctx context.Context, topic string, c *rounddb.RoundCategory) {
	if err := s.publisher.Publish(ctx, topic, CategoryEvent{CategoryID: c.ID, Name: c.Name}); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

// ListRoundCategories returns every category ordered by name.
func (s *RoundCategoryService) ListRoundCategories(ctx context.Context) ([]rounddb.RoundCategory, error) {
	return operation.Run(s.runner, ctx, "ListRoundCategories", "all", func(ctx context.Context, db bun.IDB) (operation.Result[[]rounddb.RoundCategory], error) {
		categories, err := s.repo.List(ctx, db)
		if err != nil {
			return operation.FromError[[]rounddb.RoundCategory]("list categories", err)
		}
		if categories == nil {
			categories = []rounddb.RoundCategory{}
		}
		return operation.Success(categories), nil
	})
}

// GetRoundCategory returns a category by id.
func (s *RoundCategoryService) GetRoundCategory(ctx context.Context, id string) (*rounddb.RoundCategory, error) {
	return operation.Run(s.runner, ctx, "GetRoundCategory", id, func(ctx context.Context, db bun.IDB) (operation.Result[*rounddb.RoundCategory], error) {
		c, err := s.repo.Get(ctx, db, id)
		if err != nil {
			if errors.Is(err, rounddb.ErrNotFound) {
				return operation.Failure[*rounddb.RoundCategory](apperr.NotFound("category", id)), nil
			}
			return operation.FromError[*rounddb.RoundCategory]("get category", err)
		}
		return operation.Success(c), nil
	})
}

// CreateRoundCategory stores a new category. Every fragment of the default
// configuration is required.
func (s *RoundCategoryService) CreateRoundCategory(ctx context.Context, req CreateCategoryRequest) (*rounddb.RoundCategory, error) {
	c, err := operation.Run(s.runner, ctx, "CreateRoundCategory", req.Name, func(ctx context.Context, db bun.IDB) (operation.Result[*rounddb.RoundCategory], error) {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return operation.Failure[*rounddb.RoundCategory](apperr.Validation("name", "name is required")), nil
		}
		if len(req.DefaultConfiguration) == 0 {
			return operation.Failure[*rounddb.RoundCategory](apperr.Validation("defaultConfiguration", "defaultConfiguration is required")), nil
		}
		cfg, err := s.decodeDefault(ctx, db, req.DefaultConfiguration)
		if err != nil {
			return operation.FromError[*rounddb.RoundCategory]("decode default configuration", err)
		}
		if err := s.ensureNameFree(ctx, db, name, ""); err != nil {
			return operation.FromError[*rounddb.RoundCategory]("check category name", err)
		}

		c := &rounddb.RoundCategory{
			ID:                   uuid.NewString(),
			Name:                 name,
			DefaultConfiguration: rounddb.Configuration{RoundConfiguration: cfg},
		}
		if err := s.repo.Insert(ctx, db, c); err != nil {
			return operation.FromError[*rounddb.RoundCategory]("insert category", err)
		}
		return operation.Success(c), nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, TopicCategoryCreated, c)
	return c, nil
}

// UpdateRoundCategory renames a category or replaces its default configuration.
// Rounds already created from it keep their own configuration.
func (s *RoundCategoryService) UpdateRoundCategory(ctx context.Context, req UpdateCategoryRequest) (*rounddb.RoundCategory, error) {
	c, err := operation.Run(s.runner, ctx, "UpdateRoundCategory", req.ID, func(ctx context.Context, db bun.IDB) (operation.Result[*rounddb.RoundCategory], error) {
		existing, err := s.repo.Get(ctx, db, req.ID)
		if err != nil {
			if errors.Is(err, rounddb.ErrNotFound) {
				return operation.Failure[*rounddb.RoundCategory](apperr.NotFound("category", req.ID)), nil
			}
			return operation.FromError[*rounddb.RoundCategory]("get category", err)
		}

		updates := &rounddb.CategoryUpdateFields{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return operation.Failure[*rounddb.RoundCategory](apperr.Validation("name", "name must not be empty")), nil
			}
			if name != existing.Name {
				if err := s.ensureNameFree(ctx, db, name, existing.ID); err != nil {
					return operation.FromError[*rounddb.RoundCategory]("check category name", err)
				}
				updates.Name = &name
			}
		}
		if len(req.DefaultConfiguration) > 0 {
			cfg, err := s.decodeDefault(ctx, db, req.DefaultConfiguration)
			if err != nil {
				return operation.FromError[*rounddb.RoundCategory]("decode default configuration", err)
			}
			updates.DefaultConfiguration = &cfg
		}

		if updates.IsEmpty() {
			return operation.Success(existing), nil
		}
		if err := s.repo.Update(ctx, db, existing.ID, updates); err != nil {
			if errors.Is(err, rounddb.ErrNoRowsAffected) {
				return operation.Failure[*rounddb.RoundCategory](apperr.NotFound("category", req.ID)), nil
			}
			return operation.FromError[*rounddb.RoundCategory]("update category", err)
		}
		updated, err := s.repo.Get(ctx, db, existing.ID)
		if err != nil {
			return operation.FromError[*rounddb.RoundCategory]("reload category", err)
		}
		return operation.Success(updated), nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, TopicCategoryUpdated, c)
	return c, nil
}

// DeleteRoundCategory removes a category no round references.
func (s *RoundCategoryService) DeleteRoundCategory(ctx context.Context, id string) error {
	c, err := operation.Run(s.runner, ctx, "DeleteRoundCategory", id, func(ctx context.Context, db bun.IDB) (operation.Result[*rounddb.RoundCategory], error) {
		existing, err := s.repo.Get(ctx, db, id)
		if err != nil {
			if errors.Is(err, rounddb.ErrNotFound) {
				return operation.Failure[*rounddb.RoundCategory](apperr.NotFound("category", id)), nil
			}
			return operation.FromError[*rounddb.RoundCategory]("get category", err)
		}
		n, err := s.rounds.CountByCategory(ctx, db, id)
		if err != nil {
			return operation.FromError[*rounddb.RoundCategory]("count rounds", err)
		}
		if n > 0 {
			return operation.Failure[*rounddb.RoundCategory](apperr.Validation("id", "category is used by %d round(s)", n)), nil
		}
		if err := s.repo.Delete(ctx, db, id); err != nil {
			if errors.Is(err, rounddb.ErrNoRowsAffected) {
				return operation.Failure[*rounddb.RoundCategory](apperr.NotFound("category", id)), nil
			}
			return operation.FromError[*rounddb.RoundCategory]("delete category", err)
		}
		return operation.Success(existing), nil
	})
	if err != nil {
		return err
	}
	s.publish(ctx, TopicCategoryDeleted, c)
	return nil
}

// SeedCategories inserts the seeds whose name is not taken yet and returns how
// many were inserted. Existing categories are left as the host edited them.
func (s *RoundCategoryService) SeedCategories(ctx context.Context, seeds []SeedCategory) (int, error) {
	return operation.Run(s.runner, ctx, "SeedCategories", "seed", func(ctx context.Context, db bun.IDB) (operation.Result[int], error) {
		inserted := 0
		for _, seed := range seeds {
			name := strings.TrimSpace(seed.Name)
			if name == "" {
				return operation.Failure[int](apperr.Validation("categories", "seed category has no name")), nil
			}
			_, err := s.repo.GetByName(ctx, db, name)
			if err == nil {
				continue
			}
			if !errors.Is(err, rounddb.ErrNotFound) {
				return operation.FromError[int]("get category", err)
			}

			cfg, err := s.decodeDefault(ctx, db, seed.DefaultConfiguration)
			if err != nil {
				var ae *apperr.Error
				if errors.As(err, &ae) && ae.Kind == apperr.KindValidation {
					return operation.Failure[int](apperr.Validation(ae.Field, "category %q: %s", name, ae.Message)), nil
				}
				return operation.FromError[int]("decode default configuration", err)
			}
			if err := s.repo.Insert(ctx, db, &rounddb.RoundCategory{
				ID:                   uuid.NewString(),
				Name:                 name,
				DefaultConfiguration: rounddb.Configuration{RoundConfiguration: cfg},
			}); err != nil {
				return operation.FromError[int]("insert category", err)
			}
			inserted++
		}
		return operation.Success(inserted), nil
	})
}

func (s *RoundCategoryService) decodeDefault(ctx context.Context, db bun.IDB, raw []byte) (rounddomain.RoundConfiguration, error) {
	cfg, err := rounddomain.DecodeConfiguration(raw)
	if err != nil {
		return rounddomain.RoundConfiguration{}, err
	}
	if err := validateLifelines(ctx, db, s.lifelines, cfg); err != nil {
		return rounddomain.RoundConfiguration{}, err
	}
	return cfg, nil
}

// ensureNameFree returns a validation error when name belongs to a category
// other than selfID.
func (s *RoundCategoryService) ensureNameFree(ctx context.Context, db bun.IDB, name, selfID string) error {
	other, err := s.repo.GetByName(ctx, db, name)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return nil
		}
		return err
	}
	if other.ID != selfID {
		return apperr.Validation("name", "a category named %q already exists", name)
	}
	return nil
}
