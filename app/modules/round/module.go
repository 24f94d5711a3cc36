package round

import (
	"context"
	"log/slog"

	lifelinedb "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/repositories"
	roundservice "github.com/Black-And-White-Club/quiz-host/app/modules/round/application"
	roundhandlers "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/handlers"
	rounddb "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/eventbus"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the round module.
type Module struct {
	Repository         rounddb.Repository
	CategoryRepository rounddb.CategoryRepository
	RoundService       *roundservice.RoundService
	CategoryService    *roundservice.RoundCategoryService
	Handlers           *roundhandlers.RoundHandlers
}

// NewRoundModule creates and initializes a new round module.
func NewRoundModule(
	ctx context.Context,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
	lifelines lifelinedb.Repository,
	publisher eventbus.Publisher,
) *Module {
	logger.InfoContext(ctx, "round.NewRoundModule initializing")

	repo := rounddb.NewRepository(db)
	categoryRepo := rounddb.NewCategoryRepository(db)
	positions := ordering.NewService(ordering.NewTableStore(db, "rounds", "position", "set_id"))

	roundService := roundservice.NewRoundService(repo, categoryRepo, lifelines, positions, publisher, logger, metrics, tracer, db)
	categoryService := roundservice.NewCategoryService(categoryRepo, repo, lifelines, publisher, logger, metrics, tracer, db)
	handlers := roundhandlers.NewRoundHandlers(roundService, categoryService, logger, tracer)

	return &Module{
		Repository:         repo,
		CategoryRepository: categoryRepo,
		RoundService:       roundService,
		CategoryService:    categoryService,
		Handlers:           handlers,
	}
}
