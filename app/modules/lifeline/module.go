package lifeline

import (
	"context"
	"log/slog"

	lifelineservice "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/application"
	lifelinehandlers "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/handlers"
	lifelinedb "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the lifeline module.
type Module struct {
	Repository lifelinedb.Repository
	Service    *lifelineservice.LifelineService
	Handlers   *lifelinehandlers.LifelineHandlers
}

// NewLifelineModule creates and initializes a new lifeline module.
func NewLifelineModule(ctx context.Context, logger *slog.Logger, metrics observability.Metrics, tracer trace.Tracer, db *bun.DB) *Module {
	logger.InfoContext(ctx, "lifeline.NewLifelineModule initializing")

	repo := lifelinedb.NewRepository(db)
	service := lifelineservice.NewLifelineService(repo, logger, metrics, tracer, db)
	handlers := lifelinehandlers.NewLifelineHandlers(service, logger, tracer)

	return &Module{Repository: repo, Service: service, Handlers: handlers}
}
