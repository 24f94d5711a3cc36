package team

import (
	"context"
	"log/slog"

	lifelinedb "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/repositories"
	teamservice "github.com/Black-And-White-Club/quiz-host/app/modules/team/application"
	"github.com/Black-And-White-Club/quiz-host/app/modules/team/application/parsers"
	teamhandlers "github.com/Black-And-White-Club/quiz-host/app/modules/team/infrastructure/handlers"
	teamdb "github.com/Black-And-White-Club/quiz-host/app/modules/team/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/eventbus"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the team module.
type Module struct {
	Repository teamdb.Repository
	Service    *teamservice.TeamService
	Handlers   *teamhandlers.TeamHandlers
}

// NewTeamModule creates and initializes a new team module.
func NewTeamModule(
	ctx context.Context,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
	lifelines lifelinedb.Repository,
	publisher eventbus.Publisher,
) *Module {
	logger.InfoContext(ctx, "team.NewTeamModule initializing")

	repo := teamdb.NewRepository(db)
	positions := ordering.NewService(ordering.NewTableStore(db, "teams", "display_order", ""))
	service := teamservice.NewTeamService(repo, lifelines, positions, parsers.NewFactory(), publisher, logger, metrics, tracer, db)

	return &Module{
		Repository: repo,
		Service:    service,
		Handlers:   teamhandlers.NewTeamHandlers(service, logger, tracer),
	}
}
