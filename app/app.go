package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Black-And-White-Club/quiz-host/app/modules/lifeline"
	lifelinemigrations "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/quiz-host/app/modules/round"
	roundservice "github.com/Black-And-White-Club/quiz-host/app/modules/round/application"
	roundmigrations "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/quiz-host/app/modules/team"
	teamservice "github.com/Black-And-White-Club/quiz-host/app/modules/team/application"
	teammigrations "github.com/Black-And-White-Club/quiz-host/app/modules/team/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/quiz-host/app/seed"
	"github.com/Black-And-White-Club/quiz-host/app/shared/database"
	"github.com/Black-And-White-Club/quiz-host/app/shared/eventbus"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability/attr"
	"github.com/Black-And-White-Club/quiz-host/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

// ServiceName names the tracer and the log source.
const ServiceName = "quiz-host"

// Modules holds the application modules.
type Modules struct {
	Lifeline *lifeline.Module
	Round    *round.Module
	Team     *team.Module
}

// App wires configuration, storage and modules together.
type App struct {
	Config      *config.Config
	Logger      *slog.Logger
	DB          *bun.DB
	Migrators   []database.ModuleMigrator
	EventBus    *eventbus.GoChannelBus
	// AuditRouter is set by Start.
	AuditRouter *message.Router
	Modules     *Modules

	registry *prometheus.Registry
}

// ModuleMigrations lists every module's migrations in dependency order.
func ModuleMigrations() []database.ModuleMigrations {
	return []database.ModuleMigrations{
		{Name: "lifeline", Migrations: lifelinemigrations.Migrations},
		{Name: "round", Migrations: roundmigrations.Migrations},
		{Name: "team", Migrations: teammigrations.Migrations},
	}
}

// AuditTopics lists the domain event topics the audit router logs.
func AuditTopics() []string {
	return []string{
		roundservice.TopicRoundCreated,
		roundservice.TopicRoundUpdated,
		roundservice.TopicRoundDeleted,
		roundservice.TopicRoundsReordered,
		roundservice.TopicCategoryCreated,
		roundservice.TopicCategoryUpdated,
		roundservice.TopicCategoryDeleted,
		teamservice.TopicTeamCreated,
		teamservice.TopicTeamUpdated,
		teamservice.TopicTeamDeleted,
		teamservice.TopicTeamsReordered,
		teamservice.TopicTeamsImported,
	}
}

// NewLogger builds the slog logger described by cfg.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler).With(attr.String("service", ServiceName))
}

// NewApp opens the database and initializes every module. Migrations are not
// applied; call Migrate.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = NewLogger(cfg.Logging)
	}

	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app := &App{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Migrators: database.NewMigrators(db, ModuleMigrations()),
	}

	var metrics observability.Metrics = observability.NewNoop()
	if cfg.Observability.MetricsEnabled {
		app.registry = prometheus.NewRegistry()
		app.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		pm, err := observability.NewPrometheusMetrics(app.registry)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		metrics = pm
	}
	tracer := otel.Tracer(ServiceName)

	app.EventBus = eventbus.NewGoChannelBus(logger)

	lifelineModule := lifeline.NewLifelineModule(ctx, logger, metrics, tracer, db)
	app.Modules = &Modules{
		Lifeline: lifelineModule,
		Round:    round.NewRoundModule(ctx, logger, metrics, tracer, db, lifelineModule.Repository, app.EventBus),
		Team:     team.NewTeamModule(ctx, logger, metrics, tracer, db, lifelineModule.Repository, app.EventBus),
	}
	return app, nil
}

// Migrate applies pending migrations of every module.
func (app *App) Migrate(ctx context.Context) error {
	return database.MigrateAll(ctx, app.Logger, app.Migrators)
}

// Seed installs the configured catalogue. Without force it only runs when the
// catalogue is empty.
func (app *App) Seed(ctx context.Context, force bool) (seed.Result, error) {
	if !force {
		categories, err := app.Modules.Round.CategoryService.ListRoundCategories(ctx)
		if err != nil {
			return seed.Result{}, err
		}
		lifelines, err := app.Modules.Lifeline.Service.ListLifelines(ctx)
		if err != nil {
			return seed.Result{}, err
		}
		if len(categories) > 0 || len(lifelines) > 0 {
			app.Logger.InfoContext(ctx, "Catalogue present, skipping seed")
			return seed.Result{}, nil
		}
	}

	cat, err := seed.Load(app.Config.Seed.File)
	if err != nil {
		return seed.Result{}, err
	}
	return seed.Apply(ctx, app.Logger, app.Modules.Lifeline.Service, app.Modules.Round.CategoryService, cat)
}

// Close releases the audit router, the event bus and the database.
func (app *App) Close() error {
	var errs []error
	// A router that never ran would block Close until its close timeout.
	if app.AuditRouter != nil && app.AuditRouter.IsRunning() {
		errs = append(errs, app.AuditRouter.Close())
	}
	if app.EventBus != nil {
		errs = append(errs, app.EventBus.Close())
	}
	if app.DB != nil {
		errs = append(errs, app.DB.Close())
	}
	return errors.Join(errs...)
}
