package roundservice

import (
	"context"
	"log/slog"

	lifelinedb "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/repositories"
	rounddomain "github.com/Black-And-White-Club/quiz-host/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/eventbus"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability/attr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Event topics published after a round change commits.
const (
	TopicRoundCreated    = "round.created"
	TopicRoundUpdated    = "round.updated"
	TopicRoundDeleted    = "round.deleted"
	TopicRoundsReordered = "rounds.reordered"
)

// RoundEvent is the payload of the single-round topics.
type RoundEvent struct {
	RoundID string `json:"roundId"`
	SetID   string `json:"setId"`
}

// RoundsReorderedEvent is the payload of TopicRoundsReordered.
type RoundsReorderedEvent struct {
	SetID    string   `json:"setId"`
	RoundIDs []string `json:"roundIds"`
}

// Service is the round RPC surface.
type Service interface {
	CreateRound(ctx context.Context, req CreateRoundRequest) (*rounddb.Round, error)
	UpdateRound(ctx context.Context, req UpdateRoundRequest) (*rounddb.Round, error)
	DeleteRound(ctx context.Context, id string) error
	ReorderRounds(ctx context.Context, setID string, roundIDs []string) ([]rounddb.Round, error)
	GetRound(ctx context.Context, id string) (*rounddb.Round, error)
	ListRounds(ctx context.Context, setID string) ([]rounddb.Round, error)
	CheckPositions(ctx context.Context, repair bool) ([]ordering.Report, error)
}

// RoundService implements Service.
type RoundService struct {
	repo       rounddb.Repository
	categories rounddb.CategoryRepository
	lifelines  lifelinedb.Repository
	ordering   *ordering.Service
	publisher  eventbus.Publisher
	logger     *slog.Logger
	runner     *operation.Runner
}

// NewRoundService creates a new RoundService.
func NewRoundService(
	repo rounddb.Repository,
	categories rounddb.CategoryRepository,
	lifelines lifelinedb.Repository,
	positions *ordering.Service,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) *RoundService {
	if publisher == nil {
		publisher = eventbus.Nop{}
	}
	runner := operation.NewRunner("RoundService", db, logger, metrics, tracer)
	return &RoundService{
		repo:       repo,
		categories: categories,
		lifelines:  lifelines,
		ordering:   positions,
		publisher:  publisher,
		logger:     runner.Logger,
		runner:     runner,
	}
}

// publish sends an event for a committed change. The change stands even when
// publishing fails, so the failure is only logged.
func (s *RoundService) publish(ctx context.Context, topic string, payload any) {
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

// validateLifelines rejects allowedLifelines keys missing from the catalogue.
func validateLifelines(ctx context.Context, db bun.IDB, lifelines lifelinedb.Repository, cfg rounddomain.RoundConfiguration) error {
	if len(cfg.AllowedLifelines) == 0 {
		return nil
	}
	known, err := lifelines.Slugs(ctx, db)
	if err != nil {
		return err
	}
	return rounddomain.ValidateLifelineSlugs(cfg, func(slug string) bool {
		_, ok := known[slug]
		return ok
	})
}
