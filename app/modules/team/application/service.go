package teamservice

import (
	"context"
	"log/slog"

	lifelinedb "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/modules/team/application/parsers"
	teamdb "github.com/Black-And-White-Club/quiz-host/app/modules/team/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/eventbus"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability/attr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/operation"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Event topics published after a team change commits.
const (
	TopicTeamCreated    = "team.created"
	TopicTeamUpdated    = "team.updated"
	TopicTeamDeleted    = "team.deleted"
	TopicTeamsReordered = "teams.reordered"
	TopicTeamsImported  = "teams.imported"
)

// TeamEvent is the payload of the single-team topics.
type TeamEvent struct {
	TeamID string `json:"teamId"`
	Slug   string `json:"slug"`
}

// TeamsReorderedEvent is the payload of TopicTeamsReordered.
type TeamsReorderedEvent struct {
	TeamIDs []string `json:"teamIds"`
}

// Service is the team RPC surface.
type Service interface {
	CreateTeam(ctx context.Context, req CreateTeamRequest) (*teamdb.Team, error)
	UpdateTeam(ctx context.Context, req UpdateTeamRequest) (*teamdb.Team, error)
	DeleteTeam(ctx context.Context, id string) error
	ReorderTeams(ctx context.Context, orderedIDs []string) ([]teamdb.Team, error)
	GetTeam(ctx context.Context, id string) (*teamdb.Team, error)
	ListTeams(ctx context.Context) ([]teamdb.Team, error)
	ImportRoster(ctx context.Context, filename string, data []byte) (*ImportResult, error)
	CheckPositions(ctx context.Context, repair bool) (ordering.Report, error)
}

// TeamService implements Service.
type TeamService struct {
	repo      teamdb.Repository
	lifelines lifelinedb.Repository
	ordering  *ordering.Service
	parsers   parsers.ParserFactory
	publisher eventbus.Publisher
	logger    *slog.Logger
	runner    *operation.Runner
}

// NewTeamService creates a new TeamService.
func NewTeamService(
	repo teamdb.Repository,
	lifelines lifelinedb.Repository,
	positions *ordering.Service,
	parserFactory parsers.ParserFactory,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
) *TeamService {
	if publisher == nil {
		publisher = eventbus.Nop{}
	}
	if parserFactory == nil {
		parserFactory = parsers.NewFactory()
	}
	runner := operation.NewRunner("TeamService", db, logger, metrics, tracer)
	return &TeamService{
		repo:      repo,
		lifelines: lifelines,
		ordering:  positions,
		parsers:   parserFactory,
		publisher: publisher,
		logger:    runner.Logger,
		runner:    runner,
	}
}

func (s *TeamService) publish(ctx context.Context, topic string, payload any) {
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
