package teamhandlers

import (
	"log/slog"

	teamservice "github.com/Black-And-White-Club/quiz-host/app/modules/team/application"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// maxRosterBytes bounds an uploaded roster file.
const maxRosterBytes = 4 << 20

// TeamHandlers serves the team RPCs.
type TeamHandlers struct {
	service teamservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewTeamHandlers creates a new TeamHandlers instance.
func NewTeamHandlers(service teamservice.Service, logger *slog.Logger, tracer trace.Tracer) *TeamHandlers {
	return &TeamHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// Routes mounts the handlers on r.
func (h *TeamHandlers) Routes(r chi.Router) {
	r.Route("/teams", func(r chi.Router) {
		r.Get("/", h.HandleListTeams)
		r.Post("/", h.HandleCreateTeam)
		r.Post("/reorder", h.HandleReorderTeams)
		r.Post("/import", h.HandleImportRoster)
		r.Get("/{id}", h.HandleGetTeam)
		r.Patch("/{id}", h.HandleUpdateTeam)
		r.Delete("/{id}", h.HandleDeleteTeam)
	})
}
