package roundhandlers

import (
	"log/slog"

	roundservice "github.com/Black-And-White-Club/quiz-host/app/modules/round/application"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// RoundHandlers serves the round, round category and policy helper RPCs.
type RoundHandlers struct {
	rounds     roundservice.Service
	categories roundservice.CategoryService
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewRoundHandlers creates a new RoundHandlers instance.
func NewRoundHandlers(
	rounds roundservice.Service,
	categories roundservice.CategoryService,
	logger *slog.Logger,
	tracer trace.Tracer,
) *RoundHandlers {
	return &RoundHandlers{
		rounds:     rounds,
		categories: categories,
		logger:     logger,
		tracer:     tracer,
	}
}

// Routes mounts the handlers on r.
func (h *RoundHandlers) Routes(r chi.Router) {
	r.Route("/rounds", func(r chi.Router) {
		r.Post("/", h.HandleCreateRound)
		r.Get("/{id}", h.HandleGetRound)
		r.Patch("/{id}", h.HandleUpdateRound)
		r.Delete("/{id}", h.HandleDeleteRound)
	})
	r.Get("/sets/{setId}/rounds", h.HandleListRounds)
	r.Post("/sets/{setId}/rounds/reorder", h.HandleReorderRounds)

	r.Route("/round-categories", func(r chi.Router) {
		r.Get("/", h.HandleListCategories)
		r.Post("/", h.HandleCreateCategory)
		r.Get("/{id}", h.HandleGetCategory)
		r.Patch("/{id}", h.HandleUpdateCategory)
		r.Delete("/{id}", h.HandleDeleteCategory)
	})

	r.Route("/policies", func(r chi.Router) {
		r.Post("/time/mode", h.HandleSwitchTimeMode)
		r.Post("/time/levels/add", h.HandleAddTimeLevel)
		r.Post("/time/levels/remove", h.HandleRemoveTimeLevel)
		r.Post("/scoring/mode", h.HandleSwitchScoringMode)
		r.Post("/scoring/levels/add", h.HandleAddScoreLevel)
		r.Post("/scoring/levels/remove", h.HandleRemoveScoreLevel)
	})
}
