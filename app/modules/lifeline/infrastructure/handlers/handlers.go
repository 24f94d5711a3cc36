package lifelinehandlers

import (
	"log/slog"
	"net/http"

	lifelineservice "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/application"
	"github.com/Black-And-White-Club/quiz-host/app/shared/httpx"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// LifelineHandlers serves the lifeline catalogue.
type LifelineHandlers struct {
	service lifelineservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewLifelineHandlers creates a new LifelineHandlers instance.
func NewLifelineHandlers(service lifelineservice.Service, logger *slog.Logger, tracer trace.Tracer) *LifelineHandlers {
	return &LifelineHandlers{service: service, logger: logger, tracer: tracer}
}

// Routes mounts the handlers on r.
func (h *LifelineHandlers) Routes(r chi.Router) {
	r.Get("/lifelines", h.HandleListLifelines)
}

// HandleListLifelines returns every lifeline definition.
func (h *LifelineHandlers) HandleListLifelines(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LifelineHandlers.HandleListLifelines")
	defer span.End()

	defs, err := h.service.ListLifelines(ctx)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, defs)
}
