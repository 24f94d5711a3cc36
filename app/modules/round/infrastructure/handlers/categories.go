package roundhandlers

import (
	"net/http"

	roundservice "github.com/Black-And-White-Club/quiz-host/app/modules/round/application"
	"github.com/Black-And-White-Club/quiz-host/app/shared/httpx"
	"github.com/go-chi/chi/v5"
)

// HandleListCategories handles GET /round-categories.
func (h *RoundHandlers) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleListCategories")
	defer span.End()

	categories, err := h.categories.ListRoundCategories(ctx)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, categories)
}

// HandleGetCategory handles GET /round-categories/{id}.
func (h *RoundHandlers) HandleGetCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleGetCategory")
	defer span.End()

	category, err := h.categories.GetRoundCategory(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, category)
}

// HandleCreateCategory handles POST /round-categories.
func (h *RoundHandlers) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleCreateCategory")
	defer span.End()

	var req roundservice.CreateCategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	category, err := h.categories.CreateRoundCategory(ctx, req)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, category)
}

// HandleUpdateCategory handles PATCH /round-categories/{id}.
func (h *RoundHandlers) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleUpdateCategory")
	defer span.End()

	var req roundservice.UpdateCategoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	req.ID = chi.URLParam(r, "id")
	category, err := h.categories.UpdateRoundCategory(ctx, req)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, category)
}

// HandleDeleteCategory handles DELETE /round-categories/{id}.
func (h *RoundHandlers) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleDeleteCategory")
	defer span.End()

	if err := h.categories.DeleteRoundCategory(ctx, chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
