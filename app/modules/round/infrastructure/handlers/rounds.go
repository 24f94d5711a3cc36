package roundhandlers

import (
	"net/http"

	roundservice "github.com/Black-And-White-Club/quiz-host/app/modules/round/application"
	"github.com/Black-And-White-Club/quiz-host/app/shared/httpx"
	"github.com/go-chi/chi/v5"
)

// HandleCreateRound handles POST /rounds.
func (h *RoundHandlers) HandleCreateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleCreateRound")
	defer span.End()

	var req roundservice.CreateRoundRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	round, err := h.rounds.CreateRound(ctx, req)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, round)
}

// HandleGetRound handles GET /rounds/{id}.
func (h *RoundHandlers) HandleGetRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleGetRound")
	defer span.End()

	round, err := h.rounds.GetRound(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, round)
}

// HandleUpdateRound handles PATCH /rounds/{id}. The path id wins over any id
// in the body.
func (h *RoundHandlers) HandleUpdateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleUpdateRound")
	defer span.End()

	var req roundservice.UpdateRoundRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	req.ID = chi.URLParam(r, "id")
	round, err := h.rounds.UpdateRound(ctx, req)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, round)
}

// HandleDeleteRound handles DELETE /rounds/{id}.
func (h *RoundHandlers) HandleDeleteRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleDeleteRound")
	defer span.End()

	if err := h.rounds.DeleteRound(ctx, chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListRounds handles GET /sets/{setId}/rounds.
func (h *RoundHandlers) HandleListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleListRounds")
	defer span.End()

	rounds, err := h.rounds.ListRounds(ctx, chi.URLParam(r, "setId"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rounds)
}

type reorderRoundsRequest struct {
	RoundIDs []string `json:"roundIds"`
}

// HandleReorderRounds handles POST /sets/{setId}/rounds/reorder.
func (h *RoundHandlers) HandleReorderRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleReorderRounds")
	defer span.End()

	var req reorderRoundsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	rounds, err := h.rounds.ReorderRounds(ctx, chi.URLParam(r, "setId"), req.RoundIDs)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rounds)
}
