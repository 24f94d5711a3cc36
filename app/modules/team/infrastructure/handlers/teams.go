package teamhandlers

import (
	"io"
	"net/http"

	teamservice "github.com/Black-And-White-Club/quiz-host/app/modules/team/application"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/httpx"
	"github.com/go-chi/chi/v5"
)

// HandleListTeams handles GET /teams.
func (h *TeamHandlers) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TeamHandlers.HandleListTeams")
	defer span.End()

	teams, err := h.service.ListTeams(ctx)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, teams)
}

// HandleCreateTeam handles POST /teams.
func (h *TeamHandlers) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TeamHandlers.HandleCreateTeam")
	defer span.End()

	var req teamservice.CreateTeamRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	team, err := h.service.CreateTeam(ctx, req)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, team)
}

// HandleGetTeam handles GET /teams/{id}.
func (h *TeamHandlers) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TeamHandlers.HandleGetTeam")
	defer span.End()

	team, err := h.service.GetTeam(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, team)
}

// HandleUpdateTeam handles PATCH /teams/{id}.
func (h *TeamHandlers) HandleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TeamHandlers.HandleUpdateTeam")
	defer span.End()

	var req teamservice.UpdateTeamRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	req.ID = chi.URLParam(r, "id")
	team, err := h.service.UpdateTeam(ctx, req)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, team)
}

// HandleDeleteTeam handles DELETE /teams/{id}.
func (h *TeamHandlers) HandleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TeamHandlers.HandleDeleteTeam")
	defer span.End()

	if err := h.service.DeleteTeam(ctx, chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderTeamsRequest struct {
	TeamIDs []string `json:"teamIds"`
}

// HandleReorderTeams handles POST /teams/reorder.
func (h *TeamHandlers) HandleReorderTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TeamHandlers.HandleReorderTeams")
	defer span.End()

	var req reorderTeamsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	teams, err := h.service.ReorderTeams(ctx, req.TeamIDs)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, teams)
}

// HandleImportRoster handles POST /teams/import with a multipart "file" field.
func (h *TeamHandlers) HandleImportRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TeamHandlers.HandleImportRoster")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxRosterBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, r, h.logger, apperr.Validation("file", "roster upload is required: %v", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httpx.WriteError(w, r, h.logger, apperr.Validation("file", "read roster: %v", err))
		return
	}
	result, err := h.service.ImportRoster(ctx, header.Filename, data)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}
