package roundhandlers

import (
	"net/http"

	rounddomain "github.com/Black-And-White-Club/quiz-host/app/modules/round/domain"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/httpx"
)

// The policy helpers let the round form preview a mode switch or a level edit
// before the whole configuration is submitted. They touch no storage.

type timeModeRequest struct {
	TimePolicy rounddomain.TimePolicy        `json:"timePolicy"`
	Mode       rounddomain.AfterPassTimeMode `json:"mode"`
}

type timeLevelRequest struct {
	TimePolicy rounddomain.TimePolicy `json:"timePolicy"`
	Seconds    *int                   `json:"seconds,omitempty"`
	Index      *int                   `json:"index,omitempty"`
}

type scoringModeRequest struct {
	ScoringPolicy rounddomain.ScoringPolicy     `json:"scoringPolicy"`
	Mode          rounddomain.PassedScoringMode `json:"mode"`
}

type scoreLevelRequest struct {
	ScoringPolicy rounddomain.ScoringPolicy `json:"scoringPolicy"`
	Points        *int                      `json:"points,omitempty"`
	Index         *int                      `json:"index,omitempty"`
}

// HandleSwitchTimeMode handles POST /policies/time/mode.
func (h *RoundHandlers) HandleSwitchTimeMode(w http.ResponseWriter, r *http.Request) {
	var req timeModeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	h.respondPolicy(w, r, "timePolicy")(rounddomain.SwitchAfterPassTimeMode(req.TimePolicy, req.Mode))
}

// HandleAddTimeLevel handles POST /policies/time/levels/add.
func (h *RoundHandlers) HandleAddTimeLevel(w http.ResponseWriter, r *http.Request) {
	var req timeLevelRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if req.Seconds == nil {
		httpx.WriteError(w, r, h.logger, apperr.Validation("seconds", "seconds is required"))
		return
	}
	h.respondPolicy(w, r, "timePolicy")(rounddomain.AddAfterPassTimeLevel(req.TimePolicy, *req.Seconds))
}

// HandleRemoveTimeLevel handles POST /policies/time/levels/remove.
func (h *RoundHandlers) HandleRemoveTimeLevel(w http.ResponseWriter, r *http.Request) {
	var req timeLevelRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if req.Index == nil {
		httpx.WriteError(w, r, h.logger, apperr.Validation("index", "index is required"))
		return
	}
	h.respondPolicy(w, r, "timePolicy")(rounddomain.RemoveAfterPassTimeLevel(req.TimePolicy, *req.Index))
}

// HandleSwitchScoringMode handles POST /policies/scoring/mode.
func (h *RoundHandlers) HandleSwitchScoringMode(w http.ResponseWriter, r *http.Request) {
	var req scoringModeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	h.respondPolicy(w, r, "scoringPolicy")(rounddomain.SwitchPassedScoringMode(req.ScoringPolicy, req.Mode))
}

// HandleAddScoreLevel handles POST /policies/scoring/levels/add.
func (h *RoundHandlers) HandleAddScoreLevel(w http.ResponseWriter, r *http.Request) {
	var req scoreLevelRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if req.Points == nil {
		httpx.WriteError(w, r, h.logger, apperr.Validation("points", "points is required"))
		return
	}
	h.respondPolicy(w, r, "scoringPolicy")(rounddomain.AddPassedScoreLevel(req.ScoringPolicy, *req.Points))
}

// HandleRemoveScoreLevel handles POST /policies/scoring/levels/remove.
func (h *RoundHandlers) HandleRemoveScoreLevel(w http.ResponseWriter, r *http.Request) {
	var req scoreLevelRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if req.Index == nil {
		httpx.WriteError(w, r, h.logger, apperr.Validation("index", "index is required"))
		return
	}
	h.respondPolicy(w, r, "scoringPolicy")(rounddomain.RemovePassedScoreLevel(req.ScoringPolicy, *req.Index))
}

// respondPolicy writes the transformed fragment under key, or the error.
func (h *RoundHandlers) respondPolicy(w http.ResponseWriter, r *http.Request, key string) func(any, error) {
	return func(fragment any, err error) {
		if err != nil {
			httpx.WriteError(w, r, h.logger, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{key: fragment})
	}
}
