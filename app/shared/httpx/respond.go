// Package httpx holds the JSON plumbing shared by the RPC handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability/attr"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// ErrorBody is the structured failure response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
	Field   string      `json:"field,omitempty"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindOrdering:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as a structured failure. Gateway failures are logged
// and reported without their internals.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	detail := ErrorDetail{Kind: apperr.KindOf(err), Message: err.Error()}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		detail.Field = ae.Field
		if ae.Message != "" {
			detail.Message = ae.Message
		}
	}
	if detail.Kind == apperr.KindPersistence {
		logger.ErrorContext(r.Context(), "Request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		detail.Message = "storage failure"
	}
	WriteJSON(w, StatusFor(detail.Kind), ErrorBody{Error: detail})
}

// DecodeJSON reads the request body into v. A malformed body is a validation error.
func DecodeJSON(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("body", "request body is required")
		}
		return apperr.Validation("body", "malformed request body: %v", err)
	}
	if dec.More() {
		return apperr.Validation("body", "request body must hold a single JSON value")
	}
	return nil
}
