package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"invoice-generator/internal/app"
	"invoice-generator/internal/core"
	"invoice-generator/internal/export"
	"invoice-generator/internal/store"
)

type errorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	RequestID string            `json:"request_id,omitempty"`
	Details   []core.FieldError `json:"details,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	writeErrorResponse(w, r, errorResponse{Error: message, Code: code}, status)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, resp errorResponse, status int) {
	resp.RequestID = requestIDFromContext(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// writeServiceError maps an ApplicationService error onto a status code.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs core.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeErrorResponse(w, r, errorResponse{Error: "form is incomplete", Code: "VALIDATION_FAILED", Details: verrs},
			http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrTemplateNotFound):
		writeError(w, r, err.Error(), "TEMPLATE_NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, store.ErrFileNotFound):
		writeError(w, r, err.Error(), "FILE_NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, app.ErrInvalidRequest), errors.Is(err, store.ErrEmptyFileName),
		errors.Is(err, export.ErrInvalidFileName), errors.Is(err, core.ErrLastLineItem):
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
	case errors.Is(err, app.ErrAIUnavailable):
		writeError(w, r, err.Error(), "AI_UNAVAILABLE", http.StatusServiceUnavailable)
	default:
		log.Error().Err(err).Str("request_id", requestIDFromContext(r.Context())).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
