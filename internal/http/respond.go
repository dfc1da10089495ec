package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"budget/internal/core"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error            string           `json:"error"`
	Fields           []core.FieldError `json:"fields,omitempty"`
	TransactionCount int64            `json:"transaction_count,omitempty"`
}

// writeError maps domain errors onto HTTP statuses: collected field errors
// are 422, missing or cross-tenant entities 404, conflicts 409. Anything
// unrecognized is a 500 with a generic body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs core.ValidationErrors
	var inUse *core.CategoryInUseError

	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: verrs,
		})
	case errors.As(err, &inUse):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:            "category has linked transactions",
			TransactionCount: inUse.TransactionCount,
		})
	case errors.Is(err, core.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, core.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "conflict"})
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// badRequest reports a malformed request body or path segment.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
