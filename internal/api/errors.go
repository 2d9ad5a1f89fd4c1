package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kdrennan/trade-ledger-service/internal/database"
)

// ValidationError reports bad request fields with per-field detail
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError maps store and validation errors onto HTTP statuses
func respondError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error(), Fields: vErr.Fields})
	case errors.Is(err, database.ErrConflict):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, database.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", slog.Any("error", err))
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
