package http

import (
	"encoding/json"
	"net/http"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// respondError maps domain error types onto HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	case domain.IsNotFound(err):
		respondJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case domain.IsConflict(err):
		respondJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case domain.IsAuthorization(err):
		respondJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	default:
		logger.Error("internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &domain.ValidationError{Field: "body", Reason: "invalid JSON payload"}
	}
	return nil
}
