package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/isdelr/task-manager-be/internal/auth"
	"github.com/isdelr/task-manager-be/internal/services"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

// Error kinds reported in the "error" field of failure responses.
const (
	KindValidation         = "ValidationError"
	KindDuplicateUsername  = "DuplicateUsername"
	KindInvalidCredentials = "InvalidCredentials"
	KindUnauthenticated    = "Unauthenticated"
	KindNotFound           = "NotFound"
	KindInternal           = "InternalError"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Msg   string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// RespondError translates err into a status code and an ErrorResponse.
// Errors outside the known taxonomy are logged and reported as a generic 500.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: KindValidation, Msg: validationErr.Error()})
	case errors.Is(err, services.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: KindValidation, Msg: err.Error()})
	case errors.Is(err, services.ErrDuplicateUsername):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: KindDuplicateUsername, Msg: "Username already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: KindInvalidCredentials, Msg: "Invalid credentials"})
	case errors.Is(err, auth.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: KindUnauthenticated, Msg: "No valid token, authorization denied"})
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: KindNotFound, Msg: "Not found"})
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("Unexpected failure")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: KindInternal, Msg: "Server error"})
	}
}

// decodeJSON reads a single JSON value from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &services.ValidationError{Field: "body", Message: "is required"}
		}
		return &services.ValidationError{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if dec.More() {
		return &services.ValidationError{Field: "body", Message: "multiple JSON values"}
	}
	return nil
}

func currentUserID(r *http.Request) (string, error) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return "", auth.ErrUnauthenticated
	}
	return userID, nil
}
