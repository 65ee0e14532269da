package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/joeyheath65/NetTools/internal/repository"
)

// ErrorResponse is the JSON error envelope every handler returns
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON confirmation envelope for mutations
type MessageResponse struct {
	Message string `json:"message"`
}

// statusForError maps the service error taxonomy onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, repository.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConstraintViolation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError writes the JSON error envelope for a service error
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), ErrorResponse{Error: err.Error()})
}

// writeBadRequest writes a 400 with a plain message
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

// storeNumberParam parses the {storeNumber} URL parameter
func storeNumberParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "storeNumber")
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid store number %q", raw)
	}
	return n, nil
}

// vlanNumberParam parses the {vlanNumber} URL parameter
func vlanNumberParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "vlanNumber")
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid VLAN number %q", raw)
	}
	return n, nil
}
