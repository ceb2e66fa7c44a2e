package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/booking"
	"github.com/mauv0809/pitchside/internal/reservation"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Debug("Rejecting malformed body", "url", r.URL.Path, "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func reservationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := booking.ParseID(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, reservation.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, reservation.ErrInvalidStatus), errors.Is(err, booking.ErrMissingUser):
		status = http.StatusBadRequest
	case errors.Is(err, reservation.ErrIllegalTransition),
		errors.Is(err, booking.ErrFull),
		errors.Is(err, booking.ErrAlreadyJoined):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}
