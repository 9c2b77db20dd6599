package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/blaisecz/meal-cycle/pkg/problem"
)

// writeError maps domain errors to problem responses. Unknown errors are
// logged and reported as fallback.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var windowErr *domain.WindowError
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &windowErr):
		p := problem.WindowExpired(fmt.Sprintf("Slot %d closed %s after the start event; %s have elapsed",
			windowErr.Slot, minutes(windowErr.Deadline), minutes(windowErr.Elapsed)))
		if errors.Is(err, domain.ErrTooEarly) {
			p = problem.TooEarly(fmt.Sprintf("Slot %d opens %s after the start event; %s have elapsed",
				windowErr.Slot, minutes(windowErr.Earliest), minutes(windowErr.Elapsed)))
		}
		p.WithWindow(windowErr.Slot, windowErr.Elapsed, windowErr.Earliest, windowErr.Deadline).Write(w)
	case errors.As(err, &validationErr):
		problem.ValidationError("Request was rejected", []problem.FieldError{{
			Field:   validationErr.Field,
			Message: validationErr.Reason,
		}}).Write(w)
	case errors.Is(err, domain.ErrInvalidState):
		problem.InvalidState(err.Error()).Write(w)
	case errors.Is(err, domain.ErrConflict):
		problem.Conflict("A meal cycle is already active").Write(w)
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("Meal cycle not found").Write(w)
	default:
		logger.Error(fallback, "error", err)
		problem.InternalError(fallback).Write(w)
	}
}

func minutes(d time.Duration) string {
	return d.Truncate(time.Second).String()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
