package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/blaisecz/meal-cycle/internal/api/validation"
	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/blaisecz/meal-cycle/internal/scheduler"
	"github.com/blaisecz/meal-cycle/internal/service"
	"github.com/blaisecz/meal-cycle/pkg/pagination"
	"github.com/blaisecz/meal-cycle/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type CycleHandler struct {
	service service.CycleService
	clock   clockwork.Clock
}

func NewCycleHandler(service service.CycleService, clock clockwork.Clock) *CycleHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CycleHandler{service: service, clock: clock}
}

// GetProfile handles GET /v1/profile
// @Summary Get cycle profile
// @Description Sampling offsets and timing windows every cycle of this session follows.
// @Tags profile
// @Produce json
// @Success 200 {object} domain.CycleProfile "Active profile"
// @Router /profile [get]
func (h *CycleHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Profile())
}

// Start handles POST /v1/cycle
// @Summary Start a meal cycle
// @Description Record the baseline reading and open a new cycle. Only one cycle may be active at a time.
// @Tags cycle
// @Accept json
// @Produce json
// @Param request body domain.StartCycleRequest true "Baseline reading"
// @Success 201 {object} domain.MealCycleResponse "Cycle started"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 409 {object} problem.Problem "A cycle is already active"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /cycle [post]
func (h *CycleHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req domain.StartCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	cycle, err := h.service.Start(r.Context(), req.BaselineValue)
	if err != nil {
		writeError(w, err, "Failed to start cycle")
		return
	}

	writeJSON(w, http.StatusCreated, h.view(cycle))
}

// Current handles GET /v1/cycle
// @Summary Get the current cycle
// @Description Current cycle with per-slot state and the next slot due. A cycle past its ceiling is abandoned before it is returned.
// @Tags cycle
// @Produce json
// @Success 200 {object} domain.MealCycleResponse "Current cycle"
// @Failure 404 {object} problem.Problem "No cycle"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /cycle [get]
func (h *CycleHandler) Current(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.service.Current(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load cycle")
		return
	}
	if cycle == nil {
		problem.NotFound("No meal cycle").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, h.view(cycle))
}

// MarkStartEvent handles POST /v1/cycle/start-event
// @Summary Record the start event
// @Description Mark the first bite. Slot offsets are measured from this instant.
// @Tags cycle
// @Produce json
// @Success 200 {object} domain.MealCycleResponse "Start event recorded"
// @Failure 409 {object} problem.Problem "No active cycle or already started"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /cycle/start-event [post]
func (h *CycleHandler) MarkStartEvent(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.service.MarkStartEvent(r.Context())
	if err != nil {
		writeError(w, err, "Failed to record start event")
		return
	}

	writeJSON(w, http.StatusOK, h.view(cycle))
}

// SubmitReading handles POST /v1/cycle/readings
// @Summary Submit a slot reading
// @Description Fill the slot at offset. Accepted from early allowance before the offset until grace after it. The last slot completes the cycle.
// @Tags cycle
// @Accept json
// @Produce json
// @Param request body domain.SubmitReadingRequest true "Slot reading"
// @Success 200 {object} domain.MealCycleResponse "Reading accepted"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 409 {object} problem.Problem "No active started cycle"
// @Failure 422 {object} problem.Problem "Validation error, missed slot or too early"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /cycle/readings [post]
func (h *CycleHandler) SubmitReading(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	cycle, err := h.service.SubmitReading(r.Context(), req.Offset, req.Value)
	if err != nil {
		writeError(w, err, "Failed to submit reading")
		return
	}

	writeJSON(w, http.StatusOK, h.view(cycle))
}

// Abandon handles POST /v1/cycle/abandon
// @Summary Abandon the cycle
// @Description End the active cycle as abandoned. No-op when it already ended.
// @Tags cycle
// @Produce json
// @Success 200 {object} domain.MealCycleResponse "Cycle ended"
// @Failure 404 {object} problem.Problem "No cycle"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /cycle/abandon [post]
func (h *CycleHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.service.Abandon(r.Context())
	if err != nil {
		writeError(w, err, "Failed to abandon cycle")
		return
	}

	writeJSON(w, http.StatusOK, h.view(cycle))
}

// Cancel handles POST /v1/cycle/cancel
// @Summary Cancel the cycle
// @Description End the active cycle as canceled. No-op when it already ended.
// @Tags cycle
// @Produce json
// @Success 200 {object} domain.MealCycleResponse "Cycle ended"
// @Failure 404 {object} problem.Problem "No cycle"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /cycle/cancel [post]
func (h *CycleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.service.Cancel(r.Context())
	if err != nil {
		writeError(w, err, "Failed to cancel cycle")
		return
	}

	writeJSON(w, http.StatusOK, h.view(cycle))
}

// History handles GET /v1/cycles
// @Summary List past cycles
// @Description Ended cycles, newest first.
// @Tags cycles
// @Produce json
// @Param limit query integer false "Results per page (1-50)" default(10) minimum(1) maximum(50)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.CycleListResponse "Cycles with pagination"
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 503 {object} problem.Problem "Remote store unavailable"
// @Router /cycles [get]
func (h *CycleHandler) History(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := parseHistoryFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.History(r.Context(), filter)
	if err != nil {
		logger.Warn("Failed to list cycle history", "error", err)
		problem.ServiceUnavailable("Cycle history is unavailable while the remote store is unreachable").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Delete handles DELETE /v1/cycles/{cycleId}
// @Summary Delete a past cycle
// @Description Remove an ended cycle from history. Active cycles cannot be deleted.
// @Tags cycles
// @Param cycleId path string true "Cycle UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 204 "Deletion queued"
// @Failure 400 {object} problem.Problem "Invalid cycle ID"
// @Failure 404 {object} problem.Problem "Cycle not found"
// @Failure 409 {object} problem.Problem "Cycle is still active"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /cycles/{cycleId} [delete]
func (h *CycleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cycleID, err := uuid.Parse(chi.URLParam(r, "cycleId"))
	if err != nil {
		problem.BadRequest("Invalid cycle ID format").Write(w)
		return
	}

	if err := h.service.DeleteFromHistory(r.Context(), cycleID); err != nil {
		writeError(w, err, "Failed to delete cycle")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// view renders cycle with slot states and the next slot due.
func (h *CycleHandler) view(cycle *domain.MealCycle) domain.MealCycleResponse {
	profile := h.service.Profile()
	now := h.clock.Now()
	resp := cycle.ToResponse()

	statuses := scheduler.Classify(now, cycle, profile)
	resp.Slots = make([]domain.SlotResponse, 0, len(profile.Offsets))
	if statuses == nil {
		for _, o := range profile.Offsets {
			resp.Slots = append(resp.Slots, domain.SlotResponse{Offset: o, State: domain.SlotUpcoming})
		}
	}
	for _, st := range statuses {
		slot := domain.SlotResponse{Offset: st.Offset, State: st.State, DueAt: st.DueAt, Deadline: st.Deadline}
		if reading, ok := cycle.Slots[st.Offset]; ok {
			slot.Reading = &reading
		}
		resp.Slots = append(resp.Slots, slot)
	}

	if next, ok := scheduler.NextDue(now, cycle, profile); ok {
		resp.NextDue = &domain.NextDueResponse{
			Offset:      next.Offset,
			RemainingMs: next.Remaining.Milliseconds(),
			DueAt:       next.DueAt,
		}
	}
	return resp
}

func parseHistoryFilter(r *http.Request) (domain.CycleFilter, []problem.FieldError) {
	var filter domain.CycleFilter
	var fieldErrors []problem.FieldError

	// Parse 'limit' parameter
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	// Parse 'cursor' parameter
	if cursor := r.URL.Query().Get("cursor"); cursor != "" {
		if _, err := pagination.DecodeCursor(cursor); err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "cursor",
				Message: "is not a valid cursor",
			})
		} else {
			filter.Cursor = cursor
		}
	}

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}

	return filter, nil
}
