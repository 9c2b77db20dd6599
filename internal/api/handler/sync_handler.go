package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/blaisecz/meal-cycle/internal/api/validation"
	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/blaisecz/meal-cycle/pkg/problem"
)

// SyncController is the mutation queue as seen by the HTTP surface.
type SyncController interface {
	Status() domain.SyncStatus
	Flush(ctx context.Context) error
	SetOnline(online bool)
}

type SyncHandler struct {
	queue SyncController
}

func NewSyncHandler(queue SyncController) *SyncHandler {
	return &SyncHandler{queue: queue}
}

// Status handles GET /v1/sync
// @Summary Get sync status
// @Description Whether queued mutations are waiting for, or being sent to, the remote store.
// @Tags sync
// @Produce json
// @Success 200 {object} domain.SyncStatus "Sync status"
// @Router /sync [get]
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.queue.Status())
}

// Flush handles POST /v1/sync/flush
// @Summary Flush queued mutations
// @Description Send every queued mutation as one batch. Does nothing while offline or while another flush runs.
// @Tags sync
// @Produce json
// @Success 200 {object} domain.SyncStatus "Status after the flush"
// @Failure 503 {object} problem.Problem "Remote store rejected the batch; the queue is unchanged"
// @Router /sync/flush [post]
func (h *SyncHandler) Flush(w http.ResponseWriter, r *http.Request) {
	if err := h.queue.Flush(r.Context()); err != nil {
		logger.Warn("Manual flush failed", "error", err)
		problem.ServiceUnavailable("Remote store rejected the batch; queued mutations are kept").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, h.queue.Status())
}

// SetConnectivity handles PUT /v1/sync/connectivity
// @Summary Report connectivity
// @Description Host-observed connectivity transition. Going online flushes the queue.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body domain.ConnectivityRequest true "Connectivity state"
// @Success 200 {object} domain.SyncStatus "Sync status"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 422 {object} problem.Problem "Validation error"
// @Router /sync/connectivity [put]
func (h *SyncHandler) SetConnectivity(w http.ResponseWriter, r *http.Request) {
	var req domain.ConnectivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	h.queue.SetOnline(*req.Online)
	writeJSON(w, http.StatusOK, h.queue.Status())
}
