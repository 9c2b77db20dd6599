package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/blaisecz/meal-cycle/internal/metrics"
	"github.com/blaisecz/meal-cycle/internal/repository"
	"github.com/blaisecz/meal-cycle/pkg/pagination"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Stager durably accepts mutations bound for the remote store.
type Stager interface {
	Enqueue(ctx context.Context, op domain.PendingOperation) error
	Pending() []domain.PendingOperation
}

// CycleService owns the meal-cycle lifecycle for one owner. Every returned
// cycle is a snapshot; mutating it does not affect the service.
type CycleService interface {
	Profile() domain.CycleProfile
	Start(ctx context.Context, baselineValue float64) (*domain.MealCycle, error)
	MarkStartEvent(ctx context.Context) (*domain.MealCycle, error)
	SubmitReading(ctx context.Context, offset int, value float64) (*domain.MealCycle, error)
	Abandon(ctx context.Context) (*domain.MealCycle, error)
	Cancel(ctx context.Context) (*domain.MealCycle, error)
	// Current returns nil when the owner has no cycle.
	Current(ctx context.Context) (*domain.MealCycle, error)
	History(ctx context.Context, filter domain.CycleFilter) (*domain.CycleListResponse, error)
	DeleteFromHistory(ctx context.Context, id uuid.UUID) error
	Hydrate(ctx context.Context) error
}

// Rejection reasons reported to metrics.
const (
	rejectInvalidState  = "invalid_state"
	rejectConflict      = "conflict"
	rejectValidation    = "validation"
	rejectWindowExpired = "window_expired"
	rejectTooEarly      = "too_early"
)

type cycleService struct {
	ownerID  uuid.UUID
	profile  domain.CycleProfile
	repo     repository.CycleRepository
	stager   Stager
	clock    clockwork.Clock
	recorder metrics.Recorder

	mu      sync.Mutex
	current *domain.MealCycle
}

func NewCycleService(
	ownerID uuid.UUID,
	profile domain.CycleProfile,
	repo repository.CycleRepository,
	stager Stager,
	clock clockwork.Clock,
	recorder metrics.Recorder,
) CycleService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &cycleService{
		ownerID:  ownerID,
		profile:  profile.Clone(),
		repo:     repo,
		stager:   stager,
		clock:    clock,
		recorder: recorder,
	}
}

func (s *cycleService) Profile() domain.CycleProfile {
	return s.profile.Clone()
}

// Start opens a new cycle with a baseline reading.
func (s *cycleService) Start(ctx context.Context, baselineValue float64) (*domain.MealCycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateValue(baselineValue); err != nil {
		return nil, s.reject(rejectValidation, err)
	}

	now := s.clock.Now()
	if _, err := s.expireLocked(ctx, now); err != nil {
		return nil, err
	}
	if s.current != nil && s.current.Status == domain.CycleStatusActive {
		return nil, s.reject(rejectConflict, fmt.Errorf("%w: cycle %s is still active", domain.ErrConflict, s.current.ID))
	}

	cycle := &domain.MealCycle{
		ID:       uuid.New(),
		OwnerID:  s.ownerID,
		UniqueID: uuid.New(),
		Baseline: &domain.Reading{
			ID:        uuid.New(),
			Value:     baselineValue,
			Timestamp: now.UnixMilli(),
			Kind:      domain.ReadingKindPreprandial,
		},
		Slots:     map[int]domain.Reading{},
		Status:    domain.CycleStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.stage(ctx, domain.OperationCreate, cycle); err != nil {
		return nil, err
	}

	s.recorder.IncTransition(string(domain.CycleStatusActive))
	logger.Info("Cycle started", "cycle", cycle.ID, "profile", s.profile.Name)
	return cycle.Clone(), nil
}

// MarkStartEvent records the start event of an active, not yet started cycle.
func (s *cycleService) MarkStartEvent(ctx context.Context) (*domain.MealCycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if _, err := s.expireLocked(ctx, now); err != nil {
		return nil, err
	}
	if s.current == nil || s.current.Status != domain.CycleStatusActive {
		return nil, s.reject(rejectInvalidState, fmt.Errorf("%w: no active cycle", domain.ErrInvalidState))
	}
	if s.current.Started() {
		return nil, s.reject(rejectInvalidState, fmt.Errorf("%w: start event already recorded", domain.ErrInvalidState))
	}

	next := s.current.Clone()
	next.StartTime = now.UnixMilli()
	next.UpdatedAt = now
	if err := s.stage(ctx, domain.OperationUpdate, next); err != nil {
		return nil, err
	}

	logger.Info("Start event recorded", "cycle", next.ID)
	return next.Clone(), nil
}

// SubmitReading fills the slot at offset when now falls in its window.
// Filling the last slot completes the cycle in the same mutation.
func (s *cycleService) SubmitReading(ctx context.Context, offset int, value float64) (*domain.MealCycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.Status.IsTerminal() {
		return nil, s.reject(rejectInvalidState, fmt.Errorf("%w: no active cycle", domain.ErrInvalidState))
	}

	now := s.clock.Now()
	earliest, deadline := s.profile.Window(offset)
	expired, err := s.expireLocked(ctx, now)
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, s.reject(rejectWindowExpired, &domain.WindowError{
			Kind:     domain.ErrWindowExpired,
			Slot:     offset,
			Elapsed:  s.elapsed(s.current, now),
			Earliest: earliest,
			Deadline: deadline,
		})
	}

	if !s.current.Started() {
		return nil, s.reject(rejectInvalidState, fmt.Errorf("%w: start event not recorded", domain.ErrInvalidState))
	}
	if err := validateValue(value); err != nil {
		return nil, s.reject(rejectValidation, err)
	}
	if !s.profile.HasOffset(offset) {
		return nil, s.reject(rejectValidation, domain.NewValidationError("offset", "%d is not a slot of profile %s", offset, s.profile.Name))
	}
	if _, filled := s.current.Slots[offset]; filled {
		return nil, s.reject(rejectValidation, domain.NewValidationError("offset", "slot %d already has a reading", offset))
	}

	elapsed := s.elapsed(s.current, now)
	switch {
	case elapsed >= deadline:
		return nil, s.reject(rejectWindowExpired, &domain.WindowError{
			Kind: domain.ErrWindowExpired, Slot: offset, Elapsed: elapsed, Earliest: earliest, Deadline: deadline,
		})
	case elapsed < earliest:
		return nil, s.reject(rejectTooEarly, &domain.WindowError{
			Kind: domain.ErrTooEarly, Slot: offset, Elapsed: elapsed, Earliest: earliest, Deadline: deadline,
		})
	}

	slot := offset
	next := s.current.Clone()
	next.Slots[offset] = domain.Reading{
		ID:        uuid.New(),
		Value:     value,
		Timestamp: now.UnixMilli(),
		Kind:      domain.ReadingKindPostprandial,
		Slot:      &slot,
	}
	if offset == s.profile.LastOffset() {
		next.Status = domain.CycleStatusCompleted
	}
	next.UpdatedAt = now
	if err := s.stage(ctx, domain.OperationUpdate, next); err != nil {
		return nil, err
	}

	logger.Info("Reading accepted", "cycle", next.ID, "slot", offset, "elapsed", elapsed.Truncate(time.Second))
	if next.Status == domain.CycleStatusCompleted {
		s.recorder.IncTransition(string(domain.CycleStatusCompleted))
		logger.Info("Cycle completed", "cycle", next.ID)
	}
	return next.Clone(), nil
}

func (s *cycleService) Abandon(ctx context.Context) (*domain.MealCycle, error) {
	return s.terminate(ctx, domain.CycleStatusAbandoned)
}

func (s *cycleService) Cancel(ctx context.Context) (*domain.MealCycle, error) {
	return s.terminate(ctx, domain.CycleStatusCanceled)
}

// terminate moves an active cycle to status. A cycle that is already
// terminal is returned unchanged.
func (s *cycleService) terminate(ctx context.Context, status domain.CycleStatus) (*domain.MealCycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, domain.ErrNotFound
	}
	now := s.clock.Now()
	if _, err := s.expireLocked(ctx, now); err != nil {
		return nil, err
	}
	if s.current.Status.IsTerminal() {
		return s.current.Clone(), nil
	}

	next := s.current.Clone()
	next.Status = status
	next.UpdatedAt = now
	if err := s.stage(ctx, domain.OperationUpdate, next); err != nil {
		return nil, err
	}

	s.recorder.IncTransition(string(status))
	logger.Info("Cycle ended", "cycle", next.ID, "status", status)
	return next.Clone(), nil
}

// Current returns the owner's cycle after applying the whole-cycle ceiling.
func (s *cycleService) Current(ctx context.Context) (*domain.MealCycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.expireLocked(ctx, s.clock.Now()); err != nil {
		return nil, err
	}
	return s.current.Clone(), nil
}

// History lists the owner's terminal cycles, newest first. Cycles with a
// queued deletion are hidden.
func (s *cycleService) History(ctx context.Context, filter domain.CycleFilter) (*domain.CycleListResponse, error) {
	// Cycles with a queued delete are excluded by the query so pages stay full.
	deleted := s.pendingDeletes()
	filter.Exclude = make([]uuid.UUID, 0, len(deleted))
	for id := range deleted {
		filter.Exclude = append(filter.Exclude, id)
	}

	fetched, err := s.repo.ListHistory(ctx, s.ownerID, filter)
	if err != nil {
		return nil, err
	}
	cycles := fetched[:0:0]
	for i := range fetched {
		if !deleted[fetched[i].ID] {
			cycles = append(cycles, fetched[i])
		}
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(cycles) > limit

	// Trim to actual limit
	if hasMore {
		cycles = cycles[:limit]
	}

	response := &domain.CycleListResponse{
		Data: make([]domain.MealCycleResponse, 0, len(cycles)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}
	for i := range cycles {
		response.Data = append(response.Data, cycles[i].ToResponse())
	}

	// Set next cursor if there are more results
	if hasMore {
		last := cycles[len(cycles)-1]
		response.Pagination.NextCursor = pagination.NewCursor(last.ID, last.CreatedAt).Encode()
	}

	return response, nil
}

// DeleteFromHistory stages removal of a terminal cycle.
func (s *cycleService) DeleteFromHistory(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.expireLocked(ctx, s.clock.Now()); err != nil {
		return err
	}

	target, err := s.lookupLocked(ctx, id)
	if err != nil {
		return err
	}
	if !target.Status.IsTerminal() {
		return s.reject(rejectInvalidState, fmt.Errorf("%w: cycle %s is still active", domain.ErrInvalidState, id))
	}

	if err := s.stageDelete(ctx, target); err != nil {
		return err
	}
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	logger.Info("Cycle deleted from history", "cycle", id)
	return nil
}

// Hydrate restores the owner's cycle from the remote store, then replays
// queued snapshots over it so an offline restart resumes local state.
func (s *cycleService) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.FindActive(ctx, s.ownerID)
	if err != nil {
		logger.Warn("Remote store unavailable during hydration, using queued state only", "error", err)
		current = nil
	}

	for _, op := range s.stager.Pending() {
		switch op.Kind {
		case domain.OperationCreate, domain.OperationUpdate:
			cycle, err := op.DecodeCycle()
			if err != nil {
				logger.Warn("Skipping undecodable queued snapshot", "op", op.ID, "error", err)
				continue
			}
			if cycle.OwnerID != s.ownerID {
				continue
			}
			if current == nil || current.ID == cycle.ID || !cycle.CreatedAt.Before(current.CreatedAt) {
				current = cycle
			}
		case domain.OperationDelete:
			if current != nil && current.ID == op.DocumentID {
				current = nil
			}
		}
	}

	s.current = current
	if current != nil {
		logger.Info("Cycle restored", "cycle", current.ID, "status", current.Status)
	}
	return nil
}

// expireLocked abandons an active cycle that has run past the ceiling and
// reports whether it did.
func (s *cycleService) expireLocked(ctx context.Context, now time.Time) (bool, error) {
	if s.current == nil || s.current.Status != domain.CycleStatusActive {
		return false, nil
	}
	if s.elapsed(s.current, now) < s.profile.Ceiling() {
		return false, nil
	}

	next := s.current.Clone()
	next.Status = domain.CycleStatusAbandoned
	next.UpdatedAt = now
	if err := s.stage(ctx, domain.OperationUpdate, next); err != nil {
		return false, err
	}

	s.recorder.IncTransition(string(domain.CycleStatusAbandoned))
	logger.Warn("Cycle abandoned after ceiling", "cycle", next.ID, "ceiling", s.profile.Ceiling())
	return true, nil
}

// elapsed measures from the start event, or from creation while the cycle
// still awaits it.
func (s *cycleService) elapsed(c *domain.MealCycle, now time.Time) time.Duration {
	if c.Started() {
		return now.Sub(c.StartedAt())
	}
	return now.Sub(c.CreatedAt)
}

// stage hands the snapshot to the queue and, only once it is durable,
// makes it the current state.
func (s *cycleService) stage(ctx context.Context, kind domain.OperationKind, next *domain.MealCycle) error {
	op, err := domain.NewCycleOperation(kind, next, s.clock.Now())
	if err != nil {
		return err
	}
	if err := s.stager.Enqueue(ctx, op); err != nil {
		return fmt.Errorf("stage %s of cycle %s: %w", kind, next.ID, err)
	}
	s.current = next
	return nil
}

func (s *cycleService) stageDelete(ctx context.Context, target *domain.MealCycle) error {
	op, err := domain.NewCycleOperation(domain.OperationDelete, target, s.clock.Now())
	if err != nil {
		return err
	}
	if err := s.stager.Enqueue(ctx, op); err != nil {
		return fmt.Errorf("stage delete of cycle %s: %w", target.ID, err)
	}
	return nil
}

// lookupLocked finds a cycle of the owner in memory, then in the queue, then
// in the remote store.
func (s *cycleService) lookupLocked(ctx context.Context, id uuid.UUID) (*domain.MealCycle, error) {
	if s.current != nil && s.current.ID == id {
		return s.current, nil
	}

	var queued *domain.MealCycle
	seen := false
	for _, op := range s.stager.Pending() {
		if op.DocumentID != id {
			continue
		}
		seen = true
		if op.Kind == domain.OperationDelete {
			queued = nil
			continue
		}
		cycle, err := op.DecodeCycle()
		if err != nil {
			return nil, err
		}
		queued = cycle
	}
	if seen {
		if queued == nil || queued.OwnerID != s.ownerID {
			return nil, domain.ErrNotFound
		}
		return queued, nil
	}

	cycle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cycle.OwnerID != s.ownerID {
		return nil, domain.ErrNotFound
	}
	return cycle, nil
}

func (s *cycleService) pendingDeletes() map[uuid.UUID]bool {
	deleted := map[uuid.UUID]bool{}
	for _, op := range s.stager.Pending() {
		if op.Kind == domain.OperationDelete {
			deleted[op.DocumentID] = true
		}
	}
	return deleted
}

func (s *cycleService) reject(reason string, err error) error {
	s.recorder.IncRejected(reason)
	logger.Debug("Operation rejected", "reason", reason, "error", err)
	return err
}

func validateValue(value float64) error {
	if value < domain.MinReadingValue || value > domain.MaxReadingValue {
		return domain.NewValidationError("value", "%g is outside the plausible range %d-%d", value, domain.MinReadingValue, domain.MaxReadingValue)
	}
	return nil
}
