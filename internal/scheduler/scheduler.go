// Package scheduler classifies slot windows and raises one alert per slot
// as it becomes due.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/blaisecz/meal-cycle/internal/metrics"
	"github.com/blaisecz/meal-cycle/internal/notify"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// CycleReader returns the owner's cycle, nil when there is none.
type CycleReader interface {
	Current(ctx context.Context) (*domain.MealCycle, error)
}

// Classify returns the state of every profile slot of a started cycle in
// offset order. It returns nil for a cycle without a start event.
func Classify(now time.Time, cycle *domain.MealCycle, profile domain.CycleProfile) []domain.SlotStatus {
	if cycle == nil || !cycle.Started() {
		return nil
	}
	start := cycle.StartedAt()
	elapsed := now.Sub(start)

	out := make([]domain.SlotStatus, 0, len(profile.Offsets))
	for _, o := range profile.Offsets {
		due := time.Duration(o) * time.Minute
		deadline := due + profile.Grace()
		st := domain.SlotStatus{
			Offset:   o,
			DueAt:    start.Add(due),
			Deadline: start.Add(deadline),
		}
		switch _, filled := cycle.Slots[o]; {
		case filled:
			st.State = domain.SlotCompleted
		case elapsed < due:
			st.State = domain.SlotUpcoming
		case elapsed < deadline:
			st.State = domain.SlotDue
		default:
			st.State = domain.SlotOverdue
		}
		out = append(out, st)
	}
	return out
}

// NextDue returns the smallest slot of an active, started cycle that is
// neither completed nor overdue.
func NextDue(now time.Time, cycle *domain.MealCycle, profile domain.CycleProfile) (domain.NextSlot, bool) {
	if cycle == nil || cycle.Status != domain.CycleStatusActive {
		return domain.NextSlot{}, false
	}
	for _, st := range Classify(now, cycle, profile) {
		if st.State != domain.SlotUpcoming && st.State != domain.SlotDue {
			continue
		}
		remaining := st.DueAt.Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		return domain.NextSlot{Offset: st.Offset, Remaining: remaining, DueAt: st.DueAt}, true
	}
	return domain.NextSlot{}, false
}

// Scheduler raises an alert the first time it sees each slot of a cycle due.
type Scheduler struct {
	reader   CycleReader
	notifier notify.Notifier
	profile  domain.CycleProfile
	clock    clockwork.Clock
	recorder metrics.Recorder

	mu       sync.Mutex
	cycleID  uuid.UUID
	notified map[int]bool
}

func New(reader CycleReader, notifier notify.Notifier, profile domain.CycleProfile, clock clockwork.Clock, recorder metrics.Recorder) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Scheduler{
		reader:   reader,
		notifier: notifier,
		profile:  profile.Clone(),
		clock:    clock,
		recorder: recorder,
		notified: map[int]bool{},
	}
}

// Tick reads the current cycle and emits alerts for slots newly due.
func (s *Scheduler) Tick(ctx context.Context) error {
	cycle, err := s.reader.Current(ctx)
	if err != nil {
		return fmt.Errorf("read current cycle: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cycle == nil || cycle.Status.IsTerminal() {
		s.resetLocked(uuid.Nil)
		return nil
	}
	if cycle.ID != s.cycleID {
		s.resetLocked(cycle.ID)
	}

	now := s.clock.Now()
	for _, st := range Classify(now, cycle, s.profile) {
		if st.State != domain.SlotDue || s.notified[st.Offset] {
			continue
		}
		s.notified[st.Offset] = true
		s.recorder.IncAlert(st.Offset)
		logger.Debug("Slot due", "cycle", cycle.ID, "slot", st.Offset, "deadline", st.Deadline)
		s.notifier.Emit(ctx, notify.Alert{
			Title:   fmt.Sprintf("%d-minute reading due", st.Offset),
			Body:    fmt.Sprintf("Take your reading before %s.", st.Deadline.Local().Format(time.Kitchen)),
			Urgency: notify.UrgencyCritical,
			CycleID: cycle.ID,
			Slot:    st.Offset,
			At:      now,
		})
	}
	return nil
}

// Reset forgets every notified slot.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(uuid.Nil)
}

func (s *Scheduler) resetLocked(id uuid.UUID) {
	s.cycleID = id
	if len(s.notified) > 0 {
		s.notified = map[int]bool{}
	}
}
