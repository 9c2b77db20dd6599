package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/internal/notify"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)

func profile() domain.CycleProfile {
	return domain.CycleProfile{
		Name:                  "dev",
		Offsets:               []int{5, 10, 15},
		GraceMinutes:          2,
		EarlyAllowanceMinutes: 2,
		CeilingMinutes:        40,
	}
}

func startedCycle(slots ...int) *domain.MealCycle {
	c := &domain.MealCycle{
		ID:        uuid.New(),
		StartTime: t0.UnixMilli(),
		Slots:     map[int]domain.Reading{},
		Status:    domain.CycleStatusActive,
		CreatedAt: t0,
	}
	for _, o := range slots {
		c.Slots[o] = domain.Reading{Value: 100}
	}
	return c
}

func states(st []domain.SlotStatus) []domain.SlotState {
	out := make([]domain.SlotState, len(st))
	for i, s := range st {
		out[i] = s.State
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		filled  []int
		want    []domain.SlotState
	}{
		{"before first slot", 4 * time.Minute, nil, []domain.SlotState{domain.SlotUpcoming, domain.SlotUpcoming, domain.SlotUpcoming}},
		{"first slot due at offset", 5 * time.Minute, nil, []domain.SlotState{domain.SlotDue, domain.SlotUpcoming, domain.SlotUpcoming}},
		{"first slot overdue at grace", 7 * time.Minute, nil, []domain.SlotState{domain.SlotOverdue, domain.SlotUpcoming, domain.SlotUpcoming}},
		{"filled slot completed", 11 * time.Minute, []int{5}, []domain.SlotState{domain.SlotCompleted, domain.SlotDue, domain.SlotUpcoming}},
		{"all past", 30 * time.Minute, []int{10}, []domain.SlotState{domain.SlotOverdue, domain.SlotCompleted, domain.SlotOverdue}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(t0.Add(tt.elapsed), startedCycle(tt.filled...), profile())
			assert.Equal(t, tt.want, states(got))
		})
	}
}

func TestClassify_Windows(t *testing.T) {
	got := Classify(t0, startedCycle(), profile())
	require.Len(t, got, 3)
	assert.Equal(t, t0.Add(10*time.Minute), got[1].DueAt)
	assert.Equal(t, t0.Add(12*time.Minute), got[1].Deadline)
}

func TestClassify_NotStarted(t *testing.T) {
	c := startedCycle()
	c.StartTime = 0
	assert.Nil(t, Classify(t0, c, profile()))
	assert.Nil(t, Classify(t0, nil, profile()))
}

func TestNextDue(t *testing.T) {
	tests := []struct {
		name          string
		elapsed       time.Duration
		filled        []int
		status        domain.CycleStatus
		wantOK        bool
		wantSlot      int
		wantRemaining time.Duration
	}{
		{name: "upcoming first slot", elapsed: 2 * time.Minute, wantOK: true, wantSlot: 5, wantRemaining: 3 * time.Minute},
		{name: "due slot has no remaining", elapsed: 6 * time.Minute, wantOK: true, wantSlot: 5},
		{name: "skips overdue", elapsed: 8 * time.Minute, wantOK: true, wantSlot: 10, wantRemaining: 2 * time.Minute},
		{name: "skips completed", elapsed: 6 * time.Minute, filled: []int{5}, wantOK: true, wantSlot: 10, wantRemaining: 4 * time.Minute},
		{name: "nothing left", elapsed: 20 * time.Minute},
		{name: "terminal cycle", elapsed: 2 * time.Minute, status: domain.CycleStatusCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := startedCycle(tt.filled...)
			if tt.status != "" {
				c.Status = tt.status
			}
			next, ok := NextDue(t0.Add(tt.elapsed), c, profile())
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantSlot, next.Offset)
			assert.Equal(t, tt.wantRemaining, next.Remaining)
			assert.Equal(t, t0.Add(time.Duration(tt.wantSlot)*time.Minute), next.DueAt)
		})
	}
}

type stubReader struct {
	cycle *domain.MealCycle
	err   error
}

func (r *stubReader) Current(ctx context.Context) (*domain.MealCycle, error) {
	return r.cycle, r.err
}

type recordingNotifier struct {
	alerts []notify.Alert
}

func (n *recordingNotifier) Emit(ctx context.Context, a notify.Alert) {
	n.alerts = append(n.alerts, a)
}

func slotsOf(alerts []notify.Alert) []int {
	out := make([]int, len(alerts))
	for i, a := range alerts {
		out[i] = a.Slot
	}
	return out
}

func TestScheduler_AlertsOncePerDueTransition(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	reader := &stubReader{cycle: startedCycle()}
	notifier := &recordingNotifier{}
	s := New(reader, notifier, profile(), clock, nil)
	ctx := context.Background()

	clock.Advance(4*time.Minute + 59*time.Second)
	require.NoError(t, s.Tick(ctx))
	assert.Empty(t, notifier.alerts)

	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		require.NoError(t, s.Tick(ctx))
	}
	assert.Equal(t, []int{5}, slotsOf(notifier.alerts))

	// Past the deadline the slot is overdue and stays silent.
	clock.Advance(2 * time.Minute)
	require.NoError(t, s.Tick(ctx))
	assert.Equal(t, []int{5}, slotsOf(notifier.alerts))

	clock.Advance(3 * time.Minute)
	require.NoError(t, s.Tick(ctx))
	assert.Equal(t, []int{5, 10}, slotsOf(notifier.alerts))
	assert.Equal(t, reader.cycle.ID, notifier.alerts[1].CycleID)
	assert.Equal(t, notify.UrgencyCritical, notifier.alerts[1].Urgency)
}

func TestScheduler_ResetsForNewCycle(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0.Add(5 * time.Minute))
	reader := &stubReader{cycle: startedCycle()}
	notifier := &recordingNotifier{}
	s := New(reader, notifier, profile(), clock, nil)
	ctx := context.Background()

	require.NoError(t, s.Tick(ctx))
	require.Len(t, notifier.alerts, 1)

	// A terminal cycle clears the set; a new cycle alerts again for the same offset.
	ended := reader.cycle.Clone()
	ended.Status = domain.CycleStatusAbandoned
	reader.cycle = ended
	require.NoError(t, s.Tick(ctx))

	reader.cycle = startedCycle()
	require.NoError(t, s.Tick(ctx))
	require.NoError(t, s.Tick(ctx))
	assert.Equal(t, []int{5, 5}, slotsOf(notifier.alerts))
	assert.NotEqual(t, notifier.alerts[0].CycleID, notifier.alerts[1].CycleID)
}

func TestScheduler_NoCycleAndErrors(t *testing.T) {
	notifier := &recordingNotifier{}
	reader := &stubReader{}
	s := New(reader, notifier, profile(), clockwork.NewFakeClockAt(t0), nil)

	require.NoError(t, s.Tick(context.Background()))
	assert.Empty(t, notifier.alerts)

	reader.err = errors.New("disk full")
	assert.Error(t, s.Tick(context.Background()))
}
