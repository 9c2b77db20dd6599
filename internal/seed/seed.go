package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/google/uuid"
)

const seededDays = 14

// Committer applies operations to the remote store.
type Committer interface {
	Commit(ctx context.Context, ops []domain.PendingOperation) error
}

// seedNamespace derives stable cycle IDs so repeated runs create nothing new.
var seedNamespace = uuid.MustParse("6f1c2a7e-3d4b-4f59-9a1e-5c8d7b6e4f30")

// Run seeds the remote store with ended cycles for owner. Safe to call multiple times.
func Run(ctx context.Context, repo Committer, owner uuid.UUID, profile domain.CycleProfile, now time.Time) error {
	rng := rand.New(rand.NewSource(now.UnixNano()))

	ops := make([]domain.PendingOperation, 0, seededDays)
	for i := 1; i <= seededDays; i++ {
		day := now.AddDate(0, 0, -i)
		cycle := seedCycle(owner, profile, i, time.Date(day.Year(), day.Month(), day.Day(), 12+rng.Intn(2), rng.Intn(60), 0, 0, time.UTC), rng)

		op, err := domain.NewCycleOperation(domain.OperationCreate, cycle, now)
		if err != nil {
			return fmt.Errorf("failed to build seed cycle %d: %w", i, err)
		}
		ops = append(ops, op)
	}

	if err := repo.Commit(ctx, ops); err != nil {
		return fmt.Errorf("failed to commit seed cycles: %w", err)
	}

	logger.Info("Seed completed", "owner", owner, "cycles", len(ops))
	return nil
}

// seedCycle builds the i-th sample cycle. Most complete; some are
// abandoned after missing their later slots, a few are canceled.
func seedCycle(owner uuid.UUID, profile domain.CycleProfile, i int, created time.Time, rng *rand.Rand) *domain.MealCycle {
	key := fmt.Sprintf("seed-%s-%d", owner, i)
	start := created.Add(time.Duration(1+rng.Intn(10)) * time.Minute)
	baseline := 80 + rng.Float64()*25

	cycle := &domain.MealCycle{
		ID:        uuid.NewSHA1(seedNamespace, []byte(key)),
		OwnerID:   owner,
		UniqueID:  uuid.NewSHA1(seedNamespace, []byte(key+"-unique")),
		StartTime: start.UnixMilli(),
		Baseline: &domain.Reading{
			ID:        uuid.NewSHA1(seedNamespace, []byte(key+"-baseline")),
			Value:     roundReading(baseline),
			Timestamp: created.UnixMilli(),
			Kind:      domain.ReadingKindPreprandial,
		},
		Slots:     map[int]domain.Reading{},
		Status:    domain.CycleStatusCompleted,
		CreatedAt: created,
	}

	filled := len(profile.Offsets)
	switch {
	case i%7 == 0:
		cycle.Status = domain.CycleStatusCanceled
		filled = 1
	case i%4 == 0:
		cycle.Status = domain.CycleStatusAbandoned
		filled = len(profile.Offsets) / 2
	}

	// Glucose peaks around the hour mark and returns toward baseline.
	peak := baseline + 40 + rng.Float64()*50
	for n, offset := range profile.Offsets[:filled] {
		slot := offset
		shape := 1 - abs(float64(offset)-60)/120
		if shape < 0.1 {
			shape = 0.1
		}
		cycle.Slots[offset] = domain.Reading{
			ID:        uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("%s-slot-%d", key, n))),
			Value:     roundReading(baseline + (peak-baseline)*shape),
			Timestamp: start.Add(time.Duration(offset)*time.Minute + time.Duration(rng.Intn(120))*time.Second).UnixMilli(),
			Kind:      domain.ReadingKindPostprandial,
			Slot:      &slot,
		}
	}

	switch cycle.Status {
	case domain.CycleStatusAbandoned:
		cycle.UpdatedAt = created.Add(profile.Ceiling())
	case domain.CycleStatusCanceled:
		cycle.UpdatedAt = start.Add(time.Duration(profile.Offsets[0]+1) * time.Minute)
	default:
		cycle.UpdatedAt = start.Add(time.Duration(profile.LastOffset()+1) * time.Minute)
	}
	return cycle
}

func roundReading(v float64) float64 {
	if v < domain.MinReadingValue {
		v = domain.MinReadingValue
	}
	if v > domain.MaxReadingValue {
		v = domain.MaxReadingValue
	}
	return float64(int(v + 0.5))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
