package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCommitter struct {
	batches [][]domain.PendingOperation
	err     error
}

func (c *recordingCommitter) Commit(ctx context.Context, ops []domain.PendingOperation) error {
	c.batches = append(c.batches, ops)
	return c.err
}

var standard = domain.CycleProfile{
	Name: "standard", Offsets: []int{30, 60, 90, 120, 180},
	GraceMinutes: 10, EarlyAllowanceMinutes: 2, CeilingMinutes: 240,
}

func TestRun_SeedsEndedCyclesIdempotently(t *testing.T) {
	owner := uuid.New()
	now := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)
	repo := &recordingCommitter{}

	require.NoError(t, Run(context.Background(), repo, owner, standard, now))
	require.NoError(t, Run(context.Background(), repo, owner, standard, now.Add(time.Hour)))
	require.Len(t, repo.batches, 2)

	first, second := repo.batches[0], repo.batches[1]
	require.Len(t, first, seededDays)
	for i, op := range first {
		assert.Equal(t, domain.OperationCreate, op.Kind)
		assert.Equal(t, op.DocumentID, second[i].DocumentID, "document IDs must be stable across runs")

		cycle, err := op.DecodeCycle()
		require.NoError(t, err)
		assert.Equal(t, owner, cycle.OwnerID)
		assert.True(t, cycle.Status.IsTerminal())
		assert.True(t, cycle.Started())
		for offset, r := range cycle.Slots {
			assert.True(t, standard.HasOffset(offset))
			assert.GreaterOrEqual(t, r.Value, float64(domain.MinReadingValue))
			assert.LessOrEqual(t, r.Value, float64(domain.MaxReadingValue))
		}
		if cycle.Status == domain.CycleStatusCompleted {
			assert.Len(t, cycle.Slots, len(standard.Offsets))
		}
	}
}

func TestRun_CommitFailure(t *testing.T) {
	repo := &recordingCommitter{err: errors.New("connection refused")}
	err := Run(context.Background(), repo, uuid.New(), standard, time.Now())
	assert.ErrorContains(t, err, "connection refused")
}
