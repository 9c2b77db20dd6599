package localstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaisecz/meal-cycle/internal/domain"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleOp(t *testing.T, kind domain.OperationKind) domain.PendingOperation {
	t.Helper()
	cycle := &domain.MealCycle{
		ID:       uuid.New(),
		OwnerID:  uuid.New(),
		UniqueID: uuid.New(),
		Slots:    map[int]domain.Reading{},
		Status:   domain.CycleStatusActive,
	}
	op, err := domain.NewCycleOperation(kind, cycle, time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return op
}

func TestLoad_EmptyStore(t *testing.T) {
	s := openTemp(t)

	ops, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ops)
	assert.NotNil(t, ops)
}

func TestSaveLoad_PreservesOrder(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	want := []domain.PendingOperation{
		sampleOp(t, domain.OperationCreate),
		sampleOp(t, domain.OperationUpdate),
		sampleOp(t, domain.OperationDelete),
	}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Kind, got[i].Kind)
	}

	// Rewriting replaces, never appends.
	require.NoError(t, s.Save(ctx, want[2:]))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want[2].ID, got[0].ID)
}

func TestSave_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	op := sampleOp(t, domain.OperationCreate)
	require.NoError(t, s.Save(ctx, []domain.PendingOperation{op}))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, op.ID, got[0].ID)
}

func TestLoad_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "{{{"},
		{name: "wrong shape", payload: `{"kind":"create"}`},
		{name: "invalid entry", payload: `[{"id":"` + uuid.NewString() + `","kind":"explode","collection":"meal_cycles","document_id":"` + uuid.NewString() + `"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTemp(t)
			_, err := s.db.Exec(`INSERT INTO pending_queue (id, payload) VALUES (1, ?)`, tt.payload)
			require.NoError(t, err)

			_, err = s.Load(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrCorruptQueue), "got %v", err)
		})
	}
}
