package service

import (
	"context"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/pkg/pagination"
	"github.com/google/uuid"
)

// MockStager records staged operations in memory
type MockStager struct {
	ops []domain.PendingOperation
	err error
}

func (m *MockStager) Enqueue(ctx context.Context, op domain.PendingOperation) error {
	if m.err != nil {
		return m.err
	}
	if err := op.Validate(); err != nil {
		return err
	}
	m.ops = append(m.ops, op)
	return nil
}

func (m *MockStager) Pending() []domain.PendingOperation {
	out := make([]domain.PendingOperation, len(m.ops))
	copy(out, m.ops)
	return out
}

// MockCycleRepository is a mock implementation of CycleRepository
type MockCycleRepository struct {
	active     *domain.MealCycle
	cycles     map[uuid.UUID]*domain.MealCycle
	listResult []domain.MealCycle
	lastFilter domain.CycleFilter
	err        error
	committed  [][]domain.PendingOperation

	// ignoreExclude returns rows the query would have filtered out
	ignoreExclude bool
}

func NewMockCycleRepository() *MockCycleRepository {
	return &MockCycleRepository{
		cycles: make(map[uuid.UUID]*domain.MealCycle),
	}
}

func (m *MockCycleRepository) Commit(ctx context.Context, ops []domain.PendingOperation) error {
	if m.err != nil {
		return m.err
	}
	m.committed = append(m.committed, ops)
	return nil
}

func (m *MockCycleRepository) FindActive(ctx context.Context, ownerID uuid.UUID) (*domain.MealCycle, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.active, nil
}

func (m *MockCycleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MealCycle, error) {
	if m.err != nil {
		return nil, m.err
	}
	cycle, ok := m.cycles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cycle, nil
}

func (m *MockCycleRepository) ListHistory(ctx context.Context, ownerID uuid.UUID, filter domain.CycleFilter) ([]domain.MealCycle, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastFilter = filter
	excluded := map[uuid.UUID]bool{}
	if !m.ignoreExclude {
		for _, id := range filter.Exclude {
			excluded[id] = true
		}
	}
	var out []domain.MealCycle
	for _, c := range m.listResult {
		if !excluded[c.ID] {
			out = append(out, c)
		}
	}
	if limit := pagination.NormalizeLimit(filter.Limit) + 1; len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockCycleRepository) Ping(ctx context.Context) error {
	return m.err
}
