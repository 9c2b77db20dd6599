package handler

import (
	"context"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/google/uuid"
)

// MockCycleService is a mock implementation of CycleService
type MockCycleService struct {
	profile       domain.CycleProfile
	startFunc     func(ctx context.Context, baselineValue float64) (*domain.MealCycle, error)
	markStartFunc func(ctx context.Context) (*domain.MealCycle, error)
	submitFunc    func(ctx context.Context, offset int, value float64) (*domain.MealCycle, error)
	abandonFunc   func(ctx context.Context) (*domain.MealCycle, error)
	cancelFunc    func(ctx context.Context) (*domain.MealCycle, error)
	currentFunc   func(ctx context.Context) (*domain.MealCycle, error)
	historyFunc   func(ctx context.Context, filter domain.CycleFilter) (*domain.CycleListResponse, error)
	deleteFunc    func(ctx context.Context, id uuid.UUID) error
}

func (m *MockCycleService) Profile() domain.CycleProfile {
	return m.profile
}

func (m *MockCycleService) Start(ctx context.Context, baselineValue float64) (*domain.MealCycle, error) {
	if m.startFunc != nil {
		return m.startFunc(ctx, baselineValue)
	}
	return newCycle(), nil
}

func (m *MockCycleService) MarkStartEvent(ctx context.Context) (*domain.MealCycle, error) {
	if m.markStartFunc != nil {
		return m.markStartFunc(ctx)
	}
	return newCycle(), nil
}

func (m *MockCycleService) SubmitReading(ctx context.Context, offset int, value float64) (*domain.MealCycle, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, offset, value)
	}
	return newCycle(), nil
}

func (m *MockCycleService) Abandon(ctx context.Context) (*domain.MealCycle, error) {
	if m.abandonFunc != nil {
		return m.abandonFunc(ctx)
	}
	return newCycle(), nil
}

func (m *MockCycleService) Cancel(ctx context.Context) (*domain.MealCycle, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx)
	}
	return newCycle(), nil
}

func (m *MockCycleService) Current(ctx context.Context) (*domain.MealCycle, error) {
	if m.currentFunc != nil {
		return m.currentFunc(ctx)
	}
	return nil, nil
}

func (m *MockCycleService) History(ctx context.Context, filter domain.CycleFilter) (*domain.CycleListResponse, error) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, filter)
	}
	return &domain.CycleListResponse{
		Data:       []domain.MealCycleResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

func (m *MockCycleService) DeleteFromHistory(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCycleService) Hydrate(ctx context.Context) error {
	return nil
}

// MockSyncController is a mock implementation of SyncController
type MockSyncController struct {
	status    domain.SyncStatus
	flushErr  error
	flushed   int
	onlineSet []bool
}

func (m *MockSyncController) Status() domain.SyncStatus {
	return m.status
}

func (m *MockSyncController) Flush(ctx context.Context) error {
	m.flushed++
	return m.flushErr
}

func (m *MockSyncController) SetOnline(online bool) {
	m.onlineSet = append(m.onlineSet, online)
	m.status.Online = online
}
