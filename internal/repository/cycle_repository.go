package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CycleRepository is the remote document store for meal cycles.
type CycleRepository interface {
	// Commit applies ops in order inside one transaction; either all apply or none.
	Commit(ctx context.Context, ops []domain.PendingOperation) error
	FindActive(ctx context.Context, ownerID uuid.UUID) (*domain.MealCycle, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MealCycle, error)
	ListHistory(ctx context.Context, ownerID uuid.UUID, filter domain.CycleFilter) ([]domain.MealCycle, error)
	Ping(ctx context.Context) error
}

type cycleRepository struct {
	db *gorm.DB
}

func NewCycleRepository(db *gorm.DB) CycleRepository {
	return &cycleRepository{db: db}
}

// Migrate creates or updates the meal_cycles table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.MealCycle{})
}

func (r *cycleRepository) Commit(ctx context.Context, ops []domain.PendingOperation) error {
	if len(ops) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, op := range ops {
			if err := applyOperation(tx, op); err != nil {
				return fmt.Errorf("operation %d (%s %s/%s): %w", i, op.Kind, op.Collection, op.DocumentID, err)
			}
		}
		return nil
	})
}

// applyOperation is idempotent per kind so a batch replayed after a lost
// acknowledgement converges to the same documents.
func applyOperation(tx *gorm.DB, op domain.PendingOperation) error {
	if err := op.Validate(); err != nil {
		return err
	}

	switch op.Kind {
	case domain.OperationCreate:
		cycle, err := op.DecodeCycle()
		if err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(cycle).Error
	case domain.OperationUpdate:
		cycle, err := op.DecodeCycle()
		if err != nil {
			return err
		}
		// Save falls back to insert when the row does not exist yet.
		return tx.Save(cycle).Error
	case domain.OperationDelete:
		return tx.Delete(&domain.MealCycle{}, "id = ?", op.DocumentID).Error
	}
	return fmt.Errorf("unsupported operation kind %q", op.Kind)
}

func (r *cycleRepository) FindActive(ctx context.Context, ownerID uuid.UUID) (*domain.MealCycle, error) {
	var cycle domain.MealCycle
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, domain.CycleStatusActive).
		Order("created_at DESC").
		First(&cycle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No active cycle is not an error
		}
		return nil, err
	}
	return &cycle, nil
}

func (r *cycleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MealCycle, error) {
	var cycle domain.MealCycle
	err := r.db.WithContext(ctx).First(&cycle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &cycle, nil
}

func (r *cycleRepository) ListHistory(ctx context.Context, ownerID uuid.UUID, filter domain.CycleFilter) ([]domain.MealCycle, error) {
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("status IN ?", []domain.CycleStatus{
			domain.CycleStatusCompleted,
			domain.CycleStatusAbandoned,
			domain.CycleStatusCanceled,
		}).
		Order("created_at DESC").
		Order("id DESC")

	if len(filter.Exclude) > 0 {
		query = query.Where("id NOT IN ?", filter.Exclude)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			clause, args := cursor.Keyset()
			query = query.Where(clause, args...)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var cycles []domain.MealCycle
	if err := query.Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (r *cycleRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
