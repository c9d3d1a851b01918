package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
	domainRepo "github.com/brewforge/shift-engine/internal/domain/repository"
)

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) domainRepo.ShiftRepository {
	return &shiftRepository{db: db}
}

// OpenShift inserts the shift only if no other shift is open. The existence
// check and the insert are one statement, so two registers racing to open a
// shift cannot both succeed.
func (r *shiftRepository) OpenShift(ctx context.Context, shift *entity.Shift) (bool, error) {
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	shift.State = enum.ShiftStateOpen

	now := time.Now()
	result := r.db.WithContext(ctx).Exec(`
		INSERT INTO shifts (id, state, opened_by, opened_at, total_sales, transactions, coffee_count, food_count, created_at, updated_at)
		SELECT ?, ?, ?, ?, 0, 0, 0, 0, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM shifts WHERE state = ?)`,
		shift.ID, enum.ShiftStateOpen, shift.OpenedBy, shift.OpenedAt, now, now, enum.ShiftStateOpen)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) GetOpen(ctx context.Context) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).First(&shift, "state = ?", enum.ShiftStateOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

// CloseShift transitions an open shift to closed. Closing an already-closed
// or unknown shift affects no rows and returns false.
func (r *shiftRepository) CloseShift(ctx context.Context, id uuid.UUID, closedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Shift{}).
		Where("id = ? AND state = ?", id, enum.ShiftStateOpen).
		Updates(map[string]interface{}{
			"state":     enum.ShiftStateClosed,
			"closed_at": closedAt,
		})

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ApplySale folds one finalized sale into the shift aggregates as a single
// atomic UPDATE, so concurrent checkouts cannot lose increments.
func (r *shiftRepository) ApplySale(ctx context.Context, shiftID uuid.UUID, total int64, coffeeCount, foodCount int) error {
	result := r.db.WithContext(ctx).Model(&entity.Shift{}).
		Where("id = ? AND state = ?", shiftID, enum.ShiftStateOpen).
		Updates(map[string]interface{}{
			"total_sales":  gorm.Expr("total_sales + ?", total),
			"transactions": gorm.Expr("transactions + 1"),
			"coffee_count": gorm.Expr("coffee_count + ?", coffeeCount),
			"food_count":   gorm.Expr("food_count + ?", foodCount),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *shiftRepository) List(ctx context.Context, limit int) ([]entity.Shift, error) {
	if limit <= 0 {
		limit = 50
	}
	var shifts []entity.Shift
	err := r.db.WithContext(ctx).
		Order("opened_at DESC").
		Limit(limit).
		Find(&shifts).Error
	return shifts, err
}
