package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brewforge/shift-engine/internal/domain/entity"
)

// ShiftRepository defines the interface for shift data operations.
type ShiftRepository interface {
	// OpenShift inserts the shift only if no other shift is open. It
	// returns false when an open shift already exists. The check and the
	// insert are a single atomic statement.
	OpenShift(ctx context.Context, shift *entity.Shift) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	// GetOpen returns the currently open shift, or nil when none is open.
	GetOpen(ctx context.Context) (*entity.Shift, error)
	// CloseShift transitions an open shift to closed. It returns false
	// when the shift does not exist or is not open.
	CloseShift(ctx context.Context, id uuid.UUID, closedAt time.Time) (bool, error)
	// ApplySale atomically folds one finalized sale into the shift
	// aggregates. Must be called exactly once per sale.
	ApplySale(ctx context.Context, shiftID uuid.UUID, total int64, coffeeCount, foodCount int) error
	List(ctx context.Context, limit int) ([]entity.Shift, error)
}
