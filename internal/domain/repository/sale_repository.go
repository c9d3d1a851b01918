package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
	"github.com/brewforge/shift-engine/pkg/pagination"
)

// SaleRepository defines the interface for the append-only sales log.
// Records are written ahead in Pending state, finalized to Committed, and
// never mutated afterwards.
type SaleRepository interface {
	// CreatePending writes the intended sale before any side effects run.
	CreatePending(ctx context.Context, sale *entity.Sale) error
	// Finalize updates the pending row with checkout outcomes and flips
	// it to Committed.
	Finalize(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	ListByShift(ctx context.Context, shiftID uuid.UUID, params *pagination.PaginationParams) ([]entity.Sale, int64, error)
	// ListPending returns sales stuck in Pending state, for reconciliation.
	ListPending(ctx context.Context) ([]entity.Sale, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error
}
