package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
	domainRepo "github.com/brewforge/shift-engine/internal/domain/repository"
	"github.com/brewforge/shift-engine/pkg/pagination"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) CreatePending(ctx context.Context, sale *entity.Sale) error {
	sale.Status = enum.SaleStatusPending
	return r.db.WithContext(ctx).Create(sale).Error
}

// Finalize flips the write-ahead row to Committed with the checkout
// outcomes. Only fields filled during the checkout pipeline are touched;
// the line snapshot and total written at CreatePending stay as they were.
func (r *saleRepository) Finalize(ctx context.Context, sale *entity.Sale) error {
	result := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ? AND status = ?", sale.ID, enum.SaleStatusPending).
		Updates(map[string]interface{}{
			"status":            enum.SaleStatusCommitted,
			"bonus_applied":     sale.BonusApplied,
			"bonus_earned":      sale.BonusEarned,
			"customer_phone":    sale.CustomerPhone,
			"inventory_updated": sale.InventoryUpdated,
			"fiscal_data":       sale.FiscalReceipt,
			"total":             sale.Total,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	sale.Status = enum.SaleStatusCommitted
	return nil
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) ListByShift(ctx context.Context, shiftID uuid.UUID, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("shift_id = ? AND status = ?", shiftID, enum.SaleStatusCommitted)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("timestamp DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) ListPending(ctx context.Context) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("status = ?", enum.SaleStatusPending).
		Order("timestamp ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ?", id).
		Update("status", status).Error
}
