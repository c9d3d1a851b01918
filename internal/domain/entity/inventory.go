package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewforge/shift-engine/internal/domain/enum"
)

// InventoryItem is one tracked ingredient. Amount is floored at zero and the
// status is always the threshold-consistent function of the amount.
type InventoryItem struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name              string           `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Amount            float64          `gorm:"column:quantity;default:0;not null" json:"amount"`
	Unit              string           `gorm:"size:20;not null" json:"unit"`
	Status            enum.StockStatus `gorm:"not null;index" json:"status"`
	MinThreshold      float64          `gorm:"not null" json:"min_threshold"`
	CriticalThreshold float64          `gorm:"not null" json:"critical_threshold"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ComputeStatus returns the status the item should carry for its current
// amount.
func (i *InventoryItem) ComputeStatus() enum.StockStatus {
	return enum.StockStatusFor(i.Amount, i.MinThreshold, i.CriticalThreshold)
}

// BeforeCreate generates a UUID and normalizes status before insert
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.Status = i.ComputeStatus()
	return nil
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "goods"
}
