package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewforge/shift-engine/internal/domain/enum"
)

// SaleLine is one line of a finalized sale, snapshotted at checkout.
type SaleLine struct {
	ProductID uuid.UUID            `json:"product_id"`
	Name      string               `json:"name"`
	UnitPrice int64                `json:"unit_price"`
	Quantity  int                  `json:"quantity"`
	Category  enum.ProductCategory `json:"category"`
}

// SaleLines is stored as a jsonb column on the sale row.
type SaleLines []SaleLine

func (l SaleLines) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *SaleLines) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("sale lines: unsupported scan type")
}

// FiscalData is the receipt returned by the fiscal gateway, stored as jsonb.
// A nil value means the sale is unfiscalized.
type FiscalData struct {
	FiscalSign     string `json:"fiscal_sign"`
	DocumentNumber string `json:"document_number"`
	DriveNumber    string `json:"drive_number"`
}

func (d FiscalData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *FiscalData) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	}
	return errors.New("fiscal data: unsupported scan type")
}

// Sale is the immutable record of one finalized checkout, scoped to a shift.
// It is written once in Pending state before side effects run and flipped to
// Committed afterwards; the payload is never mutated again.
type Sale struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ShiftID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"shift_id"`
	Status           enum.SaleStatus `gorm:"not null;index" json:"status"`
	Lines            SaleLines       `gorm:"type:jsonb;column:items_json;not null" json:"lines"`
	Total            int64           `gorm:"not null" json:"-"` // Stored in minor units, excluded from JSON
	Timestamp        time.Time       `gorm:"not null;index" json:"timestamp"`
	BonusApplied     int64           `gorm:"default:0" json:"-"`
	BonusEarned      int64           `gorm:"default:0" json:"-"`
	CustomerPhone    *string         `gorm:"size:20;index" json:"customer_phone,omitempty"`
	InventoryUpdated bool            `gorm:"default:false" json:"inventory_updated"`
	FiscalReceipt    *FiscalData     `gorm:"type:jsonb;column:fiscal_data" json:"fiscal_receipt,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relationships
	Shift Shift `gorm:"foreignKey:ShiftID" json:"-"`
}

// MarshalJSON converts minor units to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Total        float64 `json:"total"`
		BonusApplied float64 `json:"bonus_applied"`
		BonusEarned  float64 `json:"bonus_earned"`
	}{
		Alias:        Alias(s),
		Total:        float64(s.Total) / 100,
		BonusApplied: float64(s.BonusApplied) / 100,
		BonusEarned:  float64(s.BonusEarned) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// CountByCategory returns how many units across the sale's lines belong to
// the given category.
func (s *Sale) CountByCategory(category enum.ProductCategory) int {
	count := 0
	for _, line := range s.Lines {
		if line.Category == category {
			count += line.Quantity
		}
	}
	return count
}
