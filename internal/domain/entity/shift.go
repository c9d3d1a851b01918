package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewforge/shift-engine/internal/domain/enum"
)

// Shift is a bounded work session during which sales are recorded and
// aggregated. At most one shift may be open at a time; the repository
// enforces that with a conditional insert.
type Shift struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	State        enum.ShiftState `gorm:"not null;index" json:"state"`
	OpenedBy     string          `gorm:"size:255;not null" json:"opened_by"`
	OpenedAt     time.Time       `gorm:"not null" json:"opened_at"`
	ClosedAt     *time.Time      `json:"closed_at,omitempty"`
	TotalSales   int64           `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	Transactions int             `gorm:"default:0" json:"transactions"`
	CoffeeCount  int             `gorm:"default:0" json:"coffee_count"`
	FoodCount    int             `gorm:"default:0" json:"food_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MarshalJSON converts minor units to decimal for API responses
func (s Shift) MarshalJSON() ([]byte, error) {
	type Alias Shift
	return json.Marshal(&struct {
		Alias
		TotalSales float64 `json:"total_sales"`
	}{
		Alias:      Alias(s),
		TotalSales: float64(s.TotalSales) / 100,
	})
}

// IsOpen reports whether the shift still accepts sales
func (s *Shift) IsOpen() bool {
	return s.State == enum.ShiftStateOpen
}

// BeforeCreate generates a UUID before creating a new shift
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}
