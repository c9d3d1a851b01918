package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewforge/shift-engine/internal/domain/enum"
)

// Product is a sellable menu position. IngredientSpec is the raw recipe text
// maintained by the back office ("milk:0.2;espresso:1"); it is parsed into a
// typed Recipe at load time and never interpreted during checkout.
type Product struct {
	ID             uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Name           string               `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Category       enum.ProductCategory `gorm:"not null;index" json:"category"`
	Price          int64                `gorm:"not null" json:"-"` // Stored in minor units, excluded from JSON
	IngredientSpec string               `gorm:"type:text;column:ingredients" json:"-"`
	Preparation    string               `gorm:"type:text" json:"preparation,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// MarshalJSON converts minor units to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: float64(p.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
