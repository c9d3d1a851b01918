package entity

import (
	"encoding/json"
	"time"
)

// Customer is a loyalty program account keyed by normalized phone number.
// The balance is a non-negative amount in the same minor units as order
// totals; the repository's conditional updates keep it from going negative.
type Customer struct {
	Phone        string    `gorm:"size:20;primary_key" json:"phone"`
	BonusBalance int64     `gorm:"default:0;not null" json:"-"` // Stored in minor units, excluded from JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MarshalJSON converts minor units to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		BonusBalance float64 `json:"bonus_balance"`
	}{
		Alias:        Alias(c),
		BonusBalance: float64(c.BonusBalance) / 100,
	})
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
