package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe maps one product to the ingredient quantities consumed per unit
// sold. Read-only during checkout.
type Recipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
}

// RecipeIngredient is one ingredient requirement of a recipe.
type RecipeIngredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID        uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	InventoryItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"inventory_item_id"`
	AmountPerUnit   float64   `gorm:"not null" json:"amount_per_unit"`
}

// BeforeCreate generates a UUID before creating a new recipe
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate generates a UUID before creating a new recipe ingredient
func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Recipe model
func (Recipe) TableName() string {
	return "recipes"
}

// TableName returns the table name for the RecipeIngredient model
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// ParsedIngredient is one entry of a parsed ingredient spec, referencing the
// inventory item by name. The loader resolves names to IDs.
type ParsedIngredient struct {
	Name          string
	AmountPerUnit float64
}

// ParseIngredientSpec parses a back-office ingredient spec of the form
// "milk:0.2;espresso:1" into typed entries. Malformed entries are rejected
// eagerly with an error rather than silently producing zero-amount
// ingredients. An empty spec yields an empty recipe.
func ParseIngredientSpec(spec string) ([]ParsedIngredient, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	seen := make(map[string]bool)
	var parsed []ParsedIngredient

	for idx, part := range strings.Split(spec, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("ingredient spec: entry %d is empty", idx+1)
		}

		name, amountStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("ingredient spec: entry %q has no amount", part)
		}

		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("ingredient spec: entry %d has no name", idx+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("ingredient spec: duplicate ingredient %q", name)
		}
		seen[name] = true

		amount, err := strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
		if err != nil {
			return nil, fmt.Errorf("ingredient spec: entry %q has invalid amount: %w", part, err)
		}
		if amount <= 0 {
			return nil, fmt.Errorf("ingredient spec: entry %q has non-positive amount", part)
		}

		parsed = append(parsed, ParsedIngredient{Name: name, AmountPerUnit: amount})
	}

	return parsed, nil
}
