package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
)

// InventoryRepository defines the interface for ingredient stock operations.
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)
	GetByName(ctx context.Context, name string) (*entity.InventoryItem, error)
	List(ctx context.Context) ([]entity.InventoryItem, error)
	ListByStatus(ctx context.Context, statuses ...enum.StockStatus) ([]entity.InventoryItem, error)
	// DeductFloored atomically subtracts amount, flooring the result at
	// zero, and returns the item as persisted after the update. A missing
	// item yields (nil, nil); a non-nil error means the store itself
	// failed.
	DeductFloored(ctx context.Context, id uuid.UUID, amount float64) (*entity.InventoryItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.StockStatus) error
}

// RecipeRepository defines the interface for recipe data operations.
type RecipeRepository interface {
	GetByProductID(ctx context.Context, productID uuid.UUID) (*entity.Recipe, error)
	// Replace swaps the stored recipe for a product with the given one.
	Replace(ctx context.Context, recipe *entity.Recipe) error
	List(ctx context.Context) ([]entity.Recipe, error)
}

// ProductRepository defines the interface for menu product operations.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
}
