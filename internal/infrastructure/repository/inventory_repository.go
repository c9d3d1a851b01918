package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
	domainRepo "github.com/brewforge/shift-engine/internal/domain/repository"
)

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryRepository) GetByName(ctx context.Context, name string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryRepository) List(ctx context.Context) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepository) ListByStatus(ctx context.Context, statuses ...enum.StockStatus) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("status DESC, name ASC").
		Find(&items).Error
	return items, err
}

// DeductFloored atomically subtracts amount with the result floored at zero.
// Uses: UPDATE goods SET quantity = GREATEST(quantity - amount, 0) WHERE id = ?
// The updated row is re-read so the caller sees the persisted amount even
// when another checkout deducted concurrently.
func (r *inventoryRepository) DeductFloored(ctx context.Context, id uuid.UUID, amount float64) (*entity.InventoryItem, error) {
	result := r.db.WithContext(ctx).Model(&entity.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("GREATEST(quantity - ?, 0)", amount))

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	item, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		// The row was deleted between the update and the re-read.
		return nil, fmt.Errorf("inventory item %s vanished after deduction", id)
	}
	return item, nil
}

func (r *inventoryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.StockStatus) error {
	return r.db.WithContext(ctx).Model(&entity.InventoryItem{}).
		Where("id = ?", id).
		Update("status", status).Error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) domainRepo.RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetByProductID(ctx context.Context, productID uuid.UUID) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients").
		First(&recipe, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &recipe, err
}

// Replace swaps the stored recipe for a product in one transaction so a
// checkout never observes a half-written recipe.
func (r *recipeRepository) Replace(ctx context.Context, recipe *entity.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.Recipe
		err := tx.First(&existing, "product_id = ?", recipe.ProductID).Error
		if err == nil {
			if err := tx.Delete(&entity.RecipeIngredient{}, "recipe_id = ?", existing.ID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&entity.Recipe{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(recipe).Error
	})
}

func (r *recipeRepository) List(ctx context.Context) ([]entity.Recipe, error) {
	var recipes []entity.Recipe
	err := r.db.WithContext(ctx).Preload("Ingredients").Find(&recipes).Error
	return recipes, err
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) List(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Order("category ASC, name ASC").Find(&products).Error
	return products, err
}
