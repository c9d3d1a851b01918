package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
	"github.com/brewforge/shift-engine/internal/domain/repository"
	"github.com/brewforge/shift-engine/pkg/apperror"
	"github.com/brewforge/shift-engine/pkg/logger"
)

// CatalogService manages the menu and its recipes. Ingredient specs are
// parsed eagerly on every write: a malformed spec is rejected up front so a
// product never reaches checkout without a usable recipe.
type CatalogService struct {
	productRepo   repository.ProductRepository
	recipeRepo    repository.RecipeRepository
	inventoryRepo repository.InventoryRepository
	logger        *logger.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	inventoryRepo repository.InventoryRepository,
	log *logger.Logger,
) *CatalogService {
	return &CatalogService{
		productRepo:   productRepo,
		recipeRepo:    recipeRepo,
		inventoryRepo: inventoryRepo,
		logger:        log.WithComponent("catalog_service"),
	}
}

// CreateProduct adds a menu item and builds its recipe from the ingredient
// spec. Ingredient names must resolve to existing inventory items.
func (s *CatalogService) CreateProduct(ctx context.Context, name string, category enum.ProductCategory, price int64, ingredientSpec, preparation string) (*entity.Product, error) {
	if price <= 0 {
		return nil, apperror.NewValidationError("price must be positive")
	}

	existing, err := s.productRepo.GetByName(ctx, name)
	if err != nil {
		return nil, apperror.NewPersistenceError("failed to check product name")
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("product %q already exists", name))
	}

	ingredients, err := s.resolveIngredients(ctx, ingredientSpec)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:           name,
		Category:       category,
		Price:          price,
		IngredientSpec: ingredientSpec,
		Preparation:    preparation,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", "name", name, "error", err)
		return nil, apperror.NewPersistenceError("failed to create product")
	}

	if len(ingredients) > 0 {
		recipe := &entity.Recipe{ProductID: product.ID, Ingredients: ingredients}
		if err := s.recipeRepo.Replace(ctx, recipe); err != nil {
			s.logger.Error("Failed to store recipe", "product", name, "error", err)
			return nil, apperror.NewPersistenceError("failed to store recipe")
		}
	}

	s.logger.Info("Product created", "name", name, "ingredients", len(ingredients))
	return product, nil
}

// UpdateRecipe replaces a product's recipe from a new ingredient spec.
func (s *CatalogService) UpdateRecipe(ctx context.Context, productID string, ingredientSpec string) (*entity.Recipe, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.resolveIngredients(ctx, ingredientSpec)
	if err != nil {
		return nil, err
	}
	if len(ingredients) == 0 {
		return nil, apperror.NewValidationError("ingredient spec is empty")
	}

	recipe := &entity.Recipe{ProductID: product.ID, Ingredients: ingredients}
	if err := s.recipeRepo.Replace(ctx, recipe); err != nil {
		return nil, apperror.NewPersistenceError("failed to store recipe")
	}
	return recipe, nil
}

// Products returns the full menu.
func (s *CatalogService) Products(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.List(ctx)
}

// Product returns one menu item by ID.
func (s *CatalogService) Product(ctx context.Context, productID string) (*entity.Product, error) {
	return s.findProduct(ctx, productID)
}

func (s *CatalogService) findProduct(ctx context.Context, productID string) (*entity.Product, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, apperror.NewValidationError("invalid product ID")
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("failed to load product")
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// resolveIngredients parses a spec and resolves ingredient names to
// inventory item IDs. Unknown names are rejected.
func (s *CatalogService) resolveIngredients(ctx context.Context, spec string) ([]entity.RecipeIngredient, error) {
	parsed, err := entity.ParseIngredientSpec(spec)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error())
	}

	ingredients := make([]entity.RecipeIngredient, 0, len(parsed))
	for _, ing := range parsed {
		item, err := s.inventoryRepo.GetByName(ctx, ing.Name)
		if err != nil {
			return nil, apperror.NewPersistenceError("failed to resolve ingredient")
		}
		if item == nil {
			return nil, apperror.NewValidationError(fmt.Sprintf("ingredient %q not found in inventory", ing.Name))
		}
		ingredients = append(ingredients, entity.RecipeIngredient{
			InventoryItemID: item.ID,
			AmountPerUnit:   ing.AmountPerUnit,
		})
	}
	return ingredients, nil
}
