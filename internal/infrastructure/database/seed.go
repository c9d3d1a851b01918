package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
)

type seedItem struct {
	name     string
	amount   float64
	unit     string
	min      float64
	critical float64
}

type seedProduct struct {
	name        string
	category    enum.ProductCategory
	price       int64 // minor units
	ingredients string
}

var defaultItems = []seedItem{
	{"espresso", 500, "shot", 100, 30},
	{"milk", 20, "l", 5, 1},
	{"water", 50, "l", 10, 2},
	{"caramel syrup", 2, "l", 0.5, 0.1},
	{"cocoa", 3, "kg", 1, 0.2},
	{"croissant", 40, "pc", 10, 3},
	{"cheesecake slice", 24, "pc", 8, 2},
}

var defaultProducts = []seedProduct{
	{"Espresso", enum.ProductCategoryCoffee, 12000, "espresso:1;water:0.03"},
	{"Americano", enum.ProductCategoryCoffee, 14000, "espresso:1;water:0.12"},
	{"Cappuccino", enum.ProductCategoryCoffee, 18000, "espresso:1;milk:0.15"},
	{"Latte", enum.ProductCategoryCoffee, 19000, "espresso:1;milk:0.2"},
	{"Raf Caramel", enum.ProductCategoryCoffee, 22000, "espresso:1;milk:0.2;caramel syrup:0.02"},
	{"Hot Chocolate", enum.ProductCategoryOther, 17000, "milk:0.2;cocoa:0.03"},
	{"Croissant", enum.ProductCategoryFood, 15000, "croissant:1"},
	{"Cheesecake", enum.ProductCategoryFood, 21000, "cheesecake slice:1"},
}

// SeedDefaultData populates an empty database with the demo catalog:
// inventory items, menu products, and their parsed recipes.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	for _, it := range defaultItems {
		var existing entity.InventoryItem
		if err := db.Where("name = ?", it.name).First(&existing).Error; err == nil {
			continue
		}
		item := entity.InventoryItem{
			Name:              it.name,
			Amount:            it.amount,
			Unit:              it.unit,
			MinThreshold:      it.min,
			CriticalThreshold: it.critical,
		}
		if err := db.Create(&item).Error; err != nil {
			log.Printf("Warning: failed to seed inventory item %s: %v", it.name, err)
		}
	}

	for _, p := range defaultProducts {
		var existing entity.Product
		if err := db.Where("name = ?", p.name).First(&existing).Error; err == nil {
			continue
		}
		product := entity.Product{
			Name:           p.name,
			Category:       p.category,
			Price:          p.price,
			IngredientSpec: p.ingredients,
		}
		if err := db.Create(&product).Error; err != nil {
			log.Printf("Warning: failed to seed product %s: %v", p.name, err)
		}
	}

	if err := RebuildRecipes(db); err != nil {
		return err
	}

	log.Println("Default data seeding completed")
	return nil
}

// RebuildRecipes parses every product's ingredient spec into a typed recipe.
// Malformed specs and references to unknown inventory items are rejected
// eagerly; a product with a bad spec fails the load instead of silently
// consuming nothing at checkout.
func RebuildRecipes(db *gorm.DB) error {
	var products []entity.Product
	if err := db.Find(&products).Error; err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	for _, product := range products {
		parsed, err := entity.ParseIngredientSpec(product.IngredientSpec)
		if err != nil {
			return fmt.Errorf("product %q: %w", product.Name, err)
		}
		if len(parsed) == 0 {
			continue
		}

		recipe := entity.Recipe{ProductID: product.ID}
		for _, ing := range parsed {
			var item entity.InventoryItem
			if err := db.Where("name = ?", ing.Name).First(&item).Error; err != nil {
				return fmt.Errorf("product %q: ingredient %q not found in inventory", product.Name, ing.Name)
			}
			recipe.Ingredients = append(recipe.Ingredients, entity.RecipeIngredient{
				InventoryItemID: item.ID,
				AmountPerUnit:   ing.AmountPerUnit,
			})
		}

		var existing entity.Recipe
		err = db.First(&existing, "product_id = ?", product.ID).Error
		if err == nil {
			if err := db.Delete(&entity.RecipeIngredient{}, "recipe_id = ?", existing.ID).Error; err != nil {
				return err
			}
			if err := db.Delete(&entity.Recipe{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := db.Create(&recipe).Error; err != nil {
			return fmt.Errorf("product %q: failed to store recipe: %w", product.Name, err)
		}
	}

	return nil
}
