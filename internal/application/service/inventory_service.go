package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/enum"
	"github.com/brewforge/shift-engine/internal/domain/repository"
	"github.com/brewforge/shift-engine/pkg/logger"
	"github.com/brewforge/shift-engine/pkg/notify"
)

// DeductionResult reports the outcome of deducting one sale's ingredient
// consumption. Success is false only when deduction could not be attempted
// at all; missing recipes or items are non-fatal and listed in Messages.
type DeductionResult struct {
	Success      bool                   `json:"success"`
	UpdatedItems []entity.InventoryItem `json:"updated_items"`
	Messages     []string               `json:"messages"`
}

// InventoryService deducts recipe ingredients from stock when a sale is
// finalized and emits threshold notifications.
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	recipeRepo    repository.RecipeRepository
	notifier      notify.Notifier
	logger        *logger.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	recipeRepo repository.RecipeRepository,
	notifier notify.Notifier,
	log *logger.Logger,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		recipeRepo:    recipeRepo,
		notifier:      notifier,
		logger:        log.WithComponent("inventory_service"),
	}
}

// DeductForSale consumes the ingredients required by the sale's lines.
// Amounts are floored at zero; status is recomputed after every deduction.
// Each item notifies at most once per checkout, on transition into Low or
// Critical.
func (s *InventoryService) DeductForSale(ctx context.Context, lines []entity.SaleLine) DeductionResult {
	result := DeductionResult{Success: true}

	// required amount per inventory item, folded across all lines so an
	// ingredient shared by two products is deducted once.
	required := make(map[uuid.UUID]float64)

	for _, line := range lines {
		recipe, err := s.recipeRepo.GetByProductID(ctx, line.ProductID)
		if err != nil {
			s.logger.Error("Failed to fetch recipe", "product_id", line.ProductID, "error", err)
			result.Success = false
			result.Messages = append(result.Messages,
				fmt.Sprintf("recipe store unreachable for %q", line.Name))
			return result
		}
		if recipe == nil {
			result.Messages = append(result.Messages,
				fmt.Sprintf("no recipe for %q, skipped", line.Name))
			continue
		}

		for _, ing := range recipe.Ingredients {
			required[ing.InventoryItemID] += ing.AmountPerUnit * float64(line.Quantity)
		}
	}

	for itemID, amount := range required {
		item, err := s.inventoryRepo.DeductFloored(ctx, itemID, amount)
		if err != nil {
			s.logger.Error("Failed to deduct inventory", "item_id", itemID, "error", err)
			result.Success = false
			result.Messages = append(result.Messages,
				fmt.Sprintf("inventory store unreachable for item %s", itemID))
			return result
		}
		if item == nil {
			result.Messages = append(result.Messages,
				fmt.Sprintf("inventory item %s not found, skipped", itemID))
			continue
		}

		previous := item.Status
		status := item.ComputeStatus()
		if status != previous {
			if err := s.inventoryRepo.UpdateStatus(ctx, itemID, status); err != nil {
				s.logger.Error("Failed to persist stock status", "item_id", itemID, "error", err)
			}
			item.Status = status
			s.notifyThreshold(ctx, item)
		}

		result.UpdatedItems = append(result.UpdatedItems, *item)
		s.logger.Info("Consumed inventory",
			"item", item.Name,
			"amount", amount,
			"remaining", item.Amount,
			"status", item.Status.String())
	}

	return result
}

// notifyThreshold emits one notification for an item that just dropped into
// Low or Critical.
func (s *InventoryService) notifyThreshold(ctx context.Context, item *entity.InventoryItem) {
	var severity notify.Severity
	var title string
	switch item.Status {
	case enum.StockStatusCritical:
		severity = notify.SeverityError
		title = "Stock critical"
	case enum.StockStatusLow:
		severity = notify.SeverityWarning
		title = "Stock low"
	default:
		return
	}

	s.notifier.Notify(ctx, notify.Notification{
		Title:    title,
		Message:  fmt.Sprintf("%s: %g%s remaining", item.Name, item.Amount, item.Unit),
		Severity: severity,
	})
}

// Items returns all inventory items for the display layer.
func (s *InventoryService) Items(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.inventoryRepo.List(ctx)
}

// LowStock returns items currently in Low or Critical state.
func (s *InventoryService) LowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.inventoryRepo.ListByStatus(ctx, enum.StockStatusLow, enum.StockStatusCritical)
}
