package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/brewforge/shift-engine/internal/application/service"
	"github.com/brewforge/shift-engine/internal/domain/entity"
	"github.com/brewforge/shift-engine/internal/domain/repository"
	"github.com/brewforge/shift-engine/internal/presentation/http/dto/request"
	"github.com/brewforge/shift-engine/internal/presentation/http/dto/response"
	"github.com/brewforge/shift-engine/pkg/notify"
)

// InventoryHandler handles ingredient stock HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
	inventoryRepo    repository.InventoryRepository
	notifications    *notify.BufferNotifier
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	inventoryService *service.InventoryService,
	inventoryRepo repository.InventoryRepository,
	notifications *notify.BufferNotifier,
) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		inventoryRepo:    inventoryRepo,
		notifications:    notifications,
	}
}

// List returns all tracked ingredients
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.inventoryService.Items(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Inventory", items)
}

// LowStock returns ingredients in Low or Critical state
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.inventoryService.LowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Low stock items", items)
}

// Create adds a tracked ingredient
func (h *InventoryHandler) Create(c *gin.Context) {
	var req request.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item := &entity.InventoryItem{
		Name:              req.Name,
		Amount:            req.Amount,
		Unit:              req.Unit,
		MinThreshold:      req.MinThreshold,
		CriticalThreshold: req.CriticalThreshold,
	}
	if err := h.inventoryRepo.Create(c.Request.Context(), item); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Inventory item created", item)
}

// Notifications returns recent threshold notifications for the display layer
func (h *InventoryHandler) Notifications(c *gin.Context) {
	response.OK(c, "Recent notifications", h.notifications.Recent())
}
