package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/brewforge/shift-engine/internal/application/service"
	"github.com/brewforge/shift-engine/internal/presentation/http/dto/request"
	"github.com/brewforge/shift-engine/internal/presentation/http/dto/response"
)

// CustomerHandler handles loyalty account HTTP requests
type CustomerHandler struct {
	bonusService *service.BonusService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(bonusService *service.BonusService) *CustomerHandler {
	return &CustomerHandler{bonusService: bonusService}
}

// Get looks up the loyalty account for a phone number
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.bonusService.Lookup(c.Request.Context(), c.Param("phone"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if customer == nil {
		response.NotFound(c, "Customer not found")
		return
	}
	response.OK(c, "Customer found", customer)
}

// Register creates a loyalty account with the signup credit
func (h *CustomerHandler) Register(c *gin.Context) {
	var req request.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	existing, err := h.bonusService.Lookup(c.Request.Context(), req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	if existing != nil {
		response.OK(c, "Customer already registered", existing)
		return
	}

	customer, err := h.bonusService.Register(c.Request.Context(), req.Phone, 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Customer registered", customer)
}

// Credit manually adds bonus to an account
func (h *CustomerHandler) Credit(c *gin.Context) {
	var req request.CreditBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.bonusService.Lookup(c.Request.Context(), c.Param("phone"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if customer == nil {
		response.NotFound(c, "Customer not found")
		return
	}

	if err := h.bonusService.Credit(c.Request.Context(), customer.Phone, req.Amount); err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.bonusService.Lookup(c.Request.Context(), customer.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bonus credited", updated)
}
