package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brewforge/shift-engine/internal/application/service"
	"github.com/brewforge/shift-engine/internal/domain/repository"
	"github.com/brewforge/shift-engine/internal/presentation/http/dto/request"
	"github.com/brewforge/shift-engine/internal/presentation/http/dto/response"
)

// OrderHandler handles the register's current order and checkout
type OrderHandler struct {
	carts           *service.CartRegistry
	checkoutService *service.CheckoutService
	productRepo     repository.ProductRepository
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	carts *service.CartRegistry,
	checkoutService *service.CheckoutService,
	productRepo repository.ProductRepository,
) *OrderHandler {
	return &OrderHandler{
		carts:           carts,
		checkoutService: checkoutService,
		productRepo:     productRepo,
	}
}

// cartView is the JSON shape of the register's current order.
type cartView struct {
	Lines    interface{} `json:"lines"`
	RawTotal float64     `json:"raw_total"`
}

func (h *OrderHandler) view(register string) cartView {
	cart := h.carts.Cart(register)
	return cartView{
		Lines:    cart.Lines(),
		RawTotal: float64(cart.RawTotal()) / 100,
	}
}

// Get returns the register's current order
func (h *OrderHandler) Get(c *gin.Context) {
	response.OK(c, "Current order", h.view(GetRegisterID(c)))
}

// AddLine adds one unit of a product to the current order
func (h *OrderHandler) AddLine(c *gin.Context) {
	var req request.CartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productRepo.GetByID(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if product == nil {
		response.NotFound(c, "Product not found")
		return
	}

	register := GetRegisterID(c)
	h.carts.Cart(register).AddLine(product)
	response.OK(c, "Line added", h.view(register))
}

// RemoveLine removes one unit of a product from the current order
func (h *OrderHandler) RemoveLine(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	register := GetRegisterID(c)
	h.carts.Cart(register).RemoveLine(productID)
	response.OK(c, "Line removed", h.view(register))
}

// Clear empties the register's current order
func (h *OrderHandler) Clear(c *gin.Context) {
	register := GetRegisterID(c)
	h.carts.Cart(register).Clear()
	response.OK(c, "Order cleared", h.view(register))
}

// Checkout finalizes the register's current order into a sale
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.checkoutService.Checkout(c.Request.Context(), GetRegisterID(c), service.CheckoutInput{
		Phone:      req.Phone,
		ApplyBonus: req.ApplyBonus,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed", sale)
}
