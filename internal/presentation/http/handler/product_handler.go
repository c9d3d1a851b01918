package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/brewforge/shift-engine/internal/application/service"
	"github.com/brewforge/shift-engine/internal/domain/enum"
	"github.com/brewforge/shift-engine/internal/presentation/http/dto/request"
	"github.com/brewforge/shift-engine/internal/presentation/http/dto/response"
)

// ProductHandler handles menu HTTP requests
type ProductHandler struct {
	catalogService *service.CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// List returns the full menu
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalogService.Products(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu", products)
}

// Get returns one menu item
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.catalogService.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product", product)
}

// Create adds a menu item with its recipe
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category := enum.ParseProductCategory(req.Category)

	preparation := ""
	if req.Preparation != nil {
		preparation = *req.Preparation
	}

	product, err := h.catalogService.CreateProduct(
		c.Request.Context(), req.Name, category, req.Price, req.IngredientSpec, preparation)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product created", product)
}

// UpdateRecipe replaces a product's recipe from a new ingredient spec
func (h *ProductHandler) UpdateRecipe(c *gin.Context) {
	var req struct {
		IngredientSpec string `json:"ingredient_spec" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	recipe, err := h.catalogService.UpdateRecipe(c.Request.Context(), c.Param("id"), req.IngredientSpec)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recipe updated", recipe)
}
