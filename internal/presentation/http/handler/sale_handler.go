package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brewforge/shift-engine/internal/domain/repository"
	"github.com/brewforge/shift-engine/internal/presentation/http/dto/response"
	"github.com/brewforge/shift-engine/pkg/pagination"
)

// SaleHandler handles read access to the append-only sales log
type SaleHandler struct {
	saleRepo repository.SaleRepository
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleRepo repository.SaleRepository) *SaleHandler {
	return &SaleHandler{saleRepo: saleRepo}
}

// Get returns one sale record
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if sale == nil {
		response.NotFound(c, "Sale not found")
		return
	}
	response.OK(c, "Sale", sale)
}

// ListByShift returns the sales of one shift, paginated
func (h *SaleHandler) ListByShift(c *gin.Context) {
	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	sales, total, err := h.saleRepo.ListByShift(c.Request.Context(), shiftID, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Shift sales", result)
}
