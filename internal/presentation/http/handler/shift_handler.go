package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brewforge/shift-engine/internal/application/service"
	"github.com/brewforge/shift-engine/internal/presentation/http/dto/request"
	"github.com/brewforge/shift-engine/internal/presentation/http/dto/response"
)

// ShiftHandler handles shift lifecycle HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
	carts        *service.CartRegistry
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService, carts *service.CartRegistry) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService, carts: carts}
}

// Open handles opening a new shift
func (h *ShiftHandler) Open(c *gin.Context) {
	var req request.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shift, err := h.shiftService.Open(c.Request.Context(), req.Operator, req.PIN)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shift opened", shift)
}

// Close handles closing the current shift. Every register's cart is reset
// once the shift is closed.
func (h *ShiftHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	var req request.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shift, err := h.shiftService.Close(c.Request.Context(), id, req.PIN)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.carts.ClearAll()
	response.OK(c, "Shift closed", shift)
}

// Current returns the currently open shift with its running aggregates
func (h *ShiftHandler) Current(c *gin.Context) {
	shift, err := h.shiftService.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Current shift", shift)
}

// History returns recent shifts, newest first
func (h *ShiftHandler) History(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	shifts, err := h.shiftService.History(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shift history", shifts)
}
