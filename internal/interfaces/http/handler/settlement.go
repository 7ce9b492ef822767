package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	settlementapp "github.com/supplychain/backend/internal/application/settlement"
	"github.com/supplychain/backend/internal/domain/settlement"
	"github.com/supplychain/backend/internal/interfaces/http/dto"
)

// SettlementHandler exposes read access to the settlement ledger.
type SettlementHandler struct {
	BaseHandler
	queryService *settlementapp.QueryService
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(queryService *settlementapp.QueryService) *SettlementHandler {
	return &SettlementHandler{queryService: queryService}
}

// RegisterRoutes registers settlement routes on the API group
func (h *SettlementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/settlements")
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
}

// ListSettlementsRequest narrows the settlement listing
type ListSettlementsRequest struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=DRAFT ISSUED VOID"`
}

// List returns settlement records, optionally filtered by status
func (h *SettlementHandler) List(c *gin.Context) {
	req := ListSettlementsRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	records, err := h.queryService.List(c.Request.Context(), settlement.SettlementStatus(req.Status), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// GetByID returns one settlement record
func (h *SettlementHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid settlement ID format")
		return
	}

	record, err := h.queryService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}
