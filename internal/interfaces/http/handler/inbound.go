package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inboundapp "github.com/supplychain/backend/internal/application/inbound"
	"github.com/supplychain/backend/internal/interfaces/http/dto"
)

// InboundHandler exposes read access to the warehouse receiving history.
type InboundHandler struct {
	BaseHandler
	queryService *inboundapp.QueryService
}

// NewInboundHandler creates a new InboundHandler
func NewInboundHandler(queryService *inboundapp.QueryService) *InboundHandler {
	return &InboundHandler{queryService: queryService}
}

// RegisterRoutes registers inbound routes on the API group
func (h *InboundHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/inbounds")
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
}

// ListInboundsRequest narrows the receiving history listing
type ListInboundsRequest struct {
	dto.ListRequest
	PurchaseOrderID string `form:"purchase_order_id" binding:"omitempty,uuid"`
}

// List returns inbound receipts, optionally the one for a purchase order
func (h *InboundHandler) List(c *gin.Context) {
	req := ListInboundsRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if req.PurchaseOrderID != "" {
		purchaseOrderID, err := uuid.Parse(req.PurchaseOrderID)
		if err != nil {
			h.BadRequest(c, "Invalid purchase order ID format")
			return
		}
		receipt, err := h.queryService.GetByPurchaseOrder(c.Request.Context(), purchaseOrderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, receipt)
		return
	}

	receipts, err := h.queryService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipts)
}

// GetByID returns one inbound receipt with its lines
func (h *InboundHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid inbound receipt ID format")
		return
	}

	receipt, err := h.queryService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}
