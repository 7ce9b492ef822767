package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	purchaseapp "github.com/supplychain/backend/internal/application/purchase"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/interfaces/http/dto"
)

// PurchaseOrderHandler exposes the purchase-order lifecycle: reviewing
// engine drafts, submitting them with edits, and confirming or rejecting.
type PurchaseOrderHandler struct {
	BaseHandler
	purchaseService *purchaseapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(purchaseService *purchaseapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{purchaseService: purchaseService}
}

// RegisterRoutes registers purchase-order routes on the API group
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/purchase-orders")
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
	group.POST("/:id/submit", h.Submit)
	group.POST("/:id/confirm", h.Confirm)
	group.POST("/:id/reject", h.Reject)
}

// ListPurchaseOrdersRequest narrows the purchase-order listing
type ListPurchaseOrdersRequest struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=DRAFT_AUTO SUBMITTED CONFIRMED REJECTED CANCELLED"`
	Type   string `form:"type" binding:"omitempty,oneof=AUTO SMART MANUAL"`
}

// List returns purchase orders by status or by type
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	req := ListPurchaseOrdersRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var (
		orders []purchase.PurchaseOrder
		err    error
	)
	switch {
	case req.Status != "":
		orders, err = h.purchaseService.ListByStatus(c.Request.Context(), purchase.OrderStatus(req.Status), req.ToFilter())
	case req.Type != "":
		orders, err = h.purchaseService.ListByType(c.Request.Context(), purchase.OrderType(req.Type), req.ToFilter())
	default:
		h.BadRequest(c, "Either status or type query parameter is required")
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetByID returns one purchase order with its lines
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	po, err := h.purchaseService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// SubmitPurchaseOrderRequest carries user overrides for a draft order
type SubmitPurchaseOrderRequest struct {
	Edits     []PurchaseOrderEdit `json:"edits" binding:"omitempty,dive"`
	ChangedBy string              `json:"changed_by" binding:"required,max=100"`
}

// PurchaseOrderEdit overrides one engine-proposed line
type PurchaseOrderEdit struct {
	DetailID string `json:"detail_id" binding:"required,uuid"`
	NewQty   *int   `json:"new_qty" binding:"required,min=0"`
}

// Submit moves a draft purchase order to SUBMITTED, applying line edits
func (h *PurchaseOrderHandler) Submit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	var req SubmitPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	edits := make([]purchase.LineEdit, 0, len(req.Edits))
	for _, e := range req.Edits {
		detailID, err := uuid.Parse(e.DetailID)
		if err != nil {
			h.BadRequest(c, "Invalid detail ID format")
			return
		}
		edits = append(edits, purchase.LineEdit{DetailID: detailID, NewQty: *e.NewQty})
	}

	po, err := h.purchaseService.Submit(c.Request.Context(), id, edits, req.ChangedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// Confirm marks a submitted purchase order as supplier-confirmed
func (h *PurchaseOrderHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	po, err := h.purchaseService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// Reject marks a submitted purchase order as supplier-rejected
func (h *PurchaseOrderHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	po, err := h.purchaseService.Reject(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}
