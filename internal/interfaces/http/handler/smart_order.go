package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	smartorderapp "github.com/supplychain/backend/internal/application/smartorder"
	"github.com/supplychain/backend/internal/domain/forecast"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/interfaces/http/dto"
)

// SmartOrderHandler exposes the smart-order review flow: listing generated
// drafts, tuning line quantities and submitting.
type SmartOrderHandler struct {
	BaseHandler
	queryService  *smartorderapp.QueryService
	submitService *smartorderapp.SubmitService
}

// NewSmartOrderHandler creates a new SmartOrderHandler
func NewSmartOrderHandler(
	queryService *smartorderapp.QueryService,
	submitService *smartorderapp.SubmitService,
) *SmartOrderHandler {
	return &SmartOrderHandler{
		queryService:  queryService,
		submitService: submitService,
	}
}

// RegisterRoutes registers smart-order routes on the API group
func (h *SmartOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/smart-orders")
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
	group.PATCH("/:id/details/:detail_id", h.UpdateRecommendedQty)
	group.POST("/:id/submit", h.Submit)
}

// ListSmartOrdersRequest narrows the smart-order listing
type ListSmartOrdersRequest struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=DRAFT_AUTO SUBMITTED CONFIRMED REJECTED CANCELLED"`
}

// List returns smart orders, optionally filtered by status
func (h *SmartOrderHandler) List(c *gin.Context) {
	req := ListSmartOrdersRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.queryService.List(c.Request.Context(), purchase.OrderStatus(req.Status), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetByID returns one smart order with its lines
func (h *SmartOrderHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid smart order ID format")
		return
	}

	so, err := h.queryService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, so)
}

// UpdateRecommendedQtyRequest overrides one draft line's quantity
type UpdateRecommendedQtyRequest struct {
	RecommendedQty *int `json:"recommended_qty" binding:"required,min=0"`
}

// UpdateRecommendedQty edits one line of a draft smart order
func (h *SmartOrderHandler) UpdateRecommendedQty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid smart order ID format")
		return
	}
	detailID, err := uuid.Parse(c.Param("detail_id"))
	if err != nil {
		h.BadRequest(c, "Invalid detail ID format")
		return
	}

	var req UpdateRecommendedQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	so, err := h.submitService.UpdateRecommendedQty(c.Request.Context(), id, detailID, *req.RecommendedQty)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, so)
}

// SubmitSmartOrderRequest carries the user's final quantities
type SubmitSmartOrderRequest struct {
	Edits []SmartOrderEdit `json:"edits" binding:"omitempty,dive"`
}

// SmartOrderEdit finalizes one line
type SmartOrderEdit struct {
	DetailID string `json:"detail_id" binding:"required,uuid"`
	FinalQty *int   `json:"final_qty" binding:"required,min=0"`
}

// Submit finalizes a draft smart order and raises the purchase order
func (h *SmartOrderHandler) Submit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid smart order ID format")
		return
	}

	var req SubmitSmartOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	edits := make([]forecast.FinalEdit, 0, len(req.Edits))
	for _, e := range req.Edits {
		detailID, err := uuid.Parse(e.DetailID)
		if err != nil {
			h.BadRequest(c, "Invalid detail ID format")
			return
		}
		edits = append(edits, forecast.FinalEdit{DetailID: detailID, FinalQty: *e.FinalQty})
	}

	so, err := h.submitService.Submit(c.Request.Context(), id, edits)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, so)
}
