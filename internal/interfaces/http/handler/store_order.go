package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	orderapp "github.com/supplychain/backend/internal/application/order"
	"github.com/supplychain/backend/internal/domain/order"
	"github.com/supplychain/backend/internal/interfaces/http/dto"
)

// StoreOrderHandler exposes the store order lifecycle: creation,
// confirmation and warehouse fulfillment.
type StoreOrderHandler struct {
	BaseHandler
	orderService *orderapp.StoreOrderService
}

// NewStoreOrderHandler creates a new StoreOrderHandler
func NewStoreOrderHandler(orderService *orderapp.StoreOrderService) *StoreOrderHandler {
	return &StoreOrderHandler{orderService: orderService}
}

// RegisterRoutes registers store-order routes on the API group
func (h *StoreOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/store-orders")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
	group.POST("/:id/confirm", h.Confirm)
	group.POST("/:id/fulfill", h.Fulfill)
}

// CreateStoreOrderRequest represents a request to place a store order
type CreateStoreOrderRequest struct {
	StoreID string           `json:"store_id" binding:"required,uuid"`
	Lines   []StoreOrderLine `json:"lines" binding:"required,min=1,dive"`
}

// StoreOrderLine is one product line of the request
type StoreOrderLine struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	Qty       int             `json:"qty" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// Create places a new store order in CREATED state
func (h *StoreOrderHandler) Create(c *gin.Context) {
	var req CreateStoreOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		h.BadRequest(c, "Invalid store ID format")
		return
	}

	lines := make([]order.OrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		productID, err := uuid.Parse(l.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		lines = append(lines, order.OrderLine{
			ProductID: productID,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
		})
	}

	o, err := h.orderService.Create(c.Request.Context(), storeID, lines)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, o)
}

// ListStoreOrdersRequest narrows the store-order listing
type ListStoreOrdersRequest struct {
	dto.ListRequest
	StoreID string `form:"store_id" binding:"required,uuid"`
}

// List returns a store's orders
func (h *StoreOrderHandler) List(c *gin.Context) {
	req := ListStoreOrdersRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		h.BadRequest(c, "Invalid store ID format")
		return
	}

	orders, err := h.orderService.ListByStore(c.Request.Context(), storeID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetByID returns one store order with its lines
func (h *StoreOrderHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store order ID format")
		return
	}

	o, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, o)
}

// Confirm accepts a created order and books the receivable settlement
func (h *StoreOrderHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store order ID format")
		return
	}

	o, err := h.orderService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, o)
}

// Fulfill deducts warehouse stock and raises WAITING shipments per line
func (h *StoreOrderHandler) Fulfill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store order ID format")
		return
	}

	shipments, err := h.orderService.Fulfill(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shipments)
}
