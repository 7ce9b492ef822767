package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/supplychain/backend/internal/application/inventory"
	"github.com/supplychain/backend/internal/domain/inventory"
)

// InventoryHandler exposes read access to the inventory ledgers.
type InventoryHandler struct {
	BaseHandler
	queryService *inventoryapp.QueryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(queryService *inventoryapp.QueryService) *InventoryHandler {
	return &InventoryHandler{queryService: queryService}
}

// RegisterRoutes registers inventory routes on the API group
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/inventory")
	group.GET("", h.List)
}

// ListInventoryRequest selects a slice of the inventory ledgers. Exactly one
// of location_id or location_type must be given; product_id narrows a
// location listing to a single row.
type ListInventoryRequest struct {
	LocationID   string `form:"location_id" binding:"omitempty,uuid"`
	LocationType string `form:"location_type" binding:"omitempty,oneof=WAREHOUSE STORE"`
	ProductID    string `form:"product_id" binding:"omitempty,uuid"`
}

// List returns inventory records for a location or a location type
func (h *InventoryHandler) List(c *gin.Context) {
	req := ListInventoryRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	switch {
	case req.LocationID != "":
		locationID, err := uuid.Parse(req.LocationID)
		if err != nil {
			h.BadRequest(c, "Invalid location ID format")
			return
		}
		if req.ProductID != "" {
			productID, err := uuid.Parse(req.ProductID)
			if err != nil {
				h.BadRequest(c, "Invalid product ID format")
				return
			}
			record, err := h.queryService.GetByLocationAndProduct(c.Request.Context(), locationID, productID)
			if err != nil {
				h.HandleError(c, err)
				return
			}
			h.Success(c, record)
			return
		}
		records, err := h.queryService.ListByLocation(c.Request.Context(), locationID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, records)

	case req.LocationType != "":
		records, err := h.queryService.ListByLocationType(c.Request.Context(), inventory.LocationType(req.LocationType))
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, records)

	default:
		h.BadRequest(c, "Either location_id or location_type query parameter is required")
	}
}
