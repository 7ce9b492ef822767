package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogapp "github.com/supplychain/backend/internal/application/catalog"
	"github.com/supplychain/backend/internal/interfaces/http/dto"
)

// CatalogHandler exposes the product and supplier reference data.
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers catalog routes on the API group
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.POST("", h.CreateProduct)
	products.GET("", h.ListProducts)
	products.GET("/:id", h.GetProduct)
	products.PUT("/:id/sourcing", h.SetSourcing)
	products.GET("/:id/sourcing", h.GetSourcing)

	suppliers := rg.Group("/suppliers")
	suppliers.POST("", h.CreateSupplier)
	suppliers.GET("", h.ListSuppliers)
	suppliers.GET("/:id", h.GetSupplier)
}

// CreateProductRequest represents a request to register a product
type CreateProductRequest struct {
	Name      string          `json:"name" binding:"required,max=255"`
	SKU       string          `json:"sku" binding:"required,max=100"`
	SalePrice decimal.Decimal `json:"sale_price" binding:"required"`
}

// CreateProduct registers a new product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.catalogService.CreateProduct(c.Request.Context(), req.Name, req.SKU, req.SalePrice)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, p)
}

// ListProducts returns the product catalog
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.catalogService.ListProducts(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// GetProduct returns one product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	p, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

// SetSourcingRequest binds a product to its purchasing supplier
type SetSourcingRequest struct {
	SupplierID    string          `json:"supplier_id" binding:"required,uuid"`
	LeadTimeDays  int             `json:"lead_time_days" binding:"min=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price" binding:"required"`
}

// SetSourcing sets or replaces a product's sourcing supplier
func (h *CatalogHandler) SetSourcing(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req SetSourcingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	ps, err := h.catalogService.SetSourcing(c.Request.Context(), productID, supplierID, req.LeadTimeDays, req.PurchasePrice)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ps)
}

// GetSourcing returns a product's sourcing supplier
func (h *CatalogHandler) GetSourcing(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	ps, err := h.catalogService.GetSourcing(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ps)
}

// CreateSupplierRequest represents a request to register a supplier
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Contact string `json:"contact" binding:"max=255"`
}

// CreateSupplier registers a new upstream vendor
func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sup, err := h.catalogService.CreateSupplier(c.Request.Context(), req.Name, req.Contact)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sup)
}

// ListSuppliers returns all suppliers
func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	suppliers, err := h.catalogService.ListSuppliers(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, suppliers)
}

// GetSupplier returns one supplier
func (h *CatalogHandler) GetSupplier(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	sup, err := h.catalogService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sup)
}
