package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/shared"
)

// Product is a sellable item in the franchise catalog.
type Product struct {
	shared.BaseEntity
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	SKU       string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Unit      string          `gorm:"type:varchar(20);not null;default:'EA'" json:"unit"`
	SalePrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sale_price"`
	Active    bool            `gorm:"not null;default:true" json:"active"`
}

func (Product) TableName() string {
	return "products"
}

func NewProduct(name, sku string, salePrice decimal.Decimal) (*Product, error) {
	if name == "" || sku == "" {
		return nil, shared.ErrInvalidInput
	}
	if salePrice.IsNegative() {
		return nil, shared.ErrInvalidInput
	}
	now := time.Now()
	return &Product{
		BaseEntity: shared.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      name,
		SKU:       sku,
		Unit:      "EA",
		SalePrice: salePrice,
		Active:    true,
	}, nil
}

// Supplier is an upstream vendor the warehouse purchases from.
type Supplier struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Contact string `gorm:"type:varchar(255)" json:"contact"`
	Active  bool   `gorm:"not null;default:true" json:"active"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

func NewSupplier(name, contact string) (*Supplier, error) {
	if name == "" {
		return nil, shared.ErrInvalidInput
	}
	now := time.Now()
	return &Supplier{
		BaseEntity: shared.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    name,
		Contact: contact,
		Active:  true,
	}, nil
}

// ProductSupplier maps a product to its sourcing supplier with the purchase
// terms the replenishment engines need. One supplier per product.
type ProductSupplier struct {
	shared.BaseEntity
	ProductID     uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"product_id"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	LeadTimeDays  int             `gorm:"not null;default:0" json:"lead_time_days"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"purchase_price"`
}

func (ProductSupplier) TableName() string {
	return "product_suppliers"
}

func NewProductSupplier(productID, supplierID uuid.UUID, leadTimeDays int, purchasePrice decimal.Decimal) (*ProductSupplier, error) {
	if productID == uuid.Nil || supplierID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	if leadTimeDays < 0 || purchasePrice.IsNegative() {
		return nil, shared.ErrInvalidInput
	}
	now := time.Now()
	return &ProductSupplier{
		BaseEntity: shared.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProductID:     productID,
		SupplierID:    supplierID,
		LeadTimeDays:  leadTimeDays,
		PurchasePrice: purchasePrice,
	}, nil
}
