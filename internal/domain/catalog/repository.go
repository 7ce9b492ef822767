package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Save(ctx context.Context, p *Product) error
}

type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Save(ctx context.Context, s *Supplier) error
}

type ProductSupplierRepository interface {
	// FindByProductID returns shared.ErrNotFound when the product has no
	// sourcing mapping.
	FindByProductID(ctx context.Context, productID uuid.UUID) (*ProductSupplier, error)
	FindBySupplierID(ctx context.Context, supplierID uuid.UUID) ([]ProductSupplier, error)
	FindAll(ctx context.Context) ([]ProductSupplier, error)
	Save(ctx context.Context, ps *ProductSupplier) error
}
