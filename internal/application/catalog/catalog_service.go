package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/supplychain/backend/internal/domain/catalog"
	"github.com/supplychain/backend/internal/domain/shared"
)

// CatalogService manages the product and supplier reference data the
// ordering engines run against.
type CatalogService struct {
	productRepo  catalog.ProductRepository
	supplierRepo catalog.SupplierRepository
	sourcingRepo catalog.ProductSupplierRepository
	logger       *zap.Logger
}

func NewCatalogService(
	productRepo catalog.ProductRepository,
	supplierRepo catalog.SupplierRepository,
	sourcingRepo catalog.ProductSupplierRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		sourcingRepo: sourcingRepo,
		logger:       logger,
	}
}

// CreateProduct registers a new product. The SKU must be unique.
func (s *CatalogService) CreateProduct(ctx context.Context, name, sku string, salePrice decimal.Decimal) (*catalog.Product, error) {
	if _, err := s.productRepo.FindBySKU(ctx, sku); err == nil {
		return nil, fmt.Errorf("%w: sku %s already exists", shared.ErrConflict, sku)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	p, err := catalog.NewProduct(name, sku, salePrice)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Created product",
		zap.String("product_id", p.ID.String()),
		zap.String("sku", p.SKU),
	)
	return p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, productID)
}

func (s *CatalogService) ListProducts(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	return s.productRepo.FindAll(ctx, filter)
}

// CreateSupplier registers a new upstream vendor.
func (s *CatalogService) CreateSupplier(ctx context.Context, name, contact string) (*catalog.Supplier, error) {
	sup, err := catalog.NewSupplier(name, contact)
	if err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, sup); err != nil {
		return nil, err
	}

	s.logger.Info("Created supplier",
		zap.String("supplier_id", sup.ID.String()),
		zap.String("name", sup.Name),
	)
	return sup, nil
}

func (s *CatalogService) GetSupplier(ctx context.Context, supplierID uuid.UUID) (*catalog.Supplier, error) {
	return s.supplierRepo.FindByID(ctx, supplierID)
}

func (s *CatalogService) ListSuppliers(ctx context.Context, filter shared.Filter) ([]catalog.Supplier, error) {
	return s.supplierRepo.FindAll(ctx, filter)
}

// SetSourcing binds a product to its purchasing supplier, replacing any
// existing mapping. Both sides must exist.
func (s *CatalogService) SetSourcing(ctx context.Context, productID, supplierID uuid.UUID, leadTimeDays int, purchasePrice decimal.Decimal) (*catalog.ProductSupplier, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		return nil, err
	}

	existing, err := s.sourcingRepo.FindByProductID(ctx, productID)
	switch {
	case err == nil:
		if leadTimeDays < 0 || purchasePrice.IsNegative() {
			return nil, shared.ErrInvalidInput
		}
		existing.SupplierID = supplierID
		existing.LeadTimeDays = leadTimeDays
		existing.PurchasePrice = purchasePrice
		if err := s.sourcingRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, shared.ErrNotFound):
		ps, err := catalog.NewProductSupplier(productID, supplierID, leadTimeDays, purchasePrice)
		if err != nil {
			return nil, err
		}
		if err := s.sourcingRepo.Save(ctx, ps); err != nil {
			return nil, err
		}
		return ps, nil
	default:
		return nil, err
	}
}

// GetSourcing returns the sourcing mapping for a product.
func (s *CatalogService) GetSourcing(ctx context.Context, productID uuid.UUID) (*catalog.ProductSupplier, error) {
	return s.sourcingRepo.FindByProductID(ctx, productID)
}
