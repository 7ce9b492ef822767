package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/supplychain/backend/internal/domain/catalog"
	"github.com/supplychain/backend/internal/domain/shared"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var p catalog.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var p catalog.Product
	if err := r.db.WithContext(ctx).First(&p, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	err := r.db.WithContext(ctx).Save(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConflict
	}
	return err
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Supplier, error) {
	var s catalog.Supplier
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Supplier, error) {
	var suppliers []catalog.Supplier
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Supplier{}), filter)
	if err := query.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *GormSupplierRepository) Save(ctx context.Context, s *catalog.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

var _ catalog.SupplierRepository = (*GormSupplierRepository)(nil)

// GormProductSupplierRepository implements ProductSupplierRepository using GORM
type GormProductSupplierRepository struct {
	db *gorm.DB
}

func NewGormProductSupplierRepository(db *gorm.DB) *GormProductSupplierRepository {
	return &GormProductSupplierRepository{db: db}
}

func (r *GormProductSupplierRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*catalog.ProductSupplier, error) {
	var ps catalog.ProductSupplier
	if err := r.db.WithContext(ctx).First(&ps, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ps, nil
}

func (r *GormProductSupplierRepository) FindBySupplierID(ctx context.Context, supplierID uuid.UUID) ([]catalog.ProductSupplier, error) {
	var mappings []catalog.ProductSupplier
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *GormProductSupplierRepository) FindAll(ctx context.Context) ([]catalog.ProductSupplier, error) {
	var mappings []catalog.ProductSupplier
	if err := r.db.WithContext(ctx).Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *GormProductSupplierRepository) Save(ctx context.Context, ps *catalog.ProductSupplier) error {
	err := r.db.WithContext(ctx).Save(ps).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConflict
	}
	return err
}

var _ catalog.ProductSupplierRepository = (*GormProductSupplierRepository)(nil)
