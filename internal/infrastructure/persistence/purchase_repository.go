package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseOrder, error) {
	var po purchase.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Details").
		First(&po, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

func (r *GormPurchaseOrderRepository) FindByStatus(ctx context.Context, status purchase.OrderStatus, filter shared.Filter) ([]purchase.PurchaseOrder, error) {
	var orders []purchase.PurchaseOrder
	query := applyFilter(
		r.db.WithContext(ctx).Model(&purchase.PurchaseOrder{}).
			Preload("Details").
			Where("status = ?", status),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormPurchaseOrderRepository) FindByType(ctx context.Context, orderType purchase.OrderType, filter shared.Filter) ([]purchase.PurchaseOrder, error) {
	var orders []purchase.PurchaseOrder
	query := applyFilter(
		r.db.WithContext(ctx).Model(&purchase.PurchaseOrder{}).
			Preload("Details").
			Where("order_type = ?", orderType),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormPurchaseOrderRepository) Save(ctx context.Context, po *purchase.PurchaseOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(po).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConflict
	}
	return err
}

// SaveWithChanges persists the order together with its line-edit audit rows
// in one transaction.
func (r *GormPurchaseOrderRepository) SaveWithChanges(ctx context.Context, po *purchase.PurchaseOrder, changes []purchase.PurchaseDetailChange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(po).Error; err != nil {
			return err
		}
		if len(changes) > 0 {
			if err := tx.Create(&changes).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// OpenQuantityByProduct sums line quantities of SUBMITTED and CONFIRMED
// orders per product.
func (r *GormPurchaseOrderRepository) OpenQuantityByProduct(ctx context.Context) (map[uuid.UUID]int, error) {
	var rows []struct {
		ProductID uuid.UUID
		Qty       int
	}
	err := r.db.WithContext(ctx).
		Table("purchase_details").
		Select("purchase_details.product_id AS product_id, SUM(purchase_details.qty) AS qty").
		Joins("JOIN purchase_orders ON purchase_orders.id = purchase_details.purchase_order_id").
		Where("purchase_orders.status IN ?", []purchase.OrderStatus{purchase.StatusSubmitted, purchase.StatusConfirmed}).
		Group("purchase_details.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	open := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		open[row.ProductID] = row.Qty
	}
	return open, nil
}

var _ purchase.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
