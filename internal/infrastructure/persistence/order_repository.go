package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/supplychain/backend/internal/domain/order"
	"github.com/supplychain/backend/internal/domain/shared"
)

// GormStoreOrderRepository implements StoreOrderRepository using GORM
type GormStoreOrderRepository struct {
	db *gorm.DB
}

func NewGormStoreOrderRepository(db *gorm.DB) *GormStoreOrderRepository {
	return &GormStoreOrderRepository{db: db}
}

func (r *GormStoreOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.StoreOrder, error) {
	var o order.StoreOrder
	if err := r.db.WithContext(ctx).
		Preload("Details").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *GormStoreOrderRepository) FindByStoreID(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]order.StoreOrder, error) {
	var orders []order.StoreOrder
	query := applyFilter(
		r.db.WithContext(ctx).Model(&order.StoreOrder{}).
			Preload("Details").
			Where("store_id = ?", storeID),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists the order and its details in one transaction, translating a
// duplicated order number into shared.ErrConflict.
func (r *GormStoreOrderRepository) Save(ctx context.Context, o *order.StoreOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(o).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConflict
	}
	return err
}

// UpdateStatusByIDs projects a shipment stage onto orders in one statement.
// Rows already in the target status are excluded so the projection stays
// idempotent across ticks.
func (r *GormStoreOrderRepository) UpdateStatusByIDs(ctx context.Context, ids []uuid.UUID, status order.StoreOrderStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&order.StoreOrder{}).
		Where("id IN ? AND status <> ?", ids, status).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// DailyQuantities aggregates fulfilled detail quantities per day for a
// product. Only orders that were accepted count as consumption; CREATED
// and CANCELLED orders never moved stock.
func (r *GormStoreOrderRepository) DailyQuantities(ctx context.Context, productID uuid.UUID, since time.Time) ([]order.DailyQuantity, error) {
	fulfilled := []order.StoreOrderStatus{order.StatusConfirmed, order.StatusInTransit, order.StatusDelivered}
	var rows []order.DailyQuantity
	err := r.db.WithContext(ctx).
		Table("store_order_details").
		Select("DATE(store_orders.created_at) AS day, SUM(store_order_details.qty) AS qty").
		Joins("JOIN store_orders ON store_orders.id = store_order_details.store_order_id").
		Where("store_order_details.product_id = ?", productID).
		Where("store_orders.created_at >= ?", since).
		Where("store_orders.status IN ?", fulfilled).
		Group("DATE(store_orders.created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

var _ order.StoreOrderRepository = (*GormStoreOrderRepository)(nil)
