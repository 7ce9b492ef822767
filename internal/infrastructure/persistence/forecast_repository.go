package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/supplychain/backend/internal/domain/forecast"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
)

// GormSnapshotRepository implements SnapshotRepository using GORM
type GormSnapshotRepository struct {
	db *gorm.DB
}

func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

func (r *GormSnapshotRepository) Save(ctx context.Context, snapshot *forecast.DemandForecastSnapshot) error {
	return r.db.WithContext(ctx).Save(snapshot).Error
}

// LatestForWeek returns the newest snapshot per product for the target week.
func (r *GormSnapshotRepository) LatestForWeek(ctx context.Context, targetWeek time.Time) ([]forecast.DemandForecastSnapshot, error) {
	var snapshots []forecast.DemandForecastSnapshot
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (product_id) *
		     FROM demand_forecast_snapshots
		     WHERE target_week = ?
		     ORDER BY product_id, snapshot_at DESC`, targetWeek).
		Scan(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *GormSnapshotRepository) BackfillActual(ctx context.Context, productID uuid.UUID, targetWeek time.Time, actualQty int) error {
	return r.db.WithContext(ctx).Model(&forecast.DemandForecastSnapshot{}).
		Where("product_id = ? AND target_week = ?", productID, targetWeek).
		Update("actual_order_qty", actualQty).Error
}

func (r *GormSnapshotRepository) AccuracyRows(ctx context.Context, filter shared.Filter) ([]forecast.DemandForecastSnapshot, error) {
	var snapshots []forecast.DemandForecastSnapshot
	query := r.db.WithContext(ctx).Model(&forecast.DemandForecastSnapshot{}).
		Where("actual_order_qty IS NOT NULL").
		Order("target_week DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

var _ forecast.SnapshotRepository = (*GormSnapshotRepository)(nil)

// GormSmartOrderRepository implements SmartOrderRepository using GORM
type GormSmartOrderRepository struct {
	db *gorm.DB
}

func NewGormSmartOrderRepository(db *gorm.DB) *GormSmartOrderRepository {
	return &GormSmartOrderRepository{db: db}
}

func (r *GormSmartOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*forecast.SmartOrder, error) {
	var so forecast.SmartOrder
	if err := r.db.WithContext(ctx).
		Preload("Details").
		First(&so, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &so, nil
}

func (r *GormSmartOrderRepository) FindBySupplierAndWeek(ctx context.Context, supplierID uuid.UUID, targetWeek time.Time) (*forecast.SmartOrder, error) {
	var so forecast.SmartOrder
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Where("supplier_id = ? AND target_week = ?", supplierID, targetWeek).
		First(&so).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &so, nil
}

func (r *GormSmartOrderRepository) FindByStatus(ctx context.Context, status purchase.OrderStatus, filter shared.Filter) ([]forecast.SmartOrder, error) {
	var orders []forecast.SmartOrder
	query := applyFilter(
		r.db.WithContext(ctx).Model(&forecast.SmartOrder{}).
			Preload("Details").
			Where("status = ?", status),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormSmartOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]forecast.SmartOrder, error) {
	var orders []forecast.SmartOrder
	query := applyFilter(
		r.db.WithContext(ctx).Model(&forecast.SmartOrder{}).Preload("Details"),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists the order and its lines. The (supplier, week) unique index
// turns a concurrent duplicate into shared.ErrConflict.
func (r *GormSmartOrderRepository) Save(ctx context.Context, so *forecast.SmartOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(so).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConflict
	}
	return err
}

var _ forecast.SmartOrderRepository = (*GormSmartOrderRepository)(nil)
