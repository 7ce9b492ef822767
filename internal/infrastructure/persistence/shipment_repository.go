package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/supplychain/backend/internal/domain/shared"
	"github.com/supplychain/backend/internal/domain/shipment"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	var s shipment.Shipment
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *GormShipmentRepository) FindByStatus(ctx context.Context, status shipment.ShipmentStatus, filter shared.Filter) ([]shipment.Shipment, error) {
	var shipments []shipment.Shipment
	query := applyFilter(
		r.db.WithContext(ctx).Model(&shipment.Shipment{}).Where("status = ?", status),
		filter,
	)
	if err := query.Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

func (r *GormShipmentRepository) FindByStoreOrderID(ctx context.Context, storeOrderID uuid.UUID) ([]shipment.Shipment, error) {
	var shipments []shipment.Shipment
	if err := r.db.WithContext(ctx).
		Where("store_order_id = ?", storeOrderID).
		Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

func (r *GormShipmentRepository) Save(ctx context.Context, s *shipment.Shipment) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// AdvanceWaitingToInTransit moves every shipment WAITING since the cutoff
// or earlier in a single conditional update. Time in state is read off
// status_changed_at; unrelated writes to the row never postpone a
// transition.
func (r *GormShipmentRepository) AdvanceWaitingToInTransit(ctx context.Context, cutoff time.Time) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&shipment.Shipment{}).
		Where("status = ? AND status_changed_at <= ?", shipment.StatusWaiting, cutoff).
		Updates(map[string]interface{}{
			"status":            shipment.StatusInTransit,
			"status_changed_at": now,
			"updated_at":        now,
		})
	return result.RowsAffected, result.Error
}

// AdvanceInTransitToDelivered moves IN_TRANSIT shipments past the cutoff to
// DELIVERED. Rows whose in-transit increment was not applied yet are left
// for a later tick.
func (r *GormShipmentRepository) AdvanceInTransitToDelivered(ctx context.Context, cutoff time.Time) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&shipment.Shipment{}).
		Where("status = ? AND in_transit_applied = ? AND status_changed_at <= ?",
			shipment.StatusInTransit, true, cutoff).
		Updates(map[string]interface{}{
			"status":            shipment.StatusDelivered,
			"status_changed_at": now,
			"updated_at":        now,
		})
	return result.RowsAffected, result.Error
}

func (r *GormShipmentRepository) FindInTransitUnapplied(ctx context.Context, limit int) ([]shipment.Shipment, error) {
	var shipments []shipment.Shipment
	if err := r.db.WithContext(ctx).
		Where("status = ? AND in_transit_applied = ?", shipment.StatusInTransit, false).
		Order("created_at ASC").
		Limit(limit).
		Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

func (r *GormShipmentRepository) FindDeliveredUnapplied(ctx context.Context, limit int) ([]shipment.Shipment, error) {
	var shipments []shipment.Shipment
	if err := r.db.WithContext(ctx).
		Where("status = ? AND inventory_applied = ?", shipment.StatusDelivered, false).
		Order("created_at ASC").
		Limit(limit).
		Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// ClaimInTransitApplied flips the in-transit flag when it is still false.
// RowsAffected 0 means another worker won the claim.
func (r *GormShipmentRepository) ClaimInTransitApplied(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&shipment.Shipment{}).
		Where("id = ? AND in_transit_applied = ?", id, false).
		Update("in_transit_applied", true)
	return result.RowsAffected > 0, result.Error
}

// ClaimInventoryApplied flips the delivery flag when it is still false.
func (r *GormShipmentRepository) ClaimInventoryApplied(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&shipment.Shipment{}).
		Where("id = ? AND inventory_applied = ?", id, false).
		Update("inventory_applied", true)
	return result.RowsAffected > 0, result.Error
}

var _ shipment.ShipmentRepository = (*GormShipmentRepository)(nil)
