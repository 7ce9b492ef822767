package shipment

import (
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// ShipmentStatus is the delivery stage of a shipment.
type ShipmentStatus string

const (
	StatusWaiting   ShipmentStatus = "WAITING"
	StatusInTransit ShipmentStatus = "IN_TRANSIT"
	StatusDelivered ShipmentStatus = "DELIVERED"
)

func (s ShipmentStatus) IsValid() bool {
	switch s {
	case StatusWaiting, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

// CanTransitionTo allows forward moves only. A shipment never regresses.
func (s ShipmentStatus) CanTransitionTo(target ShipmentStatus) bool {
	switch s {
	case StatusWaiting:
		return target == StatusInTransit
	case StatusInTransit:
		return target == StatusDelivered
	default:
		return false
	}
}

// Shipment tracks one product line moving from the warehouse to a store.
// InTransitApplied and InventoryApplied are write-once guards: each marks
// that the corresponding inventory side effect has been committed, so a
// repeated tick never applies it twice. StatusChangedAt moves only on
// status transitions; dwell times are measured against it, never against
// UpdatedAt, which any write to the row refreshes.
type Shipment struct {
	shared.BaseAggregateRoot
	OutboundID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"outbound_id"`
	StoreID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	StoreOrderID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_order_id"`
	ProductID        uuid.UUID      `gorm:"type:uuid;not null" json:"product_id"`
	Qty              int            `gorm:"not null" json:"qty"`
	Status           ShipmentStatus `gorm:"type:varchar(20);not null;default:'WAITING';index" json:"status"`
	StatusChangedAt  time.Time      `gorm:"not null" json:"status_changed_at"`
	InTransitApplied bool           `gorm:"not null;default:false" json:"in_transit_applied"`
	InventoryApplied bool           `gorm:"not null;default:false" json:"inventory_applied"`
}

func (Shipment) TableName() string {
	return "shipments"
}

func NewShipment(outboundID, storeID, storeOrderID, productID uuid.UUID, qty int) (*Shipment, error) {
	if outboundID == uuid.Nil || storeID == uuid.Nil || storeOrderID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	if qty <= 0 {
		return nil, shared.ErrInvalidInput
	}
	now := time.Now()
	return &Shipment{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		OutboundID:      outboundID,
		StoreID:         storeID,
		StoreOrderID:    storeOrderID,
		ProductID:       productID,
		Qty:             qty,
		Status:          StatusWaiting,
		StatusChangedAt: now,
	}, nil
}

// TransitionTo advances the status, emitting the transition event.
func (s *Shipment) TransitionTo(target ShipmentStatus) error {
	if !target.IsValid() {
		return shared.ErrInvalidInput
	}
	if !s.Status.CanTransitionTo(target) {
		return shared.ErrInvalidState
	}
	now := time.Now()
	s.Status = target
	s.StatusChangedAt = now
	s.UpdatedAt = now
	s.IncrementVersion()

	switch target {
	case StatusInTransit:
		s.AddDomainEvent(NewShipmentInTransitEvent(s.ID, s.StoreID, s.ProductID, s.Qty))
	case StatusDelivered:
		s.AddDomainEvent(NewShipmentDeliveredEvent(s.ID, s.StoreID, s.ProductID, s.Qty))
	}
	return nil
}

// MarkInTransitApplied records that the in-transit inventory increment has
// been committed. The flag only ever moves false to true.
func (s *Shipment) MarkInTransitApplied() error {
	if s.InTransitApplied {
		return shared.ErrInvalidState
	}
	s.InTransitApplied = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// MarkInventoryApplied records that the delivered-stock move has been
// committed. The flag only ever moves false to true.
func (s *Shipment) MarkInventoryApplied() error {
	if s.InventoryApplied {
		return shared.ErrInvalidState
	}
	s.InventoryApplied = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
