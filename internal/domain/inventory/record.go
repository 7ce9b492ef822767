package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// LocationType identifies which kind of ledger a record belongs to
type LocationType string

const (
	LocationTypeWarehouse LocationType = "WAREHOUSE"
	LocationTypeStore     LocationType = "STORE"
)

// IsValid checks if the location type is known
func (t LocationType) IsValid() bool {
	return t == LocationTypeWarehouse || t == LocationTypeStore
}

// InventoryRecord tracks quantities for one product at one location.
// It is the aggregate root for all inventory mutations; the composite
// identifier is LocationID + ProductID.
//
// All quantity mutators keep the invariant that quantities never go
// negative. Store-ledger decreases clamp at zero; the warehouse outbound
// path uses DeductOnHand which refuses to go below zero instead.
type InventoryRecord struct {
	shared.BaseAggregateRoot
	LocationID   uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_location_product,priority:1" json:"location_id"`
	ProductID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_location_product,priority:2" json:"product_id"`
	LocationType LocationType `gorm:"type:varchar(20);not null" json:"location_type"`
	OnHandQty    int          `gorm:"not null;default:0" json:"on_hand_qty"`
	InTransitQty int          `gorm:"not null;default:0" json:"in_transit_qty"`
	SafetyQty    int          `gorm:"not null;default:0" json:"safety_qty"`
}

// TableName returns the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// NewInventoryRecord creates an empty inventory record for a location-product pair
func NewInventoryRecord(locationID, productID uuid.UUID, locationType LocationType) (*InventoryRecord, error) {
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !locationType.IsValid() {
		return nil, shared.NewDomainError("INVALID_LOCATION_TYPE", "Unknown location type")
	}

	return &InventoryRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LocationID:        locationID,
		ProductID:         productID,
		LocationType:      locationType,
	}, nil
}

// IncreaseOnHand adds delivered stock to the on-hand quantity
func (r *InventoryRecord) IncreaseOnHand(qty int) {
	if qty <= 0 {
		return
	}
	r.OnHandQty += qty
	r.touch()
}

// DecreaseOnHand removes stock from the on-hand quantity, clamping at zero
func (r *InventoryRecord) DecreaseOnHand(qty int) {
	if qty <= 0 {
		return
	}
	r.OnHandQty = max(r.OnHandQty-qty, 0)
	r.touch()
	r.checkSafetyThreshold()
}

// DeductOnHand removes stock from the on-hand quantity and fails when the
// requested quantity exceeds what is available. Used by the warehouse
// outbound path where shipping more than is on hand must abort the
// enclosing transaction.
func (r *InventoryRecord) DeductOnHand(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduct quantity must be positive")
	}
	if r.OnHandQty < qty {
		return fmt.Errorf("%w: requested %d, on hand %d", shared.ErrInsufficientStock, qty, r.OnHandQty)
	}
	r.OnHandQty -= qty
	r.touch()
	r.checkSafetyThreshold()
	return nil
}

// IncreaseInTransit records stock that is on its way to this location
func (r *InventoryRecord) IncreaseInTransit(qty int) {
	if qty <= 0 {
		return
	}
	r.InTransitQty += qty
	r.touch()
}

// DecreaseInTransit removes in-transit stock, clamping at zero
func (r *InventoryRecord) DecreaseInTransit(qty int) {
	if qty <= 0 {
		return
	}
	r.InTransitQty = max(r.InTransitQty-qty, 0)
	r.touch()
}

// MoveTransitToOnHand converts in-transit stock into on-hand stock on
// delivery. Both legs clamp at zero.
func (r *InventoryRecord) MoveTransitToOnHand(qty int) {
	if qty <= 0 {
		return
	}
	r.DecreaseInTransit(qty)
	r.IncreaseOnHand(qty)
}

// SetSafetyQty updates the safety stock threshold
func (r *InventoryRecord) SetSafetyQty(qty int) error {
	if qty < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Safety quantity cannot be negative")
	}
	r.SafetyQty = qty
	r.touch()
	return nil
}

// NeedsReplenishment returns true when on-hand stock has fallen to or
// below the safety threshold
func (r *InventoryRecord) NeedsReplenishment() bool {
	return r.OnHandQty <= r.SafetyQty
}

func (r *InventoryRecord) touch() {
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

func (r *InventoryRecord) checkSafetyThreshold() {
	if r.SafetyQty > 0 && r.OnHandQty <= r.SafetyQty {
		r.AddDomainEvent(NewStockBelowSafetyEvent(r))
	}
}
