package inventory

import (
	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInventoryRecord = "InventoryRecord"

// Event type constants
const (
	EventTypeStockBelowSafety = "StockBelowSafety"
)

// StockBelowSafetyEvent is raised when a decrease leaves on-hand stock at or
// below the safety threshold. Consumers treat it as a replenishment hint; the
// daily auto-purchase run is the authoritative trigger.
type StockBelowSafetyEvent struct {
	shared.BaseDomainEvent
	RecordID   uuid.UUID `json:"record_id"`
	LocationID uuid.UUID `json:"location_id"`
	ProductID  uuid.UUID `json:"product_id"`
	OnHandQty  int       `json:"on_hand_qty"`
	SafetyQty  int       `json:"safety_qty"`
}

// NewStockBelowSafetyEvent creates a new StockBelowSafetyEvent
func NewStockBelowSafetyEvent(r *InventoryRecord) *StockBelowSafetyEvent {
	return &StockBelowSafetyEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowSafety, AggregateTypeInventoryRecord, r.ID),
		RecordID:        r.ID,
		LocationID:      r.LocationID,
		ProductID:       r.ProductID,
		OnHandQty:       r.OnHandQty,
		SafetyQty:       r.SafetyQty,
	}
}

// EventType returns the event type name
func (e *StockBelowSafetyEvent) EventType() string {
	return EventTypeStockBelowSafety
}
