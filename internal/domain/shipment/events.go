package shipment

import (
	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

const (
	AggregateTypeShipment = "Shipment"

	EventTypeShipmentInTransit = "shipment.in_transit"
	EventTypeShipmentDelivered = "shipment.delivered"
)

// ShipmentInTransitEvent is emitted when a shipment leaves the warehouse.
type ShipmentInTransitEvent struct {
	shared.BaseDomainEvent
	ShipmentID uuid.UUID `json:"shipment_id"`
	StoreID    uuid.UUID `json:"store_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Qty        int       `json:"qty"`
}

func NewShipmentInTransitEvent(shipmentID, storeID, productID uuid.UUID, qty int) *ShipmentInTransitEvent {
	return &ShipmentInTransitEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentInTransit, AggregateTypeShipment, shipmentID),
		ShipmentID:      shipmentID,
		StoreID:         storeID,
		ProductID:       productID,
		Qty:             qty,
	}
}

func (e *ShipmentInTransitEvent) EventType() string {
	return EventTypeShipmentInTransit
}

// ShipmentDeliveredEvent is emitted when a shipment arrives at the store.
type ShipmentDeliveredEvent struct {
	shared.BaseDomainEvent
	ShipmentID uuid.UUID `json:"shipment_id"`
	StoreID    uuid.UUID `json:"store_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Qty        int       `json:"qty"`
}

func NewShipmentDeliveredEvent(shipmentID, storeID, productID uuid.UUID, qty int) *ShipmentDeliveredEvent {
	return &ShipmentDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentDelivered, AggregateTypeShipment, shipmentID),
		ShipmentID:      shipmentID,
		StoreID:         storeID,
		ProductID:       productID,
		Qty:             qty,
	}
}

func (e *ShipmentDeliveredEvent) EventType() string {
	return EventTypeShipmentDelivered
}
