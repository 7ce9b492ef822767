package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/shared"
)

const (
	AggregateTypeStoreOrder = "StoreOrder"

	EventTypeStoreOrderConfirmed = "storeorder.confirmed"
)

// StoreOrderConfirmedEvent requests a receivable settlement for the order.
type StoreOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	StoreOrderID uuid.UUID       `json:"store_order_id"`
	StoreID      uuid.UUID       `json:"store_id"`
	TotalQty     int             `json:"total_qty"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

func NewStoreOrderConfirmedEvent(storeOrderID, storeID uuid.UUID, totalQty int, totalAmount decimal.Decimal) *StoreOrderConfirmedEvent {
	return &StoreOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreOrderConfirmed, AggregateTypeStoreOrder, storeOrderID),
		StoreOrderID:    storeOrderID,
		StoreID:         storeID,
		TotalQty:        totalQty,
		TotalAmount:     totalAmount,
	}
}

func (e *StoreOrderConfirmedEvent) EventType() string {
	return EventTypeStoreOrderConfirmed
}
