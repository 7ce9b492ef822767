package purchase

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/shared"
)

const (
	AggregateTypePurchaseOrder = "PurchaseOrder"

	EventTypeOrderConfirmed = "purchase.order.confirmed"
)

// OrderConfirmedEvent requests a payable settlement for the purchase order.
type OrderConfirmedEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id"`
	SupplierID      uuid.UUID       `json:"supplier_id"`
	TotalQty        int             `json:"total_qty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

func NewOrderConfirmedEvent(purchaseOrderID, supplierID uuid.UUID, totalQty int, totalAmount decimal.Decimal) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderConfirmed, AggregateTypePurchaseOrder, purchaseOrderID),
		PurchaseOrderID: purchaseOrderID,
		SupplierID:      supplierID,
		TotalQty:        totalQty,
		TotalAmount:     totalAmount,
	}
}

func (e *OrderConfirmedEvent) EventType() string {
	return EventTypeOrderConfirmed
}
