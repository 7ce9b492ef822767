package inbound

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
)

// InboundReceipt records goods received into a warehouse from a confirmed
// purchase order. Receipts are append-only; at most one exists per purchase
// order, enforced by the database index.
type InboundReceipt struct {
	shared.BaseEntity
	WarehouseID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	SupplierID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"supplier_id"`
	PurchaseOrderID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"purchase_order_id"`
	ReceiptNo       string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"receipt_no"`
	ReceivedAt      time.Time     `gorm:"not null" json:"received_at"`
	Lines           []InboundLine `gorm:"foreignKey:InboundReceiptID" json:"lines,omitempty"`
}

func (InboundReceipt) TableName() string {
	return "inbound_receipts"
}

// InboundLine is one received product quantity on a receipt.
type InboundLine struct {
	shared.BaseEntity
	InboundReceiptID uuid.UUID `gorm:"type:uuid;not null;index" json:"inbound_receipt_id"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ReceivedQty      int       `gorm:"not null" json:"received_qty"`
}

func (InboundLine) TableName() string {
	return "inbound_lines"
}

// GenerateReceiptNo builds a receipt number from the date plus four random
// digits. Uniqueness is enforced by the database index, not here.
func GenerateReceiptNo(now time.Time) string {
	return fmt.Sprintf("IN%s%04d", now.Format("20060102"), 1000+rand.Intn(9000))
}

// NewReceiptFromPurchase builds the receipt reflecting a confirmed purchase
// order into the given warehouse, one line per purchase detail.
func NewReceiptFromPurchase(po *purchase.PurchaseOrder, warehouseID uuid.UUID, now time.Time) (*InboundReceipt, error) {
	if po == nil || warehouseID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	if len(po.Details) == 0 {
		return nil, shared.ErrInvalidInput
	}

	receipt := &InboundReceipt{
		BaseEntity: shared.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		WarehouseID:     warehouseID,
		SupplierID:      po.SupplierID,
		PurchaseOrderID: po.ID,
		ReceiptNo:       GenerateReceiptNo(now),
		ReceivedAt:      now,
	}
	for _, detail := range po.Details {
		receipt.Lines = append(receipt.Lines, InboundLine{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			InboundReceiptID: receipt.ID,
			ProductID:        detail.ProductID,
			ReceivedQty:      detail.Qty,
		})
	}
	return receipt, nil
}

// TotalReceivedQty sums the received quantities across all lines.
func (r *InboundReceipt) TotalReceivedQty() int {
	total := 0
	for _, line := range r.Lines {
		total += line.ReceivedQty
	}
	return total
}
