package order

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/shared"
)

// StoreOrderStatus tracks a store order from creation through delivery.
// The shipping stages mirror the shipments fulfilling the order.
type StoreOrderStatus string

const (
	StatusCreated   StoreOrderStatus = "CREATED"
	StatusConfirmed StoreOrderStatus = "CONFIRMED"
	StatusInTransit StoreOrderStatus = "IN_TRANSIT"
	StatusDelivered StoreOrderStatus = "DELIVERED"
	StatusCancelled StoreOrderStatus = "CANCELLED"
)

func (s StoreOrderStatus) IsValid() bool {
	switch s {
	case StatusCreated, StatusConfirmed, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// StoreOrder is an order a franchise store places against the warehouse.
type StoreOrder struct {
	shared.BaseAggregateRoot
	StoreID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"store_id"`
	OrderNo     string             `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_no"`
	Status      StoreOrderStatus   `gorm:"type:varchar(20);not null;default:'CREATED';index" json:"status"`
	TotalAmount decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Details     []StoreOrderDetail `gorm:"foreignKey:StoreOrderID" json:"details,omitempty"`
}

func (StoreOrder) TableName() string {
	return "store_orders"
}

// StoreOrderDetail is one product line of a store order.
type StoreOrderDetail struct {
	shared.BaseEntity
	StoreOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_order_id"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Qty          int             `gorm:"not null" json:"qty"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
}

func (StoreOrderDetail) TableName() string {
	return "store_order_details"
}

// GenerateOrderNo builds a store order number from the date plus four
// random digits. Uniqueness is enforced by the database index, not here.
func GenerateOrderNo(now time.Time) string {
	return fmt.Sprintf("SO%s%04d", now.Format("20060102"), 1000+rand.Intn(9000))
}

type OrderLine struct {
	ProductID uuid.UUID
	Qty       int
	UnitPrice decimal.Decimal
}

func NewStoreOrder(storeID uuid.UUID, orderNo string, lines []OrderLine) (*StoreOrder, error) {
	if storeID == uuid.Nil || orderNo == "" || len(lines) == 0 {
		return nil, shared.ErrInvalidInput
	}
	now := time.Now()
	o := &StoreOrder{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		StoreID:     storeID,
		OrderNo:     orderNo,
		Status:      StatusCreated,
		TotalAmount: decimal.Zero,
	}
	for _, line := range lines {
		if line.ProductID == uuid.Nil || line.Qty <= 0 || line.UnitPrice.IsNegative() {
			return nil, shared.ErrInvalidInput
		}
		o.Details = append(o.Details, StoreOrderDetail{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			StoreOrderID: o.ID,
			ProductID:    line.ProductID,
			Qty:          line.Qty,
			UnitPrice:    line.UnitPrice,
		})
		o.TotalAmount = o.TotalAmount.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	return o, nil
}

// Confirm accepts the order for fulfillment and emits the event that books
// the receivable side of the settlement ledger.
func (o *StoreOrder) Confirm() error {
	if o.Status != StatusCreated {
		return shared.ErrInvalidState
	}
	o.Status = StatusConfirmed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewStoreOrderConfirmedEvent(o.ID, o.StoreID, o.TotalQty(), o.TotalAmount))
	return nil
}

func (o *StoreOrder) Cancel() error {
	if o.Status != StatusCreated {
		return shared.ErrInvalidState
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// ReflectShipmentProgress projects a shipment stage onto the order. Setting
// the stage the order is already in is a no-op, so repeated projection from
// the same tick is harmless.
func (o *StoreOrder) ReflectShipmentProgress(status StoreOrderStatus) {
	if status != StatusInTransit && status != StatusDelivered {
		return
	}
	if o.Status == status || o.Status == StatusCancelled {
		return
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

func (o *StoreOrder) TotalQty() int {
	total := 0
	for _, d := range o.Details {
		total += d.Qty
	}
	return total
}
