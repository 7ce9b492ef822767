package purchase

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/shared"
)

// OrderType records how a purchase order came to exist.
type OrderType string

const (
	TypeManual OrderType = "MANUAL"
	TypeAuto   OrderType = "AUTO"
	TypeSmart  OrderType = "SMART"
)

func (t OrderType) IsValid() bool {
	switch t {
	case TypeManual, TypeAuto, TypeSmart:
		return true
	}
	return false
}

// OrderStatus is the lifecycle stage of a purchase order. Engine-generated
// orders start in DRAFT_AUTO and need a human submit before the supplier
// sees them.
type OrderStatus string

const (
	StatusDraftAuto OrderStatus = "DRAFT_AUTO"
	StatusSubmitted OrderStatus = "SUBMITTED"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusRejected  OrderStatus = "REJECTED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusDraftAuto, StatusSubmitted, StatusConfirmed, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case StatusDraftAuto:
		return target == StatusSubmitted || target == StatusCancelled
	case StatusSubmitted:
		return target == StatusConfirmed || target == StatusRejected || target == StatusCancelled
	default:
		return false
	}
}

// PurchaseOrder is an order the warehouse places against a supplier.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	PONumber    string           `gorm:"type:varchar(20);uniqueIndex;not null" json:"po_number"`
	SupplierID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"supplier_id"`
	OrderType   OrderType        `gorm:"type:varchar(10);not null" json:"order_type"`
	Status      OrderStatus      `gorm:"type:varchar(15);not null;index" json:"status"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	Details     []PurchaseDetail `gorm:"foreignKey:PurchaseOrderID" json:"details,omitempty"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseDetail is one product line of a purchase order.
type PurchaseDetail struct {
	shared.BaseEntity
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Qty             int             `gorm:"not null" json:"qty"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
}

func (PurchaseDetail) TableName() string {
	return "purchase_details"
}

// PurchaseDetailChange is an audit row written whenever a human edits an
// engine-proposed line quantity.
type PurchaseDetailChange struct {
	shared.BaseEntity
	PurchaseDetailID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_detail_id"`
	PurchaseOrderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	OldQty           int       `gorm:"not null" json:"old_qty"`
	NewQty           int       `gorm:"not null" json:"new_qty"`
	ChangedBy        string    `gorm:"type:varchar(100)" json:"changed_by"`
}

func (PurchaseDetailChange) TableName() string {
	return "purchase_detail_changes"
}

// GeneratePONumber builds a purchase order number from the date plus four
// random digits. Uniqueness is enforced by the database index, not here.
func GeneratePONumber(now time.Time) string {
	return fmt.Sprintf("PO%s%04d", now.Format("20060102"), 1000+rand.Intn(9000))
}

type PurchaseLine struct {
	ProductID uuid.UUID
	Qty       int
	UnitPrice decimal.Decimal
}

func NewPurchaseOrder(supplierID uuid.UUID, orderType OrderType, lines []PurchaseLine) (*PurchaseOrder, error) {
	if supplierID == uuid.Nil || len(lines) == 0 {
		return nil, shared.ErrInvalidInput
	}
	if !orderType.IsValid() {
		return nil, shared.ErrInvalidInput
	}
	now := time.Now()
	status := StatusSubmitted
	if orderType == TypeAuto {
		status = StatusDraftAuto
	}
	po := &PurchaseOrder{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		PONumber:    GeneratePONumber(now),
		SupplierID:  supplierID,
		OrderType:   orderType,
		Status:      status,
		TotalAmount: decimal.Zero,
	}
	for _, line := range lines {
		if line.ProductID == uuid.Nil || line.Qty <= 0 || line.UnitPrice.IsNegative() {
			return nil, shared.ErrInvalidInput
		}
		po.Details = append(po.Details, PurchaseDetail{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			PurchaseOrderID: po.ID,
			ProductID:       line.ProductID,
			Qty:             line.Qty,
			UnitPrice:       line.UnitPrice,
		})
		po.TotalAmount = po.TotalAmount.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	return po, nil
}

// LineEdit is a user override of an engine-proposed quantity.
type LineEdit struct {
	DetailID uuid.UUID
	NewQty   int
}

// Submit applies final quantities to a DRAFT_AUTO order and moves it to
// SUBMITTED. Each edited line yields an audit row; untouched lines keep the
// engine's quantity.
func (po *PurchaseOrder) Submit(edits []LineEdit, changedBy string) ([]PurchaseDetailChange, error) {
	if po.Status != StatusDraftAuto {
		return nil, shared.ErrInvalidState
	}
	now := time.Now()
	var changes []PurchaseDetailChange
	for _, edit := range edits {
		if edit.NewQty <= 0 {
			return nil, shared.ErrInvalidInput
		}
		idx := -1
		for i := range po.Details {
			if po.Details[i].ID == edit.DetailID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, shared.ErrNotFound
		}
		detail := &po.Details[idx]
		if detail.Qty == edit.NewQty {
			continue
		}
		changes = append(changes, PurchaseDetailChange{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			PurchaseDetailID: detail.ID,
			PurchaseOrderID:  po.ID,
			OldQty:           detail.Qty,
			NewQty:           edit.NewQty,
			ChangedBy:        changedBy,
		})
		detail.Qty = edit.NewQty
		detail.UpdatedAt = now
	}
	po.recomputeTotal()
	po.Status = StatusSubmitted
	po.UpdatedAt = now
	po.IncrementVersion()
	return changes, nil
}

// Confirm marks supplier acceptance and emits the event that books the
// payable side of the settlement ledger.
func (po *PurchaseOrder) Confirm() error {
	if !po.Status.CanTransitionTo(StatusConfirmed) {
		return shared.ErrInvalidState
	}
	po.Status = StatusConfirmed
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
	po.AddDomainEvent(NewOrderConfirmedEvent(po.ID, po.SupplierID, po.TotalQty(), po.TotalAmount))
	return nil
}

func (po *PurchaseOrder) Reject() error {
	if !po.Status.CanTransitionTo(StatusRejected) {
		return shared.ErrInvalidState
	}
	po.Status = StatusRejected
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
	return nil
}

func (po *PurchaseOrder) Cancel() error {
	if !po.Status.CanTransitionTo(StatusCancelled) {
		return shared.ErrInvalidState
	}
	po.Status = StatusCancelled
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
	return nil
}

func (po *PurchaseOrder) TotalQty() int {
	total := 0
	for _, d := range po.Details {
		total += d.Qty
	}
	return total
}

func (po *PurchaseOrder) recomputeTotal() {
	total := decimal.Zero
	for _, d := range po.Details {
		total = total.Add(d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Qty))))
	}
	po.TotalAmount = total
}
