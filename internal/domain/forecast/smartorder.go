package forecast

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
)

// SmartOrder is a forecast-driven purchase proposal for one supplier and one
// target week. At most one exists per (supplier, targetWeek); the generator
// treats an existing pair as already done.
type SmartOrder struct {
	shared.BaseAggregateRoot
	SupplierID  uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_smart_supplier_week" json:"supplier_id"`
	TargetWeek  time.Time            `gorm:"type:date;not null;uniqueIndex:idx_smart_supplier_week" json:"target_week"`
	Status      purchase.OrderStatus `gorm:"type:varchar(15);not null;index" json:"status"`
	TotalAmount decimal.Decimal      `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	Details     []SmartOrderDetail   `gorm:"foreignKey:SmartOrderID" json:"details,omitempty"`
}

func (SmartOrder) TableName() string {
	return "smart_orders"
}

// SmartOrderDetail keeps the raw forecast next to the engine recommendation
// and the human-final quantity, so edits stay visible after submission.
type SmartOrderDetail struct {
	shared.BaseEntity
	SmartOrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"smart_order_id"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ForecastQty    int             `gorm:"not null" json:"forecast_qty"`
	RecommendedQty int             `gorm:"not null" json:"recommended_qty"`
	FinalQty       int             `gorm:"not null" json:"final_qty"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
}

func (SmartOrderDetail) TableName() string {
	return "smart_order_details"
}

// ManualEdited reports whether a human overrode the recommendation.
func (d SmartOrderDetail) ManualEdited() bool {
	return d.FinalQty != d.RecommendedQty
}

type SmartLine struct {
	ProductID      uuid.UUID
	ForecastQty    int
	RecommendedQty int
	UnitPrice      decimal.Decimal
}

func NewSmartOrder(supplierID uuid.UUID, targetWeek time.Time, lines []SmartLine) (*SmartOrder, error) {
	if supplierID == uuid.Nil || len(lines) == 0 {
		return nil, shared.ErrInvalidInput
	}
	now := time.Now()
	so := &SmartOrder{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		SupplierID:  supplierID,
		TargetWeek:  targetWeek,
		Status:      purchase.StatusDraftAuto,
		TotalAmount: decimal.Zero,
	}
	for _, line := range lines {
		if line.ProductID == uuid.Nil || line.RecommendedQty < 0 || line.UnitPrice.IsNegative() {
			return nil, shared.ErrInvalidInput
		}
		so.Details = append(so.Details, SmartOrderDetail{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			SmartOrderID:   so.ID,
			ProductID:      line.ProductID,
			ForecastQty:    line.ForecastQty,
			RecommendedQty: line.RecommendedQty,
			FinalQty:       line.RecommendedQty,
			UnitPrice:      line.UnitPrice,
		})
		so.TotalAmount = so.TotalAmount.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.RecommendedQty))))
	}
	return so, nil
}

// UpdateRecommendedQty replaces the engine recommendation on a draft line.
func (so *SmartOrder) UpdateRecommendedQty(detailID uuid.UUID, qty int) error {
	if so.Status != purchase.StatusDraftAuto {
		return shared.ErrInvalidState
	}
	if qty < 0 {
		return shared.ErrInvalidInput
	}
	for i := range so.Details {
		if so.Details[i].ID == detailID {
			so.Details[i].RecommendedQty = qty
			so.Details[i].FinalQty = qty
			so.Details[i].UpdatedAt = time.Now()
			so.recomputeTotal()
			so.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// FinalEdit is a user-finalized quantity for one line.
type FinalEdit struct {
	DetailID uuid.UUID
	FinalQty int
}

// Submit applies final quantities and moves the draft to SUBMITTED.
func (so *SmartOrder) Submit(edits []FinalEdit) error {
	if so.Status != purchase.StatusDraftAuto {
		return shared.ErrInvalidState
	}
	now := time.Now()
	for _, edit := range edits {
		if edit.FinalQty < 0 {
			return shared.ErrInvalidInput
		}
		idx := -1
		for i := range so.Details {
			if so.Details[i].ID == edit.DetailID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return shared.ErrNotFound
		}
		so.Details[idx].FinalQty = edit.FinalQty
		so.Details[idx].UpdatedAt = now
	}
	so.recomputeTotal()
	so.Status = purchase.StatusSubmitted
	so.touch()
	return nil
}

func (so *SmartOrder) Cancel() error {
	if so.Status != purchase.StatusDraftAuto {
		return shared.ErrInvalidState
	}
	so.Status = purchase.StatusCancelled
	so.touch()
	return nil
}

func (so *SmartOrder) recomputeTotal() {
	total := decimal.Zero
	for _, d := range so.Details {
		total = total.Add(d.UnitPrice.Mul(decimal.NewFromInt(int64(d.FinalQty))))
	}
	so.TotalAmount = total
}

func (so *SmartOrder) touch() {
	so.UpdatedAt = time.Now()
	so.IncrementVersion()
}
