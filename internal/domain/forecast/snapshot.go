package forecast

import (
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// DemandForecastSnapshot is one model prediction for a product and target
// week, captured at snapshot time. ActualOrderQty is backfilled once the
// week closes, which is what the accuracy report compares against.
type DemandForecastSnapshot struct {
	shared.BaseEntity
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index:idx_forecast_product_week" json:"product_id"`
	TargetWeek     time.Time `gorm:"type:date;not null;index:idx_forecast_product_week" json:"target_week"`
	YPred          float64   `gorm:"not null" json:"y_pred"`
	ActualOrderQty *int      `json:"actual_order_qty,omitempty"`
	SnapshotAt     time.Time `gorm:"not null" json:"snapshot_at"`
}

func (DemandForecastSnapshot) TableName() string {
	return "demand_forecast_snapshots"
}

func NewDemandForecastSnapshot(productID uuid.UUID, targetWeek time.Time, yPred float64, snapshotAt time.Time) (*DemandForecastSnapshot, error) {
	if productID == uuid.Nil || yPred < 0 {
		return nil, shared.ErrInvalidInput
	}
	now := time.Now()
	return &DemandForecastSnapshot{
		BaseEntity: shared.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProductID:  productID,
		TargetWeek: targetWeek,
		YPred:      yPred,
		SnapshotAt: snapshotAt,
	}, nil
}

// NextMonday returns the Monday of the week after the given time, the target
// week smart orders are generated for.
func NextMonday(now time.Time) time.Time {
	day := now.Weekday()
	offset := (int(time.Monday) - int(day) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	next := now.AddDate(0, 0, offset)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, now.Location())
}
