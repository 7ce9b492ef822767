package smartorder

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/forecast"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
)

// QueryService serves the read side of the smart-order review flow: listing
// drafts, inspecting lines and the forecast accuracy report.
type QueryService struct {
	smartRepo    forecast.SmartOrderRepository
	snapshotRepo forecast.SnapshotRepository
}

func NewQueryService(
	smartRepo forecast.SmartOrderRepository,
	snapshotRepo forecast.SnapshotRepository,
) *QueryService {
	return &QueryService{
		smartRepo:    smartRepo,
		snapshotRepo: snapshotRepo,
	}
}

func (s *QueryService) Get(ctx context.Context, smartOrderID uuid.UUID) (*forecast.SmartOrder, error) {
	return s.smartRepo.FindByID(ctx, smartOrderID)
}

// List returns smart orders, optionally restricted to one status.
func (s *QueryService) List(ctx context.Context, status purchase.OrderStatus, filter shared.Filter) ([]forecast.SmartOrder, error) {
	if status == "" {
		return s.smartRepo.FindAll(ctx, filter)
	}
	return s.smartRepo.FindByStatus(ctx, status, filter)
}

// AccuracyRow compares one closed-week prediction against the realized
// order volume.
type AccuracyRow struct {
	ProductID   uuid.UUID `json:"product_id"`
	TargetWeek  time.Time `json:"target_week"`
	ForecastQty float64   `json:"forecast_qty"`
	ActualQty   int       `json:"actual_qty"`
	AbsError    float64   `json:"abs_error"`
	ErrorPct    *float64  `json:"error_pct,omitempty"`
}

// Accuracy returns the forecast-vs-actual report for weeks whose actuals
// have been backfilled, newest weeks first. ErrorPct is omitted for weeks
// with zero actual volume.
func (s *QueryService) Accuracy(ctx context.Context, filter shared.Filter) ([]AccuracyRow, error) {
	snapshots, err := s.snapshotRepo.AccuracyRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]AccuracyRow, 0, len(snapshots))
	for _, snap := range snapshots {
		if snap.ActualOrderQty == nil {
			continue
		}
		actual := *snap.ActualOrderQty
		row := AccuracyRow{
			ProductID:   snap.ProductID,
			TargetWeek:  snap.TargetWeek,
			ForecastQty: snap.YPred,
			ActualQty:   actual,
			AbsError:    math.Abs(snap.YPred - float64(actual)),
		}
		if actual > 0 {
			pct := row.AbsError / float64(actual) * 100
			row.ErrorPct = &pct
		}
		rows = append(rows, row)
	}
	return rows, nil
}
