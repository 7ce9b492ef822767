package forecast

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
)

type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *DemandForecastSnapshot) error
	// LatestForWeek returns the most recent snapshot per product for the
	// target week.
	LatestForWeek(ctx context.Context, targetWeek time.Time) ([]DemandForecastSnapshot, error)
	// BackfillActual records the realized order quantity on every snapshot
	// of the (product, week) pair.
	BackfillActual(ctx context.Context, productID uuid.UUID, targetWeek time.Time, actualQty int) error
	// AccuracyRows returns snapshots that already have an actual quantity,
	// newest weeks first.
	AccuracyRows(ctx context.Context, filter shared.Filter) ([]DemandForecastSnapshot, error)
}

type SmartOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SmartOrder, error)
	// FindBySupplierAndWeek returns shared.ErrNotFound when no smart order
	// exists for the pair.
	FindBySupplierAndWeek(ctx context.Context, supplierID uuid.UUID, targetWeek time.Time) (*SmartOrder, error)
	FindByStatus(ctx context.Context, status purchase.OrderStatus, filter shared.Filter) ([]SmartOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SmartOrder, error)
	// Save persists the order and its lines. The (supplier, week) unique
	// index makes a concurrent duplicate surface as shared.ErrConflict.
	Save(ctx context.Context, so *SmartOrder) error
}
