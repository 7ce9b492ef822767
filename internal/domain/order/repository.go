package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// DailyQuantity is one day of fulfilled order volume for a product,
// aggregated across stores. Days with no orders produce no row.
type DailyQuantity struct {
	Day time.Time
	Qty int
}

type StoreOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StoreOrder, error)
	FindByStoreID(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]StoreOrder, error)
	Save(ctx context.Context, o *StoreOrder) error

	// UpdateStatusByIDs projects a shipment stage onto the given orders in
	// one statement. Already-matching rows are left untouched.
	UpdateStatusByIDs(ctx context.Context, ids []uuid.UUID, status StoreOrderStatus) (int64, error)

	// DailyQuantities aggregates fulfilled order-detail quantities per day
	// for a product since the given date, ordered by day ascending.
	DailyQuantities(ctx context.Context, productID uuid.UUID, since time.Time) ([]DailyQuantity, error)
}
