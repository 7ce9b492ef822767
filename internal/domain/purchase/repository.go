package purchase

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]PurchaseOrder, error)
	FindByType(ctx context.Context, orderType OrderType, filter shared.Filter) ([]PurchaseOrder, error)
	Save(ctx context.Context, po *PurchaseOrder) error
	SaveWithChanges(ctx context.Context, po *PurchaseOrder, changes []PurchaseDetailChange) error

	// OpenQuantityByProduct sums line quantities of SUBMITTED and CONFIRMED
	// orders, keyed by product. Inbound stock already on order counts
	// against new recommendations.
	OpenQuantityByProduct(ctx context.Context) (map[uuid.UUID]int, error)
}
