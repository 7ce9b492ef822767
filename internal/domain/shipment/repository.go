package shipment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

// ShipmentRepository persists shipments.
//
// The Advance* methods are set-based conditional updates: they move every row
// matching (status, cutoff) in one statement and return the affected row count.
// The Claim* methods flip an applied flag only when it is still false; a zero
// return means another worker already claimed the row and the caller must not
// apply the side effect again.
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByStatus(ctx context.Context, status ShipmentStatus, filter shared.Filter) ([]Shipment, error)
	FindByStoreOrderID(ctx context.Context, storeOrderID uuid.UUID) ([]Shipment, error)
	Save(ctx context.Context, s *Shipment) error

	// AdvanceWaitingToInTransit moves WAITING rows created at or before the
	// cutoff to IN_TRANSIT.
	AdvanceWaitingToInTransit(ctx context.Context, cutoff time.Time) (int64, error)
	// AdvanceInTransitToDelivered moves IN_TRANSIT rows last updated at or
	// before the cutoff to DELIVERED. Only rows whose in-transit increment has
	// already been applied are eligible, so a shipment never arrives before
	// its stock was counted as inbound.
	AdvanceInTransitToDelivered(ctx context.Context, cutoff time.Time) (int64, error)

	FindInTransitUnapplied(ctx context.Context, limit int) ([]Shipment, error)
	FindDeliveredUnapplied(ctx context.Context, limit int) ([]Shipment, error)

	ClaimInTransitApplied(ctx context.Context, id uuid.UUID) (bool, error)
	ClaimInventoryApplied(ctx context.Context, id uuid.UUID) (bool, error)
}
