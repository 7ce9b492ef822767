package inventory

import (
	"context"

	"github.com/google/uuid"
)

// InventoryRecordRepository provides access to inventory records.
//
// GetOrCreate must be safe under concurrent callers: two jobs observing a
// missing record may both attempt creation, and exactly one row must win.
type InventoryRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryRecord, error)
	FindByLocationAndProduct(ctx context.Context, locationID, productID uuid.UUID) (*InventoryRecord, error)
	FindByLocationType(ctx context.Context, locationType LocationType) ([]InventoryRecord, error)
	FindByLocation(ctx context.Context, locationID uuid.UUID) ([]InventoryRecord, error)
	GetOrCreate(ctx context.Context, locationID, productID uuid.UUID, locationType LocationType) (*InventoryRecord, error)
	Save(ctx context.Context, record *InventoryRecord) error
}
