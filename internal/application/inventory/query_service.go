package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/inventory"
)

// QueryService serves inventory ledger reads for stores and the warehouse.
type QueryService struct {
	inventoryRepo inventory.InventoryRecordRepository
}

func NewQueryService(inventoryRepo inventory.InventoryRecordRepository) *QueryService {
	return &QueryService{inventoryRepo: inventoryRepo}
}

// ListByLocation returns every product record held at one location.
func (s *QueryService) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]inventory.InventoryRecord, error) {
	return s.inventoryRepo.FindByLocation(ctx, locationID)
}

// ListByLocationType returns all records across stores or across warehouses.
func (s *QueryService) ListByLocationType(ctx context.Context, locationType inventory.LocationType) ([]inventory.InventoryRecord, error) {
	return s.inventoryRepo.FindByLocationType(ctx, locationType)
}

// GetByLocationAndProduct returns a single ledger row.
func (s *QueryService) GetByLocationAndProduct(ctx context.Context, locationID, productID uuid.UUID) (*inventory.InventoryRecord, error) {
	return s.inventoryRepo.FindByLocationAndProduct(ctx, locationID, productID)
}
