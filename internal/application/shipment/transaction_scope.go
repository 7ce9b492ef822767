package shipment

import (
	"context"

	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/shipment"
)

// TransactionScope runs a function whose repository operations commit or
// roll back atomically. The tick uses it so an applied flag never commits
// without its inventory mutation.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories participating in one
// tick transaction, all bound to the same underlying database transaction.
type TransactionalRepositories interface {
	ShipmentRepo() shipment.ShipmentRepository
	InventoryRepo() inventory.InventoryRecordRepository
}

// NoOpTransactionScope runs the function without a real transaction. Used in
// tests.
type NoOpTransactionScope struct {
	shipmentRepo  shipment.ShipmentRepository
	inventoryRepo inventory.InventoryRecordRepository
}

func NewNoOpTransactionScope(
	shipmentRepo shipment.ShipmentRepository,
	inventoryRepo inventory.InventoryRecordRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		shipmentRepo:  shipmentRepo,
		inventoryRepo: inventoryRepo,
	}
}

func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ShipmentRepo() shipment.ShipmentRepository {
	return s.shipmentRepo
}

func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryRecordRepository {
	return s.inventoryRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
