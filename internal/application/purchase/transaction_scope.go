package purchase

import (
	"context"

	"github.com/supplychain/backend/internal/domain/inbound"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/purchase"
)

// TransactionScope runs a function whose repository operations commit or
// roll back atomically. Confirmation uses it so the order status, the
// inbound receipt and the warehouse stock increases land together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories participating in one
// confirmation transaction, all bound to the same database transaction.
type TransactionalRepositories interface {
	PurchaseRepo() purchase.PurchaseOrderRepository
	InboundRepo() inbound.InboundReceiptRepository
	InventoryRepo() inventory.InventoryRecordRepository
}

// NoOpTransactionScope runs the function without a real transaction. Used in
// tests.
type NoOpTransactionScope struct {
	purchaseRepo  purchase.PurchaseOrderRepository
	inboundRepo   inbound.InboundReceiptRepository
	inventoryRepo inventory.InventoryRecordRepository
}

func NewNoOpTransactionScope(
	purchaseRepo purchase.PurchaseOrderRepository,
	inboundRepo inbound.InboundReceiptRepository,
	inventoryRepo inventory.InventoryRecordRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		purchaseRepo:  purchaseRepo,
		inboundRepo:   inboundRepo,
		inventoryRepo: inventoryRepo,
	}
}

func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) PurchaseRepo() purchase.PurchaseOrderRepository {
	return s.purchaseRepo
}

func (s *NoOpTransactionScope) InboundRepo() inbound.InboundReceiptRepository {
	return s.inboundRepo
}

func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryRecordRepository {
	return s.inventoryRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
