package persistence

import (
	"context"

	"gorm.io/gorm"

	apppurchase "github.com/supplychain/backend/internal/application/purchase"
	"github.com/supplychain/backend/internal/domain/inbound"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/purchase"
)

// GormPurchaseTransactionScope implements the purchase TransactionScope
// using GORM transactions, so a confirmation never commits the status change
// without its inbound receipt and stock increases.
type GormPurchaseTransactionScope struct {
	db *gorm.DB
}

func NewGormPurchaseTransactionScope(db *gorm.DB) *GormPurchaseTransactionScope {
	return &GormPurchaseTransactionScope{db: db}
}

func (s *GormPurchaseTransactionScope) Execute(ctx context.Context, fn func(repos apppurchase.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormPurchaseTxRepositories{tx: tx})
	})
}

type gormPurchaseTxRepositories struct {
	tx *gorm.DB
}

func (r *gormPurchaseTxRepositories) PurchaseRepo() purchase.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *gormPurchaseTxRepositories) InboundRepo() inbound.InboundReceiptRepository {
	return NewGormInboundReceiptRepository(r.tx)
}

func (r *gormPurchaseTxRepositories) InventoryRepo() inventory.InventoryRecordRepository {
	return NewGormInventoryRecordRepository(r.tx)
}

var _ apppurchase.TransactionScope = (*GormPurchaseTransactionScope)(nil)
var _ apppurchase.TransactionalRepositories = (*gormPurchaseTxRepositories)(nil)
