package persistence

import (
	"context"

	"gorm.io/gorm"

	appshipment "github.com/supplychain/backend/internal/application/shipment"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/shipment"
)

// GormTransactionScope implements the shipment TransactionScope using GORM
// transactions, so claiming an applied flag and mutating inventory commit or
// roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appshipment.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) ShipmentRepo() shipment.ShipmentRepository {
	return NewGormShipmentRepository(r.tx)
}

func (r *gormTransactionalRepositories) InventoryRepo() inventory.InventoryRecordRepository {
	return NewGormInventoryRecordRepository(r.tx)
}

var _ appshipment.TransactionScope = (*GormTransactionScope)(nil)
var _ appshipment.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
