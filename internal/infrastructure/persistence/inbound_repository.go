package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/supplychain/backend/internal/domain/inbound"
	"github.com/supplychain/backend/internal/domain/shared"
)

// GormInboundReceiptRepository implements InboundReceiptRepository using GORM
type GormInboundReceiptRepository struct {
	db *gorm.DB
}

func NewGormInboundReceiptRepository(db *gorm.DB) *GormInboundReceiptRepository {
	return &GormInboundReceiptRepository{db: db}
}

func (r *GormInboundReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*inbound.InboundReceipt, error) {
	var receipt inbound.InboundReceipt
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

func (r *GormInboundReceiptRepository) FindByPurchaseOrderID(ctx context.Context, purchaseOrderID uuid.UUID) (*inbound.InboundReceipt, error) {
	var receipt inbound.InboundReceipt
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&receipt, "purchase_order_id = ?", purchaseOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

func (r *GormInboundReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inbound.InboundReceipt, error) {
	var receipts []inbound.InboundReceipt
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inbound.InboundReceipt{}).Preload("Lines"),
		filter,
	)
	if err := query.Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// Save persists the receipt and its lines; a second receipt for the same
// purchase order surfaces as shared.ErrConflict.
func (r *GormInboundReceiptRepository) Save(ctx context.Context, receipt *inbound.InboundReceipt) error {
	err := r.db.WithContext(ctx).Save(receipt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConflict
	}
	return err
}

var _ inbound.InboundReceiptRepository = (*GormInboundReceiptRepository)(nil)
