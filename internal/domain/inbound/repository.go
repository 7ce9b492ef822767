package inbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

type InboundReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InboundReceipt, error)
	FindByPurchaseOrderID(ctx context.Context, purchaseOrderID uuid.UUID) (*InboundReceipt, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]InboundReceipt, error)
	// Save persists the receipt and its lines; the purchase-order unique
	// index surfaces a duplicate receipt as shared.ErrConflict.
	Save(ctx context.Context, r *InboundReceipt) error
}
