package inbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/inbound"
	"github.com/supplychain/backend/internal/domain/shared"
)

// QueryService serves read access to the inbound receiving history.
type QueryService struct {
	inboundRepo inbound.InboundReceiptRepository
}

func NewQueryService(inboundRepo inbound.InboundReceiptRepository) *QueryService {
	return &QueryService{inboundRepo: inboundRepo}
}

// Get returns one receipt with its lines.
func (s *QueryService) Get(ctx context.Context, id uuid.UUID) (*inbound.InboundReceipt, error) {
	return s.inboundRepo.FindByID(ctx, id)
}

// GetByPurchaseOrder returns the receipt booked for a purchase order.
func (s *QueryService) GetByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) (*inbound.InboundReceipt, error) {
	return s.inboundRepo.FindByPurchaseOrderID(ctx, purchaseOrderID)
}

// List returns receipts, newest first by default.
func (s *QueryService) List(ctx context.Context, filter shared.Filter) ([]inbound.InboundReceipt, error) {
	return s.inboundRepo.FindAll(ctx, filter)
}
