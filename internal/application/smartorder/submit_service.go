package smartorder

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/forecast"
	"github.com/supplychain/backend/internal/domain/purchase"
	"go.uber.org/zap"
)

// SubmitService finalizes a draft smart order. On submit the finalized lines
// become a SMART purchase order so the downstream confirm and settlement
// flows treat forecast-driven purchases like any other.
type SubmitService struct {
	smartRepo    forecast.SmartOrderRepository
	purchaseRepo purchase.PurchaseOrderRepository
	logger       *zap.Logger
}

func NewSubmitService(
	smartRepo forecast.SmartOrderRepository,
	purchaseRepo purchase.PurchaseOrderRepository,
	logger *zap.Logger,
) *SubmitService {
	return &SubmitService{
		smartRepo:    smartRepo,
		purchaseRepo: purchaseRepo,
		logger:       logger,
	}
}

// UpdateRecommendedQty edits one draft line. Rejected with
// shared.ErrInvalidState once the order has left DRAFT_AUTO.
func (s *SubmitService) UpdateRecommendedQty(ctx context.Context, smartOrderID, detailID uuid.UUID, qty int) (*forecast.SmartOrder, error) {
	so, err := s.smartRepo.FindByID(ctx, smartOrderID)
	if err != nil {
		return nil, err
	}
	if err := so.UpdateRecommendedQty(detailID, qty); err != nil {
		return nil, err
	}
	if err := s.smartRepo.Save(ctx, so); err != nil {
		return nil, err
	}
	return so, nil
}

// Submit applies the user's final quantities, moves the order to SUBMITTED
// and raises the corresponding purchase order. Lines finalized at zero are
// left off the purchase order.
func (s *SubmitService) Submit(ctx context.Context, smartOrderID uuid.UUID, edits []forecast.FinalEdit) (*forecast.SmartOrder, error) {
	so, err := s.smartRepo.FindByID(ctx, smartOrderID)
	if err != nil {
		return nil, err
	}
	if err := so.Submit(edits); err != nil {
		return nil, err
	}
	if err := s.smartRepo.Save(ctx, so); err != nil {
		return nil, err
	}

	var lines []purchase.PurchaseLine
	for _, d := range so.Details {
		if d.FinalQty <= 0 {
			continue
		}
		lines = append(lines, purchase.PurchaseLine{
			ProductID: d.ProductID,
			Qty:       d.FinalQty,
			UnitPrice: d.UnitPrice,
		})
	}
	if len(lines) == 0 {
		s.logger.Info("Smart order submitted with no positive lines, no purchase order raised",
			zap.String("smart_order_id", so.ID.String()),
		)
		return so, nil
	}

	po, err := purchase.NewPurchaseOrder(so.SupplierID, purchase.TypeSmart, lines)
	if err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Save(ctx, po); err != nil {
		return nil, err
	}

	s.logger.Info("Smart order submitted",
		zap.String("smart_order_id", so.ID.String()),
		zap.String("po_number", po.PONumber),
	)
	return so, nil
}
