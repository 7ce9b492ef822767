package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/inbound"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PurchaseOrderService drives purchase order status changes. Confirmation
// receives the ordered goods into the warehouse in the same transaction as
// the status change, then publishes the settlement-request event.
type PurchaseOrderService struct {
	purchaseRepo purchase.PurchaseOrderRepository
	txScope      TransactionScope
	eventBus     shared.EventPublisher
	warehouseID  uuid.UUID
	logger       *zap.Logger
}

func NewPurchaseOrderService(
	purchaseRepo purchase.PurchaseOrderRepository,
	txScope TransactionScope,
	eventBus shared.EventPublisher,
	warehouseID uuid.UUID,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		purchaseRepo: purchaseRepo,
		txScope:      txScope,
		eventBus:     eventBus,
		warehouseID:  warehouseID,
		logger:       logger,
	}
}

// Submit finalizes an engine-drafted order with optional user edits, writing
// an audit row per changed line.
func (s *PurchaseOrderService) Submit(ctx context.Context, orderID uuid.UUID, edits []purchase.LineEdit, changedBy string) (*purchase.PurchaseOrder, error) {
	po, err := s.purchaseRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	changes, err := po.Submit(edits, changedBy)
	if err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.SaveWithChanges(ctx, po, changes); err != nil {
		return nil, err
	}
	s.logger.Info("Submitted purchase order",
		zap.String("po_number", po.PONumber),
		zap.Int("line_edits", len(changes)),
	)
	return po, nil
}

// Confirm accepts the order, books the inbound receipt and increases the
// warehouse on-hand per line. Order status, receipt and stock commit or roll
// back together.
func (s *PurchaseOrderService) Confirm(ctx context.Context, orderID uuid.UUID) (*purchase.PurchaseOrder, error) {
	po, err := s.purchaseRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := po.Confirm(); err != nil {
		return nil, err
	}

	receipt, err := inbound.NewReceiptFromPurchase(po, s.warehouseID, time.Now())
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.PurchaseRepo().Save(ctx, po); err != nil {
			return err
		}
		for _, detail := range po.Details {
			record, err := repos.InventoryRepo().GetOrCreate(ctx, s.warehouseID, detail.ProductID, inventory.LocationTypeWarehouse)
			if err != nil {
				return err
			}
			record.IncreaseOnHand(detail.Qty)
			if err := repos.InventoryRepo().Save(ctx, record); err != nil {
				return err
			}
		}
		return repos.InboundRepo().Save(ctx, receipt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Received confirmed purchase order",
		zap.String("po_number", po.PONumber),
		zap.String("receipt_no", receipt.ReceiptNo),
		zap.Int("received_qty", receipt.TotalReceivedQty()),
	)

	events := po.GetDomainEvents()
	if s.eventBus != nil && len(events) > 0 {
		if err := s.eventBus.Publish(ctx, events...); err != nil {
			// The settlement handler tolerates redelivery; the confirmation
			// itself stands.
			s.logger.Warn("Failed to publish purchase confirmation",
				zap.String("po_number", po.PONumber),
				zap.Error(err),
			)
		} else {
			po.ClearDomainEvents()
		}
	}
	return po, nil
}

func (s *PurchaseOrderService) Reject(ctx context.Context, orderID uuid.UUID) (*purchase.PurchaseOrder, error) {
	po, err := s.purchaseRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := po.Reject(); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

func (s *PurchaseOrderService) ListByStatus(ctx context.Context, status purchase.OrderStatus, filter shared.Filter) ([]purchase.PurchaseOrder, error) {
	return s.purchaseRepo.FindByStatus(ctx, status, filter)
}

func (s *PurchaseOrderService) ListByType(ctx context.Context, orderType purchase.OrderType, filter shared.Filter) ([]purchase.PurchaseOrder, error) {
	return s.purchaseRepo.FindByType(ctx, orderType, filter)
}

func (s *PurchaseOrderService) Get(ctx context.Context, orderID uuid.UUID) (*purchase.PurchaseOrder, error) {
	return s.purchaseRepo.FindByID(ctx, orderID)
}
