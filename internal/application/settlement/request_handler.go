package settlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/order"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/settlement"
	"github.com/supplychain/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RequestHandler turns confirmed orders into DRAFT settlement records: AP for
// purchase orders, AR for store orders. Runs in its own transaction so a
// settlement failure never rolls back the confirmation that triggered it.
// Duplicate deliveries of the same event find the existing record and stop.
type RequestHandler struct {
	settlementRepo settlement.SettlementRepository
	logger         *zap.Logger
}

func NewRequestHandler(settlementRepo settlement.SettlementRepository, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		settlementRepo: settlementRepo,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in.
func (h *RequestHandler) EventTypes() []string {
	return []string{
		purchase.EventTypeOrderConfirmed,
		order.EventTypeStoreOrderConfirmed,
	}
}

// Handle books exactly one settlement for the confirmed order behind the
// event. A record that already exists for the (type, source) pair is a
// conflict; redelivery is expected and logged at debug level.
func (h *RequestHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch evt := event.(type) {
	case *purchase.OrderConfirmedEvent:
		return h.book(ctx, settlement.TypePayable, evt.PurchaseOrderID, evt.SupplierID, evt.TotalQty, evt.TotalAmount)
	case *order.StoreOrderConfirmedEvent:
		return h.book(ctx, settlement.TypeReceivable, evt.StoreOrderID, evt.StoreID, evt.TotalQty, evt.TotalAmount)
	default:
		h.logger.Error("Unexpected event type for settlement request",
			zap.String("event_type", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

func (h *RequestHandler) book(ctx context.Context, settlementType settlement.SettlementType, sourceID, counterpartyID uuid.UUID, qty int, amount decimal.Decimal) error {
	exists, err := h.settlementRepo.ExistsForSource(ctx, settlementType, sourceID)
	if err != nil {
		h.logger.Error("Failed to check existing settlement",
			zap.String("source_id", sourceID.String()),
			zap.Error(err),
		)
		return err
	}
	if exists {
		h.logger.Debug("Settlement already booked for source",
			zap.String("type", string(settlementType)),
			zap.String("source_id", sourceID.String()),
		)
		return shared.ErrConflict
	}

	record, err := settlement.NewSettlementRecord(settlementType, sourceID, counterpartyID, qty, amount)
	if err != nil {
		return err
	}
	if err := h.settlementRepo.Save(ctx, record); err != nil {
		h.logger.Error("Failed to save settlement record",
			zap.String("source_id", sourceID.String()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("Booked settlement",
		zap.String("settlement_no", record.SettlementNo),
		zap.String("type", string(settlementType)),
		zap.String("source_id", sourceID.String()),
	)
	return nil
}
