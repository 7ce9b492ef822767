package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	shipmentapp "github.com/supplychain/backend/internal/application/shipment"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/order"
	"github.com/supplychain/backend/internal/domain/shared"
	"github.com/supplychain/backend/internal/domain/shipment"
	"go.uber.org/zap"
)

// StoreOrderService handles the store-facing order lifecycle: creation,
// confirmation and warehouse fulfillment.
type StoreOrderService struct {
	orderRepo   order.StoreOrderRepository
	txScope     shipmentapp.TransactionScope
	eventBus    shared.EventPublisher
	warehouseID uuid.UUID
	logger      *zap.Logger
}

func NewStoreOrderService(
	orderRepo order.StoreOrderRepository,
	txScope shipmentapp.TransactionScope,
	eventBus shared.EventPublisher,
	warehouseID uuid.UUID,
	logger *zap.Logger,
) *StoreOrderService {
	return &StoreOrderService{
		orderRepo:   orderRepo,
		txScope:     txScope,
		eventBus:    eventBus,
		warehouseID: warehouseID,
		logger:      logger,
	}
}

// Create registers a new store order in CREATED state.
func (s *StoreOrderService) Create(ctx context.Context, storeID uuid.UUID, lines []order.OrderLine) (*order.StoreOrder, error) {
	o, err := order.NewStoreOrder(storeID, order.GenerateOrderNo(time.Now()), lines)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info("Created store order",
		zap.String("order_no", o.OrderNo),
		zap.String("store_id", storeID.String()),
		zap.Int("lines", len(o.Details)),
	)
	return o, nil
}

// Get returns one store order with its lines.
func (s *StoreOrderService) Get(ctx context.Context, orderID uuid.UUID) (*order.StoreOrder, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

// ListByStore returns a store's orders, newest first by default.
func (s *StoreOrderService) ListByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]order.StoreOrder, error) {
	return s.orderRepo.FindByStoreID(ctx, storeID, filter)
}

// Confirm accepts the order and publishes its settlement-request event.
func (s *StoreOrderService) Confirm(ctx context.Context, orderID uuid.UUID) (*order.StoreOrder, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Confirm(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)
	return o, nil
}

// Fulfill creates one outbound for a confirmed order: warehouse on-hand is
// deducted per line and a WAITING shipment is raised per line, all in one
// transaction. Insufficient warehouse stock rolls the whole fulfillment
// back; the warehouse ledger raises rather than clamping.
func (s *StoreOrderService) Fulfill(ctx context.Context, orderID uuid.UUID) ([]shipment.Shipment, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != order.StatusConfirmed {
		return nil, shared.ErrInvalidState
	}

	outboundID := uuid.New()
	var created []shipment.Shipment
	var touched []*inventory.InventoryRecord
	err = s.txScope.Execute(ctx, func(repos shipmentapp.TransactionalRepositories) error {
		for _, detail := range o.Details {
			record, err := repos.InventoryRepo().GetOrCreate(ctx, s.warehouseID, detail.ProductID, inventory.LocationTypeWarehouse)
			if err != nil {
				return err
			}
			if err := record.DeductOnHand(detail.Qty); err != nil {
				return err
			}
			if err := repos.InventoryRepo().Save(ctx, record); err != nil {
				return err
			}
			touched = append(touched, record)

			sh, err := shipment.NewShipment(outboundID, o.StoreID, o.ID, detail.ProductID, detail.Qty)
			if err != nil {
				return err
			}
			if err := repos.ShipmentRepo().Save(ctx, sh); err != nil {
				return err
			}
			created = append(created, *sh)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Events fire only after the transaction commits.
	for _, record := range touched {
		s.publishEvents(ctx, &record.BaseAggregateRoot)
	}

	s.logger.Info("Fulfilled store order",
		zap.String("order_no", o.OrderNo),
		zap.String("outbound_id", outboundID.String()),
		zap.Int("shipments", len(created)),
	)
	return created, nil
}

type eventCarrier interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}

func (s *StoreOrderService) publishEvents(ctx context.Context, aggregate eventCarrier) {
	events := aggregate.GetDomainEvents()
	if len(events) == 0 || s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
		return
	}
	aggregate.ClearDomainEvents()
}
