package shipment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/order"
	"github.com/supplychain/backend/internal/domain/shared"
	"github.com/supplychain/backend/internal/domain/shipment"
	"go.uber.org/zap"
)

// TickConfig holds the dwell thresholds driving automatic status advance.
type TickConfig struct {
	DwellToTransit   time.Duration
	DwellToDelivered time.Duration
	BatchSize        int
}

// TickService advances shipments by elapsed time and applies inventory side
// effects exactly once per transition. Safe to run concurrently: status
// advances are set-based conditional updates, and each inventory side effect
// is guarded by a write-once flag claimed inside the same transaction as the
// mutation.
type TickService struct {
	txScope      TransactionScope
	shipmentRepo shipment.ShipmentRepository
	orderRepo    order.StoreOrderRepository
	eventBus     shared.EventPublisher
	config       TickConfig
	logger       *zap.Logger
}

func NewTickService(
	txScope TransactionScope,
	shipmentRepo shipment.ShipmentRepository,
	orderRepo order.StoreOrderRepository,
	eventBus shared.EventPublisher,
	config TickConfig,
	logger *zap.Logger,
) *TickService {
	if config.BatchSize <= 0 {
		config.BatchSize = 500
	}
	return &TickService{
		txScope:      txScope,
		shipmentRepo: shipmentRepo,
		orderRepo:    orderRepo,
		eventBus:     eventBus,
		config:       config,
		logger:       logger,
	}
}

// TickStats summarizes one tick run.
type TickStats struct {
	AdvancedToTransit   int64     `json:"advanced_to_transit"`
	AdvancedToDelivered int64     `json:"advanced_to_delivered"`
	TransitApplied      int       `json:"transit_applied"`
	InventoryApplied    int       `json:"inventory_applied"`
	Failed              int       `json:"failed"`
	ProcessedAt         time.Time `json:"processed_at"`
}

// Tick runs one reconciliation pass at the given wall-clock instant.
//
// Per-shipment failures are logged and the batch continues; the failed
// shipment keeps its flag unset and is retried on the next tick.
func (s *TickService) Tick(ctx context.Context, now time.Time) (*TickStats, error) {
	stats := &TickStats{ProcessedAt: now}

	advanced, err := s.shipmentRepo.AdvanceWaitingToInTransit(ctx, now.Add(-s.config.DwellToTransit))
	if err != nil {
		s.logger.Error("Failed to advance waiting shipments", zap.Error(err))
		return nil, err
	}
	stats.AdvancedToTransit = advanced

	delivered, err := s.shipmentRepo.AdvanceInTransitToDelivered(ctx, now.Add(-s.config.DwellToDelivered))
	if err != nil {
		s.logger.Error("Failed to advance in-transit shipments", zap.Error(err))
		return nil, err
	}
	stats.AdvancedToDelivered = delivered

	if err := s.projectOrderStatus(ctx); err != nil {
		s.logger.Error("Failed to project shipment status onto orders", zap.Error(err))
		// Projection is re-derived every tick; keep going.
	}

	s.applyInTransit(ctx, stats)
	s.applyDelivered(ctx, stats)

	if stats.AdvancedToTransit > 0 || stats.AdvancedToDelivered > 0 ||
		stats.TransitApplied > 0 || stats.InventoryApplied > 0 || stats.Failed > 0 {
		s.logger.Info("Completed shipment tick",
			zap.Int64("advanced_to_transit", stats.AdvancedToTransit),
			zap.Int64("advanced_to_delivered", stats.AdvancedToDelivered),
			zap.Int("transit_applied", stats.TransitApplied),
			zap.Int("inventory_applied", stats.InventoryApplied),
			zap.Int("failed", stats.Failed),
		)
	}
	return stats, nil
}

// projectOrderStatus mirrors current shipment stages onto the linked store
// orders. Re-setting the same status is a no-op, so no flag guards this.
func (s *TickService) projectOrderStatus(ctx context.Context) error {
	filter := shared.Filter{Page: 1, PageSize: s.config.BatchSize}

	inTransit, err := s.shipmentRepo.FindByStatus(ctx, shipment.StatusInTransit, filter)
	if err != nil {
		return err
	}
	if ids := storeOrderIDs(inTransit); len(ids) > 0 {
		if _, err := s.orderRepo.UpdateStatusByIDs(ctx, ids, order.StatusInTransit); err != nil {
			return err
		}
	}

	deliveredShipments, err := s.shipmentRepo.FindByStatus(ctx, shipment.StatusDelivered, filter)
	if err != nil {
		return err
	}
	if ids := storeOrderIDs(deliveredShipments); len(ids) > 0 {
		if _, err := s.orderRepo.UpdateStatusByIDs(ctx, ids, order.StatusDelivered); err != nil {
			return err
		}
	}
	return nil
}

// applyInTransit increments store in-transit stock for shipments whose
// in-transit side effect has not been applied yet. Claim and increment share
// one transaction.
func (s *TickService) applyInTransit(ctx context.Context, stats *TickStats) {
	items, err := s.shipmentRepo.FindInTransitUnapplied(ctx, s.config.BatchSize)
	if err != nil {
		s.logger.Error("Failed to scan unapplied in-transit shipments", zap.Error(err))
		return
	}

	for i := range items {
		sh := &items[i]
		var claimed bool
		err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			var err error
			claimed, err = repos.ShipmentRepo().ClaimInTransitApplied(ctx, sh.ID)
			if err != nil || !claimed {
				return err
			}
			record, err := repos.InventoryRepo().GetOrCreate(ctx, sh.StoreID, sh.ProductID, inventory.LocationTypeStore)
			if err != nil {
				return err
			}
			record.IncreaseInTransit(sh.Qty)
			return repos.InventoryRepo().Save(ctx, record)
		})
		if err != nil {
			stats.Failed++
			s.logger.Error("Failed to apply in-transit stock",
				zap.String("shipment_id", sh.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if !claimed {
			continue
		}
		stats.TransitApplied++
		s.publish(ctx, shipment.NewShipmentInTransitEvent(sh.ID, sh.StoreID, sh.ProductID, sh.Qty))
	}
}

// applyDelivered moves delivered quantities from in-transit to on-hand for
// shipments whose delivery side effect has not been applied yet.
func (s *TickService) applyDelivered(ctx context.Context, stats *TickStats) {
	items, err := s.shipmentRepo.FindDeliveredUnapplied(ctx, s.config.BatchSize)
	if err != nil {
		s.logger.Error("Failed to scan unapplied delivered shipments", zap.Error(err))
		return
	}

	for i := range items {
		sh := &items[i]
		var claimed bool
		err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			var err error
			claimed, err = repos.ShipmentRepo().ClaimInventoryApplied(ctx, sh.ID)
			if err != nil || !claimed {
				return err
			}
			record, err := repos.InventoryRepo().GetOrCreate(ctx, sh.StoreID, sh.ProductID, inventory.LocationTypeStore)
			if err != nil {
				return err
			}
			record.MoveTransitToOnHand(sh.Qty)
			return repos.InventoryRepo().Save(ctx, record)
		})
		if err != nil {
			stats.Failed++
			s.logger.Error("Failed to apply delivered stock",
				zap.String("shipment_id", sh.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if !claimed {
			continue
		}
		stats.InventoryApplied++
		s.publish(ctx, shipment.NewShipmentDeliveredEvent(sh.ID, sh.StoreID, sh.ProductID, sh.Qty))
	}
}

func (s *TickService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish shipment event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}

func storeOrderIDs(shipments []shipment.Shipment) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(shipments))
	ids := make([]uuid.UUID, 0, len(shipments))
	for _, sh := range shipments {
		if _, ok := seen[sh.StoreOrderID]; ok {
			continue
		}
		seen[sh.StoreOrderID] = struct{}{}
		ids = append(ids, sh.StoreOrderID)
	}
	return ids
}
