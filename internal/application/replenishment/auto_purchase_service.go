package replenishment

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/catalog"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/order"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AutoPurchaseService turns low warehouse stock into DRAFT_AUTO purchase
// orders, one per supplier. Pure computation plus order creation; inventory
// itself is only ever mutated by shipment delivery.
type AutoPurchaseService struct {
	inventoryRepo inventory.InventoryRecordRepository
	orderRepo     order.StoreOrderRepository
	supplierRepo  catalog.ProductSupplierRepository
	purchaseRepo  purchase.PurchaseOrderRepository
	notifier      Notifier
	config        Config
	logger        *zap.Logger
}

func NewAutoPurchaseService(
	inventoryRepo inventory.InventoryRecordRepository,
	orderRepo order.StoreOrderRepository,
	supplierRepo catalog.ProductSupplierRepository,
	purchaseRepo purchase.PurchaseOrderRepository,
	notifier Notifier,
	config Config,
	logger *zap.Logger,
) *AutoPurchaseService {
	if config.LookbackDays <= 0 {
		config.LookbackDays = 30
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &AutoPurchaseService{
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		supplierRepo:  supplierRepo,
		purchaseRepo:  purchaseRepo,
		notifier:      notifier,
		config:        config,
		logger:        logger,
	}
}

// AutoPurchaseStats summarizes one engine run.
type AutoPurchaseStats struct {
	ProductsChecked int       `json:"products_checked"`
	LinesProposed   int       `json:"lines_proposed"`
	OrdersCreated   int       `json:"orders_created"`
	Skipped         int       `json:"skipped"`
	Failed          int       `json:"failed"`
	ProcessedAt     time.Time `json:"processed_at"`
}

// Run computes reorder quantities for every warehouse record at or below its
// safety stock and emits one AUTO purchase order per supplier.
func (s *AutoPurchaseService) Run(ctx context.Context, now time.Time) (*AutoPurchaseStats, error) {
	stats := &AutoPurchaseStats{ProcessedAt: now}

	records, err := s.inventoryRepo.FindByLocationType(ctx, inventory.LocationTypeWarehouse)
	if err != nil {
		s.logger.Error("Failed to load warehouse inventory", zap.Error(err))
		return nil, err
	}

	since := now.AddDate(0, 0, -s.config.LookbackDays)
	lines := make(map[uuid.UUID][]purchase.PurchaseLine)

	for i := range records {
		record := &records[i]
		stats.ProductsChecked++

		if !record.NeedsReplenishment() {
			continue
		}

		mapping, err := s.supplierRepo.FindByProductID(ctx, record.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				stats.Skipped++
				s.logger.Warn("Product has no supplier mapping, skipping reorder",
					zap.String("product_id", record.ProductID.String()),
				)
				continue
			}
			stats.Failed++
			s.logger.Error("Failed to load supplier mapping",
				zap.String("product_id", record.ProductID.String()),
				zap.Error(err),
			)
			continue
		}
		if mapping.LeadTimeDays == 0 {
			stats.Skipped++
			continue
		}

		history, err := s.orderRepo.DailyQuantities(ctx, record.ProductID, since)
		if err != nil {
			stats.Failed++
			s.logger.Error("Failed to load consumption history",
				zap.String("product_id", record.ProductID.String()),
				zap.Error(err),
			)
			continue
		}

		qty := s.reorderQty(record, mapping, history)
		if qty <= 0 {
			stats.Skipped++
			continue
		}

		lines[mapping.SupplierID] = append(lines[mapping.SupplierID], purchase.PurchaseLine{
			ProductID: record.ProductID,
			Qty:       qty,
			UnitPrice: mapping.PurchasePrice,
		})
		stats.LinesProposed++
	}

	for supplierID, supplierLines := range lines {
		po, err := purchase.NewPurchaseOrder(supplierID, purchase.TypeAuto, supplierLines)
		if err != nil {
			stats.Failed++
			s.logger.Error("Failed to build auto purchase order",
				zap.String("supplier_id", supplierID.String()),
				zap.Error(err),
			)
			continue
		}
		if err := s.purchaseRepo.Save(ctx, po); err != nil {
			stats.Failed++
			s.logger.Error("Failed to save auto purchase order",
				zap.String("supplier_id", supplierID.String()),
				zap.Error(err),
			)
			continue
		}
		stats.OrdersCreated++

		if err := s.notifier.AutoPurchaseCreated(ctx, po); err != nil {
			s.logger.Warn("Failed to notify auto purchase creation",
				zap.String("po_number", po.PONumber),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Completed auto purchase run",
		zap.Int("products_checked", stats.ProductsChecked),
		zap.Int("lines_proposed", stats.LinesProposed),
		zap.Int("orders_created", stats.OrdersCreated),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

// reorderQty implements the reorder rule: round(meanDaily * leadTime) floored
// at the configured lot size, or safety - onHand when no history exists.
func (s *AutoPurchaseService) reorderQty(record *inventory.InventoryRecord, mapping *catalog.ProductSupplier, history []order.DailyQuantity) int {
	if len(history) == 0 {
		return record.SafetyQty - record.OnHandQty
	}
	mean, _ := consumptionStats(history)
	qty := int(math.Round(mean * float64(mapping.LeadTimeDays)))
	if qty < s.config.MinLotSize {
		qty = s.config.MinLotSize
	}
	return qty
}
