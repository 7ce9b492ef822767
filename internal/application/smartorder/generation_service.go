package smartorder

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/catalog"
	"github.com/supplychain/backend/internal/domain/forecast"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// GenerationService converts the latest demand forecast into one DRAFT_AUTO
// smart order per supplier for the coming week. An existing
// (supplier, targetWeek) pair is a conflict for that supplier only; sibling
// suppliers still get their orders.
type GenerationService struct {
	snapshotRepo  forecast.SnapshotRepository
	smartRepo     forecast.SmartOrderRepository
	supplierRepo  catalog.ProductSupplierRepository
	inventoryRepo inventory.InventoryRecordRepository
	purchaseRepo  purchase.PurchaseOrderRepository
	client        forecast.Client
	logger        *zap.Logger
}

func NewGenerationService(
	snapshotRepo forecast.SnapshotRepository,
	smartRepo forecast.SmartOrderRepository,
	supplierRepo catalog.ProductSupplierRepository,
	inventoryRepo inventory.InventoryRecordRepository,
	purchaseRepo purchase.PurchaseOrderRepository,
	client forecast.Client,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		snapshotRepo:  snapshotRepo,
		smartRepo:     smartRepo,
		supplierRepo:  supplierRepo,
		inventoryRepo: inventoryRepo,
		purchaseRepo:  purchaseRepo,
		client:        client,
		logger:        logger,
	}
}

// GenerationStats summarizes one weekly generation run.
type GenerationStats struct {
	TargetWeek    time.Time `json:"target_week"`
	OrdersCreated int       `json:"orders_created"`
	Conflicts     int       `json:"conflicts"`
	Skipped       int       `json:"skipped"`
	Failed        int       `json:"failed"`
}

// GenerateForWeek runs the generator at the given instant. The target week
// is the Monday after now.
func (s *GenerationService) GenerateForWeek(ctx context.Context, now time.Time) (*GenerationStats, error) {
	targetWeek := forecast.NextMonday(now)
	stats := &GenerationStats{TargetWeek: targetWeek}

	mappings, err := s.supplierRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load supplier mappings", zap.Error(err))
		return nil, err
	}
	mappingByProduct := make(map[uuid.UUID]catalog.ProductSupplier, len(mappings))
	for _, m := range mappings {
		mappingByProduct[m.ProductID] = m
	}

	s.refreshSnapshots(ctx, mappings, targetWeek, now)

	snapshots, err := s.snapshotRepo.LatestForWeek(ctx, targetWeek)
	if err != nil {
		s.logger.Error("Failed to load forecast snapshots", zap.Error(err))
		return nil, err
	}
	if len(snapshots) == 0 {
		s.logger.Info("No forecast snapshots for target week",
			zap.Time("target_week", targetWeek),
		)
		return stats, nil
	}

	stockByProduct, err := s.warehouseStock(ctx)
	if err != nil {
		return nil, err
	}
	openPO, err := s.purchaseRepo.OpenQuantityByProduct(ctx)
	if err != nil {
		s.logger.Error("Failed to load open purchase quantities", zap.Error(err))
		return nil, err
	}

	linesBySupplier := make(map[uuid.UUID][]forecast.SmartLine)
	for _, snap := range snapshots {
		mapping, ok := mappingByProduct[snap.ProductID]
		if !ok {
			stats.Skipped++
			s.logger.Warn("Forecast product has no supplier mapping",
				zap.String("product_id", snap.ProductID.String()),
			)
			continue
		}

		forecastQty := int(math.Round(snap.YPred))
		if forecastQty < 0 {
			forecastQty = 0
		}
		stock := stockByProduct[snap.ProductID]
		recommended := recommendedQty(forecastQty, mapping.LeadTimeDays, stock.safety, stock.onHand, openPO[snap.ProductID])

		linesBySupplier[mapping.SupplierID] = append(linesBySupplier[mapping.SupplierID], forecast.SmartLine{
			ProductID:      snap.ProductID,
			ForecastQty:    forecastQty,
			RecommendedQty: recommended,
			UnitPrice:      mapping.PurchasePrice,
		})
	}

	for supplierID, lines := range linesBySupplier {
		_, err := s.smartRepo.FindBySupplierAndWeek(ctx, supplierID, targetWeek)
		if err == nil {
			stats.Conflicts++
			s.logger.Warn("Smart order already exists for supplier and week",
				zap.String("supplier_id", supplierID.String()),
				zap.Time("target_week", targetWeek),
			)
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			stats.Failed++
			s.logger.Error("Failed to check existing smart order",
				zap.String("supplier_id", supplierID.String()),
				zap.Error(err),
			)
			continue
		}

		so, err := forecast.NewSmartOrder(supplierID, targetWeek, lines)
		if err != nil {
			stats.Failed++
			continue
		}
		if err := s.smartRepo.Save(ctx, so); err != nil {
			if errors.Is(err, shared.ErrConflict) {
				// Lost a race with a concurrent run; the winner's order stands.
				stats.Conflicts++
				continue
			}
			stats.Failed++
			s.logger.Error("Failed to save smart order",
				zap.String("supplier_id", supplierID.String()),
				zap.Error(err),
			)
			continue
		}
		stats.OrdersCreated++
	}

	s.logger.Info("Completed smart order generation",
		zap.Time("target_week", targetWeek),
		zap.Int("orders_created", stats.OrdersCreated),
		zap.Int("conflicts", stats.Conflicts),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

// refreshSnapshots pulls the collaborator's latest predictions into the
// snapshot table. Upstream trouble is logged; generation proceeds on stored
// snapshots.
func (s *GenerationService) refreshSnapshots(ctx context.Context, mappings []catalog.ProductSupplier, targetWeek, now time.Time) {
	if s.client == nil {
		return
	}
	for _, mapping := range mappings {
		result, err := s.client.LatestSnapshot(ctx, mapping.ProductID, targetWeek)
		if err != nil {
			s.logger.Warn("Forecast collaborator unavailable",
				zap.String("product_id", mapping.ProductID.String()),
				zap.Error(err),
			)
			return
		}
		snap, err := forecast.NewDemandForecastSnapshot(result.ProductID, result.TargetWeek, result.YPred, now)
		if err != nil {
			continue
		}
		if err := s.snapshotRepo.Save(ctx, snap); err != nil {
			s.logger.Warn("Failed to store forecast snapshot",
				zap.String("product_id", mapping.ProductID.String()),
				zap.Error(err),
			)
		}
	}
}

type stockLevels struct {
	onHand int
	safety int
}

func (s *GenerationService) warehouseStock(ctx context.Context) (map[uuid.UUID]stockLevels, error) {
	records, err := s.inventoryRepo.FindByLocationType(ctx, inventory.LocationTypeWarehouse)
	if err != nil {
		s.logger.Error("Failed to load warehouse inventory", zap.Error(err))
		return nil, err
	}
	byProduct := make(map[uuid.UUID]stockLevels, len(records))
	for _, record := range records {
		byProduct[record.ProductID] = stockLevels{onHand: record.OnHandQty, safety: record.SafetyQty}
	}
	return byProduct, nil
}

// recommendedQty covers the coming week plus demand during the supplier's
// lead time, topped with safety stock, minus what is already on hand or on
// order. Never negative.
func recommendedQty(weeklyForecast, leadTimeDays, safety, onHand, openPOQty int) int {
	leadDemand := int(math.Round(float64(weeklyForecast) * float64(leadTimeDays) / 7.0))
	qty := weeklyForecast + leadDemand + safety - onHand - openPOQty
	if qty < 0 {
		return 0
	}
	return qty
}
