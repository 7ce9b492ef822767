package replenishment

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/supplychain/backend/internal/domain/catalog"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/order"
	"github.com/supplychain/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Config holds the replenishment tuning knobs.
type Config struct {
	LookbackDays int
	MinLotSize   int
}

// SafetyStockService recomputes safety stock for every warehouse record from
// trailing consumption history. safety = ceil((maxDaily - meanDaily) * leadTime),
// floored at zero; the average counts observed days only, days without orders
// do not drag it down.
type SafetyStockService struct {
	inventoryRepo inventory.InventoryRecordRepository
	orderRepo     order.StoreOrderRepository
	supplierRepo  catalog.ProductSupplierRepository
	config        Config
	logger        *zap.Logger
}

func NewSafetyStockService(
	inventoryRepo inventory.InventoryRecordRepository,
	orderRepo order.StoreOrderRepository,
	supplierRepo catalog.ProductSupplierRepository,
	config Config,
	logger *zap.Logger,
) *SafetyStockService {
	if config.LookbackDays <= 0 {
		config.LookbackDays = 30
	}
	return &SafetyStockService{
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		supplierRepo:  supplierRepo,
		config:        config,
		logger:        logger,
	}
}

// SafetyStockStats summarizes one recompute run.
type SafetyStockStats struct {
	Updated     int       `json:"updated"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	ProcessedAt time.Time `json:"processed_at"`
}

func (s *SafetyStockService) UpdateDailySafetyStock(ctx context.Context, now time.Time) (*SafetyStockStats, error) {
	stats := &SafetyStockStats{ProcessedAt: now}

	records, err := s.inventoryRepo.FindByLocationType(ctx, inventory.LocationTypeWarehouse)
	if err != nil {
		s.logger.Error("Failed to load warehouse inventory", zap.Error(err))
		return nil, err
	}

	since := now.AddDate(0, 0, -s.config.LookbackDays)
	for i := range records {
		record := &records[i]

		mapping, err := s.supplierRepo.FindByProductID(ctx, record.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				stats.Skipped++
				s.logger.Warn("Product has no supplier mapping, skipping safety stock",
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

		history, err := s.orderRepo.DailyQuantities(ctx, record.ProductID, since)
		if err != nil {
			stats.Failed++
			s.logger.Error("Failed to load consumption history",
				zap.String("product_id", record.ProductID.String()),
				zap.Error(err),
			)
			continue
		}
		if len(history) == 0 {
			stats.Skipped++
			continue
		}

		mean, maxDaily := consumptionStats(history)
		safety := int(math.Ceil((float64(maxDaily) - mean) * float64(mapping.LeadTimeDays)))
		if safety < 0 {
			safety = 0
		}

		if err := record.SetSafetyQty(safety); err != nil {
			stats.Failed++
			continue
		}
		if err := s.inventoryRepo.Save(ctx, record); err != nil {
			stats.Failed++
			s.logger.Error("Failed to save safety stock",
				zap.String("product_id", record.ProductID.String()),
				zap.Error(err),
			)
			continue
		}
		stats.Updated++
	}

	s.logger.Info("Completed safety stock update",
		zap.Int("updated", stats.Updated),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

// consumptionStats returns the mean and maximum over observed days only.
func consumptionStats(history []order.DailyQuantity) (mean float64, maxDaily int) {
	total := 0
	for _, day := range history {
		total += day.Qty
		if day.Qty > maxDaily {
			maxDaily = day.Qty
		}
	}
	return float64(total) / float64(len(history)), maxDaily
}
