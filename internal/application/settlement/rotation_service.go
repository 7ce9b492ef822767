package settlement

import (
	"context"
	"time"

	"github.com/supplychain/backend/internal/domain/settlement"
	"go.uber.org/zap"
)

// RotationService runs the periodic settlement status rotation: ISSUED
// records reopen to DRAFT and the records that were DRAFT when the run
// started are voided. Both cohorts are captured before any mutation, so a
// record freshly reopened in this run is never voided by the same pass.
//
// TODO: confirm the rotation cadence with the finance team; voiding every
// remaining draft each cycle looks aggressive for production data.
type RotationService struct {
	settlementRepo settlement.SettlementRepository
	logger         *zap.Logger
}

func NewRotationService(settlementRepo settlement.SettlementRepository, logger *zap.Logger) *RotationService {
	return &RotationService{
		settlementRepo: settlementRepo,
		logger:         logger,
	}
}

// RotationStats summarizes one rotation run.
type RotationStats struct {
	Reopened    int       `json:"reopened"`
	Voided      int       `json:"voided"`
	Failed      int       `json:"failed"`
	ProcessedAt time.Time `json:"processed_at"`
}

func (s *RotationService) Rotate(ctx context.Context, now time.Time) (*RotationStats, error) {
	stats := &RotationStats{ProcessedAt: now}

	// Capture both cohorts up front.
	issued, err := s.settlementRepo.FindByStatus(ctx, settlement.StatusIssued)
	if err != nil {
		s.logger.Error("Failed to load issued settlements", zap.Error(err))
		return nil, err
	}
	drafts, err := s.settlementRepo.FindByStatus(ctx, settlement.StatusDraft)
	if err != nil {
		s.logger.Error("Failed to load draft settlements", zap.Error(err))
		return nil, err
	}

	for i := range issued {
		record := &issued[i]
		if err := record.Reopen(); err != nil {
			stats.Failed++
			s.logger.Error("Failed to reopen settlement",
				zap.String("settlement_no", record.SettlementNo),
				zap.Error(err),
			)
			continue
		}
		if err := s.settlementRepo.Save(ctx, record); err != nil {
			stats.Failed++
			s.logger.Error("Failed to save reopened settlement",
				zap.String("settlement_no", record.SettlementNo),
				zap.Error(err),
			)
			continue
		}
		stats.Reopened++
	}

	for i := range drafts {
		record := &drafts[i]
		if err := record.Void(); err != nil {
			stats.Failed++
			s.logger.Error("Failed to void settlement",
				zap.String("settlement_no", record.SettlementNo),
				zap.Error(err),
			)
			continue
		}
		if err := s.settlementRepo.Save(ctx, record); err != nil {
			stats.Failed++
			s.logger.Error("Failed to save voided settlement",
				zap.String("settlement_no", record.SettlementNo),
				zap.Error(err),
			)
			continue
		}
		stats.Voided++
	}

	s.logger.Info("Completed settlement rotation",
		zap.Int("reopened", stats.Reopened),
		zap.Int("voided", stats.Voided),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}
