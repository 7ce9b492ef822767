package smartorder

import (
	"context"
	"time"

	"github.com/supplychain/backend/internal/domain/forecast"
	"go.uber.org/zap"
)

// RetrainService triggers model retraining in the forecasting collaborator.
// The call is opaque: an unavailable upstream ends the run without side
// effects and the next scheduled run tries again.
type RetrainService struct {
	client forecast.Client
	logger *zap.Logger
}

func NewRetrainService(client forecast.Client, logger *zap.Logger) *RetrainService {
	return &RetrainService{client: client, logger: logger}
}

func (s *RetrainService) Run(ctx context.Context, now time.Time) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Retrain(ctx); err != nil {
		s.logger.Warn("Forecast retraining failed", zap.Error(err))
		return err
	}
	s.logger.Info("Forecast retraining triggered", zap.Time("at", now))
	return nil
}
