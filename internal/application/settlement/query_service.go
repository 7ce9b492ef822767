package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/settlement"
	"github.com/supplychain/backend/internal/domain/shared"
)

// QueryService serves the read side of the settlement ledger.
type QueryService struct {
	settlementRepo settlement.SettlementRepository
}

func NewQueryService(settlementRepo settlement.SettlementRepository) *QueryService {
	return &QueryService{settlementRepo: settlementRepo}
}

func (s *QueryService) Get(ctx context.Context, id uuid.UUID) (*settlement.SettlementRecord, error) {
	return s.settlementRepo.FindByID(ctx, id)
}

// List returns settlement records, optionally restricted to one status.
func (s *QueryService) List(ctx context.Context, status settlement.SettlementStatus, filter shared.Filter) ([]settlement.SettlementRecord, error) {
	if status == "" {
		return s.settlementRepo.FindAll(ctx, filter)
	}
	return s.settlementRepo.FindByStatus(ctx, status)
}
