package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/supplychain/backend/internal/domain/settlement"
	"github.com/supplychain/backend/internal/domain/shared"
)

type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.SettlementRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.SettlementRecord), args.Error(1)
}

func (m *MockSettlementRepository) ExistsForSource(ctx context.Context, settlementType settlement.SettlementType, sourceID uuid.UUID) (bool, error) {
	args := m.Called(ctx, settlementType, sourceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettlementRepository) FindByStatus(ctx context.Context, status settlement.SettlementStatus) ([]settlement.SettlementRecord, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]settlement.SettlementRecord), args.Error(1)
}

func (m *MockSettlementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]settlement.SettlementRecord, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]settlement.SettlementRecord), args.Error(1)
}

func (m *MockSettlementRepository) Save(ctx context.Context, r *settlement.SettlementRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
