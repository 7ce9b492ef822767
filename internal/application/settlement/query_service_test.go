package settlement

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/supplychain/backend/internal/domain/settlement"
	"github.com/supplychain/backend/internal/domain/shared"
)

func TestQueryServiceList(t *testing.T) {
	ctx := context.Background()
	filter := shared.DefaultFilter()

	t.Run("empty status lists all", func(t *testing.T) {
		repo := new(MockSettlementRepository)
		svc := NewQueryService(repo)

		repo.On("FindAll", mock.Anything, filter).Return([]settlement.SettlementRecord{}, nil)

		_, err := svc.List(ctx, "", filter)
		require.NoError(t, err)
		repo.AssertNotCalled(t, "FindByStatus", mock.Anything, mock.Anything)
	})

	t.Run("status narrows the listing", func(t *testing.T) {
		repo := new(MockSettlementRepository)
		svc := NewQueryService(repo)

		repo.On("FindByStatus", mock.Anything, settlement.StatusIssued).
			Return([]settlement.SettlementRecord{}, nil)

		_, err := svc.List(ctx, settlement.StatusIssued, filter)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestQueryServiceGet(t *testing.T) {
	repo := new(MockSettlementRepository)
	svc := NewQueryService(repo)

	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	_, err := svc.Get(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
