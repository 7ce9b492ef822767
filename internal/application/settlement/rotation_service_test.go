package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/supplychain/backend/internal/domain/settlement"
	"go.uber.org/zap"
)

func testRecord(t *testing.T, status settlement.SettlementStatus) settlement.SettlementRecord {
	r, err := settlement.NewSettlementRecord(settlement.TypePayable, uuid.New(), uuid.New(), 10, decimal.NewFromInt(100))
	require.NoError(t, err)
	if status == settlement.StatusIssued {
		require.NoError(t, r.Issue(time.Now()))
	}
	return *r
}

func TestRotationService_Rotate(t *testing.T) {
	t.Run("issued reopen, original drafts void", func(t *testing.T) {
		repo := new(MockSettlementRepository)
		service := NewRotationService(repo, zap.NewNop())

		issued := testRecord(t, settlement.StatusIssued)
		draft := testRecord(t, settlement.StatusDraft)

		repo.On("FindByStatus", mock.Anything, settlement.StatusIssued).Return([]settlement.SettlementRecord{issued}, nil)
		repo.On("FindByStatus", mock.Anything, settlement.StatusDraft).Return([]settlement.SettlementRecord{draft}, nil)

		var saved []settlement.SettlementRecord
		repo.On("Save", mock.Anything, mock.AnythingOfType("*settlement.SettlementRecord")).Run(func(args mock.Arguments) {
			saved = append(saved, *args.Get(1).(*settlement.SettlementRecord))
		}).Return(nil)

		stats, err := service.Rotate(context.Background(), time.Now())

		require.NoError(t, err)
		assert.Equal(t, 1, stats.Reopened)
		assert.Equal(t, 1, stats.Voided)
		require.Len(t, saved, 2)

		// The reopened record was in the ISSUED cohort; it must not also be
		// voided by this pass.
		assert.Equal(t, issued.ID, saved[0].ID)
		assert.Equal(t, settlement.StatusDraft, saved[0].Status)
		assert.Equal(t, draft.ID, saved[1].ID)
		assert.Equal(t, settlement.StatusVoid, saved[1].Status)
	})

	t.Run("per-row failure continues the batch", func(t *testing.T) {
		repo := new(MockSettlementRepository)
		service := NewRotationService(repo, zap.NewNop())

		draftA := testRecord(t, settlement.StatusDraft)
		draftB := testRecord(t, settlement.StatusDraft)

		repo.On("FindByStatus", mock.Anything, settlement.StatusIssued).Return([]settlement.SettlementRecord{}, nil)
		repo.On("FindByStatus", mock.Anything, settlement.StatusDraft).Return([]settlement.SettlementRecord{draftA, draftB}, nil)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(r *settlement.SettlementRecord) bool {
			return r.ID == draftA.ID
		})).Return(assert.AnError)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(r *settlement.SettlementRecord) bool {
			return r.ID == draftB.ID
		})).Return(nil)

		stats, err := service.Rotate(context.Background(), time.Now())

		require.NoError(t, err)
		assert.Equal(t, 1, stats.Voided)
		assert.Equal(t, 1, stats.Failed)
	})

	t.Run("empty cohorts", func(t *testing.T) {
		repo := new(MockSettlementRepository)
		service := NewRotationService(repo, zap.NewNop())

		repo.On("FindByStatus", mock.Anything, settlement.StatusIssued).Return([]settlement.SettlementRecord{}, nil)
		repo.On("FindByStatus", mock.Anything, settlement.StatusDraft).Return([]settlement.SettlementRecord{}, nil)

		stats, err := service.Rotate(context.Background(), time.Now())

		require.NoError(t, err)
		assert.Equal(t, 0, stats.Reopened)
		assert.Equal(t, 0, stats.Voided)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
