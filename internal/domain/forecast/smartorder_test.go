package forecast

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
)

func createTestSmartOrder(t *testing.T) *SmartOrder {
	so, err := NewSmartOrder(uuid.New(), NextMonday(time.Now()), []SmartLine{
		{ProductID: uuid.New(), ForecastQty: 40, RecommendedQty: 55, UnitPrice: decimal.NewFromInt(3)},
		{ProductID: uuid.New(), ForecastQty: 10, RecommendedQty: 0, UnitPrice: decimal.NewFromInt(7)},
	})
	require.NoError(t, err)
	return so
}

func TestNextMonday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "midweek",
			now:  time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC), // Wednesday
			want: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday rolls a full week",
			now:  time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC), // Monday
			want: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday",
			now:  time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC),
			want: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextMonday(tt.now)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
}

func TestNewSmartOrder(t *testing.T) {
	t.Run("starts as draft with final mirroring recommendation", func(t *testing.T) {
		so := createTestSmartOrder(t)

		assert.Equal(t, purchase.StatusDraftAuto, so.Status)
		assert.Equal(t, 55, so.Details[0].FinalQty)
		assert.False(t, so.Details[0].ManualEdited())
		assert.True(t, so.TotalAmount.Equal(decimal.NewFromInt(165)))
	})

	t.Run("allows zero recommendations", func(t *testing.T) {
		so := createTestSmartOrder(t)
		assert.Equal(t, 0, so.Details[1].RecommendedQty)
	})

	t.Run("rejects empty lines", func(t *testing.T) {
		_, err := NewSmartOrder(uuid.New(), NextMonday(time.Now()), nil)
		assert.Error(t, err)
	})
}

func TestSmartOrder_UpdateRecommendedQty(t *testing.T) {
	t.Run("updates a draft line", func(t *testing.T) {
		so := createTestSmartOrder(t)

		require.NoError(t, so.UpdateRecommendedQty(so.Details[0].ID, 70))

		assert.Equal(t, 70, so.Details[0].RecommendedQty)
		assert.Equal(t, 70, so.Details[0].FinalQty)
		assert.True(t, so.TotalAmount.Equal(decimal.NewFromInt(210)))
	})

	t.Run("rejects outside draft", func(t *testing.T) {
		so := createTestSmartOrder(t)
		require.NoError(t, so.Submit(nil))

		err := so.UpdateRecommendedQty(so.Details[0].ID, 70)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("unknown line", func(t *testing.T) {
		so := createTestSmartOrder(t)
		assert.ErrorIs(t, so.UpdateRecommendedQty(uuid.New(), 10), shared.ErrNotFound)
	})
}

func TestSmartOrder_Submit(t *testing.T) {
	t.Run("applies final quantities and marks edits", func(t *testing.T) {
		so := createTestSmartOrder(t)

		require.NoError(t, so.Submit([]FinalEdit{{DetailID: so.Details[0].ID, FinalQty: 60}}))

		assert.Equal(t, purchase.StatusSubmitted, so.Status)
		assert.Equal(t, 60, so.Details[0].FinalQty)
		assert.True(t, so.Details[0].ManualEdited())
		assert.False(t, so.Details[1].ManualEdited())
	})

	t.Run("submit twice fails", func(t *testing.T) {
		so := createTestSmartOrder(t)
		require.NoError(t, so.Submit(nil))
		assert.ErrorIs(t, so.Submit(nil), shared.ErrInvalidState)
	})

	t.Run("rejects negative final quantity", func(t *testing.T) {
		so := createTestSmartOrder(t)
		err := so.Submit([]FinalEdit{{DetailID: so.Details[0].ID, FinalQty: -1}})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestSmartOrder_Cancel(t *testing.T) {
	so := createTestSmartOrder(t)
	require.NoError(t, so.Cancel())
	assert.Equal(t, purchase.StatusCancelled, so.Status)

	assert.ErrorIs(t, so.Submit(nil), shared.ErrInvalidState)
}
