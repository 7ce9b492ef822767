package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/supplychain/backend/internal/domain/order"
)

func newMockStoreOrderRepository(t *testing.T) (*GormStoreOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStoreOrderRepository(gormDB), mock, mockDB
}

func TestGormStoreOrderRepository_UpdateStatusByIDs(t *testing.T) {
	t.Run("updates all rows not already in the target status", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreOrderRepository(t)
		defer mockDB.Close()

		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

		mock.ExpectExec(`UPDATE "store_orders" SET .+ WHERE id IN .+ AND status <> \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 2))

		updated, err := repo.UpdateStatusByIDs(context.Background(), ids, order.StatusInTransit)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty id list is a no-op", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreOrderRepository(t)
		defer mockDB.Close()

		updated, err := repo.UpdateStatusByIDs(context.Background(), nil, order.StatusDelivered)

		assert.NoError(t, err)
		assert.Zero(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStoreOrderRepository_DailyQuantities(t *testing.T) {
	t.Run("aggregates accepted orders per day since the lookback date", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreOrderRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"day", "qty"}).
			AddRow(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), 14).
			AddRow(time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), 20)

		mock.ExpectQuery(`SELECT DATE\(store_orders.created_at\) AS day, SUM\(store_order_details.qty\) AS qty FROM "store_order_details" JOIN store_orders .+ store_orders.status IN`).
			WithArgs(productID, since, order.StatusConfirmed, order.StatusInTransit, order.StatusDelivered).
			WillReturnRows(rows)

		history, err := repo.DailyQuantities(context.Background(), productID, since)

		assert.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, 14, history[0].Qty)
		assert.Equal(t, 20, history[1].Qty)
		assert.True(t, history[0].Day.Before(history[1].Day))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no order history yields empty slice", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT DATE\(store_orders.created_at\) AS day`).
			WillReturnRows(sqlmock.NewRows([]string{"day", "qty"}))

		history, err := repo.DailyQuantities(context.Background(), uuid.New(), time.Now())

		assert.NoError(t, err)
		assert.Empty(t, history)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
