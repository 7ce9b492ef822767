package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	shipmentapp "github.com/supplychain/backend/internal/application/shipment"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/order"
	"github.com/supplychain/backend/internal/domain/shared"
	"github.com/supplychain/backend/internal/domain/shipment"
	"go.uber.org/zap"
)

type orderServiceMocks struct {
	orderRepo     *MockStoreOrderRepository
	shipmentRepo  *MockShipmentRepository
	inventoryRepo *MockInventoryRecordRepository
	eventBus      *MockEventPublisher
	txScope       *recordingTxScope
}

// recordingTxScope remembers the outcome of each transaction function so
// tests can assert what would have committed or rolled back.
type recordingTxScope struct {
	inner    *shipmentapp.NoOpTransactionScope
	outcomes []error
}

func (s *recordingTxScope) Execute(ctx context.Context, fn func(repos shipmentapp.TransactionalRepositories) error) error {
	err := s.inner.Execute(ctx, fn)
	s.outcomes = append(s.outcomes, err)
	return err
}

func newOrderService(t *testing.T) (*StoreOrderService, *orderServiceMocks, uuid.UUID) {
	t.Helper()
	m := &orderServiceMocks{
		orderRepo:     new(MockStoreOrderRepository),
		shipmentRepo:  new(MockShipmentRepository),
		inventoryRepo: new(MockInventoryRecordRepository),
		eventBus:      new(MockEventPublisher),
	}
	m.txScope = &recordingTxScope{inner: shipmentapp.NewNoOpTransactionScope(m.shipmentRepo, m.inventoryRepo)}
	warehouseID := uuid.New()
	svc := NewStoreOrderService(m.orderRepo, m.txScope, m.eventBus, warehouseID, zap.NewNop())
	return svc, m, warehouseID
}

func testOrder(t *testing.T, lines ...order.OrderLine) *order.StoreOrder {
	t.Helper()
	if len(lines) == 0 {
		lines = []order.OrderLine{{ProductID: uuid.New(), Qty: 5, UnitPrice: decimal.NewFromInt(10)}}
	}
	o, err := order.NewStoreOrder(uuid.New(), order.GenerateOrderNo(time.Now()), lines)
	require.NoError(t, err)
	return o
}

func TestStoreOrderServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a CREATED order with computed total", func(t *testing.T) {
		svc, m, _ := newOrderService(t)
		storeID := uuid.New()

		m.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*order.StoreOrder")).Return(nil)

		o, err := svc.Create(ctx, storeID, []order.OrderLine{
			{ProductID: uuid.New(), Qty: 3, UnitPrice: decimal.NewFromInt(4)},
			{ProductID: uuid.New(), Qty: 2, UnitPrice: decimal.NewFromInt(5)},
		})
		require.NoError(t, err)

		assert.Equal(t, order.StatusCreated, o.Status)
		assert.Equal(t, storeID, o.StoreID)
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(22)))
		assert.NotEmpty(t, o.OrderNo)
		m.orderRepo.AssertExpectations(t)
	})

	t.Run("rejects empty line set", func(t *testing.T) {
		svc, _, _ := newOrderService(t)

		_, err := svc.Create(ctx, uuid.New(), nil)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestStoreOrderServiceConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms and publishes the settlement request", func(t *testing.T) {
		svc, m, _ := newOrderService(t)
		o := testOrder(t)

		m.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		m.orderRepo.On("Save", mock.Anything, o).Return(nil)
		m.eventBus.On("Publish", mock.Anything, mock.Anything).Return(nil)

		confirmed, err := svc.Confirm(ctx, o.ID)
		require.NoError(t, err)

		assert.Equal(t, order.StatusConfirmed, confirmed.Status)
		m.eventBus.AssertCalled(t, "Publish", mock.Anything, mock.Anything)
		assert.Empty(t, o.GetDomainEvents(), "events should be cleared after publish")
	})

	t.Run("double confirm is an invalid state", func(t *testing.T) {
		svc, m, _ := newOrderService(t)
		o := testOrder(t)
		require.NoError(t, o.Confirm())
		o.ClearDomainEvents()

		m.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.Confirm(ctx, o.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		m.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestStoreOrderServiceFulfill(t *testing.T) {
	ctx := context.Background()

	t.Run("deducts warehouse stock and raises one shipment per line", func(t *testing.T) {
		svc, m, warehouseID := newOrderService(t)
		productA := uuid.New()
		productB := uuid.New()
		o := testOrder(t,
			order.OrderLine{ProductID: productA, Qty: 5, UnitPrice: decimal.NewFromInt(10)},
			order.OrderLine{ProductID: productB, Qty: 2, UnitPrice: decimal.NewFromInt(7)},
		)
		require.NoError(t, o.Confirm())
		o.ClearDomainEvents()

		recordA := warehouseRecord(t, warehouseID, productA, 20)
		recordB := warehouseRecord(t, warehouseID, productB, 10)

		m.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		m.inventoryRepo.On("GetOrCreate", mock.Anything, warehouseID, productA, inventory.LocationTypeWarehouse).Return(recordA, nil)
		m.inventoryRepo.On("GetOrCreate", mock.Anything, warehouseID, productB, inventory.LocationTypeWarehouse).Return(recordB, nil)
		m.inventoryRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.InventoryRecord")).Return(nil)
		m.eventBus.On("Publish", mock.Anything, mock.Anything).Return(nil)
		m.shipmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil)

		shipments, err := svc.Fulfill(ctx, o.ID)
		require.NoError(t, err)

		require.Len(t, shipments, 2)
		assert.Equal(t, 15, recordA.OnHandQty)
		assert.Equal(t, 8, recordB.OnHandQty)
		for _, sh := range shipments {
			assert.Equal(t, shipment.StatusWaiting, sh.Status)
			assert.Equal(t, shipments[0].OutboundID, sh.OutboundID, "all lines share one outbound")
		}
		require.Len(t, m.txScope.outcomes, 1)
		assert.NoError(t, m.txScope.outcomes[0], "all lines commit in one transaction")
	})

	t.Run("insufficient warehouse stock fails the fulfillment", func(t *testing.T) {
		svc, m, warehouseID := newOrderService(t)
		productID := uuid.New()
		o := testOrder(t, order.OrderLine{ProductID: productID, Qty: 50, UnitPrice: decimal.NewFromInt(10)})
		require.NoError(t, o.Confirm())
		o.ClearDomainEvents()

		record := warehouseRecord(t, warehouseID, productID, 3)

		m.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		m.inventoryRepo.On("GetOrCreate", mock.Anything, warehouseID, productID, inventory.LocationTypeWarehouse).Return(record, nil)

		_, err := svc.Fulfill(ctx, o.ID)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		m.shipmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("a later short line rolls back the earlier lines", func(t *testing.T) {
		svc, m, warehouseID := newOrderService(t)
		productA := uuid.New()
		productB := uuid.New()
		o := testOrder(t,
			order.OrderLine{ProductID: productA, Qty: 5, UnitPrice: decimal.NewFromInt(10)},
			order.OrderLine{ProductID: productB, Qty: 50, UnitPrice: decimal.NewFromInt(7)},
		)
		require.NoError(t, o.Confirm())
		o.ClearDomainEvents()

		recordA := warehouseRecord(t, warehouseID, productA, 100)
		recordB := warehouseRecord(t, warehouseID, productB, 3)

		m.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		m.inventoryRepo.On("GetOrCreate", mock.Anything, warehouseID, productA, inventory.LocationTypeWarehouse).Return(recordA, nil)
		m.inventoryRepo.On("GetOrCreate", mock.Anything, warehouseID, productB, inventory.LocationTypeWarehouse).Return(recordB, nil)
		m.inventoryRepo.On("Save", mock.Anything, recordA).Return(nil)
		m.shipmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil)

		shipments, err := svc.Fulfill(ctx, o.ID)

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Nil(t, shipments)
		require.Len(t, m.txScope.outcomes, 1)
		assert.ErrorIs(t, m.txScope.outcomes[0], shared.ErrInsufficientStock,
			"the error surfaces inside the transaction, so line A's writes roll back with it")
		m.eventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("unconfirmed order cannot ship", func(t *testing.T) {
		svc, m, _ := newOrderService(t)
		o := testOrder(t)

		m.orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.Fulfill(ctx, o.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("missing order propagates not found", func(t *testing.T) {
		svc, m, _ := newOrderService(t)
		id := uuid.New()

		m.orderRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Fulfill(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestStoreOrderServiceListByStore(t *testing.T) {
	svc, m, _ := newOrderService(t)
	storeID := uuid.New()
	filter := shared.DefaultFilter()

	m.orderRepo.On("FindByStoreID", mock.Anything, storeID, filter).Return([]order.StoreOrder{}, nil)

	_, err := svc.ListByStore(context.Background(), storeID, filter)
	assert.NoError(t, err)
	m.orderRepo.AssertExpectations(t)
}

func warehouseRecord(t *testing.T, warehouseID, productID uuid.UUID, onHand int) *inventory.InventoryRecord {
	t.Helper()
	record, err := inventory.NewInventoryRecord(warehouseID, productID, inventory.LocationTypeWarehouse)
	require.NoError(t, err)
	record.IncreaseOnHand(onHand)
	return record
}
