package purchase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/supplychain/backend/internal/domain/inbound"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type purchaseMocks struct {
	purchaseRepo  *MockPurchaseOrderRepository
	inboundRepo   *MockInboundReceiptRepository
	inventoryRepo *MockInventoryRecordRepository
	eventBus      *MockEventPublisher
}

func newPurchaseService(warehouseID uuid.UUID) (*PurchaseOrderService, *purchaseMocks) {
	m := &purchaseMocks{
		purchaseRepo:  new(MockPurchaseOrderRepository),
		inboundRepo:   new(MockInboundReceiptRepository),
		inventoryRepo: new(MockInventoryRecordRepository),
		eventBus:      new(MockEventPublisher),
	}
	txScope := NewNoOpTransactionScope(m.purchaseRepo, m.inboundRepo, m.inventoryRepo)
	service := NewPurchaseOrderService(m.purchaseRepo, txScope, m.eventBus, warehouseID, zap.NewNop())
	return service, m
}

func draftOrder(t *testing.T) *purchase.PurchaseOrder {
	po, err := purchase.NewPurchaseOrder(uuid.New(), purchase.TypeAuto, []purchase.PurchaseLine{
		{ProductID: uuid.New(), Qty: 50, UnitPrice: decimal.NewFromInt(4)},
	})
	require.NoError(t, err)
	return po
}

func submittedOrder(t *testing.T) *purchase.PurchaseOrder {
	po := draftOrder(t)
	_, err := po.Submit(nil, "hq-staff")
	require.NoError(t, err)
	return po
}

func warehouseRecord(t *testing.T, warehouseID, productID uuid.UUID, onHand int) *inventory.InventoryRecord {
	t.Helper()
	record, err := inventory.NewInventoryRecord(warehouseID, productID, inventory.LocationTypeWarehouse)
	require.NoError(t, err)
	record.IncreaseOnHand(onHand)
	return record
}

func TestPurchaseOrderService_Submit(t *testing.T) {
	service, m := newPurchaseService(uuid.New())
	po := draftOrder(t)

	m.purchaseRepo.On("FindByID", mock.Anything, po.ID).Return(po, nil)
	m.purchaseRepo.On("SaveWithChanges", mock.Anything, po, mock.Anything).Return(nil)

	submitted, err := service.Submit(context.Background(), po.ID, []purchase.LineEdit{
		{DetailID: po.Details[0].ID, NewQty: 60},
	}, "hq-staff")

	require.NoError(t, err)
	assert.Equal(t, purchase.StatusSubmitted, submitted.Status)
	assert.Equal(t, 60, submitted.Details[0].Qty)
	m.purchaseRepo.AssertExpectations(t)
}

func TestPurchaseOrderService_Confirm(t *testing.T) {
	warehouseID := uuid.New()

	t.Run("receives stock and books the inbound receipt", func(t *testing.T) {
		service, m := newPurchaseService(warehouseID)
		po := submittedOrder(t)
		productID := po.Details[0].ProductID
		record := warehouseRecord(t, warehouseID, productID, 20)

		m.purchaseRepo.On("FindByID", mock.Anything, po.ID).Return(po, nil)
		m.purchaseRepo.On("Save", mock.Anything, po).Return(nil)
		m.inventoryRepo.On("GetOrCreate", mock.Anything, warehouseID, productID, inventory.LocationTypeWarehouse).Return(record, nil)
		m.inventoryRepo.On("Save", mock.Anything, record).Return(nil)
		var savedReceipt *inbound.InboundReceipt
		m.inboundRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			savedReceipt = args.Get(1).(*inbound.InboundReceipt)
		}).Return(nil)
		m.eventBus.On("Publish", mock.Anything, mock.Anything).Return(nil)

		confirmed, err := service.Confirm(context.Background(), po.ID)

		require.NoError(t, err)
		assert.Equal(t, purchase.StatusConfirmed, confirmed.Status)
		assert.Equal(t, 70, record.OnHandQty)
		require.NotNil(t, savedReceipt)
		assert.Equal(t, po.ID, savedReceipt.PurchaseOrderID)
		assert.Equal(t, po.SupplierID, savedReceipt.SupplierID)
		require.Len(t, savedReceipt.Lines, 1)
		assert.Equal(t, 50, savedReceipt.Lines[0].ReceivedQty)
		assert.Empty(t, confirmed.GetDomainEvents())
		m.purchaseRepo.AssertExpectations(t)
		m.inboundRepo.AssertExpectations(t)
		m.eventBus.AssertExpectations(t)
	})

	t.Run("receipt failure rolls the confirmation back", func(t *testing.T) {
		service, m := newPurchaseService(warehouseID)
		po := submittedOrder(t)
		productID := po.Details[0].ProductID
		record := warehouseRecord(t, warehouseID, productID, 0)

		m.purchaseRepo.On("FindByID", mock.Anything, po.ID).Return(po, nil)
		m.purchaseRepo.On("Save", mock.Anything, po).Return(nil)
		m.inventoryRepo.On("GetOrCreate", mock.Anything, warehouseID, productID, inventory.LocationTypeWarehouse).Return(record, nil)
		m.inventoryRepo.On("Save", mock.Anything, record).Return(nil)
		m.inboundRepo.On("Save", mock.Anything, mock.Anything).Return(shared.ErrConflict)

		_, err := service.Confirm(context.Background(), po.ID)

		assert.ErrorIs(t, err, shared.ErrConflict)
		m.eventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("publish failure does not undo confirmation", func(t *testing.T) {
		service, m := newPurchaseService(warehouseID)
		po := submittedOrder(t)
		productID := po.Details[0].ProductID
		record := warehouseRecord(t, warehouseID, productID, 0)

		m.purchaseRepo.On("FindByID", mock.Anything, po.ID).Return(po, nil)
		m.purchaseRepo.On("Save", mock.Anything, po).Return(nil)
		m.inventoryRepo.On("GetOrCreate", mock.Anything, warehouseID, productID, inventory.LocationTypeWarehouse).Return(record, nil)
		m.inventoryRepo.On("Save", mock.Anything, record).Return(nil)
		m.inboundRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		m.eventBus.On("Publish", mock.Anything, mock.Anything).Return(assert.AnError)

		confirmed, err := service.Confirm(context.Background(), po.ID)

		require.NoError(t, err)
		assert.Equal(t, purchase.StatusConfirmed, confirmed.Status)
		assert.Equal(t, 50, record.OnHandQty)
	})

	t.Run("confirm from draft is rejected", func(t *testing.T) {
		service, m := newPurchaseService(warehouseID)
		po := draftOrder(t)

		m.purchaseRepo.On("FindByID", mock.Anything, po.ID).Return(po, nil)

		_, err := service.Confirm(context.Background(), po.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		m.inventoryRepo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
