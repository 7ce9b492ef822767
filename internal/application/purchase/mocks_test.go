package purchase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/supplychain/backend/internal/domain/inbound"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
)

type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByStatus(ctx context.Context, status purchase.OrderStatus, filter shared.Filter) ([]purchase.PurchaseOrder, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]purchase.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByType(ctx context.Context, orderType purchase.OrderType, filter shared.Filter) ([]purchase.PurchaseOrder, error) {
	args := m.Called(ctx, orderType, filter)
	return args.Get(0).([]purchase.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, po *purchase.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) SaveWithChanges(ctx context.Context, po *purchase.PurchaseOrder, changes []purchase.PurchaseDetailChange) error {
	args := m.Called(ctx, po, changes)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) OpenQuantityByProduct(ctx context.Context) (map[uuid.UUID]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

type MockInboundReceiptRepository struct {
	mock.Mock
}

func (m *MockInboundReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*inbound.InboundReceipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.InboundReceipt), args.Error(1)
}

func (m *MockInboundReceiptRepository) FindByPurchaseOrderID(ctx context.Context, purchaseOrderID uuid.UUID) (*inbound.InboundReceipt, error) {
	args := m.Called(ctx, purchaseOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.InboundReceipt), args.Error(1)
}

func (m *MockInboundReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inbound.InboundReceipt, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inbound.InboundReceipt), args.Error(1)
}

func (m *MockInboundReceiptRepository) Save(ctx context.Context, receipt *inbound.InboundReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

type MockInventoryRecordRepository struct {
	mock.Mock
}

func (m *MockInventoryRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRecordRepository) FindByLocationAndProduct(ctx context.Context, locationID, productID uuid.UUID) (*inventory.InventoryRecord, error) {
	args := m.Called(ctx, locationID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRecordRepository) FindByLocationType(ctx context.Context, locationType inventory.LocationType) ([]inventory.InventoryRecord, error) {
	args := m.Called(ctx, locationType)
	return args.Get(0).([]inventory.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRecordRepository) FindByLocation(ctx context.Context, locationID uuid.UUID) ([]inventory.InventoryRecord, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).([]inventory.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRecordRepository) GetOrCreate(ctx context.Context, locationID, productID uuid.UUID, locationType inventory.LocationType) (*inventory.InventoryRecord, error) {
	args := m.Called(ctx, locationID, productID, locationType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryRecord), args.Error(1)
}

func (m *MockInventoryRecordRepository) Save(ctx context.Context, record *inventory.InventoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
