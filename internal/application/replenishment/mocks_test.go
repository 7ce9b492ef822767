package replenishment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/supplychain/backend/internal/domain/catalog"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/order"
	"github.com/supplychain/backend/internal/domain/purchase"
	"github.com/supplychain/backend/internal/domain/shared"
)

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

type MockStoreOrderRepository struct {
	mock.Mock
}

func (m *MockStoreOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.StoreOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.StoreOrder), args.Error(1)
}

func (m *MockStoreOrderRepository) FindByStoreID(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]order.StoreOrder, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]order.StoreOrder), args.Error(1)
}

func (m *MockStoreOrderRepository) Save(ctx context.Context, o *order.StoreOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockStoreOrderRepository) UpdateStatusByIDs(ctx context.Context, ids []uuid.UUID, status order.StoreOrderStatus) (int64, error) {
	args := m.Called(ctx, ids, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreOrderRepository) DailyQuantities(ctx context.Context, productID uuid.UUID, since time.Time) ([]order.DailyQuantity, error) {
	args := m.Called(ctx, productID, since)
	return args.Get(0).([]order.DailyQuantity), args.Error(1)
}

type MockProductSupplierRepository struct {
	mock.Mock
}

func (m *MockProductSupplierRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*catalog.ProductSupplier, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductSupplier), args.Error(1)
}

func (m *MockProductSupplierRepository) FindBySupplierID(ctx context.Context, supplierID uuid.UUID) ([]catalog.ProductSupplier, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).([]catalog.ProductSupplier), args.Error(1)
}

func (m *MockProductSupplierRepository) FindAll(ctx context.Context) ([]catalog.ProductSupplier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.ProductSupplier), args.Error(1)
}

func (m *MockProductSupplierRepository) Save(ctx context.Context, ps *catalog.ProductSupplier) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}

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

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) AutoPurchaseCreated(ctx context.Context, po *purchase.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}
