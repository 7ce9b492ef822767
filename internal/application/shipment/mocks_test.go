package shipment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/supplychain/backend/internal/domain/inventory"
	"github.com/supplychain/backend/internal/domain/order"
	"github.com/supplychain/backend/internal/domain/shared"
	"github.com/supplychain/backend/internal/domain/shipment"
)

type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByStatus(ctx context.Context, status shipment.ShipmentStatus, filter shared.Filter) ([]shipment.Shipment, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByStoreOrderID(ctx context.Context, storeOrderID uuid.UUID) ([]shipment.Shipment, error) {
	args := m.Called(ctx, storeOrderID)
	return args.Get(0).([]shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Save(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) AdvanceWaitingToInTransit(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShipmentRepository) AdvanceInTransitToDelivered(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShipmentRepository) FindInTransitUnapplied(ctx context.Context, limit int) ([]shipment.Shipment, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindDeliveredUnapplied(ctx context.Context, limit int) ([]shipment.Shipment, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ClaimInTransitApplied(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockShipmentRepository) ClaimInventoryApplied(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
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

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
