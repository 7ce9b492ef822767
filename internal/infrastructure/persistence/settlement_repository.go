package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/supplychain/backend/internal/domain/settlement"
	"github.com/supplychain/backend/internal/domain/shared"
)

// GormSettlementRepository implements SettlementRepository using GORM
type GormSettlementRepository struct {
	db *gorm.DB
}

func NewGormSettlementRepository(db *gorm.DB) *GormSettlementRepository {
	return &GormSettlementRepository{db: db}
}

func (r *GormSettlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.SettlementRecord, error) {
	var record settlement.SettlementRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *GormSettlementRepository) ExistsForSource(ctx context.Context, settlementType settlement.SettlementType, sourceID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&settlement.SettlementRecord{}).
		Where("type = ? AND source_id = ?", settlementType, sourceID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormSettlementRepository) FindByStatus(ctx context.Context, status settlement.SettlementStatus) ([]settlement.SettlementRecord, error) {
	var records []settlement.SettlementRecord
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormSettlementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]settlement.SettlementRecord, error) {
	var records []settlement.SettlementRecord
	query := applyFilter(r.db.WithContext(ctx).Model(&settlement.SettlementRecord{}), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save persists the record; a duplicated (type, source) pair surfaces as
// shared.ErrConflict.
func (r *GormSettlementRepository) Save(ctx context.Context, record *settlement.SettlementRecord) error {
	err := r.db.WithContext(ctx).Save(record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConflict
	}
	return err
}

var _ settlement.SettlementRepository = (*GormSettlementRepository)(nil)
