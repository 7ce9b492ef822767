package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/shared"
)

type SettlementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SettlementRecord, error)
	// ExistsForSource reports whether a record already books this source.
	ExistsForSource(ctx context.Context, settlementType SettlementType, sourceID uuid.UUID) (bool, error)
	FindByStatus(ctx context.Context, status SettlementStatus) ([]SettlementRecord, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SettlementRecord, error)
	// Save persists the record; the (type, source) unique index surfaces a
	// concurrent duplicate as shared.ErrConflict.
	Save(ctx context.Context, r *SettlementRecord) error
}
