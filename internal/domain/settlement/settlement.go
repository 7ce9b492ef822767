package settlement

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/supplychain/backend/internal/domain/shared"
)

// SettlementType distinguishes money owed to us from money we owe.
type SettlementType string

const (
	TypeReceivable SettlementType = "AR"
	TypePayable    SettlementType = "AP"
)

func (t SettlementType) IsValid() bool {
	return t == TypeReceivable || t == TypePayable
}

// SettlementStatus is the booking stage of a settlement record.
type SettlementStatus string

const (
	StatusDraft  SettlementStatus = "DRAFT"
	StatusIssued SettlementStatus = "ISSUED"
	StatusVoid   SettlementStatus = "VOID"
)

// SettlementRecord books one receivable or payable against a counterparty.
// CounterpartyID is the store for AR and the supplier for AP; SourceID is the
// confirmed order that produced the record. One record exists per
// (type, source).
type SettlementRecord struct {
	shared.BaseAggregateRoot
	SettlementNo   string           `gorm:"type:varchar(25);uniqueIndex;not null" json:"settlement_no"`
	Type           SettlementType   `gorm:"type:varchar(5);not null;uniqueIndex:idx_settlement_type_source" json:"type"`
	SourceID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_settlement_type_source" json:"source_id"`
	CounterpartyID uuid.UUID        `gorm:"type:uuid;not null;index" json:"counterparty_id"`
	Status         SettlementStatus `gorm:"type:varchar(10);not null;index" json:"status"`
	Qty            int              `gorm:"not null" json:"qty"`
	Amount         decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"amount"`
	SettledDate    *time.Time       `gorm:"type:date" json:"settled_date,omitempty"`
}

func (SettlementRecord) TableName() string {
	return "settlement_records"
}

// GenerateSettlementNo builds a settlement number from the date plus four
// random digits. Uniqueness is enforced by the database index, not here.
func GenerateSettlementNo(now time.Time) string {
	return fmt.Sprintf("SETL-%s%04d", now.Format("20060102"), 1000+rand.Intn(9000))
}

func NewSettlementRecord(settlementType SettlementType, sourceID, counterpartyID uuid.UUID, qty int, amount decimal.Decimal) (*SettlementRecord, error) {
	if !settlementType.IsValid() {
		return nil, shared.ErrInvalidInput
	}
	if sourceID == uuid.Nil || counterpartyID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	if qty < 0 || amount.IsNegative() {
		return nil, shared.ErrInvalidInput
	}
	now := time.Now()
	return &SettlementRecord{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		SettlementNo:   GenerateSettlementNo(now),
		Type:           settlementType,
		SourceID:       sourceID,
		CounterpartyID: counterpartyID,
		Status:         StatusDraft,
		Qty:            qty,
		Amount:         amount,
	}, nil
}

// Issue finalizes a draft and stamps the settled date.
func (r *SettlementRecord) Issue(settledDate time.Time) error {
	if r.Status != StatusDraft {
		return shared.ErrInvalidState
	}
	r.Status = StatusIssued
	r.SettledDate = &settledDate
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Reopen moves an issued record back to draft for the next cycle.
func (r *SettlementRecord) Reopen() error {
	if r.Status != StatusIssued {
		return shared.ErrInvalidState
	}
	r.Status = StatusDraft
	r.SettledDate = nil
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Void retires a draft that was never issued.
func (r *SettlementRecord) Void() error {
	if r.Status != StatusDraft {
		return shared.ErrInvalidState
	}
	r.Status = StatusVoid
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}
