// Package commissionrepo provides data transfer objects and mapping functions
// for commission ledger persistence.
package commissionrepo

import (
	"time"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryDTO represents the database structure for persisting commission
// entries. The (order_id, entry_type) pair carries a unique index so a
// duplicate recording fails at the storage layer even if the application
// check raced.
type EntryDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WorkerID   uuid.UUID       `gorm:"type:uuid;index"`
	OrderID    uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_commission_order_type"`
	EntryType  int             `gorm:"uniqueIndex:idx_commission_order_type"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status     int             `gorm:"index"`
	CreatedAt  time.Time
	ApprovedAt *time.Time
	PaidAt     *time.Time
}

// TableName specifies the database table name for commission entries.
func (EntryDTO) TableName() string {
	return "commission_entries"
}

// fromDomain converts a commission entry to its database representation.
func fromDomain(aggregate *commission.Entry) EntryDTO {
	return EntryDTO{
		ID:         aggregate.ID().Bytes(),
		WorkerID:   aggregate.WorkerID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		EntryType:  int(aggregate.Type()),
		Amount:     aggregate.Amount().Decimal(),
		Status:     int(aggregate.Status()),
		CreatedAt:  aggregate.CreatedAt(),
		ApprovedAt: aggregate.ApprovedAt(),
		PaidAt:     aggregate.PaidAt(),
	}
}

// toDomain converts a database DTO back to a commission entry.
func toDomain(dto EntryDTO) (*commission.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	workerID, err := kernel.UUIDFromBytes(dto.WorkerID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return commission.RestoreEntry(commission.RestoreEntryParams{
		ID:         id,
		WorkerID:   workerID,
		OrderID:    orderID,
		Type:       commission.Type(dto.EntryType),
		Amount:     kernel.RestoreMoney(dto.Amount),
		Status:     commission.Status(dto.Status),
		CreatedAt:  dto.CreatedAt,
		ApprovedAt: dto.ApprovedAt,
		PaidAt:     dto.PaidAt,
	})
}
