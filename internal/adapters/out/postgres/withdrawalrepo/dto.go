// Package withdrawalrepo provides data transfer objects and mapping
// functions for withdrawal request persistence.
package withdrawalrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/withdrawal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestDTO represents the database structure for persisting withdrawal
// requests.
type RequestDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WorkerID     uuid.UUID       `gorm:"type:uuid;index"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status       int             `gorm:"index"`
	RequestedAt  time.Time
	ProcessedAt  *time.Time
	ProcessedBy  *uuid.UUID `gorm:"type:uuid"`
	RejectReason string
}

// TableName specifies the database table name for withdrawal requests.
func (RequestDTO) TableName() string {
	return "withdrawal_requests"
}

// fromDomain converts a withdrawal request to its database representation.
func fromDomain(aggregate *withdrawal.Request) RequestDTO {
	var processedBy *uuid.UUID
	if id := aggregate.ProcessedBy(); id != nil {
		raw := id.Bytes()
		processedBy = &raw
	}

	return RequestDTO{
		ID:           aggregate.ID().Bytes(),
		WorkerID:     aggregate.WorkerID().Bytes(),
		Amount:       aggregate.Amount().Decimal(),
		Status:       int(aggregate.Status()),
		RequestedAt:  aggregate.RequestedAt(),
		ProcessedAt:  aggregate.ProcessedAt(),
		ProcessedBy:  processedBy,
		RejectReason: aggregate.RejectReason(),
	}
}

// toDomain converts a database DTO back to a withdrawal request.
func toDomain(dto RequestDTO) (*withdrawal.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	workerID, err := kernel.UUIDFromBytes(dto.WorkerID[:])
	if err != nil {
		return nil, err
	}

	var processedBy *kernel.UUID
	if dto.ProcessedBy != nil {
		adminID, adminErr := kernel.UUIDFromBytes((*dto.ProcessedBy)[:])
		if adminErr != nil {
			return nil, adminErr
		}
		processedBy = &adminID
	}

	return withdrawal.RestoreRequest(withdrawal.RestoreRequestParams{
		ID:           id,
		WorkerID:     workerID,
		Amount:       kernel.RestoreMoney(dto.Amount),
		Status:       withdrawal.Status(dto.Status),
		RequestedAt:  dto.RequestedAt,
		ProcessedAt:  dto.ProcessedAt,
		ProcessedBy:  processedBy,
		RejectReason: dto.RejectReason,
	})
}
