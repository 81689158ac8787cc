// Package workerrepo provides data transfer objects and mapping functions for
// worker persistence.
package workerrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// WorkerDTO represents the database structure for persisting worker aggregates.
type WorkerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255)"`
	Role      int
	Available bool
	Capacity  int
}

// TableName specifies the database table name for worker entities.
func (WorkerDTO) TableName() string {
	return "workers"
}

// fromDomain converts a worker aggregate to its database representation.
func fromDomain(aggregate *worker.Worker) WorkerDTO {
	return WorkerDTO{
		ID:        aggregate.ID().Bytes(),
		Name:      aggregate.Name(),
		Role:      int(aggregate.Role()),
		Available: aggregate.IsAvailable(),
		Capacity:  aggregate.Capacity(),
	}
}

// toDomain converts a database DTO back to a worker aggregate.
func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return worker.RestoreWorker(id, dto.Name, worker.Role(dto.Role), dto.Available, dto.Capacity)
}
