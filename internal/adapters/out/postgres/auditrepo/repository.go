package auditrepo

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormAuditRepository implements AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append persists the given transition records in one batch insert.
// An empty batch is a no-op, which happens when a handler pulled no
// status-changing mutations.
func (r *GormAuditRepository) Append(ctx context.Context, records []order.TransitionRecord) error {
	if len(records) == 0 {
		return nil
	}

	dtos := make([]TransitionDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, fromDomain(record))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetAllByOrder retrieves an order's transition history in the order it
// happened.
func (r *GormAuditRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]order.TransitionRecord, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransitionDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]order.TransitionRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
