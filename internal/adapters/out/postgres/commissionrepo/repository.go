package commissionrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCommissionRepository implements CommissionRepository using GORM.
type GormCommissionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCommissionRepository creates a new GORM commission repository.
func NewGormCommissionRepository(db *gorm.DB, tracker aggregateTracker) *GormCommissionRepository {
	return &GormCommissionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new commission entry to the database. A duplicate
// (order, type) pair violates the unique index and surfaces as an
// AlreadyRecorded conflict.
func (r *GormCommissionRepository) Add(ctx context.Context, aggregate *commission.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(errs.ReasonAlreadyRecorded,
				aggregate.OrderID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing commission entry to the database.
func (r *GormCommissionRepository) Update(ctx context.Context, aggregate *commission.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&EntryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("commission entry", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a commission entry by ID.
func (r *GormCommissionRepository) Get(ctx context.Context, id kernel.UUID) (*commission.Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("commission entry", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderAndType retrieves the entry recorded for an order under a given
// earnings type. The recording handler calls it under the order's row lock,
// which makes the not-found answer trustworthy.
func (r *GormCommissionRepository) GetByOrderAndType(
	ctx context.Context,
	orderID kernel.UUID,
	entryType commission.Type,
) (*commission.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := entryType.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND entry_type = ?", orderID.Bytes(), int(entryType)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("commission entry", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves every entry recorded for an order.
func (r *GormCommissionRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*commission.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	entries := make([]*commission.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetAllApprovedByWorker retrieves the worker's approved entries oldest
// first, the order withdrawal approval consumes them in.
func (r *GormCommissionRepository) GetAllApprovedByWorker(
	ctx context.Context, workerID kernel.UUID,
) ([]*commission.Entry, error) {
	if err := workerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("worker_id = ? AND status = ?", workerID.Bytes(), int(commission.StatusApproved)).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*commission.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// SumEarnedByWorker sums the worker's approved and paid entries. Pending
// entries wait for settlement and cancelled ones never count, so neither
// contributes to the withdrawable balance.
func (r *GormCommissionRepository) SumEarnedByWorker(ctx context.Context, workerID kernel.UUID) (kernel.Money, error) {
	if err := workerID.Validate(); err != nil {
		return kernel.Money{}, err
	}

	var total decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&EntryDTO{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("worker_id = ? AND status IN ?", workerID.Bytes(),
			[]commission.Status{commission.StatusApproved, commission.StatusPaid}).
		Scan(&total).Error; err != nil {
		return kernel.Money{}, err
	}

	return kernel.RestoreMoney(total), nil
}
