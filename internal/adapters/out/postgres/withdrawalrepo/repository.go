package withdrawalrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/withdrawal"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWithdrawalRepository implements WithdrawalRepository using GORM.
type GormWithdrawalRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWithdrawalRepository creates a new GORM withdrawal repository.
func NewGormWithdrawalRepository(db *gorm.DB, tracker aggregateTracker) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new withdrawal request to the database. The request ID comes
// from the caller, so a retried submission collides on the primary key and
// surfaces as an AlreadyRecorded conflict instead of a second hold.
func (r *GormWithdrawalRepository) Add(ctx context.Context, aggregate *withdrawal.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(errs.ReasonAlreadyRecorded,
				aggregate.ID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing withdrawal request to the database.
func (r *GormWithdrawalRepository) Update(ctx context.Context, aggregate *withdrawal.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "requested_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("withdrawal request", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a withdrawal request by ID.
func (r *GormWithdrawalRepository) Get(ctx context.Context, id kernel.UUID) (*withdrawal.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("withdrawal request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves a withdrawal request and locks its row until the
// surrounding transaction ends. Processing locks the worker first, then the
// request, matching the lock order of the claim flow.
func (r *GormWithdrawalRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*withdrawal.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("withdrawal request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves pending requests, oldest first.
func (r *GormWithdrawalRepository) GetAllPending(ctx context.Context) ([]*withdrawal.Request, error) {
	var dtos []RequestDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", withdrawal.StatusPending).
		Order("requested_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	requests := make([]*withdrawal.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, nil
}

// SumCompletedByWorker sums the worker's completed withdrawals.
func (r *GormWithdrawalRepository) SumCompletedByWorker(ctx context.Context, workerID kernel.UUID) (kernel.Money, error) {
	if err := workerID.Validate(); err != nil {
		return kernel.Money{}, err
	}

	var total decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("worker_id = ? AND status = ?", workerID.Bytes(), withdrawal.StatusCompleted).
		Scan(&total).Error; err != nil {
		return kernel.Money{}, err
	}

	return kernel.RestoreMoney(total), nil
}

// SumPendingByWorker sums the worker's pending holds, optionally excluding
// one request by ID.
func (r *GormWithdrawalRepository) SumPendingByWorker(
	ctx context.Context,
	workerID kernel.UUID,
	exclude *kernel.UUID,
) (kernel.Money, error) {
	if err := workerID.Validate(); err != nil {
		return kernel.Money{}, err
	}

	query := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("worker_id = ? AND status = ?", workerID.Bytes(), withdrawal.StatusPending)
	if exclude != nil {
		query = query.Where("id <> ?", exclude.Bytes())
	}

	var total decimal.Decimal
	if err := query.Scan(&total).Error; err != nil {
		return kernel.Money{}, err
	}

	return kernel.RestoreMoney(total), nil
}
