// Package withdrawal contains the withdrawal-request aggregate. A request
// reserves part of a worker's available balance until an administrator
// completes or rejects it; the reservation is what keeps two overlapping
// requests from paying out the same earnings twice.
package withdrawal

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Status is the processing state of a withdrawal request.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending means the request is awaiting administrator review. The
	// requested amount is held against the worker's balance while pending.
	StatusPending

	// StatusCompleted means the payout was made. Terminal.
	StatusCompleted

	// StatusRejected means an administrator declined the request and the held
	// amount returned to the worker's balance. Terminal.
	StatusRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusCompleted: "Completed",
		StatusRejected:  "Rejected",
	}
}

// Validate checks the Status is one of the defined values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable status name.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the request reached a final state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

var (
	// ErrRequestIsNotConstructed is returned when using an improperly
	// initialized Request.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest constructor")

	// ErrReasonIsRequired is returned when rejecting without a reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// Request is a worker's withdrawal request. Once terminal it never moves
// again; a second processing attempt surfaces as an AlreadyRecorded conflict
// so retried admin actions stay harmless.
type Request struct {
	id           kernel.UUID
	workerID     kernel.UUID
	amount       kernel.Money
	status       Status
	requestedAt  time.Time
	processedAt  *time.Time
	processedBy  *kernel.UUID
	rejectReason string
	guard        guard.ConstructorGuard
}

// NewRequest creates a pending withdrawal request for a positive amount.
// Balance sufficiency is not checked here: only the processing transaction,
// holding the worker's row lock, can see a trustworthy balance.
func NewRequest(id kernel.UUID, workerID kernel.UUID, amount kernel.Money) (*Request, error) {
	r := &Request{
		status:      StatusPending,
		requestedAt: time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setWorkerID(workerID),
		r.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRequestParams carries the persisted state for RestoreRequest.
type RestoreRequestParams struct {
	ID           kernel.UUID
	WorkerID     kernel.UUID
	Amount       kernel.Money
	Status       Status
	RequestedAt  time.Time
	ProcessedAt  *time.Time
	ProcessedBy  *kernel.UUID
	RejectReason string
}

// RestoreRequest reconstructs a Request from persistent storage.
func RestoreRequest(params RestoreRequestParams) (*Request, error) {
	r := &Request{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(params.ID),
		r.setWorkerID(params.WorkerID),
		r.setAmount(params.Amount),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}

	r.status = params.Status
	r.requestedAt = params.RequestedAt
	r.processedAt = params.ProcessedAt
	r.processedBy = params.ProcessedBy
	r.rejectReason = params.RejectReason
	return r, nil
}

// Validate ensures the Request was created through a constructor.
func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID {
	return r.id
}

// WorkerID returns the requesting worker.
func (r *Request) WorkerID() kernel.UUID {
	return r.workerID
}

// Amount returns the requested payout amount.
func (r *Request) Amount() kernel.Money {
	return r.amount
}

// Status returns the processing state.
func (r *Request) Status() Status {
	return r.status
}

// RequestedAt returns when the worker filed the request.
func (r *Request) RequestedAt() time.Time {
	return r.requestedAt
}

// ProcessedAt returns when an administrator processed the request, nil while
// pending.
func (r *Request) ProcessedAt() *time.Time {
	return r.processedAt
}

// ProcessedBy returns the administrator who processed the request, nil while
// pending.
func (r *Request) ProcessedBy() *kernel.UUID {
	return r.processedBy
}

// RejectReason returns the administrator's reason, empty unless rejected.
func (r *Request) RejectReason() string {
	return r.rejectReason
}

// Complete marks the payout as made. Only pending requests can complete.
func (r *Request) Complete(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	if r.status.IsTerminal() {
		return errs.NewConflictError(errs.ReasonAlreadyRecorded, r.id.String())
	}

	now := time.Now().UTC()
	r.status = StatusCompleted
	r.processedAt = &now
	r.processedBy = &adminID
	return nil
}

// Reject declines the request with a mandatory reason, releasing the held
// amount back to the worker's balance.
func (r *Request) Reject(adminID kernel.UUID, reason string) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return ErrReasonIsRequired
	}
	if r.status.IsTerminal() {
		return errs.NewConflictError(errs.ReasonAlreadyRecorded, r.id.String())
	}

	now := time.Now().UTC()
	r.status = StatusRejected
	r.processedAt = &now
	r.processedBy = &adminID
	r.rejectReason = reason
	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	r.workerID = workerID
	return nil
}

func (r *Request) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount must be positive")
	}
	r.amount = amount
	return nil
}
