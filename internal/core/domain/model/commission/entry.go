// Package commission contains the earnings ledger: immutable-amount
// commission entries, their forward-only status machine, and the centralized
// rate policy table.
//
// A CommissionEntry is money owed to a worker for one order and one earnings
// type. The amount never changes after creation; the status only moves
// forward (pending → approved → paid) or sideways to cancelled. At most one
// entry exists per (order, earnings type) pair — the ledger reports a second
// recording as AlreadyRecorded instead of creating a duplicate row.
package commission

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Type names the earnings source of a commission entry.
type Type int

const (
	// TypeUnknown catches uninitialized Type values.
	TypeUnknown Type = iota

	// TypeDelivery is the delivery agent's commission on an order.
	TypeDelivery

	// TypeReferral is the referrer's cut of the platform margin.
	TypeReferral

	// TypeManualSite is a site manager's manually recorded earning.
	TypeManualSite
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:    "Unknown",
		TypeDelivery:   "Delivery",
		TypeReferral:   "Referral",
		TypeManualSite: "ManualSite",
	}
}

// Validate checks the Type is one of the defined values.
func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok || t == TypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause("earnings type is invalid",
			fmt.Errorf("%d is not a valid earnings type", t))
	}
	return nil
}

// String returns the human-readable type name.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// Status is the settlement state of a commission entry.
// Moves are forward-only: pending → approved → paid, or sideways to
// cancelled; never backward.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial state: earned but held through the
	// dispute window.
	StatusPending

	// StatusApproved means the settlement gate released the entry; it now
	// counts toward the worker's available balance.
	StatusApproved

	// StatusPaid means a completed withdrawal consumed the entry.
	StatusPaid

	// StatusCancelled voids the entry; cancellation is always an explicit
	// administrative operation, never a side effect of a payment rejection.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusApproved:  "Approved",
		StatusPaid:      "Paid",
		StatusCancelled: "Cancelled",
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

// CountsTowardBalance reports whether the entry contributes to the worker's
// earned total (approved or paid).
func (s Status) CountsTowardBalance() bool {
	return s == StatusApproved || s == StatusPaid
}

var (
	// ErrEntryIsNotConstructed is returned when using an improperly
	// initialized Entry.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry constructor")

	// ErrEntryIsCancelled is returned when trying to move a cancelled entry.
	ErrEntryIsCancelled = errors.New("commission entry is cancelled")

	// ErrEntryIsPaid is returned when trying to cancel a paid entry.
	ErrEntryIsPaid = errors.New("commission entry is already paid")
)

// Entry is a ledger record of money owed to a worker for one order and one
// earnings type. The amount is immutable after creation.
type Entry struct {
	id         kernel.UUID
	workerID   kernel.UUID
	orderID    kernel.UUID
	entryType  Type
	amount     kernel.Money
	status     Status
	createdAt  time.Time
	approvedAt *time.Time
	paidAt     *time.Time
	guard      guard.ConstructorGuard
}

// NewEntry creates a pending commission entry. The amount must be strictly
// positive: zero-value earnings are simply not recorded.
func NewEntry(
	id kernel.UUID,
	workerID kernel.UUID,
	orderID kernel.UUID,
	entryType Type,
	amount kernel.Money,
) (*Entry, error) {
	e := &Entry{
		status:    StatusPending,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setWorkerID(workerID),
		e.setOrderID(orderID),
		e.setType(entryType),
		e.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntryParams carries the persisted state for RestoreEntry.
type RestoreEntryParams struct {
	ID         kernel.UUID
	WorkerID   kernel.UUID
	OrderID    kernel.UUID
	Type       Type
	Amount     kernel.Money
	Status     Status
	CreatedAt  time.Time
	ApprovedAt *time.Time
	PaidAt     *time.Time
}

// RestoreEntry reconstructs an Entry from persistent storage.
func RestoreEntry(params RestoreEntryParams) (*Entry, error) {
	e := &Entry{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(params.ID),
		e.setWorkerID(params.WorkerID),
		e.setOrderID(params.OrderID),
		e.setType(params.Type),
		e.setAmount(params.Amount),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}

	e.status = params.Status
	e.createdAt = params.CreatedAt
	e.approvedAt = params.ApprovedAt
	e.paidAt = params.PaidAt
	return e, nil
}

// Validate ensures the Entry was created through a constructor.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// WorkerID returns the worker owed this entry.
func (e *Entry) WorkerID() kernel.UUID {
	return e.workerID
}

// OrderID returns the order this entry was earned on.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// Type returns the earnings type.
func (e *Entry) Type() Type {
	return e.entryType
}

// Amount returns the immutable entry amount.
func (e *Entry) Amount() kernel.Money {
	return e.amount
}

// Status returns the current settlement state.
func (e *Entry) Status() Status {
	return e.status
}

// CreatedAt returns the recording time.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// ApprovedAt returns when the entry was approved, nil while pending.
func (e *Entry) ApprovedAt() *time.Time {
	return e.approvedAt
}

// PaidAt returns when the entry was paid out, nil until then.
func (e *Entry) PaidAt() *time.Time {
	return e.paidAt
}

// Approve moves a pending entry to approved. Approving an entry that is
// already approved or paid is a no-op, which makes the settlement gate
// idempotent. Approving a cancelled entry is an error.
func (e *Entry) Approve() error {
	switch e.status {
	case StatusApproved, StatusPaid:
		return nil
	case StatusCancelled:
		return ErrEntryIsCancelled
	default:
		now := time.Now().UTC()
		e.status = StatusApproved
		e.approvedAt = &now
		return nil
	}
}

// MarkPaid records that a completed withdrawal consumed the entry.
// Only approved entries can be paid; paying twice is a no-op.
func (e *Entry) MarkPaid() error {
	switch e.status {
	case StatusPaid:
		return nil
	case StatusApproved:
		now := time.Now().UTC()
		e.status = StatusPaid
		e.paidAt = &now
		return nil
	case StatusCancelled:
		return ErrEntryIsCancelled
	default:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s entry cannot be marked paid", e.status))
	}
}

// Cancel voids a pending or approved entry. Paid entries cannot be
// cancelled; cancelling twice is a no-op.
func (e *Entry) Cancel() error {
	switch e.status {
	case StatusCancelled:
		return nil
	case StatusPaid:
		return ErrEntryIsPaid
	default:
		e.status = StatusCancelled
		return nil
	}
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	e.workerID = workerID
	return nil
}

func (e *Entry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Entry) setType(entryType Type) error {
	if err := entryType.Validate(); err != nil {
		return err
	}
	e.entryType = entryType
	return nil
}

func (e *Entry) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount must be positive")
	}
	e.amount = amount
	return nil
}
