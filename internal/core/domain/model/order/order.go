package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Category classifies an order for rate-policy lookup. The commission policy
// table is keyed by category; unknown categories resolve to the default
// policy rather than failing.
type Category string

const (
	// CategoryStandard is the default marketplace order category.
	CategoryStandard Category = "standard"
	// CategoryExpress is the fast-delivery category with its own rate policy.
	CategoryExpress Category = "express"
)

// Validate checks the category is non-empty.
func (c Category) Validate() error {
	if c == "" {
		return errs.NewValueIsRequiredError("category")
	}
	return nil
}

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrWorkerIsNotAssignee is returned when a worker acts on an order that
	// is assigned to somebody else.
	ErrWorkerIsNotAssignee = errors.New("order is assigned to a different worker")

	// ErrOrderHasOpenIssue is returned when an operation requires the order
	// to be unblocked but an issue or payment rejection is open.
	ErrOrderHasOpenIssue = errors.New("order has an open issue")
)

// Order is the aggregate root of the delivery lifecycle. It owns the
// assignment (at most one worker at any instant), the status machine, the
// geofenced checkpoints, the grace deadline and the seller-payout commit
// point.
//
// Invariants:
//   - Exactly one worker holds an Assigned order; assignment is never
//     silently replaced, only released or requeued.
//   - Status moves only along the transition table; the administrative
//     Resume/Requeue path is the single non-monotonic exception.
//   - The gross value is derived from the line items once at construction.
//   - Seller payout is released at most once, at the PickedUp commit point.
//
// All mutations append a TransitionRecord to the aggregate's uncommitted
// list; the application layer persists those records in the same transaction
// as the order row and publishes events only after commit.
type Order struct {
	id                kernel.UUID
	category          Category
	status            Status
	workerID          *kernel.UUID
	pickup            kernel.GeoPoint
	delivery          kernel.GeoPoint
	lineItems         []LineItem
	grossValue        kernel.Money
	verificationCode  VerificationCode
	graceDeadline     *time.Time
	payoutReleased    bool
	paymentOnDelivery bool
	paymentRejected   bool
	issueNote         string

	transitions []TransitionRecord
	guard       guard.ConstructorGuard
}

// NewOrder creates a claimable order from validated line items. The gross
// value is the sum of the item totals. paymentOnDelivery marks orders whose
// payment is collected after delivery and settled through the payment-review
// bridge.
func NewOrder(
	id kernel.UUID,
	category Category,
	pickup kernel.GeoPoint,
	delivery kernel.GeoPoint,
	lineItems []LineItem,
	paymentOnDelivery bool,
) (*Order, error) {
	o := &Order{
		status:            Pending,
		paymentOnDelivery: paymentOnDelivery,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCategory(category),
		o.setPickup(pickup),
		o.setDelivery(delivery),
		o.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	gross := kernel.ZeroMoney()
	for _, item := range o.lineItems {
		gross = gross.Add(item.Total())
	}
	o.grossValue = gross

	return o, nil
}

// RestoreOrderParams carries the persisted state for RestoreOrder.
type RestoreOrderParams struct {
	ID                kernel.UUID
	Category          Category
	Status            Status
	WorkerID          *kernel.UUID
	Pickup            kernel.GeoPoint
	Delivery          kernel.GeoPoint
	LineItems         []LineItem
	GrossValue        kernel.Money
	VerificationCode  VerificationCode
	GraceDeadline     *time.Time
	PayoutReleased    bool
	PaymentOnDelivery bool
	PaymentRejected   bool
	IssueNote         string
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it accepts the persisted status, assignment and flags and
// does not rederive the gross value.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setCategory(params.Category),
		o.setPickup(params.Pickup),
		o.setDelivery(params.Delivery),
		o.setLineItems(params.LineItems),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if params.WorkerID != nil {
		if err := params.WorkerID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = params.Status
	o.workerID = params.WorkerID
	o.grossValue = params.GrossValue
	o.verificationCode = params.VerificationCode
	o.graceDeadline = params.GraceDeadline
	o.payoutReleased = params.PayoutReleased
	o.paymentOnDelivery = params.PaymentOnDelivery
	o.paymentRejected = params.PaymentRejected
	o.issueNote = params.IssueNote

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Category returns the rate-policy category.
func (o *Order) Category() Category {
	return o.category
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Worker returns the assigned worker's ID, or nil if unassigned.
func (o *Order) Worker() *kernel.UUID {
	return o.workerID
}

// Pickup returns the pickup coordinates.
func (o *Order) Pickup() kernel.GeoPoint {
	return o.pickup
}

// Delivery returns the delivery coordinates.
func (o *Order) Delivery() kernel.GeoPoint {
	return o.delivery
}

// LineItems returns a copy of the order's line items.
func (o *Order) LineItems() []LineItem {
	out := make([]LineItem, len(o.lineItems))
	copy(out, o.lineItems)
	return out
}

// GrossValue returns the order's gross value (sum of line item totals).
func (o *Order) GrossValue() kernel.Money {
	return o.grossValue
}

// VerificationCode returns the hand-off code, empty until claimed.
func (o *Order) VerificationCode() VerificationCode {
	return o.verificationCode
}

// GraceDeadline returns the stored dispute-window deadline, nil until
// Delivered. The deadline is evaluated lazily; no in-process timer exists.
func (o *Order) GraceDeadline() *time.Time {
	return o.graceDeadline
}

// PayoutReleased reports whether the seller-payout commit point has fired.
func (o *Order) PayoutReleased() bool {
	return o.payoutReleased
}

// PaymentOnDelivery reports whether payment is collected post-delivery.
func (o *Order) PaymentOnDelivery() bool {
	return o.paymentOnDelivery
}

// PaymentRejected reports whether an external payment review rejected the
// order's payment. A rejection blocks settlement but cancels nothing.
func (o *Order) PaymentRejected() bool {
	return o.paymentRejected
}

// IssueNote returns the note attached to the open issue, if any.
func (o *Order) IssueNote() string {
	return o.issueNote
}

// HasOpenIssue reports whether settlement and completion are blocked: the
// order sits in an issue branch or its payment was rejected.
func (o *Order) HasOpenIssue() bool {
	return o.status.IsIssue() || o.paymentRejected
}

// GraceElapsed reports whether the stored dispute window has passed at the
// given instant. False while no deadline is stored.
func (o *Order) GraceElapsed(now time.Time) bool {
	return o.graceDeadline != nil && !now.Before(*o.graceDeadline)
}

// PullTransitions returns the uncommitted audit records accumulated by the
// aggregate's mutations and clears the internal list. The caller persists
// them in the same transaction as the order row.
func (o *Order) PullTransitions() []TransitionRecord {
	out := o.transitions
	o.transitions = nil
	return out
}

// LoadedStatus returns the status the aggregate had before this transaction's
// uncommitted mutations. Repositories condition their writes on it so a
// concurrent writer surfaces as a conflict instead of a silent overwrite.
func (o *Order) LoadedStatus() Status {
	if len(o.transitions) > 0 {
		return o.transitions[0].From
	}
	return o.status
}

// Claim assigns the order to a worker and stores the generated hand-off
// verification code.
//
// Claim only succeeds on an unassigned, claimable order; anything else is an
// OrderUnavailable conflict, which is the expected outcome for every loser of
// a claim race. Capacity is the caller's concern: the application layer
// re-checks the worker's active-order count inside the same transaction.
func (o *Order) Claim(workerID kernel.UUID, code VerificationCode) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	if err := code.Validate(); err != nil {
		return err
	}

	if !o.status.IsClaimable() || o.workerID != nil {
		return errs.NewConflictError(errs.ReasonOrderUnavailable, o.id.String())
	}

	if err := o.apply(EventClaim, workerID, nil); err != nil {
		return err
	}

	o.workerID = &workerID
	o.verificationCode = code
	return nil
}

// Release returns an assigned order to the pool in its claimable state,
// clearing the assignment and the hand-off code. Only the assigned worker
// (or an administrator acting on their behalf) may release.
func (o *Order) Release(workerID kernel.UUID) error {
	if err := o.ensureAssignee(workerID); err != nil {
		return err
	}

	if err := o.apply(EventRelease, workerID, nil); err != nil {
		return err
	}

	o.workerID = nil
	o.verificationCode = ""
	return nil
}

// ArriveAtPickup records geofenced presence at the pickup point.
func (o *Order) ArriveAtPickup(workerID kernel.UUID, reported kernel.GeoPoint, radius kernel.Meters) error {
	if err := o.ensureAssignee(workerID); err != nil {
		return err
	}
	if err := checkGeofence(reported, o.pickup, radius); err != nil {
		return err
	}

	return o.apply(EventArrivePickup, workerID, &reported)
}

// ConfirmPickup is the commit point that makes seller payout eligible.
//
// It is idempotent: confirming an order that is already PickedUp is a
// successful no-op, so a retried request cannot double-trigger the payout
// release. The returned flag is true exactly once, when the payout release
// actually fires.
func (o *Order) ConfirmPickup(
	workerID kernel.UUID, reported kernel.GeoPoint, radius kernel.Meters,
) (released bool, err error) {
	if err = o.ensureAssignee(workerID); err != nil {
		return false, err
	}

	if o.status == PickedUp {
		return false, nil
	}

	if err = checkGeofence(reported, o.pickup, radius); err != nil {
		return false, err
	}

	if err = o.apply(EventConfirmPickup, workerID, &reported); err != nil {
		return false, err
	}

	released = !o.payoutReleased
	o.payoutReleased = true
	return released, nil
}

// StartTransit moves a picked-up order onto the road. No geofence applies.
func (o *Order) StartTransit(workerID kernel.UUID) error {
	if err := o.ensureAssignee(workerID); err != nil {
		return err
	}

	return o.apply(EventStartTransit, workerID, nil)
}

// ArriveAtDelivery records geofenced presence at the delivery point.
func (o *Order) ArriveAtDelivery(workerID kernel.UUID, reported kernel.GeoPoint, radius kernel.Meters) error {
	if err := o.ensureAssignee(workerID); err != nil {
		return err
	}
	if err := checkGeofence(reported, o.delivery, radius); err != nil {
		return err
	}

	return o.apply(EventArriveDelivery, workerID, &reported)
}

// Deliver records the geofenced hand-off and stores the dispute grace
// deadline. The deadline is a stored timestamp evaluated lazily by the
// settlement gate; no in-process timer is started.
func (o *Order) Deliver(
	workerID kernel.UUID, reported kernel.GeoPoint, radius kernel.Meters, graceDeadline time.Time,
) error {
	if err := o.ensureAssignee(workerID); err != nil {
		return err
	}
	if err := checkGeofence(reported, o.delivery, radius); err != nil {
		return err
	}

	if err := o.apply(EventConfirmDelivery, workerID, &reported); err != nil {
		return err
	}

	o.graceDeadline = &graceDeadline
	return nil
}

// Complete closes a delivered order. Blocked while an issue or payment
// rejection is open.
func (o *Order) Complete(actor kernel.UUID) error {
	if o.paymentRejected {
		return ErrOrderHasOpenIssue
	}

	return o.apply(EventComplete, actor, nil)
}

// ReportPickupIssue flags a pickup-side problem, blocking seller payout and
// settlement until an administrator resolves it.
func (o *Order) ReportPickupIssue(workerID kernel.UUID, note string) error {
	if err := o.ensureAssignee(workerID); err != nil {
		return err
	}

	if err := o.apply(EventReportPickupIssue, workerID, nil); err != nil {
		return err
	}

	o.issueNote = note
	return nil
}

// FailDelivery flags a failed delivery attempt, blocking further progress
// until an administrator resolves it.
func (o *Order) FailDelivery(workerID kernel.UUID, note string) error {
	if err := o.ensureAssignee(workerID); err != nil {
		return err
	}

	if err := o.apply(EventFailDelivery, workerID, nil); err != nil {
		return err
	}

	o.issueNote = note
	return nil
}

// Resume is the administrative override returning a blocked order to its
// assigned worker. The assignment must still be present.
func (o *Order) Resume(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	if o.workerID == nil {
		return errs.NewValueIsRequiredError("order has no assigned worker to resume with")
	}

	if err := o.apply(EventResume, adminID, nil); err != nil {
		return err
	}

	o.issueNote = ""
	return nil
}

// Requeue is the administrative override returning a blocked order to the
// pool, clearing the assignment.
func (o *Order) Requeue(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}

	if err := o.apply(EventRequeue, adminID, nil); err != nil {
		return err
	}

	o.workerID = nil
	o.verificationCode = ""
	o.issueNote = ""
	return nil
}

// Cancel terminates the order administratively.
func (o *Order) Cancel(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}

	return o.apply(EventCancel, adminID, nil)
}

// RejectPayment marks the order's payment as rejected by the external review.
// Pending commissions stay pending; nothing is cancelled here.
func (o *Order) RejectPayment() {
	o.paymentRejected = true
}

// ApprovePayment clears a previous payment rejection.
func (o *Order) ApprovePayment() {
	o.paymentRejected = false
}

// ensureAssignee verifies the acting worker currently holds the order.
func (o *Order) ensureAssignee(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	if o.workerID == nil || !o.workerID.IsEqual(workerID) {
		return ErrWorkerIsNotAssignee
	}
	return nil
}

// apply resolves the transition table, flips the status and appends the audit
// record for the move.
func (o *Order) apply(event Event, actor kernel.UUID, location *kernel.GeoPoint) error {
	next, err := o.status.Next(event)
	if err != nil {
		return err
	}

	record := TransitionRecord{
		ID:         kernel.NewUUID(),
		OrderID:    o.id,
		From:       o.status,
		To:         next,
		Event:      event,
		Actor:      actor,
		Location:   location,
		OccurredAt: time.Now().UTC(),
	}

	o.status = next
	o.transitions = append(o.transitions, record)
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	o.category = category
	return nil
}

func (o *Order) setPickup(pickup kernel.GeoPoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	o.pickup = pickup
	return nil
}

func (o *Order) setDelivery(delivery kernel.GeoPoint) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	o.delivery = delivery
	return nil
}

func (o *Order) setLineItems(lineItems []LineItem) error {
	if len(lineItems) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	for _, item := range lineItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.lineItems = make([]LineItem, len(lineItems))
	copy(o.lineItems, lineItems)
	return nil
}
