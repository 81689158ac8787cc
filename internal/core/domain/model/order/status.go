package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Main path:
//
//	Pending ─> Assigned ─> ArrivedAtPickup ─> PickedUp ─> EnRoute
//	        ─> ArrivedAtDelivery ─> Delivered ─> Completed
//
// Side branches: IssueAtPickup and DeliveryFailed are reachable from every
// assigned pre-Delivered state and require administrative resolution
// (resume, requeue or cancel). Cancelled is terminal.
//
// Transitions are monotonic: no event moves an order to an earlier state
// except the explicit administrative Resume/Requeue path.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the claimable state: the order sits in the pool waiting for
	// a worker to claim it.
	Pending

	// Assigned indicates exactly one worker has claimed the order.
	Assigned

	// ArrivedAtPickup indicates the worker reported presence at the pickup
	// point (geofenced).
	ArrivedAtPickup

	// PickedUp is the commit point that makes seller payout eligible.
	PickedUp

	// EnRoute indicates the order is in transit to the delivery point.
	EnRoute

	// ArrivedAtDelivery indicates the worker reported presence at the
	// delivery point (geofenced).
	ArrivedAtDelivery

	// Delivered indicates the hand-off happened; the dispute grace-period
	// clock starts here.
	Delivered

	// Completed is the happy-path terminal state.
	Completed

	// IssueAtPickup blocks progress until an administrator resolves it.
	IssueAtPickup

	// DeliveryFailed is terminal for the worker; an administrator decides
	// whether to requeue or cancel.
	DeliveryFailed

	// Cancelled is the administrative terminal state.
	Cancelled
)

// Event names a lifecycle trigger. The pair (Status, Event) indexes the
// transition table; pairs absent from the table are rejected.
type Event int

const (
	// EventUnknown catches uninitialized Event values.
	EventUnknown Event = iota

	// EventClaim assigns a worker to a pending order.
	EventClaim
	// EventRelease returns an assigned order to the pool.
	EventRelease
	// EventArrivePickup reports geofenced presence at the pickup point.
	EventArrivePickup
	// EventConfirmPickup confirms the hand-over from the seller (geofenced).
	EventConfirmPickup
	// EventStartTransit begins the trip to the delivery point.
	EventStartTransit
	// EventArriveDelivery reports geofenced presence at the delivery point.
	EventArriveDelivery
	// EventConfirmDelivery confirms the hand-off to the buyer (geofenced).
	EventConfirmDelivery
	// EventComplete closes a delivered order.
	EventComplete
	// EventReportPickupIssue flags a problem at the pickup side.
	EventReportPickupIssue
	// EventFailDelivery flags a failed delivery attempt.
	EventFailDelivery
	// EventResume is the administrative override returning an issue order to
	// its assigned worker.
	EventResume
	// EventRequeue is the administrative override returning an issue order to
	// the pool.
	EventRequeue
	// EventCancel cancels the order.
	EventCancel
)

type transitionKey struct {
	from  Status
	event Event
}

// transitions is the single source of truth for legal lifecycle moves.
// Anything not listed here is rejected, replacing scattered status checks.
var transitions = map[transitionKey]Status{
	{Pending, EventClaim}:    Assigned,
	{Assigned, EventRelease}: Pending,

	{Assigned, EventArrivePickup}:             ArrivedAtPickup,
	{ArrivedAtPickup, EventConfirmPickup}:     PickedUp,
	{PickedUp, EventStartTransit}:             EnRoute,
	{EnRoute, EventArriveDelivery}:            ArrivedAtDelivery,
	{ArrivedAtDelivery, EventConfirmDelivery}: Delivered,
	{Delivered, EventComplete}:                Completed,

	{Assigned, EventReportPickupIssue}:          IssueAtPickup,
	{ArrivedAtPickup, EventReportPickupIssue}:   IssueAtPickup,
	{PickedUp, EventReportPickupIssue}:          IssueAtPickup,
	{EnRoute, EventReportPickupIssue}:           IssueAtPickup,
	{ArrivedAtDelivery, EventReportPickupIssue}: IssueAtPickup,

	{Assigned, EventFailDelivery}:          DeliveryFailed,
	{ArrivedAtPickup, EventFailDelivery}:   DeliveryFailed,
	{PickedUp, EventFailDelivery}:          DeliveryFailed,
	{EnRoute, EventFailDelivery}:           DeliveryFailed,
	{ArrivedAtDelivery, EventFailDelivery}: DeliveryFailed,

	{IssueAtPickup, EventResume}:   Assigned,
	{DeliveryFailed, EventResume}:  Assigned,
	{IssueAtPickup, EventRequeue}:  Pending,
	{DeliveryFailed, EventRequeue}: Pending,

	{Pending, EventCancel}:        Cancelled,
	{IssueAtPickup, EventCancel}:  Cancelled,
	{DeliveryFailed, EventCancel}: Cancelled,
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "Unknown",
		Pending:           "Pending",
		Assigned:          "Assigned",
		ArrivedAtPickup:   "ArrivedAtPickup",
		PickedUp:          "PickedUp",
		EnRoute:           "EnRoute",
		ArrivedAtDelivery: "ArrivedAtDelivery",
		Delivered:         "Delivered",
		Completed:         "Completed",
		IssueAtPickup:     "IssueAtPickup",
		DeliveryFailed:    "DeliveryFailed",
		Cancelled:         "Cancelled",
	}
}

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventUnknown:           "Unknown",
		EventClaim:             "Claim",
		EventRelease:           "Release",
		EventArrivePickup:      "ArrivePickup",
		EventConfirmPickup:     "ConfirmPickup",
		EventStartTransit:      "StartTransit",
		EventArriveDelivery:    "ArriveDelivery",
		EventConfirmDelivery:   "ConfirmDelivery",
		EventComplete:          "Complete",
		EventReportPickupIssue: "ReportPickupIssue",
		EventFailDelivery:      "FailDelivery",
		EventResume:            "Resume",
		EventRequeue:           "Requeue",
		EventCancel:            "Cancel",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// String returns the human-readable name of the event.
func (e Event) String() string {
	if str, ok := getEventStrings()[e]; ok {
		return str
	}
	return "Unknown"
}

// Next resolves the target status for the given event.
// Returns an error if the (status, event) pair is not in the transition table.
func (s Status) Next(event Event) (Status, error) {
	next, ok := transitions[transitionKey{from: s, event: event}]
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status transition is not allowed",
			fmt.Errorf("event %s is not legal in status %s", event, s))
	}
	return next, nil
}

// CanApply reports whether the event is legal in the current status.
func (s Status) CanApply(event Event) bool {
	_, ok := transitions[transitionKey{from: s, event: event}]
	return ok
}

// IsClaimable reports whether a worker may claim an order in this status.
func (s Status) IsClaimable() bool {
	return s == Pending
}

// IsTerminal reports whether the status ends the engine's ownership of the
// order. Terminal orders do not count against a worker's capacity.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == DeliveryFailed
}

// IsIssue reports whether the status is a blocked side branch requiring
// administrative resolution.
func (s Status) IsIssue() bool {
	return s == IssueAtPickup || s == DeliveryFailed
}
