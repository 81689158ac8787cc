package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// IssueKind distinguishes where in the lifecycle the problem occurred.
type IssueKind int

const (
	// IssueKindUnknown catches uninitialized IssueKind values.
	IssueKindUnknown IssueKind = iota

	// IssueKindPickup is a problem at the pickup point, reported before the
	// goods are in transit.
	IssueKindPickup

	// IssueKindDelivery is a failed delivery attempt.
	IssueKindDelivery
)

func getIssueKindStrings() map[IssueKind]string {
	return map[IssueKind]string{
		IssueKindUnknown:  "Unknown",
		IssueKindPickup:   "Pickup",
		IssueKindDelivery: "Delivery",
	}
}

// Validate checks the IssueKind is one of the defined values.
func (k IssueKind) Validate() error {
	if _, ok := getIssueKindStrings()[k]; !ok || k == IssueKindUnknown {
		return errs.NewValueIsInvalidErrorWithCause("issue kind is invalid",
			fmt.Errorf("%d is not a valid issue kind", k))
	}
	return nil
}

// String returns the human-readable issue kind name.
func (k IssueKind) String() string {
	if str, ok := getIssueKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

var ErrReportIssueCommandIsNotConstructed = errors.New(
	"ReportIssueCommand must be created via NewReportIssueCommand constructor",
)

// ReportIssueCommand represents a courier flagging a problem that blocks the
// order until an administrator steps in.
type ReportIssueCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	workerID kernel.UUID
	kind     IssueKind
	note     string

	guard guard.ConstructorGuard
}

// NewReportIssueCommand creates an issue report. The note is mandatory: an
// administrator has to act on it.
func NewReportIssueCommand(
	orderID kernel.UUID,
	workerID kernel.UUID,
	kind IssueKind,
	note string,
) (ReportIssueCommand, error) {
	issueCommand := ReportIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		issueCommand.setOrderID(orderID),
		issueCommand.setWorkerID(workerID),
		issueCommand.setKind(kind),
		issueCommand.setNote(note),
	); err != nil {
		return ReportIssueCommand{}, err
	}

	return issueCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportIssueCommandIsNotConstructed)
}

// OrderID returns the affected order.
func (c ReportIssueCommand) OrderID() kernel.UUID {
	return c.orderID
}

// WorkerID returns the reporting courier.
func (c ReportIssueCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Kind returns where the problem occurred.
func (c ReportIssueCommand) Kind() IssueKind {
	return c.kind
}

// Note returns the courier's description of the problem.
func (c ReportIssueCommand) Note() string {
	return c.note
}

func (c *ReportIssueCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReportIssueCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}

func (c *ReportIssueCommand) setKind(kind IssueKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *ReportIssueCommand) setNote(note string) error {
	if note == "" {
		return errs.NewValueIsRequiredError("note")
	}

	c.note = note
	return nil
}
