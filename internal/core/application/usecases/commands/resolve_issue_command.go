package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Resolution is the administrator's verdict on a blocked order.
type Resolution int

const (
	// ResolutionUnknown catches uninitialized Resolution values.
	ResolutionUnknown Resolution = iota

	// ResolutionResume returns the order to its assigned worker.
	ResolutionResume

	// ResolutionRequeue returns the order to the pool, clearing the
	// assignment.
	ResolutionRequeue

	// ResolutionCancel terminates the order.
	ResolutionCancel
)

func getResolutionStrings() map[Resolution]string {
	return map[Resolution]string{
		ResolutionUnknown: "Unknown",
		ResolutionResume:  "Resume",
		ResolutionRequeue: "Requeue",
		ResolutionCancel:  "Cancel",
	}
}

// Validate checks the Resolution is one of the defined values.
func (r Resolution) Validate() error {
	if _, ok := getResolutionStrings()[r]; !ok || r == ResolutionUnknown {
		return errs.NewValueIsInvalidErrorWithCause("resolution is invalid",
			fmt.Errorf("%d is not a valid resolution", r))
	}
	return nil
}

// String returns the human-readable resolution name.
func (r Resolution) String() string {
	if str, ok := getResolutionStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

var ErrResolveIssueCommandIsNotConstructed = errors.New(
	"ResolveIssueCommand must be created via NewResolveIssueCommand constructor",
)

// ResolveIssueCommand represents an administrator unblocking an order that a
// courier flagged.
type ResolveIssueCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	adminID    kernel.UUID
	resolution Resolution

	guard guard.ConstructorGuard
}

// NewResolveIssueCommand creates an issue resolution.
func NewResolveIssueCommand(
	orderID kernel.UUID,
	adminID kernel.UUID,
	resolution Resolution,
) (ResolveIssueCommand, error) {
	resolveCommand := ResolveIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		resolveCommand.setOrderID(orderID),
		resolveCommand.setAdminID(adminID),
		resolveCommand.setResolution(resolution),
	); err != nil {
		return ResolveIssueCommand{}, err
	}

	return resolveCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveIssueCommand) Validate() error {
	return c.guard.Validate(ErrResolveIssueCommandIsNotConstructed)
}

// OrderID returns the blocked order.
func (c ResolveIssueCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AdminID returns the resolving administrator.
func (c ResolveIssueCommand) AdminID() kernel.UUID {
	return c.adminID
}

// Resolution returns the verdict.
func (c ResolveIssueCommand) Resolution() Resolution {
	return c.resolution
}

func (c *ResolveIssueCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ResolveIssueCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}

	c.adminID = adminID
	return nil
}

func (c *ResolveIssueCommand) setResolution(resolution Resolution) error {
	if err := resolution.Validate(); err != nil {
		return err
	}

	c.resolution = resolution
	return nil
}
