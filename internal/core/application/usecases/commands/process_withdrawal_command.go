package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrProcessWithdrawalCommandIsNotConstructed = errors.New(
	"ProcessWithdrawalCommand must be created via NewProcessWithdrawalCommand constructor",
)

// ProcessWithdrawalCommand represents an administrator deciding a pending
// withdrawal request: complete the payout or reject it with a reason.
type ProcessWithdrawalCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	adminID   kernel.UUID
	approve   bool
	reason    string

	guard guard.ConstructorGuard
}

// NewProcessWithdrawalCommand creates a processing decision. A rejection
// must carry a reason; an approval must not.
func NewProcessWithdrawalCommand(
	requestID kernel.UUID,
	adminID kernel.UUID,
	approve bool,
	reason string,
) (ProcessWithdrawalCommand, error) {
	processCommand := ProcessWithdrawalCommand{
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		processCommand.setRequestID(requestID),
		processCommand.setAdminID(adminID),
		processCommand.setReason(reason),
	); err != nil {
		return ProcessWithdrawalCommand{}, err
	}

	return processCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessWithdrawalCommand) Validate() error {
	return c.guard.Validate(ErrProcessWithdrawalCommandIsNotConstructed)
}

// RequestID returns the request being decided.
func (c ProcessWithdrawalCommand) RequestID() kernel.UUID {
	return c.requestID
}

// AdminID returns the deciding administrator.
func (c ProcessWithdrawalCommand) AdminID() kernel.UUID {
	return c.adminID
}

// Approve reports the decision.
func (c ProcessWithdrawalCommand) Approve() bool {
	return c.approve
}

// Reason returns the rejection reason, empty on approval.
func (c ProcessWithdrawalCommand) Reason() string {
	return c.reason
}

func (c *ProcessWithdrawalCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *ProcessWithdrawalCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}

	c.adminID = adminID
	return nil
}

func (c *ProcessWithdrawalCommand) setReason(reason string) error {
	if !c.approve && reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
