package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrProcessWithdrawalsBatchCommandIsNotConstructed = errors.New(
	"ProcessWithdrawalsBatchCommand must be created via NewProcessWithdrawalsBatchCommand constructor",
)

// ProcessWithdrawalsBatchCommand represents an administrator sweeping every
// pending withdrawal request in one action.
type ProcessWithdrawalsBatchCommand struct { //nolint:recvcheck //using for validation
	adminID kernel.UUID

	guard guard.ConstructorGuard
}

// NewProcessWithdrawalsBatchCommand creates a batch processing command.
func NewProcessWithdrawalsBatchCommand(adminID kernel.UUID) (ProcessWithdrawalsBatchCommand, error) {
	batchCommand := ProcessWithdrawalsBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := batchCommand.setAdminID(adminID); err != nil {
		return ProcessWithdrawalsBatchCommand{}, err
	}

	return batchCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessWithdrawalsBatchCommand) Validate() error {
	return c.guard.Validate(ErrProcessWithdrawalsBatchCommandIsNotConstructed)
}

// AdminID returns the administrator running the batch.
func (c ProcessWithdrawalsBatchCommand) AdminID() kernel.UUID {
	return c.adminID
}

func (c *ProcessWithdrawalsBatchCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}

	c.adminID = adminID
	return nil
}
