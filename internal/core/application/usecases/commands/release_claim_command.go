package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrReleaseClaimCommandIsNotConstructed = errors.New(
	"ReleaseClaimCommand must be created via NewReleaseClaimCommand constructor",
)

// ReleaseClaimCommand represents a worker giving an assigned order back to
// the pool before pickup.
type ReleaseClaimCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleaseClaimCommand creates a command to release a claimed order.
func NewReleaseClaimCommand(orderID kernel.UUID, workerID kernel.UUID) (ReleaseClaimCommand, error) {
	releaseCommand := ReleaseClaimCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		releaseCommand.setOrderID(orderID),
		releaseCommand.setWorkerID(workerID),
	); err != nil {
		return ReleaseClaimCommand{}, err
	}

	return releaseCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseClaimCommand) Validate() error {
	return c.guard.Validate(ErrReleaseClaimCommandIsNotConstructed)
}

// OrderID returns the order being released.
func (c ReleaseClaimCommand) OrderID() kernel.UUID {
	return c.orderID
}

// WorkerID returns the releasing worker.
func (c ReleaseClaimCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c *ReleaseClaimCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReleaseClaimCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}
