package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrApproveSettlementCommandIsNotConstructed = errors.New(
	"ApproveSettlementCommand must be created via NewApproveSettlementCommand constructor",
)

// ApproveSettlementCommand represents releasing an order's held commissions
// once the dispute grace period has elapsed.
type ApproveSettlementCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveSettlementCommand creates a settlement approval. The actor is
// either an administrator or the sweep job's system identity.
func NewApproveSettlementCommand(orderID kernel.UUID, actorID kernel.UUID) (ApproveSettlementCommand, error) {
	settlementCommand := ApproveSettlementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		settlementCommand.setOrderID(orderID),
		settlementCommand.setActorID(actorID),
	); err != nil {
		return ApproveSettlementCommand{}, err
	}

	return settlementCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveSettlementCommand) Validate() error {
	return c.guard.Validate(ErrApproveSettlementCommandIsNotConstructed)
}

// OrderID returns the order being settled.
func (c ApproveSettlementCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns who approved the settlement.
func (c ApproveSettlementCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ApproveSettlementCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApproveSettlementCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
