package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrConfirmReceiptCommandIsNotConstructed = errors.New(
	"ConfirmReceiptCommand must be created via NewConfirmReceiptCommand constructor",
)

// ConfirmReceiptCommand represents the buyer accepting the delivered goods,
// which ends the dispute window early.
type ConfirmReceiptCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	buyerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmReceiptCommand creates a receipt confirmation.
func NewConfirmReceiptCommand(orderID kernel.UUID, buyerID kernel.UUID) (ConfirmReceiptCommand, error) {
	receiptCommand := ConfirmReceiptCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		receiptCommand.setOrderID(orderID),
		receiptCommand.setBuyerID(buyerID),
	); err != nil {
		return ConfirmReceiptCommand{}, err
	}

	return receiptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmReceiptCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceiptCommandIsNotConstructed)
}

// OrderID returns the order being confirmed.
func (c ConfirmReceiptCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the confirming buyer.
func (c ConfirmReceiptCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

func (c *ConfirmReceiptCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmReceiptCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}
