package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRecordEarningsCommandIsNotConstructed = errors.New(
	"RecordEarningsCommand must be created via NewRecordEarningsCommand constructor",
)

// RecordEarningsCommand represents recording a commission entry for a
// worker against an order. Delivery and referral amounts come from the rate
// policy table; manual site earnings carry an explicit amount.
type RecordEarningsCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	beneficiaryID kernel.UUID
	entryType     commission.Type
	manualAmount  *kernel.Money

	guard guard.ConstructorGuard
}

// NewRecordEarningsCommand creates an earnings recording. The manual amount
// is required for manual site earnings and forbidden otherwise.
func NewRecordEarningsCommand(
	orderID kernel.UUID,
	beneficiaryID kernel.UUID,
	entryType commission.Type,
	manualAmount *kernel.Money,
) (RecordEarningsCommand, error) {
	earningsCommand := RecordEarningsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		earningsCommand.setOrderID(orderID),
		earningsCommand.setBeneficiaryID(beneficiaryID),
		earningsCommand.setEntryType(entryType),
	); err != nil {
		return RecordEarningsCommand{}, err
	}

	if err := earningsCommand.setManualAmount(manualAmount); err != nil {
		return RecordEarningsCommand{}, err
	}

	return earningsCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordEarningsCommand) Validate() error {
	return c.guard.Validate(ErrRecordEarningsCommandIsNotConstructed)
}

// OrderID returns the order the earnings were earned on.
func (c RecordEarningsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BeneficiaryID returns the worker owed the earnings.
func (c RecordEarningsCommand) BeneficiaryID() kernel.UUID {
	return c.beneficiaryID
}

// EntryType returns the earnings type.
func (c RecordEarningsCommand) EntryType() commission.Type {
	return c.entryType
}

// ManualAmount returns the explicit amount for manual site earnings, nil for
// policy-derived types.
func (c RecordEarningsCommand) ManualAmount() *kernel.Money {
	return c.manualAmount
}

func (c *RecordEarningsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordEarningsCommand) setBeneficiaryID(beneficiaryID kernel.UUID) error {
	if err := beneficiaryID.Validate(); err != nil {
		return err
	}

	c.beneficiaryID = beneficiaryID
	return nil
}

func (c *RecordEarningsCommand) setEntryType(entryType commission.Type) error {
	if err := entryType.Validate(); err != nil {
		return err
	}

	c.entryType = entryType
	return nil
}

func (c *RecordEarningsCommand) setManualAmount(manualAmount *kernel.Money) error {
	if c.entryType == commission.TypeManualSite {
		if manualAmount == nil {
			return errs.NewValueIsRequiredError("amount")
		}
		if !manualAmount.IsPositive() {
			return errs.NewValueIsInvalidError("amount must be positive")
		}
	} else if manualAmount != nil {
		return errs.NewValueIsInvalidError("amount is derived from the rate policy for this earnings type")
	}

	c.manualAmount = manualAmount
	return nil
}
