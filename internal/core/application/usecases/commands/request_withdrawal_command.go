package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRequestWithdrawalCommandIsNotConstructed = errors.New(
	"RequestWithdrawalCommand must be created via NewRequestWithdrawalCommand constructor",
)

// RequestWithdrawalCommand represents a worker asking to withdraw part of
// their available balance.
type RequestWithdrawalCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	workerID  kernel.UUID
	amount    kernel.Money

	guard guard.ConstructorGuard
}

// NewRequestWithdrawalCommand creates a withdrawal request command. The
// request ID is supplied by the caller so retried submissions stay the same
// request.
func NewRequestWithdrawalCommand(
	requestID kernel.UUID,
	workerID kernel.UUID,
	amount kernel.Money,
) (RequestWithdrawalCommand, error) {
	withdrawalCommand := RequestWithdrawalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		withdrawalCommand.setRequestID(requestID),
		withdrawalCommand.setWorkerID(workerID),
		withdrawalCommand.setAmount(amount),
	); err != nil {
		return RequestWithdrawalCommand{}, err
	}

	return withdrawalCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestWithdrawalCommand) Validate() error {
	return c.guard.Validate(ErrRequestWithdrawalCommandIsNotConstructed)
}

// RequestID returns the identifier for the new request.
func (c RequestWithdrawalCommand) RequestID() kernel.UUID {
	return c.requestID
}

// WorkerID returns the requesting worker.
func (c RequestWithdrawalCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Amount returns the requested payout.
func (c RequestWithdrawalCommand) Amount() kernel.Money {
	return c.amount
}

func (c *RequestWithdrawalCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *RequestWithdrawalCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}

func (c *RequestWithdrawalCommand) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount must be positive")
	}

	c.amount = amount
	return nil
}
