package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrReviewPaymentCommandIsNotConstructed = errors.New(
	"ReviewPaymentCommand must be created via NewReviewPaymentCommand constructor",
)

// ReviewPaymentCommand carries the external payment review's verdict on a
// payment-on-delivery order.
type ReviewPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	reviewerID kernel.UUID
	approved   bool

	guard guard.ConstructorGuard
}

// NewReviewPaymentCommand creates a payment review verdict.
func NewReviewPaymentCommand(orderID kernel.UUID, reviewerID kernel.UUID, approved bool) (ReviewPaymentCommand, error) {
	reviewCommand := ReviewPaymentCommand{
		approved: approved,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		reviewCommand.setOrderID(orderID),
		reviewCommand.setReviewerID(reviewerID),
	); err != nil {
		return ReviewPaymentCommand{}, err
	}

	return reviewCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewPaymentCommand) Validate() error {
	return c.guard.Validate(ErrReviewPaymentCommandIsNotConstructed)
}

// OrderID returns the reviewed order.
func (c ReviewPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ReviewerID returns the reviewing actor.
func (c ReviewPaymentCommand) ReviewerID() kernel.UUID {
	return c.reviewerID
}

// Approved reports the verdict.
func (c ReviewPaymentCommand) Approved() bool {
	return c.approved
}

func (c *ReviewPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReviewPaymentCommand) setReviewerID(reviewerID kernel.UUID) error {
	if err := reviewerID.Validate(); err != nil {
		return err
	}

	c.reviewerID = reviewerID
	return nil
}
