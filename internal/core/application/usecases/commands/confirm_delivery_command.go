package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand represents the geofenced hand-off to the buyer,
// proven by the verification code issued at claim time.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	workerID kernel.UUID
	location kernel.GeoPoint
	code     order.VerificationCode

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a delivery confirmation.
func NewConfirmDeliveryCommand(
	orderID kernel.UUID,
	workerID kernel.UUID,
	location kernel.GeoPoint,
	code order.VerificationCode,
) (ConfirmDeliveryCommand, error) {
	deliveryCommand := ConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliveryCommand.setOrderID(orderID),
		deliveryCommand.setWorkerID(workerID),
		deliveryCommand.setLocation(location),
		deliveryCommand.setCode(code),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return deliveryCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being handed off.
func (c ConfirmDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// WorkerID returns the delivering courier.
func (c ConfirmDeliveryCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Location returns the courier's reported hand-off position.
func (c ConfirmDeliveryCommand) Location() kernel.GeoPoint {
	return c.location
}

// Code returns the verification code presented by the buyer.
func (c ConfirmDeliveryCommand) Code() order.VerificationCode {
	return c.code
}

func (c *ConfirmDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmDeliveryCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}

func (c *ConfirmDeliveryCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *ConfirmDeliveryCommand) setCode(code order.VerificationCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.code = code
	return nil
}
