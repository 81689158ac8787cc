package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Checkpoint names a courier-reported progress point on an assigned order.
type Checkpoint int

const (
	// CheckpointUnknown catches uninitialized Checkpoint values.
	CheckpointUnknown Checkpoint = iota

	// CheckpointArrivedPickup is geofenced arrival at the pickup point.
	CheckpointArrivedPickup

	// CheckpointPickedUp is the geofenced pickup confirmation that releases
	// the seller payout.
	CheckpointPickedUp

	// CheckpointInTransit marks departure toward the delivery point.
	CheckpointInTransit

	// CheckpointArrivedDelivery is geofenced arrival at the delivery point.
	CheckpointArrivedDelivery
)

func getCheckpointStrings() map[Checkpoint]string {
	return map[Checkpoint]string{
		CheckpointUnknown:         "Unknown",
		CheckpointArrivedPickup:   "ArrivedPickup",
		CheckpointPickedUp:        "PickedUp",
		CheckpointInTransit:       "InTransit",
		CheckpointArrivedDelivery: "ArrivedDelivery",
	}
}

// Validate checks the Checkpoint is one of the defined values.
func (c Checkpoint) Validate() error {
	if _, ok := getCheckpointStrings()[c]; !ok || c == CheckpointUnknown {
		return errs.NewValueIsInvalidErrorWithCause("checkpoint is invalid",
			fmt.Errorf("%d is not a valid checkpoint", c))
	}
	return nil
}

// String returns the human-readable checkpoint name.
func (c Checkpoint) String() string {
	if str, ok := getCheckpointStrings()[c]; ok {
		return str
	}
	return "Unknown"
}

// RequiresLocation reports whether the checkpoint is geofenced.
func (c Checkpoint) RequiresLocation() bool {
	return c != CheckpointInTransit
}

var ErrReportCheckpointCommandIsNotConstructed = errors.New(
	"ReportCheckpointCommand must be created via NewReportCheckpointCommand constructor",
)

// ReportCheckpointCommand represents a courier reporting lifecycle progress
// on an assigned order. Geofenced checkpoints carry the courier's reported
// location; the transit checkpoint does not.
type ReportCheckpointCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	workerID   kernel.UUID
	checkpoint Checkpoint
	location   *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewReportCheckpointCommand creates a checkpoint report. The location is
// required for every checkpoint except InTransit.
func NewReportCheckpointCommand(
	orderID kernel.UUID,
	workerID kernel.UUID,
	checkpoint Checkpoint,
	location *kernel.GeoPoint,
) (ReportCheckpointCommand, error) {
	checkpointCommand := ReportCheckpointCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		checkpointCommand.setOrderID(orderID),
		checkpointCommand.setWorkerID(workerID),
		checkpointCommand.setCheckpoint(checkpoint),
	); err != nil {
		return ReportCheckpointCommand{}, err
	}

	if err := checkpointCommand.setLocation(location); err != nil {
		return ReportCheckpointCommand{}, err
	}

	return checkpointCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportCheckpointCommand) Validate() error {
	return c.guard.Validate(ErrReportCheckpointCommandIsNotConstructed)
}

// OrderID returns the order the checkpoint belongs to.
func (c ReportCheckpointCommand) OrderID() kernel.UUID {
	return c.orderID
}

// WorkerID returns the reporting courier.
func (c ReportCheckpointCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Checkpoint returns the reported progress point.
func (c ReportCheckpointCommand) Checkpoint() Checkpoint {
	return c.checkpoint
}

// Location returns the courier's reported position, nil for InTransit.
func (c ReportCheckpointCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *ReportCheckpointCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReportCheckpointCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}

func (c *ReportCheckpointCommand) setCheckpoint(checkpoint Checkpoint) error {
	if err := checkpoint.Validate(); err != nil {
		return err
	}

	c.checkpoint = checkpoint
	return nil
}

func (c *ReportCheckpointCommand) setLocation(location *kernel.GeoPoint) error {
	if c.checkpoint.RequiresLocation() {
		if location == nil {
			return errs.NewValueIsRequiredError("location")
		}
		if err := location.Validate(); err != nil {
			return err
		}
	}

	c.location = location
	return nil
}
