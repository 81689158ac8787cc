package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
)

// ErrLocationOutOfRange is the unwrap target for geofence rejections.
// The concrete LocationOutOfRangeError carries the measured distance so the
// caller knows how far off they are.
var ErrLocationOutOfRange = errors.New("location out of range")

// LocationOutOfRangeError rejects a checkpoint transition whose reported
// location lies outside the allowed radius of the target coordinate.
// It is recoverable: the caller moves closer and retries.
type LocationOutOfRangeError struct {
	Distance kernel.Meters
	Radius   kernel.Meters
}

// NewLocationOutOfRangeError creates a geofence rejection with the measured
// and allowed distances.
func NewLocationOutOfRangeError(distance, radius kernel.Meters) *LocationOutOfRangeError {
	return &LocationOutOfRangeError{Distance: distance, Radius: radius}
}

func (e *LocationOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: measured %.1f m, allowed %.1f m", ErrLocationOutOfRange, e.Distance, e.Radius)
}

func (e *LocationOutOfRangeError) Unwrap() error {
	return ErrLocationOutOfRange
}

// checkGeofence verifies the reported location lies within radius of target.
// The boundary value is accepted: distance == radius passes.
func checkGeofence(reported, target kernel.GeoPoint, radius kernel.Meters) error {
	distance, err := reported.DistanceTo(target)
	if err != nil {
		return err
	}
	if distance > radius {
		return NewLocationOutOfRangeError(distance, radius)
	}
	return nil
}
