package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// TransitionRecord is one line of the order's append-only audit history:
// who moved the order, from where to where, on which event, and from which
// reported location. Records are immutable once written.
type TransitionRecord struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	From       Status
	To         Status
	Event      Event
	Actor      kernel.UUID
	Location   *kernel.GeoPoint
	OccurredAt time.Time
}

// VerificationCode is the one-time hand-off code generated when an order is
// claimed. The worker presents it at pickup.
type VerificationCode string

// Validate checks the code is a six-digit numeric string.
func (c VerificationCode) Validate() error {
	if len(c) != verificationCodeLength {
		return errVerificationCodeFormat
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return errVerificationCodeFormat
		}
	}
	return nil
}

func (c VerificationCode) String() string {
	return string(c)
}
