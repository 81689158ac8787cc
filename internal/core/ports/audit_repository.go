package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// AuditRepository defines the persistence contract for order transition
// records. Records are append-only; nothing updates or deletes them.
type AuditRepository interface {
	// Append persists the transition records an order produced in the
	// current transaction.
	Append(ctx context.Context, records []order.TransitionRecord) error

	// GetAllByOrder retrieves an order's transition history in the order it
	// happened.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]order.TransitionRecord, error)
}
