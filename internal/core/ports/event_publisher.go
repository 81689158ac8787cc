package ports

import (
	"context"
	"time"
)

// Event is an integration message emitted after a successful command. Events
// are published outside the database transaction: a lost event never rolls
// back settled money, and consumers must tolerate duplicates.
type Event struct {
	Type      string         `json:"type"`
	Subject   string         `json:"subject"`
	Actor     string         `json:"actor,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// Event types published by the engine.
const (
	EventOrderClaimed        = "order.claimed"
	EventOrderReleased       = "order.released"
	EventOrderPayoutReleased = "order.payout_released"
	EventOrderDelivered      = "order.delivered"
	EventOrderCompleted      = "order.completed"
	EventOrderIssueReported  = "order.issue_reported"
	EventEarningsRecorded    = "commission.recorded"
	EventSettlementApproved  = "commission.approved"
	EventPaymentReviewed     = "payment.reviewed"
	EventWithdrawalRequested = "withdrawal.requested"
	EventWithdrawalProcessed = "withdrawal.processed"
)

// EventPublisher defines the outbound contract for integration events.
type EventPublisher interface {
	// Publish sends one event. Errors are logged by callers, never
	// propagated into command results.
	Publish(ctx context.Context, event Event) error

	// Close releases the underlying connection.
	Close() error
}
