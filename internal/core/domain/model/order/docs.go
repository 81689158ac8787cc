// Package order contains the order aggregate and its delivery lifecycle.
//
// The lifecycle is an explicit state machine: every legal (status, event)
// pair is listed in a transition table and anything absent from the table is
// rejected. Checkpoint transitions are geofenced against the order's pickup
// or delivery coordinates. Each successful transition produces an immutable
// TransitionRecord that the application layer appends to the audit log.
//
// The aggregate never talks to storage or the clock: verification codes,
// grace deadlines and radii are supplied by the caller, which keeps the state
// machine deterministic and fully testable.
package order
