// Package worker contains the delivery-worker aggregate. A worker claims
// orders from the pool; their concurrent-order capacity is enforced by the
// claim transaction, which re-counts active orders under the worker's row
// lock rather than trusting any cached counter.
package worker

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Role classifies what kind of work a worker performs.
type Role int

const (
	// RoleUnknown catches uninitialized Role values.
	RoleUnknown Role = iota

	// RoleFastDelivery is a courier handling express orders end to end.
	RoleFastDelivery

	// RolePickupDelivery is a courier handling standard pickup-then-deliver
	// orders.
	RolePickupDelivery

	// RoleSiteManager manages a pickup site and earns manual-site
	// commissions; site managers do not claim delivery orders.
	RoleSiteManager
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:        "Unknown",
		RoleFastDelivery:   "FastDelivery",
		RolePickupDelivery: "PickupDelivery",
		RoleSiteManager:    "SiteManager",
	}
}

// Validate checks the Role is one of the defined values.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable role name.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// CanClaimOrders reports whether the role participates in order claiming.
func (r Role) CanClaimOrders() bool {
	return r == RoleFastDelivery || r == RolePickupDelivery
}

var (
	// ErrWorkerIsNotConstructed is returned when using an improperly
	// initialized Worker.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker constructor")
	// ErrNameIsRequired is returned when creating a worker without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Worker represents a delivery worker: identity, role, availability and the
// concurrent-order capacity limit.
//
// The aggregate deliberately carries no active-order counter. The count of
// non-terminal orders is derived from the store inside the claim transaction,
// because any cached copy drifts under multiple processes.
type Worker struct {
	id        kernel.UUID
	name      string
	role      Role
	available bool
	capacity  int
	guard     guard.ConstructorGuard
}

// NewWorker creates a Worker with validation. Capacity must be positive; a
// freshly created worker is available.
func NewWorker(id kernel.UUID, name string, role Role, capacity int) (*Worker, error) {
	w := &Worker{
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setRole(role),
		w.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWorker reconstructs a Worker from persistent storage, including its
// availability flag.
func RestoreWorker(id kernel.UUID, name string, role Role, available bool, capacity int) (*Worker, error) {
	w, err := NewWorker(id, name, role, capacity)
	if err != nil {
		return nil, err
	}

	w.available = available
	return w, nil
}

// Validate ensures the Worker was created through a constructor.
func (w *Worker) Validate() error {
	if w == nil {
		return ErrWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrWorkerIsNotConstructed)
}

// IsEqual compares two workers by identifier.
func (w *Worker) IsEqual(other *Worker) bool {
	return other != nil && w.id.IsEqual(other.id)
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() kernel.UUID {
	return w.id
}

// Name returns the worker's display name.
func (w *Worker) Name() string {
	return w.name
}

// Role returns the worker's role.
func (w *Worker) Role() Role {
	return w.role
}

// IsAvailable reports whether the worker currently accepts new orders.
func (w *Worker) IsAvailable() bool {
	return w.available
}

// Capacity returns the concurrent-order limit.
func (w *Worker) Capacity() int {
	return w.capacity
}

// SetAvailable flips the worker's availability.
func (w *Worker) SetAvailable(available bool) {
	w.available = available
}

// CanAccept decides whether the worker may take one more order given the
// number of active orders counted inside the claim transaction.
//
// Returns a CapacityExceeded conflict when the limit is reached and an
// OrderUnavailable conflict when the worker is unavailable or the role does
// not claim orders; both are expected outcomes under concurrent load.
func (w *Worker) CanAccept(activeOrders int) error {
	if !w.available || !w.role.CanClaimOrders() {
		return errs.NewConflictError(errs.ReasonOrderUnavailable, w.id.String())
	}
	if activeOrders >= w.capacity {
		return errs.NewConflictError(errs.ReasonCapacityExceeded, w.id.String())
	}
	return nil
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	w.name = name
	return nil
}

func (w *Worker) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	w.role = role
	return nil
}

func (w *Worker) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity is invalid",
			fmt.Errorf("%d is not greater than 0", capacity))
	}
	w.capacity = capacity
	return nil
}
