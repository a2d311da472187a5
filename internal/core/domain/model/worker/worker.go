// Package worker models the warehouse workforce: the identified actors who
// claim stages, dispatch deliveries and raise returns. Workers are master
// data maintained outside this service; the engine resolves them through the
// directory port and uses their identity for the claim/complete invariant
// and the audit trail.
package worker

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Role names a workforce capability. Roles drive the capability checker:
// who may claim which stage and who may dispatch deliveries.
type Role string

const (
	// RolePicker may claim and complete picking.
	RolePicker Role = "picker"

	// RolePacker may claim and complete packing.
	RolePacker Role = "packer"

	// RoleDispatcher may dispatch deliveries and confirm courier slips.
	RoleDispatcher Role = "dispatcher"

	// RoleSupervisor may perform any stage or dispatch operation.
	RoleSupervisor Role = "supervisor"
)

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	switch r {
	case RolePicker, RolePacker, RoleDispatcher, RoleSupervisor:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", errors.New(string(r)+" is not a valid role"))
	}
}

// Worker is the canonical identity of a warehouse actor.
type Worker struct {
	id    kernel.UUID
	email string
	name  string
	roles []Role
}

// NewWorker creates a validated worker identity.
func NewWorker(id kernel.UUID, email string, name string, roles []Role) (Worker, error) {
	if err := id.Validate(); err != nil {
		return Worker{}, err
	}
	if email == "" {
		return Worker{}, errs.NewValueIsRequiredError("worker email")
	}
	for _, r := range roles {
		if err := r.Validate(); err != nil {
			return Worker{}, err
		}
	}

	return Worker{
		id:    id,
		email: email,
		name:  name,
		roles: append([]Role(nil), roles...),
	}, nil
}

// ID returns the worker identifier.
func (w Worker) ID() kernel.UUID { return w.id }

// Email returns the worker's email, the external identity the actor
// resolver looks up.
func (w Worker) Email() string { return w.email }

// Name returns the display name.
func (w Worker) Name() string { return w.name }

// Roles returns a copy of the worker's roles.
func (w Worker) Roles() []Role {
	return append([]Role(nil), w.roles...)
}

// HasRole reports whether the worker holds the given role.
func (w Worker) HasRole(role Role) bool {
	for _, r := range w.roles {
		if r == role {
			return true
		}
	}
	return false
}
