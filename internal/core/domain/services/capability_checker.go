package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
)

// CapabilityChecker decides which operations a worker may trigger.
// The legacy workflow scattered ad-hoc role-string comparisons across its
// request handlers; here the checks are a single injectable service so the
// stage engine stays free of authorization logic.
type CapabilityChecker interface {
	// CanClaim reports whether the worker may claim (and complete) the
	// given worker stage.
	CanClaim(w worker.Worker, stage kernel.Stage) bool

	// CanDispatch reports whether the worker may dispatch deliveries and
	// confirm courier slips.
	CanDispatch(w worker.Worker) bool
}

// RoleCapabilityChecker implements CapabilityChecker from the workers'
// role assignments. Supervisors may do everything; the other roles map
// one-to-one onto their stage.
type RoleCapabilityChecker struct{}

// NewRoleCapabilityChecker creates a role-based capability checker.
func NewRoleCapabilityChecker() RoleCapabilityChecker {
	return RoleCapabilityChecker{}
}

// CanClaim reports whether the worker holds the role matching the stage.
func (RoleCapabilityChecker) CanClaim(w worker.Worker, stage kernel.Stage) bool {
	if w.HasRole(worker.RoleSupervisor) {
		return true
	}
	switch stage {
	case kernel.StagePicking:
		return w.HasRole(worker.RolePicker)
	case kernel.StagePacking:
		return w.HasRole(worker.RolePacker)
	default:
		return false
	}
}

// CanDispatch reports whether the worker may run the delivery dispatcher.
func (RoleCapabilityChecker) CanDispatch(w worker.Worker) bool {
	return w.HasRole(worker.RoleDispatcher) || w.HasRole(worker.RoleSupervisor)
}
