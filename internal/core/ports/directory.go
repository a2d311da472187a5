package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
)

// ActorResolver resolves an external actor identifier (email) to the
// canonical worker identity. Returns errs.ObjectNotFoundError for unknown
// actors.
type ActorResolver interface {
	ResolveActor(ctx context.Context, email string) (worker.Worker, error)
}

// CourierDirectory looks up courier master data for courier dispatch.
type CourierDirectory interface {
	// ActiveCourier retrieves an active courier by id.
	// Returns errs.ObjectNotFoundError for unknown or inactive couriers.
	ActiveCourier(ctx context.Context, id kernel.UUID) (delivery.Courier, error)
}

// StaffDirectory looks up deliverable staff for internal dispatch.
type StaffDirectory interface {
	// StaffByEmail retrieves a staff member by email.
	// Returns errs.ObjectNotFoundError for unknown staff.
	StaffByEmail(ctx context.Context, email string) (worker.Worker, error)
}
