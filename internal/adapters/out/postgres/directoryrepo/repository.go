package directoryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDirectory implements the ActorResolver, StaffDirectory and
// CourierDirectory ports on the shared master data tables.
type GormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory creates a new GORM master data directory.
func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

// ResolveActor resolves a worker email to the canonical identity.
func (d *GormDirectory) ResolveActor(ctx context.Context, email string) (worker.Worker, error) {
	if email == "" {
		return worker.Worker{}, errs.NewValueIsRequiredError("email")
	}

	var dto WorkerDTO
	if err := d.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return worker.Worker{}, errs.NewObjectNotFoundError("worker", email)
		}
		return worker.Worker{}, err
	}

	return workerToDomain(dto)
}

// StaffByEmail retrieves a staff member for internal dispatch. Staff are
// workers; internal deliveries address any known identity.
func (d *GormDirectory) StaffByEmail(ctx context.Context, email string) (worker.Worker, error) {
	return d.ResolveActor(ctx, email)
}

// ActiveCourier retrieves an active courier by id. Deactivated couriers
// are treated the same as unknown ones: not dispatchable.
func (d *GormDirectory) ActiveCourier(ctx context.Context, id kernel.UUID) (delivery.Courier, error) {
	if err := id.Validate(); err != nil {
		return delivery.Courier{}, err
	}

	var dto CourierDTO
	err := d.db.WithContext(ctx).First(&dto, "id = ? AND active = ?", id.Bytes(), true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return delivery.Courier{}, errs.NewObjectNotFoundError("courier", id.String())
		}
		return delivery.Courier{}, err
	}

	return courierToDomain(dto)
}
