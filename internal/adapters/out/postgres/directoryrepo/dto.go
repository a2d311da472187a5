// Package directoryrepo reads the workforce and courier master data the
// fulfillment engine resolves actors against. The tables are maintained by
// an external HR/partner sync; this adapter only reads them.
package directoryrepo

import (
	"strings"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// WorkerDTO represents the database structure of workforce master data.
// Roles are stored as a comma-separated list; the set is small and the
// column is never queried by individual role.
type WorkerDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string    `gorm:"uniqueIndex"`
	Name  string
	Roles string
}

// TableName specifies the database table name for workers.
func (WorkerDTO) TableName() string {
	return "workers"
}

// CourierDTO represents the database structure of courier master data.
type CourierDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string
	Phone  string
	Active bool `gorm:"index"`
}

// TableName specifies the database table name for couriers.
func (CourierDTO) TableName() string {
	return "couriers"
}

// workerToDomain converts workforce master data to the domain identity.
func workerToDomain(dto WorkerDTO) (worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return worker.Worker{}, err
	}

	var roles []worker.Role
	for _, raw := range strings.Split(dto.Roles, ",") {
		if raw = strings.TrimSpace(raw); raw != "" {
			roles = append(roles, worker.Role(raw))
		}
	}

	return worker.NewWorker(id, dto.Email, dto.Name, roles)
}

// courierToDomain converts courier master data to the domain type.
func courierToDomain(dto CourierDTO) (delivery.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return delivery.Courier{}, err
	}

	return delivery.Courier{
		ID:     id,
		Name:   dto.Name,
		Phone:  dto.Phone,
		Active: dto.Active,
	}, nil
}
