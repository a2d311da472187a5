// Package deliveryrepo persists the delivery session ledger. An invoice
// holds at most one non-cancelled delivery session; like the stage ledger
// this is enforced by a partial unique index, so two dispatchers racing on
// the same invoice cannot both create a session.
package deliveryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// sessions. All three delivery types share the table; type-specific fields
// are nullable. The partial unique index idx_deliveries_open covers
// invoice_id for rows not yet cancelled (states 1 and 2).
type DeliveryDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_deliveries_open,where:state IN (1, 2)"`
	Type      int
	State     int        `gorm:"index"`
	CreatedBy uuid.UUID  `gorm:"type:uuid"`
	StartedAt time.Time
	EndedAt   *time.Time

	SubMode         int
	PickupUsername  string
	PickupName      string
	PickupPhone     string
	CompanyName     *string
	CompanyRegistID *string

	CourierID  *uuid.UUID `gorm:"type:uuid"`
	TrackingNo string
	SlipRef    string

	StaffID *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for delivery sessions.
func (DeliveryDTO) TableName() string {
	return "delivery_sessions"
}

// fromDomain converts a delivery session aggregate to its database
// representation.
func fromDomain(sess *delivery.Session) DeliveryDTO {
	dto := DeliveryDTO{
		ID:         sess.ID().Bytes(),
		InvoiceID:  sess.InvoiceID().Bytes(),
		Type:       int(sess.Type()),
		State:      int(sess.State()),
		CreatedBy:  sess.CreatedBy().Bytes(),
		StartedAt:  sess.StartedAt(),
		EndedAt:    sess.EndedAt(),
		SubMode:    int(sess.SubMode()),
		TrackingNo: sess.TrackingNo(),
		SlipRef:    sess.SlipRef(),
	}

	pickup := sess.PickupPerson()
	dto.PickupUsername = pickup.Username
	dto.PickupName = pickup.Name
	dto.PickupPhone = pickup.Phone

	if company := sess.CompanyAccount(); company != nil {
		name := company.Name
		regID := company.RegistrationID
		dto.CompanyName = &name
		dto.CompanyRegistID = &regID
	}

	if id := sess.CourierID(); id != nil {
		raw := id.Bytes()
		dto.CourierID = &raw
	}

	if id := sess.StaffID(); id != nil {
		raw := id.Bytes()
		dto.StaffID = &raw
	}

	return dto
}

// toDomain converts a database DTO to a delivery session aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	invoiceID, err := kernel.UUIDFromBytes(dto.InvoiceID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	var company *delivery.Company
	if dto.CompanyName != nil && dto.CompanyRegistID != nil {
		company = &delivery.Company{
			Name:           *dto.CompanyName,
			RegistrationID: *dto.CompanyRegistID,
		}
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if cErr != nil {
			return nil, cErr
		}
		courierID = &cID
	}

	var staffID *kernel.UUID
	if dto.StaffID != nil {
		sID, sErr := kernel.UUIDFromBytes((*dto.StaffID)[:])
		if sErr != nil {
			return nil, sErr
		}
		staffID = &sID
	}

	return delivery.RestoreSession(
		id,
		invoiceID,
		delivery.Type(dto.Type),
		delivery.State(dto.State),
		createdBy,
		dto.StartedAt,
		dto.EndedAt,
		delivery.SubMode(dto.SubMode),
		delivery.Pickup{
			Username: dto.PickupUsername,
			Name:     dto.PickupName,
			Phone:    dto.PickupPhone,
		},
		company,
		courierID,
		dto.TrackingNo,
		dto.SlipRef,
		staffID,
	)
}
