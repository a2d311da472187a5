// Package delivery models the delivery leg of the fulfillment workflow.
// A packed invoice leaves the warehouse through exactly one of three
// protocols: direct counter pickup, external courier, or internal staff
// delivery. Each protocol is a small state machine of its own; the direct
// protocol completes synchronously, the other two pass through the consider
// list and need independent confirmation before the invoice is marked
// delivered.
package delivery

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Session instance was not
	// created through one of the New*Session constructors or RestoreSession.
	ErrDeliveryIsNotConstructed = errors.New("delivery Session must be created via its constructors")

	// ErrInvalidPhoneFormat is returned when a direct-delivery pickup phone
	// number is not exactly ten digits.
	ErrInvalidPhoneFormat = errors.New("pickup phone must be exactly 10 digits")

	// ErrSessionNotConsiderable is returned when a confirmation action is
	// applied to a delivery session that is not on the consider list.
	ErrSessionNotConsiderable = errors.New("delivery session is not awaiting confirmation")

	// ErrWrongDeliveryType is returned when a confirmation action does not
	// match the session's protocol, e.g. uploading a courier slip to an
	// internal delivery.
	ErrWrongDeliveryType = errors.New("action does not match the delivery type")

	// ErrActorMismatch is returned when someone other than the assigned
	// staff member attempts to confirm an internal delivery.
	ErrActorMismatch = errors.New("internal delivery must be confirmed by the assigned staff member")

	// ErrDuplicateDeliverySession is returned when a second delivery session
	// is created for an invoice that already holds an active one. The
	// repository surfaces it both on its pre-check and from the database
	// uniqueness constraint.
	ErrDuplicateDeliverySession = errors.New("an active delivery session already exists for this invoice")
)

// Pickup identifies the person collecting a direct delivery at the counter.
type Pickup struct {
	Username string
	Name     string
	Phone    string
}

// Company identifies the account a company pickup is collected on.
type Company struct {
	Name           string
	RegistrationID string
}

// Session is one invoice's delivery session. Exactly one exists per invoice;
// only the fields of the chosen protocol are populated.
type Session struct {
	id        kernel.UUID
	invoiceID kernel.UUID
	typ       Type
	state     State
	createdBy kernel.UUID
	startedAt time.Time
	endedAt   *time.Time

	// direct
	subMode SubMode
	pickup  Pickup
	company *Company

	// courier
	courierID  *kernel.UUID
	trackingNo string
	slipRef    string

	// internal
	staffID *kernel.UUID

	isConstructed bool
}

// NewDirectSession creates and immediately completes a counter-pickup
// delivery. Direct deliveries deliberately skip the consider list: the
// customer is physically present, so the session is created already
// delivered with start time equal to end time, and the caller marks the
// invoice delivered in the same transaction.
//
// Required fields per sub-mode:
//   - Patient: pickup username, name and a ten-digit phone number
//   - Company: all of the above plus company name and registration id
func NewDirectSession(
	id kernel.UUID,
	invoiceID kernel.UUID,
	createdBy kernel.UUID,
	subMode SubMode,
	pickup Pickup,
	company *Company,
) (*Session, error) {
	if err := errors.Join(id.Validate(), invoiceID.Validate(), createdBy.Validate()); err != nil {
		return nil, err
	}
	if err := subMode.Validate(); err != nil {
		return nil, err
	}
	if err := validatePickup(pickup); err != nil {
		return nil, err
	}
	if subMode == SubModeCompany {
		if company == nil {
			return nil, errs.NewValueIsRequiredError("company")
		}
		if company.Name == "" {
			return nil, errs.NewValueIsRequiredError("company name")
		}
		if company.RegistrationID == "" {
			return nil, errs.NewValueIsRequiredError("company registration id")
		}
	}

	now := time.Now().UTC()
	return &Session{
		id:            id,
		invoiceID:     invoiceID,
		typ:           TypeDirect,
		state:         StateDelivered,
		createdBy:     createdBy,
		startedAt:     now,
		endedAt:       &now,
		subMode:       subMode,
		pickup:        pickup,
		company:       company,
		isConstructed: true,
	}, nil
}

// NewCourierSession creates a pending courier delivery on the consider list.
// The invoice stays packed until a proof-of-delivery slip is uploaded.
func NewCourierSession(
	id kernel.UUID,
	invoiceID kernel.UUID,
	createdBy kernel.UUID,
	courierID kernel.UUID,
	trackingNo string,
) (*Session, error) {
	if err := errors.Join(id.Validate(), invoiceID.Validate(), createdBy.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}

	return &Session{
		id:            id,
		invoiceID:     invoiceID,
		typ:           TypeCourier,
		state:         StateToConsider,
		createdBy:     createdBy,
		startedAt:     time.Now().UTC(),
		courierID:     &courierID,
		trackingNo:    trackingNo,
		isConstructed: true,
	}, nil
}

// NewInternalSession creates a pending staff delivery on the consider list.
// The invoice stays packed until the assigned staff member confirms.
func NewInternalSession(
	id kernel.UUID,
	invoiceID kernel.UUID,
	createdBy kernel.UUID,
	staffID kernel.UUID,
) (*Session, error) {
	if err := errors.Join(id.Validate(), invoiceID.Validate(), createdBy.Validate(), staffID.Validate()); err != nil {
		return nil, err
	}

	return &Session{
		id:            id,
		invoiceID:     invoiceID,
		typ:           TypeInternal,
		state:         StateToConsider,
		createdBy:     createdBy,
		startedAt:     time.Now().UTC(),
		staffID:       &staffID,
		isConstructed: true,
	}, nil
}

// RestoreSession reconstructs a delivery session from persistence.
func RestoreSession(
	id kernel.UUID,
	invoiceID kernel.UUID,
	typ Type,
	state State,
	createdBy kernel.UUID,
	startedAt time.Time,
	endedAt *time.Time,
	subMode SubMode,
	pickup Pickup,
	company *Company,
	courierID *kernel.UUID,
	trackingNo string,
	slipRef string,
	staffID *kernel.UUID,
) (*Session, error) {
	if err := errors.Join(id.Validate(), invoiceID.Validate(), createdBy.Validate(), typ.Validate(), state.Validate()); err != nil {
		return nil, err
	}

	return &Session{
		id:            id,
		invoiceID:     invoiceID,
		typ:           typ,
		state:         state,
		createdBy:     createdBy,
		startedAt:     startedAt,
		endedAt:       endedAt,
		subMode:       subMode,
		pickup:        pickup,
		company:       company,
		courierID:     courierID,
		trackingNo:    trackingNo,
		slipRef:       slipRef,
		staffID:       staffID,
		isConstructed: true,
	}, nil
}

// Validate ensures the Session instance was properly constructed.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the session identifier.
func (s *Session) ID() kernel.UUID { return s.id }

// InvoiceID returns the invoice the session belongs to.
func (s *Session) InvoiceID() kernel.UUID { return s.invoiceID }

// Type returns the delivery protocol.
func (s *Session) Type() Type { return s.typ }

// State returns the current delivery state.
func (s *Session) State() State { return s.state }

// CreatedBy returns the dispatcher who created the session.
func (s *Session) CreatedBy() kernel.UUID { return s.createdBy }

// StartedAt returns the dispatch time.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// EndedAt returns the confirmation or cancellation time, or nil while the
// session is on the consider list. For direct deliveries it equals
// StartedAt.
func (s *Session) EndedAt() *time.Time { return s.endedAt }

// SubMode returns the direct-delivery sub-mode, or SubModeNone for courier
// and internal deliveries.
func (s *Session) SubMode() SubMode { return s.subMode }

// PickupPerson returns the direct-delivery pickup identity.
func (s *Session) PickupPerson() Pickup { return s.pickup }

// CompanyAccount returns the company identity of a company pickup, or nil.
func (s *Session) CompanyAccount() *Company { return s.company }

// CourierID returns the courier of a courier delivery, or nil.
func (s *Session) CourierID() *kernel.UUID { return s.courierID }

// TrackingNo returns the courier tracking number.
func (s *Session) TrackingNo() string { return s.trackingNo }

// SlipRef returns the uploaded proof-of-delivery slip reference.
func (s *Session) SlipRef() string { return s.slipRef }

// StaffID returns the assigned staff member of an internal delivery, or nil.
func (s *Session) StaffID() *kernel.UUID { return s.staffID }

// AttachSlip confirms a courier delivery with an uploaded slip.
//
// Business rules:
//   - The session must be a courier delivery (ErrWrongDeliveryType)
//   - The session must be on the consider list (ErrSessionNotConsiderable)
//   - The slip reference is required
//
// On success the session jumps from ToConsider to Delivered; the caller
// marks the invoice delivered in the same transaction.
func (s *Session) AttachSlip(slipRef string) error {
	if s.typ != TypeCourier {
		return fmt.Errorf("%w: slip upload applies to courier deliveries, session type is %s",
			ErrWrongDeliveryType, s.typ)
	}
	if slipRef == "" {
		return errs.NewValueIsRequiredError("slip reference")
	}
	if s.state != StateToConsider {
		return fmt.Errorf("%w: session state is %s", ErrSessionNotConsiderable, s.state)
	}

	now := time.Now().UTC()
	s.slipRef = slipRef
	s.endedAt = &now
	s.state = StateDelivered
	return nil
}

// CompleteByStaff confirms an internal delivery.
//
// Business rules:
//   - The session must be an internal delivery (ErrWrongDeliveryType)
//   - The session must be on the consider list (ErrSessionNotConsiderable)
//   - The confirming actor must be the assigned staff member
//     (ErrActorMismatch)
func (s *Session) CompleteByStaff(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if s.typ != TypeInternal {
		return fmt.Errorf("%w: staff confirmation applies to internal deliveries, session type is %s",
			ErrWrongDeliveryType, s.typ)
	}
	if s.state != StateToConsider {
		return fmt.Errorf("%w: session state is %s", ErrSessionNotConsiderable, s.state)
	}
	if s.staffID == nil || !actorID.IsEqual(*s.staffID) {
		return fmt.Errorf("%w: assigned to %s, confirmation attempted by %s",
			ErrActorMismatch, s.staffID, actorID)
	}

	now := time.Now().UTC()
	s.endedAt = &now
	s.state = StateDelivered
	return nil
}

// Cancel aborts a pending delivery because the invoice was returned to
// billing. The row is kept for audit.
func (s *Session) Cancel() error {
	if s.state != StateToConsider {
		return fmt.Errorf("%w: session state is %s", ErrSessionNotConsiderable, s.state)
	}

	now := time.Now().UTC()
	s.endedAt = &now
	s.state = StateCancelled
	return nil
}

func validatePickup(p Pickup) error {
	if p.Username == "" {
		return errs.NewValueIsRequiredError("pickup username")
	}
	if p.Name == "" {
		return errs.NewValueIsRequiredError("pickup name")
	}
	if p.Phone == "" {
		return errs.NewValueIsRequiredError("pickup phone")
	}
	if len(p.Phone) != 10 {
		return fmt.Errorf("%w: got %d digits", ErrInvalidPhoneFormat, len(p.Phone))
	}
	for _, c := range p.Phone {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: %q is not a digit", ErrInvalidPhoneFormat, c)
		}
	}
	return nil
}
