package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// DispatchInternalCommandHandler starts an internal staff delivery. The
// invoice keeps its PACKED status until the assigned staff member confirms
// the handover.
type DispatchInternalCommandHandler struct {
	uowFactory   DeliveryUoWFactory
	actors       ports.ActorResolver
	staff        ports.StaffDirectory
	capabilities services.CapabilityChecker
	notifier     ports.EventNotifier
	logger       zerolog.Logger
}

// NewDispatchInternalCommandHandler creates a handler for internal dispatch.
func NewDispatchInternalCommandHandler(
	uowFactory DeliveryUoWFactory,
	actors ports.ActorResolver,
	staff ports.StaffDirectory,
	capabilities services.CapabilityChecker,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) DispatchInternalCommandHandler {
	return DispatchInternalCommandHandler{
		uowFactory:   uowFactory,
		actors:       actors,
		staff:        staff,
		capabilities: capabilities,
		notifier:     notifier,
		logger:       logger.With().Str("component", "dispatch_internal_handler").Logger(),
	}
}

// Handle processes the internal dispatch and returns the created delivery
// session identifier.
// Fails with ErrActorNotFound, ErrNotPermitted, ErrStaffNotFound,
// ErrInvoiceNotFound, invoice.ErrInvalidStateForStage or
// delivery.ErrDuplicateDeliverySession.
func (h DispatchInternalCommandHandler) Handle(ctx context.Context, command DispatchInternalCommand) (
	kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	actor, err := h.actors.ResolveActor(ctx, command.ActorEmail())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, fmt.Errorf("%w: %s", ErrActorNotFound, command.ActorEmail())
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	if !h.capabilities.CanDispatch(actor) {
		h.logger.Warn().
			Str("actor", actor.Email()).
			Str("invoice_no", command.InvoiceNo()).
			Msg("dispatch denied by capability check")
		return kernel.UUID{}, fmt.Errorf("%w: %s cannot dispatch", ErrNotPermitted, actor.Email())
	}

	staff, err := h.staff.StaffByEmail(ctx, command.StaffEmail())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, fmt.Errorf("%w: %s", ErrStaffNotFound, command.StaffEmail())
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	deliveryRepo := uow.DeliveryRepository()

	inv, err := invoiceRepo.GetByNumber(ctx, command.InvoiceNo())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, fmt.Errorf("%w: %s", ErrInvoiceNotFound, command.InvoiceNo())
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = inv.EnsureDispatchable(); err != nil {
		return kernel.UUID{}, err
	}

	sess, err := delivery.NewInternalSession(kernel.NewUUID(), inv.ID(), actor.ID(), staff.ID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = deliveryRepo.Add(ctx, sess); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	notifyStatus(ctx, h.notifier, h.logger, inv, "dispatched_internal", kernel.StageDelivery)
	return sess.ID(), nil
}
