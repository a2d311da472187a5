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

// DispatchDirectCommandHandler performs an over-the-counter handover.
// Unlike the courier and internal modes there is no consider-list phase: the
// session is created delivered and the invoice reaches DELIVERED in the same
// transaction.
type DispatchDirectCommandHandler struct {
	uowFactory   DeliveryUoWFactory
	actors       ports.ActorResolver
	capabilities services.CapabilityChecker
	notifier     ports.EventNotifier
	logger       zerolog.Logger
}

// NewDispatchDirectCommandHandler creates a handler for direct handovers.
func NewDispatchDirectCommandHandler(
	uowFactory DeliveryUoWFactory,
	actors ports.ActorResolver,
	capabilities services.CapabilityChecker,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) DispatchDirectCommandHandler {
	return DispatchDirectCommandHandler{
		uowFactory:   uowFactory,
		actors:       actors,
		capabilities: capabilities,
		notifier:     notifier,
		logger:       logger.With().Str("component", "dispatch_direct_handler").Logger(),
	}
}

// Handle processes the direct dispatch and returns the created delivery
// session identifier.
// Fails with ErrActorNotFound, ErrNotPermitted, ErrInvoiceNotFound,
// invoice.ErrInvalidStateForStage, delivery.ErrInvalidPhoneFormat or
// delivery.ErrDuplicateDeliverySession.
func (h DispatchDirectCommandHandler) Handle(ctx context.Context, command DispatchDirectCommand) (
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

	sess, err := delivery.NewDirectSession(
		kernel.NewUUID(), inv.ID(), actor.ID(), command.SubMode(), command.Pickup(), command.Company())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = deliveryRepo.Add(ctx, sess); err != nil {
		return kernel.UUID{}, err
	}

	if err = inv.MarkDelivered(actor.ID()); err != nil {
		return kernel.UUID{}, err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	notifyStatus(ctx, h.notifier, h.logger, inv, "dispatched_direct", kernel.StageDelivery)
	return sess.ID(), nil
}
