package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// ConfirmInternalCommandHandler closes an internal staff delivery. The
// assigned-staff check lives in the delivery aggregate; the handler resolves
// the confirming actor and moves the invoice to DELIVERED in the same
// transaction.
type ConfirmInternalCommandHandler struct {
	uowFactory DeliveryUoWFactory
	actors     ports.ActorResolver
	notifier   ports.EventNotifier
	logger     zerolog.Logger
}

// NewConfirmInternalCommandHandler creates a handler for internal delivery
// confirmation.
func NewConfirmInternalCommandHandler(
	uowFactory DeliveryUoWFactory,
	actors ports.ActorResolver,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) ConfirmInternalCommandHandler {
	return ConfirmInternalCommandHandler{
		uowFactory: uowFactory,
		actors:     actors,
		notifier:   notifier,
		logger:     logger.With().Str("component", "confirm_internal_handler").Logger(),
	}
}

// Handle processes the confirmation.
// Fails with ErrActorNotFound, ErrInvoiceNotFound,
// ErrDeliverySessionNotFound, delivery.ErrWrongDeliveryType,
// delivery.ErrSessionNotConsiderable or delivery.ErrActorMismatch.
func (h ConfirmInternalCommandHandler) Handle(ctx context.Context, command ConfirmInternalCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	actor, err := h.actors.ResolveActor(ctx, command.ActorEmail())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %s", ErrActorNotFound, command.ActorEmail())
	}
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	deliveryRepo := uow.DeliveryRepository()

	inv, err := invoiceRepo.GetByNumber(ctx, command.InvoiceNo())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %s", ErrInvoiceNotFound, command.InvoiceNo())
	}
	if err != nil {
		return err
	}

	sess, err := deliveryRepo.GetActiveByInvoice(ctx, inv.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: invoice %s", ErrDeliverySessionNotFound, command.InvoiceNo())
	}
	if err != nil {
		return err
	}

	if err = sess.CompleteByStaff(actor.ID()); err != nil {
		return err
	}

	if err = inv.MarkDelivered(actor.ID()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, sess); err != nil {
		return err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyStatus(ctx, h.notifier, h.logger, inv, "delivered", kernel.StageDelivery)
	return nil
}
