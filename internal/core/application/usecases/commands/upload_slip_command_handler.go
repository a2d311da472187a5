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

// UploadSlipCommandHandler closes the courier leg of a delivery: the slip
// confirms the consignment arrived, the session leaves the consider list and
// the invoice finally reaches DELIVERED.
type UploadSlipCommandHandler struct {
	uowFactory DeliveryUoWFactory
	actors     ports.ActorResolver
	notifier   ports.EventNotifier
	logger     zerolog.Logger
}

// NewUploadSlipCommandHandler creates a handler for slip confirmation.
func NewUploadSlipCommandHandler(
	uowFactory DeliveryUoWFactory,
	actors ports.ActorResolver,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) UploadSlipCommandHandler {
	return UploadSlipCommandHandler{
		uowFactory: uowFactory,
		actors:     actors,
		notifier:   notifier,
		logger:     logger.With().Str("component", "upload_slip_handler").Logger(),
	}
}

// Handle processes the slip confirmation.
// Fails with ErrActorNotFound, ErrInvoiceNotFound,
// ErrDeliverySessionNotFound, delivery.ErrWrongDeliveryType or
// delivery.ErrSessionNotConsiderable.
func (h UploadSlipCommandHandler) Handle(ctx context.Context, command UploadSlipCommand) error {
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

	if err = sess.AttachSlip(command.SlipRef()); err != nil {
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
