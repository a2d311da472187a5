package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// ReturnToBillingCommandHandler moves an invoice into review. One transaction
// covers the whole cleanup: the status flip, cancellation of every active
// worker session, cancellation of a still-pending delivery session, and the
// append of the return record. A half-returned invoice must not be
// observable.
type ReturnToBillingCommandHandler struct {
	uowFactory ReturnUoWFactory
	actors     ports.ActorResolver
	notifier   ports.EventNotifier
	logger     zerolog.Logger
}

// NewReturnToBillingCommandHandler creates a handler for return operations.
func NewReturnToBillingCommandHandler(
	uowFactory ReturnUoWFactory,
	actors ports.ActorResolver,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) ReturnToBillingCommandHandler {
	return ReturnToBillingCommandHandler{
		uowFactory: uowFactory,
		actors:     actors,
		notifier:   notifier,
		logger:     logger.With().Str("component", "return_handler").Logger(),
	}
}

// Handle processes the return command.
// Fails with ErrActorNotFound, ErrInvoiceNotFound,
// invoice.ErrAlreadyReturned or invoice.ErrInvalidReturnState.
func (h ReturnToBillingCommandHandler) Handle(ctx context.Context, command ReturnToBillingCommand) error {
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
	sessionRepo := uow.SessionRepository()
	deliveryRepo := uow.DeliveryRepository()
	returnRepo := uow.ReturnRepository()

	inv, err := invoiceRepo.GetByNumber(ctx, command.InvoiceNo())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %s", ErrInvoiceNotFound, command.InvoiceNo())
	}
	if err != nil {
		return err
	}

	if err = inv.ReturnToBilling(actor.ID()); err != nil {
		return err
	}

	actives, err := sessionRepo.GetAllActive(ctx, inv.ID())
	if err != nil {
		return err
	}
	for _, sess := range actives {
		if err = sess.Cancel(); err != nil {
			return err
		}
		if err = sessionRepo.Update(ctx, sess); err != nil {
			return err
		}
	}

	pending, err := deliveryRepo.GetActiveByInvoice(ctx, inv.ID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if err == nil && pending.State() == delivery.StateToConsider {
		if err = pending.Cancel(); err != nil {
			return err
		}
		if err = deliveryRepo.Update(ctx, pending); err != nil {
			return err
		}
	}

	record, err := invoice.NewReturn(
		kernel.NewUUID(), inv.ID(), command.Stage(), actor.ID(), command.Reason(), time.Now().UTC())
	if err != nil {
		return err
	}
	if err = returnRepo.Add(ctx, record); err != nil {
		return err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyStatus(ctx, h.notifier, h.logger, inv, "returned_to_billing", command.Stage())
	return nil
}
