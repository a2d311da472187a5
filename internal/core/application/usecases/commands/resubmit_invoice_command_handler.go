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

// ResubmitInvoiceCommandHandler puts a corrected invoice back at the start
// of the fulfillment flow. The transition is attributed to the resolved
// actor for the audit trail.
type ResubmitInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	actors     ports.ActorResolver
	notifier   ports.EventNotifier
	logger     zerolog.Logger
}

// NewResubmitInvoiceCommandHandler creates a handler for resubmission.
func NewResubmitInvoiceCommandHandler(
	uowFactory InvoiceUoWFactory,
	actors ports.ActorResolver,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) ResubmitInvoiceCommandHandler {
	return ResubmitInvoiceCommandHandler{
		uowFactory: uowFactory,
		actors:     actors,
		notifier:   notifier,
		logger:     logger.With().Str("component", "resubmit_handler").Logger(),
	}
}

// Handle processes the resubmission.
// Fails with ErrActorNotFound, ErrInvoiceNotFound or
// invoice.ErrNotResubmittable.
func (h ResubmitInvoiceCommandHandler) Handle(ctx context.Context, command ResubmitInvoiceCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	_, err := h.actors.ResolveActor(ctx, command.ActorEmail())
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

	inv, err := invoiceRepo.GetByNumber(ctx, command.InvoiceNo())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %s", ErrInvoiceNotFound, command.InvoiceNo())
	}
	if err != nil {
		return err
	}

	if err = inv.Resubmit(); err != nil {
		return err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyStatus(ctx, h.notifier, h.logger, inv, "resubmitted", kernel.StageUnknown)
	return nil
}
