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

// MarkReInvoicedCommandHandler applies a billing correction to an invoice
// under review.
type MarkReInvoicedCommandHandler struct {
	uowFactory InvoiceUoWFactory
	notifier   ports.EventNotifier
	logger     zerolog.Logger
}

// NewMarkReInvoicedCommandHandler creates a handler for billing corrections.
func NewMarkReInvoicedCommandHandler(
	uowFactory InvoiceUoWFactory,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) MarkReInvoicedCommandHandler {
	return MarkReInvoicedCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With().Str("component", "mark_reinvoiced_handler").Logger(),
	}
}

// Handle processes the correction.
// Fails with ErrInvoiceNotFound or invoice.ErrNotResubmittable.
func (h MarkReInvoicedCommandHandler) Handle(ctx context.Context, command MarkReInvoicedCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if err = inv.MarkReInvoiced(); err != nil {
		return err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyStatus(ctx, h.notifier, h.logger, inv, "re_invoiced", kernel.StageUnknown)
	return nil
}
