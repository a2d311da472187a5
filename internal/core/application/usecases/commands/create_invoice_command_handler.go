package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// CreateInvoiceCommandHandler imports an invoice from billing. The invoice
// number is the external identity, so a duplicate import fails with
// ErrDuplicateInvoice instead of creating a second aggregate.
type CreateInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	notifier   ports.EventNotifier
	logger     zerolog.Logger
}

// NewCreateInvoiceCommandHandler creates a handler for invoice import.
func NewCreateInvoiceCommandHandler(
	uowFactory InvoiceUoWFactory,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) CreateInvoiceCommandHandler {
	return CreateInvoiceCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With().Str("component", "create_invoice_handler").Logger(),
	}
}

// Handle processes the import and returns the identifier of the created
// invoice. Fails with ErrDuplicateInvoice when the number already exists.
func (h CreateInvoiceCommandHandler) Handle(ctx context.Context, command CreateInvoiceCommand) (
	kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()

	_, err := invoiceRepo.GetByNumber(ctx, command.InvoiceNo())
	if err == nil {
		return kernel.UUID{}, fmt.Errorf("%w: %s", ErrDuplicateInvoice, command.InvoiceNo())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, err
	}

	inv, err := invoice.NewInvoice(
		kernel.NewUUID(),
		command.InvoiceNo(),
		command.InvoiceDate(),
		command.Priority(),
		command.Remarks(),
		command.LineItems(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = invoiceRepo.Add(ctx, inv); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	notifyStatus(ctx, h.notifier, h.logger, inv, "invoice_created", kernel.StageUnknown)
	return inv.ID(), nil
}
