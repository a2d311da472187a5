package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/rs/zerolog"
)

// notifyStatus publishes an invoice event after a successful commit.
// Notification is fire-and-forget: a publish failure is logged and swallowed
// so it can never undo or block the committed transition.
func notifyStatus(
	ctx context.Context,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
	inv *invoice.Invoice,
	kind string,
	stage kernel.Stage,
) {
	event := ports.InvoiceEvent{
		InvoiceID:  inv.ID(),
		InvoiceNo:  inv.InvoiceNo(),
		Status:     inv.Status().String(),
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
	}
	if stage != kernel.StageUnknown {
		event.Stage = stage.String()
	}

	if err := notifier.Notify(ctx, event); err != nil {
		logger.Warn().
			Err(err).
			Str("invoice_no", event.InvoiceNo).
			Str("kind", kind).
			Msg("event notification failed")
	}
}
