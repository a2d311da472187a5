package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// CompleteStageCommandHandler closes the active stage session and advances
// the invoice status. The actor-match invariant lives in the session
// aggregate; the handler only translates "no active session" into the
// application error and keeps the two writes in one transaction.
type CompleteStageCommandHandler struct {
	uowFactory StageUoWFactory
	actors     ports.ActorResolver
	notifier   ports.EventNotifier
	logger     zerolog.Logger
}

// NewCompleteStageCommandHandler creates a handler for stage completion.
func NewCompleteStageCommandHandler(
	uowFactory StageUoWFactory,
	actors ports.ActorResolver,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) CompleteStageCommandHandler {
	return CompleteStageCommandHandler{
		uowFactory: uowFactory,
		actors:     actors,
		notifier:   notifier,
		logger:     logger.With().Str("component", "complete_stage_handler").Logger(),
	}
}

// Handle processes the completion command.
// Fails with ErrActorNotFound, ErrInvoiceNotFound, ErrNoActiveSession,
// session.ErrActorMismatch or invoice.ErrInvalidStateForStage.
func (h CompleteStageCommandHandler) Handle(ctx context.Context, command CompleteStageCommand) error {
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

	inv, err := invoiceRepo.GetByNumber(ctx, command.InvoiceNo())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %s", ErrInvoiceNotFound, command.InvoiceNo())
	}
	if err != nil {
		return err
	}

	sess, err := sessionRepo.GetActive(ctx, inv.ID(), command.Stage())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: invoice %s, stage %s",
			ErrNoActiveSession, command.InvoiceNo(), command.Stage())
	}
	if err != nil {
		return err
	}

	if err = sess.Complete(actor.ID(), command.Notes()); err != nil {
		return err
	}

	if err = inv.CompleteStage(command.Stage(), actor.ID()); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, sess); err != nil {
		return err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyStatus(ctx, h.notifier, h.logger, inv, "stage_completed", command.Stage())
	return nil
}
