package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// ClaimStageCommandHandler runs the claim half of the stage engine.
// It resolves the actor, checks the claim capability, and atomically creates
// the stage session and flips the invoice status. The realistic failure mode
// is two workers scanning the same invoice near-simultaneously; the loser of
// that race fails with session.ErrDuplicateActiveSession from the ledger's
// uniqueness constraint, never with corrupted state.
//
// Example:
//
//	handler := NewClaimStageCommandHandler(uowFactory, actors, capabilities, notifier, logger)
//	cmd, _ := NewClaimStageCommand("INV-1", kernel.StagePicking, "alice@pharma.example")
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, session.ErrDuplicateActiveSession):
//	    // someone else claimed it first
//	case errors.Is(err, invoice.ErrInvalidStateForStage):
//	    // wrong status, re-fetch and reconcile
//	}
type ClaimStageCommandHandler struct {
	uowFactory   StageUoWFactory
	actors       ports.ActorResolver
	capabilities services.CapabilityChecker
	notifier     ports.EventNotifier
	logger       zerolog.Logger
}

// NewClaimStageCommandHandler creates a handler for stage claim operations.
func NewClaimStageCommandHandler(
	uowFactory StageUoWFactory,
	actors ports.ActorResolver,
	capabilities services.CapabilityChecker,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) ClaimStageCommandHandler {
	return ClaimStageCommandHandler{
		uowFactory:   uowFactory,
		actors:       actors,
		capabilities: capabilities,
		notifier:     notifier,
		logger:       logger.With().Str("component", "claim_stage_handler").Logger(),
	}
}

// Handle processes the claim command.
// Fails with ErrActorNotFound, ErrNotPermitted, ErrInvoiceNotFound,
// invoice.ErrInvalidStateForStage or session.ErrDuplicateActiveSession.
// On success exactly one notification is published.
func (h ClaimStageCommandHandler) Handle(ctx context.Context, command ClaimStageCommand) error {
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

	if !h.capabilities.CanClaim(actor, command.Stage()) {
		h.logger.Warn().
			Str("actor", actor.Email()).
			Str("stage", command.Stage().String()).
			Str("invoice_no", command.InvoiceNo()).
			Msg("claim denied by capability check")
		return fmt.Errorf("%w: %s cannot claim %s", ErrNotPermitted, actor.Email(), command.Stage())
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

	// Pre-check keeps the common double-claim readable; the ledger's unique
	// constraint still decides races.
	if _, err = sessionRepo.GetActive(ctx, inv.ID(), command.Stage()); err == nil {
		return fmt.Errorf("%w: invoice %s, stage %s",
			session.ErrDuplicateActiveSession, command.InvoiceNo(), command.Stage())
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = inv.ClaimStage(command.Stage(), actor.ID()); err != nil {
		return err
	}

	sess, err := session.NewSession(kernel.NewUUID(), inv.ID(), command.Stage(), actor.ID())
	if err != nil {
		return err
	}

	if err = sessionRepo.Add(ctx, sess); err != nil {
		return err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyStatus(ctx, h.notifier, h.logger, inv, "stage_claimed", command.Stage())
	return nil
}
