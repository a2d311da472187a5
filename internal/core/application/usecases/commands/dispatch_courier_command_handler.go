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

// DispatchCourierCommandHandler starts a courier delivery. The invoice is
// checked for dispatchability but keeps its PACKED status: proof of delivery
// arrives later with the slip upload, and only that flips the invoice to
// DELIVERED.
type DispatchCourierCommandHandler struct {
	uowFactory   DeliveryUoWFactory
	actors       ports.ActorResolver
	couriers     ports.CourierDirectory
	capabilities services.CapabilityChecker
	notifier     ports.EventNotifier
	logger       zerolog.Logger
}

// NewDispatchCourierCommandHandler creates a handler for courier dispatch.
func NewDispatchCourierCommandHandler(
	uowFactory DeliveryUoWFactory,
	actors ports.ActorResolver,
	couriers ports.CourierDirectory,
	capabilities services.CapabilityChecker,
	notifier ports.EventNotifier,
	logger zerolog.Logger,
) DispatchCourierCommandHandler {
	return DispatchCourierCommandHandler{
		uowFactory:   uowFactory,
		actors:       actors,
		couriers:     couriers,
		capabilities: capabilities,
		notifier:     notifier,
		logger:       logger.With().Str("component", "dispatch_courier_handler").Logger(),
	}
}

// Handle processes the courier dispatch and returns the created delivery
// session identifier.
// Fails with ErrActorNotFound, ErrNotPermitted, ErrCourierNotFound,
// ErrInvoiceNotFound, invoice.ErrInvalidStateForStage or
// delivery.ErrDuplicateDeliverySession.
func (h DispatchCourierCommandHandler) Handle(ctx context.Context, command DispatchCourierCommand) (
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

	courier, err := h.couriers.ActiveCourier(ctx, command.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, fmt.Errorf("%w: %s", ErrCourierNotFound, command.CourierID())
	}
	if err != nil {
		return kernel.UUID{}, err
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

	sess, err := delivery.NewCourierSession(
		kernel.NewUUID(), inv.ID(), actor.ID(), courier.ID, command.TrackingNo())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = deliveryRepo.Add(ctx, sess); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	notifyStatus(ctx, h.notifier, h.logger, inv, "dispatched_courier", kernel.StageDelivery)
	return sess.ID(), nil
}
