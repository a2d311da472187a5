package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClaimStageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClaimStageCommand("INV-1001", kernel.StagePicking, "picker@pharma.test")
	require.NoError(t, err)

	picker := testWorker(t, "picker@pharma.test", worker.RolePicker)
	inv := testInvoice(t, "INV-1001")

	invoiceRepo := new(MockInvoiceRepository)
	sessionRepo := new(MockSessionRepository)
	uow := new(MockStageUoW)
	actors := new(MockActorResolver)
	notifier := new(MockEventNotifier)

	actors.On("ResolveActor", ctx, "picker@pharma.test").Return(picker, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InvoiceRepository").Return(invoiceRepo).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		invoiceRepo.On("GetByNumber", ctx, "INV-1001").Return(inv, nil).Once(),
		sessionRepo.On("GetActive", ctx, inv.ID(), kernel.StagePicking).
			Return(nil, errs.NewObjectNotFoundError("session", inv.ID())).Once(),
		sessionRepo.On("Add", ctx, mock.AnythingOfType("*session.Session")).Return(nil).Once(),
		invoiceRepo.On("Update", ctx, inv).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	notifier.On("Notify", ctx, mock.Anything).Return(nil).Once()

	factory := new(MockStageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimStageCommandHandler(
		factory, actors, services.NewRoleCapabilityChecker(), notifier, zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPicking, inv.Status())
	invoiceRepo.AssertExpectations(t)
	sessionRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestClaimStageCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ClaimStageCommand{} // not constructed properly

	factory := new(MockStageUoWFactory)
	actors := new(MockActorResolver)
	handler := commands.NewClaimStageCommandHandler(
		factory, actors, services.NewRoleCapabilityChecker(), new(MockEventNotifier), zerolog.Nop())

	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
	actors.AssertNotCalled(t, "ResolveActor")
}

func TestClaimStageCommandHandler_Handle_UnknownActor(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClaimStageCommand("INV-1001", kernel.StagePicking, "ghost@pharma.test")
	require.NoError(t, err)

	actors := new(MockActorResolver)
	actors.On("ResolveActor", ctx, "ghost@pharma.test").
		Return(worker.Worker{}, errs.NewObjectNotFoundError("worker", "ghost@pharma.test")).Once()

	factory := new(MockStageUoWFactory)
	handler := commands.NewClaimStageCommandHandler(
		factory, actors, services.NewRoleCapabilityChecker(), new(MockEventNotifier), zerolog.Nop())

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrActorNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestClaimStageCommandHandler_Handle_NotPermitted(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClaimStageCommand("INV-1001", kernel.StagePacking, "picker@pharma.test")
	require.NoError(t, err)

	// Picker tries to claim packing.
	picker := testWorker(t, "picker@pharma.test", worker.RolePicker)

	actors := new(MockActorResolver)
	actors.On("ResolveActor", ctx, "picker@pharma.test").Return(picker, nil).Once()

	factory := new(MockStageUoWFactory)
	handler := commands.NewClaimStageCommandHandler(
		factory, actors, services.NewRoleCapabilityChecker(), new(MockEventNotifier), zerolog.Nop())

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNotPermitted)
	factory.AssertNotCalled(t, "Create")
}

func TestClaimStageCommandHandler_Handle_DuplicateActiveSession(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClaimStageCommand("INV-1001", kernel.StagePicking, "picker@pharma.test")
	require.NoError(t, err)

	picker := testWorker(t, "picker@pharma.test", worker.RolePicker)
	inv := testInvoice(t, "INV-1001")
	existing, err := session.NewSession(kernel.NewUUID(), inv.ID(), kernel.StagePicking, kernel.NewUUID())
	require.NoError(t, err)

	invoiceRepo := new(MockInvoiceRepository)
	sessionRepo := new(MockSessionRepository)
	uow := new(MockStageUoW)
	actors := new(MockActorResolver)

	actors.On("ResolveActor", ctx, "picker@pharma.test").Return(picker, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InvoiceRepository").Return(invoiceRepo).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		invoiceRepo.On("GetByNumber", ctx, "INV-1001").Return(inv, nil).Once(),
		sessionRepo.On("GetActive", ctx, inv.ID(), kernel.StagePicking).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimStageCommandHandler(
		factory, actors, services.NewRoleCapabilityChecker(), new(MockEventNotifier), zerolog.Nop())

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, session.ErrDuplicateActiveSession)
	assert.Equal(t, invoice.StatusInvoiced, inv.Status())
	sessionRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestClaimStageCommandHandler_Handle_WrongInvoiceStatus(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClaimStageCommand("INV-1001", kernel.StagePacking, "packer@pharma.test")
	require.NoError(t, err)

	packer := testWorker(t, "packer@pharma.test", worker.RolePacker)
	// Packing claims require PICKED; the invoice is still INVOICED.
	inv := testInvoice(t, "INV-1001")

	invoiceRepo := new(MockInvoiceRepository)
	sessionRepo := new(MockSessionRepository)
	uow := new(MockStageUoW)
	actors := new(MockActorResolver)

	actors.On("ResolveActor", ctx, "packer@pharma.test").Return(packer, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InvoiceRepository").Return(invoiceRepo).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		invoiceRepo.On("GetByNumber", ctx, "INV-1001").Return(inv, nil).Once(),
		sessionRepo.On("GetActive", ctx, inv.ID(), kernel.StagePacking).
			Return(nil, errs.NewObjectNotFoundError("session", inv.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimStageCommandHandler(
		factory, actors, services.NewRoleCapabilityChecker(), new(MockEventNotifier), zerolog.Nop())

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, invoice.ErrInvalidStateForStage)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
