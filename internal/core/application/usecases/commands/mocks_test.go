package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetByNumber(ctx context.Context, invoiceNo string) (*invoice.Invoice, error) {
	args := m.Called(ctx, invoiceNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionRepository) GetActive(ctx context.Context, invoiceID kernel.UUID, stage kernel.Stage) (
	*session.Session, error) {
	args := m.Called(ctx, invoiceID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionRepository) GetAllActive(ctx context.Context, invoiceID kernel.UUID) (
	[]*session.Session, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*session.Session), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, s *delivery.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, s *delivery.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Session), args.Error(1)
}

func (m *MockDeliveryRepository) GetActiveByInvoice(ctx context.Context, invoiceID kernel.UUID) (
	*delivery.Session, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Session), args.Error(1)
}

type MockReturnRepository struct{ mock.Mock }

func (m *MockReturnRepository) Add(ctx context.Context, record invoice.Return) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockReturnRepository) ListByInvoice(ctx context.Context, invoiceID kernel.UUID) (
	[]invoice.Return, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoice.Return), args.Error(1)
}

type MockActorResolver struct{ mock.Mock }

func (m *MockActorResolver) ResolveActor(ctx context.Context, email string) (worker.Worker, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(worker.Worker), args.Error(1)
}

type MockCourierDirectory struct{ mock.Mock }

func (m *MockCourierDirectory) ActiveCourier(ctx context.Context, id kernel.UUID) (delivery.Courier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(delivery.Courier), args.Error(1)
}

type MockStaffDirectory struct{ mock.Mock }

func (m *MockStaffDirectory) StaffByEmail(ctx context.Context, email string) (worker.Worker, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(worker.Worker), args.Error(1)
}

type MockEventNotifier struct{ mock.Mock }

func (m *MockEventNotifier) Notify(ctx context.Context, event ports.InvoiceEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockStageUoW struct{ mock.Mock }

func (m *MockStageUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStageUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStageUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStageUoW) InvoiceRepository() ports.InvoiceRepository {
	args := m.Called()
	return args.Get(0).(ports.InvoiceRepository)
}

func (m *MockStageUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

type MockStageUoWFactory struct{ mock.Mock }

func (m *MockStageUoWFactory) Create() commands.StageUoW {
	args := m.Called()
	return args.Get(0).(commands.StageUoW)
}

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) InvoiceRepository() ports.InvoiceRepository {
	args := m.Called()
	return args.Get(0).(ports.InvoiceRepository)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockReturnUoW struct{ mock.Mock }

func (m *MockReturnUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReturnUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReturnUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReturnUoW) InvoiceRepository() ports.InvoiceRepository {
	args := m.Called()
	return args.Get(0).(ports.InvoiceRepository)
}

func (m *MockReturnUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

func (m *MockReturnUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockReturnUoW) ReturnRepository() ports.ReturnRepository {
	args := m.Called()
	return args.Get(0).(ports.ReturnRepository)
}

type MockReturnUoWFactory struct{ mock.Mock }

func (m *MockReturnUoWFactory) Create() commands.ReturnUoW {
	args := m.Called()
	return args.Get(0).(commands.ReturnUoW)
}

type MockInvoiceUoW struct{ mock.Mock }

func (m *MockInvoiceUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInvoiceUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInvoiceUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInvoiceUoW) InvoiceRepository() ports.InvoiceRepository {
	args := m.Called()
	return args.Get(0).(ports.InvoiceRepository)
}

type MockInvoiceUoWFactory struct{ mock.Mock }

func (m *MockInvoiceUoWFactory) Create() commands.InvoiceUoW {
	args := m.Called()
	return args.Get(0).(commands.InvoiceUoW)
}

// Shared fixtures.

func testWorker(t *testing.T, email string, roles ...worker.Role) worker.Worker {
	t.Helper()
	w, err := worker.NewWorker(kernel.NewUUID(), email, "Test Worker", roles)
	require.NoError(t, err)
	return w
}

func testLineItems(t *testing.T) []invoice.LineItem {
	t.Helper()
	item, err := invoice.NewLineItem(
		"Paracetamol 500mg", "PCM-500", 20, decimal.NewFromFloat(1.50),
		"B2025-11", time.Now().AddDate(1, 0, 0), "A-03-17")
	require.NoError(t, err)
	return []invoice.LineItem{item}
}

func testInvoice(t *testing.T, invoiceNo string) *invoice.Invoice {
	t.Helper()
	inv, err := invoice.NewInvoice(
		kernel.NewUUID(), invoiceNo, time.Now(), invoice.PriorityMedium, "", testLineItems(t))
	require.NoError(t, err)
	return inv
}

// testInvoiceInStatus walks a fresh invoice through the happy path until it
// reaches the requested status.
func testInvoiceInStatus(t *testing.T, invoiceNo string, status invoice.Status) *invoice.Invoice {
	t.Helper()
	inv := testInvoice(t, invoiceNo)
	actorID := kernel.NewUUID()

	steps := []struct {
		target invoice.Status
		do     func() error
	}{
		{invoice.StatusPicking, func() error { return inv.ClaimStage(kernel.StagePicking, actorID) }},
		{invoice.StatusPicked, func() error { return inv.CompleteStage(kernel.StagePicking, actorID) }},
		{invoice.StatusPacking, func() error { return inv.ClaimStage(kernel.StagePacking, actorID) }},
		{invoice.StatusPacked, func() error { return inv.CompleteStage(kernel.StagePacking, actorID) }},
		{invoice.StatusDispatched, func() error { return inv.MarkDispatched(actorID) }},
		{invoice.StatusDelivered, func() error { return inv.MarkDelivered(actorID) }},
	}
	for _, step := range steps {
		if inv.Status() == status {
			return inv
		}
		require.NoError(t, step.do())
	}
	require.Equal(t, status, inv.Status())
	return inv
}
