package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/invoicerepo"
	"fulfillment/internal/adapters/out/postgres/returnrepo"
	"fulfillment/internal/adapters/out/postgres/sessionrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repositories' tracker dependency; the read
// model tests do not care about transactional tracking.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, interface{}) {}

// QueryHandlersIntegrationTestSuite exercises all read model handlers
// against a PostgreSQL container seeded through the write-side
// repositories, so the read SQL is verified against the real schema.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	invoices   *invoicerepo.GormInvoiceRepository
	sessions   *sessionrepo.GormSessionRepository
	deliveries *deliveryrepo.GormDeliveryRepository
	returns    *returnrepo.GormReturnRepository
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&invoicerepo.InvoiceDTO{},
		&invoicerepo.LineItemDTO{},
		&invoicerepo.StatusTransitionDTO{},
		&sessionrepo.SessionDTO{},
		&deliveryrepo.DeliveryDTO{},
		&returnrepo.ReturnDTO{},
	)
	suite.Require().NoError(err)

	tracker := noopTracker{}
	suite.invoices = invoicerepo.NewGormInvoiceRepository(db, tracker)
	suite.sessions = sessionrepo.NewGormSessionRepository(db, tracker)
	suite.deliveries = deliveryrepo.NewGormDeliveryRepository(db, tracker)
	suite.returns = returnrepo.NewGormReturnRepository(db)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE invoices, invoice_line_items, invoice_status_transitions, " +
			"stage_sessions, delivery_sessions, invoice_returns").Error
	suite.Require().NoError(err)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetInvoice_FullView() {
	ctx := context.Background()
	handler := queries.NewGetInvoiceQueryHandler(suite.db)

	inv := suite.seedInvoice("INV-2024-00731", invoice.PriorityHigh)
	actorID := kernel.NewUUID()

	// One completed picking session with notes.
	sess, err := session.NewSession(kernel.NewUUID(), inv.ID(), kernel.StagePicking, actorID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.sessions.Add(ctx, sess))
	suite.Require().NoError(sess.Complete(actorID, "picked short 1 line"))
	suite.Require().NoError(suite.sessions.Update(ctx, sess))

	// One return raised from picking.
	record, err := invoice.NewReturn(
		kernel.NewUUID(), inv.ID(), kernel.StagePicking, actorID, "damaged stock", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.returns.Add(ctx, record))

	query, err := queries.NewGetInvoiceQuery("INV-2024-00731")
	suite.Require().NoError(err)

	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(inv.ID(), view.ID)
	suite.Equal("INV-2024-00731", view.InvoiceNo)
	suite.Equal("High", view.Priority)
	suite.Equal("Invoiced", view.Status)
	suite.Equal("Billed", view.BillingStatus)
	suite.Nil(view.TotalOverride)

	suite.Require().Len(view.LineItems, 2)
	suite.Equal("Paracetamol 500mg", view.LineItems[0].Name)
	suite.True(view.LineItems[0].UnitPrice.Equal(decimal.NewFromFloat(1.50)))

	suite.Require().Len(view.Sessions, 1)
	suite.Equal(sess.ID(), view.Sessions[0].ID)
	suite.Equal("Picking", view.Sessions[0].Stage)
	suite.Equal("Completed", view.Sessions[0].State)
	suite.Equal("picked short 1 line", view.Sessions[0].Notes)
	suite.NotNil(view.Sessions[0].EndedAt)

	suite.Require().Len(view.Returns, 1)
	suite.Equal("damaged stock", view.Returns[0].Reason)
	suite.Equal("Picking", view.Returns[0].Stage)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetInvoice_UnknownNumber_ReturnsNotFoundError() {
	handler := queries.NewGetInvoiceQueryHandler(suite.db)

	query, err := queries.NewGetInvoiceQuery("INV-MISSING")
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListConsiderList_ReturnsOnlyPendingSessions() {
	ctx := context.Background()
	handler := queries.NewListConsiderListQueryHandler(suite.db)

	pendingInv := suite.seedInvoice("INV-2024-00801", invoice.PriorityMedium)
	doneInv := suite.seedInvoice("INV-2024-00802", invoice.PriorityMedium)
	dispatcherID := kernel.NewUUID()

	pending, err := delivery.NewCourierSession(
		kernel.NewUUID(), pendingInv.ID(), dispatcherID, kernel.NewUUID(), "TRK-4471")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.deliveries.Add(ctx, pending))

	// A confirmed internal delivery stays off the consider list.
	confirmed, err := delivery.NewInternalSession(
		kernel.NewUUID(), doneInv.ID(), dispatcherID, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.deliveries.Add(ctx, confirmed))
	suite.Require().NoError(suite.db.Model(&deliveryrepo.DeliveryDTO{}).
		Where("id = ?", confirmed.ID().Bytes()).
		Update("state", int(delivery.StateDelivered)).Error)

	result, err := handler.Handle(ctx, queries.NewListConsiderListQuery())
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(pending.ID(), result[0].SessionID)
	suite.Equal(pendingInv.ID(), result[0].InvoiceID)
	suite.Equal("INV-2024-00801", result[0].InvoiceNo)
	suite.Equal("Invoiced", result[0].InvoiceStatus)
	suite.Equal("Courier", result[0].DeliveryType)
	suite.Equal("TRK-4471", result[0].TrackingNo)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListReturns_OrderedOldestFirst() {
	ctx := context.Background()
	handler := queries.NewListReturnsQueryHandler(suite.db)

	inv := suite.seedInvoice("INV-2024-00911", invoice.PriorityLow)
	actorID := kernel.NewUUID()

	first, err := invoice.NewReturn(kernel.NewUUID(), inv.ID(), kernel.StagePicking, actorID,
		"wrong batch", time.Now().UTC().Add(-2*time.Hour))
	suite.Require().NoError(err)
	second, err := invoice.NewReturn(kernel.NewUUID(), inv.ID(), kernel.StagePacking, actorID,
		"box damaged", time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)

	// Insert newest first to prove ordering comes from the query.
	suite.Require().NoError(suite.returns.Add(ctx, second))
	suite.Require().NoError(suite.returns.Add(ctx, first))

	query, err := queries.NewListReturnsQuery("INV-2024-00911")
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.Equal("wrong batch", result[0].Reason)
	suite.Equal("Picking", result[0].Stage)
	suite.Equal("box damaged", result[1].Reason)
	suite.Equal("Packing", result[1].Stage)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListReturns_UnknownInvoice_ReturnsEmptySlice() {
	handler := queries.NewListReturnsQueryHandler(suite.db)

	query, err := queries.NewListReturnsQuery("INV-MISSING")
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListInvoicesByStatus_UrgentFirst() {
	ctx := context.Background()
	handler := queries.NewListInvoicesByStatusQueryHandler(suite.db)

	low := suite.seedInvoice("INV-2024-01001", invoice.PriorityLow)
	high := suite.seedInvoice("INV-2024-01002", invoice.PriorityHigh)
	suite.seedInvoiceInStatus("INV-2024-01003", invoice.PriorityHigh, ctx)

	query, err := queries.NewListInvoicesByStatusQuery(invoice.StatusInvoiced)
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	suite.Equal(high.ID(), result[0].ID)
	suite.Equal("High", result[0].Priority)
	suite.Equal(low.ID(), result[1].ID)
	suite.Equal("Low", result[1].Priority)
}

// seedInvoice imports a fresh invoice with two standard lines.
func (suite *QueryHandlersIntegrationTestSuite) seedInvoice(
	invoiceNo string, priority invoice.Priority,
) *invoice.Invoice {
	expiry := time.Now().UTC().AddDate(1, 0, 0)
	first, err := invoice.NewLineItem(
		"Paracetamol 500mg", "PCM-500", 200, decimal.NewFromFloat(1.50), "B-4411", expiry, "A-03-17")
	suite.Require().NoError(err)
	second, err := invoice.NewLineItem(
		"Amoxicillin 250mg", "AMX-250", 60, decimal.NewFromFloat(4.20), "B-5102", expiry, "B-11-02")
	suite.Require().NoError(err)

	inv, err := invoice.NewInvoice(
		kernel.NewUUID(), invoiceNo, time.Now().UTC(), priority, "", []invoice.LineItem{first, second})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.invoices.Add(context.Background(), inv))
	return inv
}

// seedInvoiceInStatus seeds an invoice and walks it to the picking status
// so it falls out of the Invoiced worklist.
func (suite *QueryHandlersIntegrationTestSuite) seedInvoiceInStatus(
	invoiceNo string, priority invoice.Priority, ctx context.Context,
) {
	inv := suite.seedInvoice(invoiceNo, priority)
	suite.Require().NoError(inv.ClaimStage(kernel.StagePicking, kernel.NewUUID()))
	suite.Require().NoError(suite.invoices.Update(ctx, inv))
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
