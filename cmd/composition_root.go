package cmd

import (
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/directoryrepo"
	redisout "fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CompositionRoot assembles the object graph: shared infrastructure at the
// bottom, one factory method per use case on top.
type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	logger zerolog.Logger

	uowFactory   postgres.GormUnitOfWorkFactory
	directory    *directoryrepo.GormDirectory
	capabilities services.RoleCapabilityChecker
	notifier     ports.EventNotifier
}

// NewCompositionRoot creates the composition root from the already opened
// infrastructure connections.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger zerolog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:       config,
		gormDB:       gormDB,
		logger:       logger,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		directory:    directoryrepo.NewGormDirectory(gormDB),
		capabilities: services.NewRoleCapabilityChecker(),
		notifier:     redisout.NewEventNotifier(redisClient, config.EventChannel),
	}
}

func (c *CompositionRoot) CreateCreateInvoiceCommandHandler() commands.CreateInvoiceCommandHandler {
	var f commands.InvoiceUoWFactory = FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateInvoiceCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateClaimStageCommandHandler() commands.ClaimStageCommandHandler {
	var f commands.StageUoWFactory = FuncStageUoWFactory(func() commands.StageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimStageCommandHandler(f, c.directory, c.capabilities, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCompleteStageCommandHandler() commands.CompleteStageCommandHandler {
	var f commands.StageUoWFactory = FuncStageUoWFactory(func() commands.StageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteStageCommandHandler(f, c.directory, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateReturnToBillingCommandHandler() commands.ReturnToBillingCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReturnToBillingCommandHandler(f, c.directory, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateMarkReInvoicedCommandHandler() commands.MarkReInvoicedCommandHandler {
	var f commands.InvoiceUoWFactory = FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkReInvoicedCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateResubmitInvoiceCommandHandler() commands.ResubmitInvoiceCommandHandler {
	var f commands.InvoiceUoWFactory = FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResubmitInvoiceCommandHandler(f, c.directory, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateDispatchDirectCommandHandler() commands.DispatchDirectCommandHandler {
	return commands.NewDispatchDirectCommandHandler(
		c.deliveryUoWFactory(), c.directory, c.capabilities, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateDispatchCourierCommandHandler() commands.DispatchCourierCommandHandler {
	return commands.NewDispatchCourierCommandHandler(
		c.deliveryUoWFactory(), c.directory, c.directory, c.capabilities, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateDispatchInternalCommandHandler() commands.DispatchInternalCommandHandler {
	return commands.NewDispatchInternalCommandHandler(
		c.deliveryUoWFactory(), c.directory, c.directory, c.capabilities, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUploadSlipCommandHandler() commands.UploadSlipCommandHandler {
	return commands.NewUploadSlipCommandHandler(
		c.deliveryUoWFactory(), c.directory, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateConfirmInternalCommandHandler() commands.ConfirmInternalCommandHandler {
	return commands.NewConfirmInternalCommandHandler(
		c.deliveryUoWFactory(), c.directory, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetInvoiceQueryHandler() queries.GetInvoiceQueryHandler {
	return queries.NewGetInvoiceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListInvoicesByStatusQueryHandler() queries.ListInvoicesByStatusQueryHandler {
	return queries.NewListInvoicesByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListConsiderListQueryHandler() queries.ListConsiderListQueryHandler {
	return queries.NewListConsiderListQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListReturnsQueryHandler() queries.ListReturnsQueryHandler {
	return queries.NewListReturnsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the inbound HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateInvoiceCommandHandler(),
		c.CreateClaimStageCommandHandler(),
		c.CreateCompleteStageCommandHandler(),
		c.CreateReturnToBillingCommandHandler(),
		c.CreateMarkReInvoicedCommandHandler(),
		c.CreateResubmitInvoiceCommandHandler(),
		c.CreateDispatchDirectCommandHandler(),
		c.CreateDispatchCourierCommandHandler(),
		c.CreateDispatchInternalCommandHandler(),
		c.CreateUploadSlipCommandHandler(),
		c.CreateConfirmInternalCommandHandler(),
		c.CreateGetInvoiceQueryHandler(),
		c.CreateListInvoicesByStatusQueryHandler(),
		c.CreateListConsiderListQueryHandler(),
		c.CreateListReturnsQueryHandler(),
	)
}

// CreateConsiderListSweepJob assembles the background reminder job.
func (c *CompositionRoot) CreateConsiderListSweepJob() *jobs.ConsiderListSweepJob {
	return jobs.NewConsiderListSweepJob(
		c.CreateListConsiderListQueryHandler(),
		c.notifier,
		c.config.SweepSchedule,
		c.config.SweepMaxAge,
		c.logger,
	)
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

type FuncInvoiceUoWFactory func() commands.InvoiceUoW

func (f FuncInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return f()
}

type FuncStageUoWFactory func() commands.StageUoW

func (f FuncStageUoWFactory) Create() commands.StageUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}
