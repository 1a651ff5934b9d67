package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "arenoexpress/internal/adapters/in/http"
	"arenoexpress/internal/adapters/out/kafka"
	"arenoexpress/internal/adapters/out/logsink"
	"arenoexpress/internal/adapters/out/memory"
	"arenoexpress/internal/adapters/out/postgres"
	"arenoexpress/internal/adapters/out/rabbitmq"
	"arenoexpress/internal/core/application/usecases/commands"
	"arenoexpress/internal/core/application/usecases/queries"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/services"
	"arenoexpress/internal/core/ports"
	"arenoexpress/internal/jobs"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	uowFactory   ports.UnitOfWorkFactory
	sink         ports.NotificationSink
	clock        kernel.Clock
	policy       services.AccessPolicy
	generator    *services.IdentifierGenerator
	transitioner services.StatusTransitioner
	coupling     commands.PaymentCoupling
	apiDoc       *httpadapter.APIDoc

	closers []func() error
}

// NewCompositionRoot opens storage and the notification sink selected by
// cfg. Call Close when done.
func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:    cfg,
		logger: logger,
		clock:  kernel.SystemClock{},
		policy: services.NewAccessPolicy(),
	}

	var err error
	if c.coupling, err = commands.ParsePaymentCoupling(cfg.PaymentCoupling); err != nil {
		return nil, err
	}
	if c.generator, err = services.NewIdentifierGenerator(c.clock, kernel.SystemRandom{}, cfg.IDMaxAttempts); err != nil {
		return nil, err
	}
	if c.transitioner, err = services.NewStatusTransitioner(c.clock); err != nil {
		return nil, err
	}
	if c.apiDoc, err = httpadapter.LoadAPIDoc(context.Background()); err != nil {
		return nil, err
	}
	if err = c.openStorage(); err != nil {
		return nil, err
	}
	if err = c.openSink(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) openStorage() error {
	switch c.cfg.StorageDriver {
	case StorageDriverMemory:
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
		c.logger.Warn("Using in-memory storage, data is lost on exit")
		return nil
	case StorageDriverPostgres:
		db, err := gorm.Open(gormpostgres.Open(c.cfg.DSN()), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		c.closers = append(c.closers, sqlDB.Close)
		if err = postgres.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", c.cfg.StorageDriver)
	}
}

func (c *CompositionRoot) openSink() error {
	switch c.cfg.NotificationSink {
	case SinkKafka:
		sink, err := kafka.NewNotificationSink(c.cfg.KafkaBrokerList(), c.cfg.KafkaNotificationTopic)
		if err != nil {
			return err
		}
		c.sink = sink
		c.closers = append(c.closers, sink.Close)
	case SinkRabbitMQ:
		sink, err := rabbitmq.NewNotificationSink(c.cfg.RabbitMQURL, c.cfg.RabbitMQNotificationQueue)
		if err != nil {
			return err
		}
		c.sink = sink
		c.closers = append(c.closers, sink.Close)
	default:
		c.sink = logsink.NewNotificationSink(c.logger)
	}
	return nil
}

// Close releases the sink and the database in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) commandUoWs() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) readers() queries.ReaderFactory {
	return FuncReaderFactory(func() queries.Reader {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWs() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	uows, readers := c.commandUoWs(), c.readers()
	return httpadapter.NewServer(httpadapter.Handlers{
		BookShipment:        commands.NewBookShipmentCommandHandler(uows, c.policy, c.generator, c.transitioner, c.clock),
		DeleteShipment:      commands.NewDeleteShipmentCommandHandler(uows, c.policy),
		TransitionStatus:    commands.NewTransitionStatusCommandHandler(uows, c.policy, c.transitioner, c.clock),
		RecordPickup:        commands.NewRecordPickupCommandHandler(uows, c.policy, c.transitioner, c.clock),
		RecordDelivery:      commands.NewRecordDeliveryCommandHandler(uows, c.policy, c.transitioner, c.clock),
		AssignAgent:         commands.NewAssignAgentCommandHandler(uows, c.policy),
		RecordTrackingEvent: commands.NewRecordTrackingEventCommandHandler(uows, c.policy, c.clock),
		Packages:            commands.NewPackageCommandHandler(uows, c.policy, c.generator),
		CreateAssignment:    commands.NewCreateAssignmentCommandHandler(uows, c.policy, c.transitioner, c.clock),
		AssignmentAction:    commands.NewAssignmentActionCommandHandler(uows, c.policy, c.transitioner, c.clock),
		CreatePayment:       commands.NewCreatePaymentCommandHandler(uows, c.policy, c.generator, c.coupling, c.clock),
		PaymentAction:       commands.NewPaymentActionCommandHandler(uows, c.policy, c.coupling, c.clock),
		PublicTrack:         queries.NewPublicTrackQueryHandler(readers),
		Shipments:           queries.NewShipmentQueryHandler(readers, c.policy),
	}, c.apiDoc, c.logger)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	// Claims last one run; entries a timed-out run never recorded are retried
	// by a later one.
	relayCmd, err := commands.NewRelayNotificationsCommand(
		c.cfg.OutboxBatchSize, c.cfg.OutboxMaxAttempts, c.cfg.OutboxRunTimeout)
	if err != nil {
		return nil, err
	}
	relay := jobs.NewNotificationRelayJob(
		commands.NewRelayNotificationsCommandHandler(c.outboxUoWs(), c.sink, c.clock),
		relayCmd,
		c.cfg.OutboxSchedule,
		c.cfg.OutboxRunTimeout,
		c.logger,
	)
	return jobs.NewJobManager(relay), nil
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncReaderFactory func() queries.Reader

func (f FuncReaderFactory) Create() queries.Reader {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
