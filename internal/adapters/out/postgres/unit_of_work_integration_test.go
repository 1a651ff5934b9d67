package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "arenoexpress/internal/adapters/out/postgres"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/core/ports"
	"arenoexpress/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var bookedAt = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite runs the unit of work and every repository
// against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	// a second run must be a no-op
	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipments, packages, tracking_events, status_history, " +
		"driver_assignments, payments, notification_outbox").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newShipment(trackingNumber, masterTrackingID string) *shipment.Shipment {
	fee, err := kernel.ParseMoney("50.00")
	suite.Require().NoError(err)
	s, err := shipment.NewShipment(shipment.BookingDetails{
		ID:               kernel.NewUUID(),
		TrackingNumber:   trackingNumber,
		MasterTrackingID: masterTrackingID,
		SenderID:         kernel.NewUUID(),
		ReceiverID:       kernel.NewUUID(),
		PickupAddress:    "12 Moi Avenue, Nairobi",
		DeliveryAddress:  "4 Nyerere Road, Mombasa",
		ShipmentFee:      fee,
		TotalAmount:      fee,
		CreatedAt:        bookedAt,
	})
	suite.Require().NoError(err)
	return s
}

// commit runs fn in its own unit of work and commits it.
func (suite *UnitOfWorkIntegrationTestSuite) commit(fn func(ctx context.Context, uow ports.UnitOfWork)) {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	fn(ctx, uow)
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "commit without begin")
	suite.Require().NoError(uow.Rollback(ctx), "rollback without begin is a no-op")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second begin is safe")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().NoError(uow.Rollback(ctx), "rollback after commit is a no-op")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEveryRepository() {
	ctx := suite.T().Context()
	s := suite.newShipment("TRK2026AAAAAAAA", "MT2026AAAAAA")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	p, err := shipment.NewPackage(kernel.NewUUID(), s.ID(), "TRK2026AAAAAAAA-A", "QR_1_TRK2026AAAAAAAA-A", shipment.PackageDetails{})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.PackageRepository().Add(ctx, p))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.ShipmentRepository().Get(ctx, s.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = reader.PackageRepository().Get(ctx, p.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestShipmentRepository_RoundTripAndUniqueness() {
	ctx := suite.T().Context()
	s := suite.newShipment("TRK2026AAAAAAAA", "MT2026AAAAAA")
	agent := kernel.NewUUID()
	suite.Require().NoError(s.AssignAgent(agent))

	suite.commit(func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	})

	reader := suite.factory.Create()
	got, err := reader.ShipmentRepository().GetByTrackingNumber(ctx, "TRK2026AAAAAAAA")
	suite.Require().NoError(err)
	want, have := s.Snapshot(), got.Snapshot()
	suite.Equal(want.ID, have.ID)
	suite.Equal(want.MasterTrackingID, have.MasterTrackingID)
	suite.Equal(agent, *have.AgentID)
	suite.Nil(have.DriverID)
	suite.Equal(want.Status, have.Status)
	suite.Equal(want.PaymentStatus, have.PaymentStatus)
	suite.Equal(want.ShipmentFee.Cents(), have.ShipmentFee.Cents())
	suite.Equal(want.PickupAddress, have.PickupAddress)
	suite.WithinDuration(want.CreatedAt, have.CreatedAt, time.Millisecond)

	exists, err := reader.ShipmentRepository().MasterTrackingIDExists(ctx, "MT2026AAAAAA")
	suite.Require().NoError(err)
	suite.True(exists)

	err = reader.ShipmentRepository().Add(ctx, suite.newShipment("TRK2026AAAAAAAA", "MT2026BBBBBB"))
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestShipmentRepository_GetForUpdateBlocksOtherWriters() {
	ctx := suite.T().Context()
	s := suite.newShipment("TRK2026AAAAAAAA", "MT2026AAAAAA")
	suite.commit(func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	})

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	_, err := holder.ShipmentRepository().GetForUpdate(ctx, s.ID())
	suite.Require().NoError(err)

	waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	waiter := suite.factory.Create()
	suite.Require().NoError(waiter.Begin(waitCtx))
	defer func() { _ = waiter.Rollback(ctx) }()
	_, err = waiter.ShipmentRepository().GetForUpdate(waitCtx, s.ID())
	suite.Require().Error(err, "the second lock must wait for the first transaction")

	_, err = suite.factory.Create().ShipmentRepository().Get(ctx, s.ID())
	suite.Require().NoError(err, "plain reads never wait")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPackageRepository_OrderAndPhotos() {
	ctx := suite.T().Context()
	s := suite.newShipment("TRK2026AAAAAAAA", "MT2026AAAAAA")
	var z *shipment.Package
	suite.commit(func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
		for _, suffix := range []string{"AA", "B", "Z", "A"} {
			p, err := shipment.NewPackage(kernel.NewUUID(), s.ID(), "TRK2026AAAAAAAA-"+suffix, "QR_"+suffix,
				shipment.PackageDetails{Description: suffix, Weight: 1})
			suite.Require().NoError(err)
			suite.Require().NoError(uow.PackageRepository().Add(ctx, p))
			if suffix == "Z" {
				z = p
			}
		}
	})

	suite.Require().NoError(z.AddPhoto("photos/1.jpg"))
	suite.Require().NoError(z.AddPhoto("photos/2.jpg"))
	suite.commit(func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.PackageRepository().Update(ctx, z))
	})

	packages, err := suite.factory.Create().PackageRepository().ListByShipment(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().Len(packages, 4)
	var order []string
	for _, p := range packages {
		order = append(order, p.Details().Description)
	}
	suite.Equal([]string{"A", "B", "Z", "AA"}, order)
	suite.Equal([]string{"photos/1.jpg", "photos/2.jpg"}, packages[2].Photos())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLedger_NewestFirstAndAppendOnly() {
	ctx := suite.T().Context()
	s := suite.newShipment("TRK2026AAAAAAAA", "MT2026AAAAAA")
	actor := kernel.NewUUID()
	loc, err := kernel.NewLocation("Nairobi hub")
	suite.Require().NoError(err)

	var first, tie *tracking.Event
	suite.commit(func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
		for i, et := range []tracking.EventType{tracking.EventBooked, tracking.EventPickupScheduled, tracking.EventInTransit} {
			at := bookedAt.Add(time.Duration(min(i, 1)) * time.Minute)
			e, err := tracking.NewEvent(tracking.EventParams{
				ID: kernel.NewUUID(), ShipmentID: s.ID(), Type: et, Location: loc, Timestamp: at,
				CreatedBy: &actor, Metadata: map[string]string{"step": et.String()},
			})
			suite.Require().NoError(err)
			suite.Require().NoError(uow.TrackingEventRepository().Append(ctx, e))
			if i == 0 {
				first = e
			}
			tie = e
		}
		rec, err := tracking.NewStatusRecord(kernel.NewUUID(), s.ID(), shipment.Booked, loc, "", actor, bookedAt)
		suite.Require().NoError(err)
		suite.Require().NoError(uow.StatusHistoryRepository().Append(ctx, rec))
	})

	events, err := suite.factory.Create().TrackingEventRepository().ListByShipment(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().Len(events, 3)
	suite.Equal(tie.ID(), events[0].ID(), "equal timestamps fall back to insertion order")
	suite.Equal(first.ID(), events[2].ID())
	suite.Equal("booked", events[2].Metadata()["step"])
	suite.Equal(actor, *events[2].CreatedBy())

	err = suite.db.Exec("UPDATE tracking_events SET description = 'edited'").Error
	suite.Require().Error(err)
	err = suite.db.Exec("UPDATE status_history SET notes = 'edited'").Error
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignmentRepository_OneActivePerType() {
	ctx := suite.T().Context()
	s := suite.newShipment("TRK2026AAAAAAAA", "MT2026AAAAAA")
	driver := kernel.NewUUID()
	newPickup := func() *assignment.Assignment {
		a, err := assignment.NewAssignment(kernel.NewUUID(), s.ID(), driver, nil, assignment.Pickup, "", 30, bookedAt)
		suite.Require().NoError(err)
		return a
	}
	first, second := newPickup(), newPickup()

	suite.commit(func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
		suite.Require().NoError(uow.AssignmentRepository().Add(ctx, first))
		suite.Require().NoError(uow.AssignmentRepository().Add(ctx, second))
		suite.Require().NoError(first.Accept(bookedAt.Add(time.Minute)))
		suite.Require().NoError(uow.AssignmentRepository().Update(ctx, first))
	})

	suite.Require().NoError(second.Accept(bookedAt.Add(2 * time.Minute)))
	err := suite.factory.Create().AssignmentRepository().Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	active, err := suite.factory.Create().AssignmentRepository().FindActive(ctx, s.ID(), assignment.Pickup)
	suite.Require().NoError(err)
	suite.Require().NotNil(active)
	suite.Equal(first.ID(), active.ID())

	none, err := suite.factory.Create().AssignmentRepository().FindActive(ctx, s.ID(), assignment.Delivery)
	suite.Require().NoError(err)
	suite.Nil(none)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestShipmentRepository_DeleteCascades() {
	ctx := suite.T().Context()
	s := suite.newShipment("TRK2026AAAAAAAA", "MT2026AAAAAA")
	amount, err := kernel.ParseMoney("50.00")
	suite.Require().NoError(err)
	pay, err := payment.NewPayment(kernel.NewUUID(), s.ID(), s.SenderID(), payment.ShipmentFee, amount,
		payment.Card, "TXN20260314AAAAAAAA", payment.GatewayResponse{"auth": "ok"}, bookedAt)
	suite.Require().NoError(err)

	suite.commit(func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
		suite.Require().NoError(uow.PaymentRepository().Add(ctx, pay))
		e, err := tracking.NewEvent(tracking.EventParams{
			ID: kernel.NewUUID(), ShipmentID: s.ID(), Type: tracking.EventBooked, Timestamp: bookedAt,
		})
		suite.Require().NoError(err)
		suite.Require().NoError(uow.TrackingEventRepository().Append(ctx, e))
	})

	got, err := suite.factory.Create().PaymentRepository().Get(ctx, pay.ID())
	suite.Require().NoError(err)
	suite.Equal("ok", got.GatewayResponse()["auth"])
	taken, err := suite.factory.Create().PaymentRepository().TransactionIDExists(ctx, "TXN20260314AAAAAAAA")
	suite.Require().NoError(err)
	suite.True(taken)

	suite.commit(func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.ShipmentRepository().Delete(ctx, s.ID()))
	})

	reader := suite.factory.Create()
	_, err = reader.PaymentRepository().Get(ctx, pay.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	events, err := reader.TrackingEventRepository().ListByShipment(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Empty(events)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutbox_RelaysSkipClaimedRows() {
	ctx := suite.T().Context()
	msg := func(title string) notification.Message {
		return notification.Message{UserID: kernel.NewUUID(), Type: notification.ShipmentBooked, Title: title}
	}
	suite.commit(func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.NotificationOutbox().Enqueue(ctx, bookedAt, msg("first"), msg("second")))
	})

	relay1 := suite.factory.Create()
	suite.Require().NoError(relay1.Begin(ctx))
	defer func() { _ = relay1.Rollback(ctx) }()
	claimed, err := relay1.NotificationOutbox().Pending(ctx, 1, bookedAt)
	suite.Require().NoError(err)
	suite.Require().Len(claimed, 1)
	suite.Equal("first", claimed[0].Message.Title)

	relay2 := suite.factory.Create()
	suite.Require().NoError(relay2.Begin(ctx))
	defer func() { _ = relay2.Rollback(ctx) }()
	others, err := relay2.NotificationOutbox().Pending(ctx, 10, bookedAt)
	suite.Require().NoError(err)
	suite.Require().Len(others, 1)
	suite.Equal("second", others[0].Message.Title)

	suite.Require().NoError(relay1.NotificationOutbox().MarkDelivered(ctx, claimed[0].ID, bookedAt))
	suite.Require().NoError(relay1.Commit(ctx))
	suite.Require().NoError(relay2.NotificationOutbox().MarkFailed(ctx, others[0].ID, 5, "broker down", true))
	suite.Require().NoError(relay2.Commit(ctx))

	pending, err := suite.factory.Create().NotificationOutbox().Pending(ctx, 10, bookedAt)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutbox_ClaimOutlivesTheTransaction() {
	ctx := suite.T().Context()
	suite.commit(func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.NotificationOutbox().Enqueue(ctx, bookedAt,
			notification.Message{UserID: kernel.NewUUID(), Type: notification.ShipmentBooked, Title: "claimed"}))
	})

	until := bookedAt.Add(time.Minute)
	var id kernel.UUID
	suite.commit(func(ctx context.Context, uow ports.UnitOfWork) {
		pending, err := uow.NotificationOutbox().Pending(ctx, 10, bookedAt)
		suite.Require().NoError(err)
		suite.Require().Len(pending, 1)
		id = pending[0].ID
		suite.Require().NoError(uow.NotificationOutbox().Claim(ctx, id, until))
	})

	reader := suite.factory.Create().NotificationOutbox()
	hidden, err := reader.Pending(ctx, 10, bookedAt.Add(30*time.Second))
	suite.Require().NoError(err)
	suite.Empty(hidden)

	expired, err := reader.Pending(ctx, 10, until)
	suite.Require().NoError(err)
	suite.Require().Len(expired, 1)

	suite.commit(func(ctx context.Context, uow ports.UnitOfWork) {
		suite.Require().NoError(uow.NotificationOutbox().MarkFailed(ctx, id, 1, "broker down", false))
	})
	retried, err := reader.Pending(ctx, 10, bookedAt)
	suite.Require().NoError(err)
	suite.Require().Len(retried, 1)
	suite.Equal(1, retried[0].Attempts)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
