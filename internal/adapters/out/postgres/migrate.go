package postgres

import (
	"fmt"

	"arenoexpress/internal/adapters/out/postgres/assignmentrepo"
	"arenoexpress/internal/adapters/out/postgres/outboxrepo"
	"arenoexpress/internal/adapters/out/postgres/packagerepo"
	"arenoexpress/internal/adapters/out/postgres/paymentrepo"
	"arenoexpress/internal/adapters/out/postgres/shipmentrepo"
	"arenoexpress/internal/adapters/out/postgres/trackingrepo"
	"arenoexpress/internal/core/domain/model/assignment"

	"gorm.io/gorm"
)

// Tables lists every table Migrate manages, dependents last.
var Tables = []string{
	"shipments",
	"packages",
	"tracking_events",
	"status_history",
	"driver_assignments",
	"payments",
	"notification_outbox",
}

// Migrate creates or updates the schema. It is idempotent.
//
// Beyond AutoMigrate it installs:
//   - a partial unique index allowing one accepted or in-progress assignment
//     per shipment and type
//   - triggers that reject UPDATE on the two ledger tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&packagerepo.PackageDTO{},
		&trackingrepo.EventDTO{},
		&trackingrepo.StatusRecordDTO{},
		&assignmentrepo.AssignmentDTO{},
		&paymentrepo.PaymentDTO{},
		&outboxrepo.EntryDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	statements := []string{
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS uq_driver_assignments_active
			ON driver_assignments (shipment_id, assignment_type)
			WHERE status IN (%d, %d)`, assignment.Accepted, assignment.InProgress),
		`CREATE OR REPLACE FUNCTION reject_ledger_update() RETURNS trigger AS $$
		BEGIN
			RAISE EXCEPTION '% is append-only', TG_TABLE_NAME;
		END;
		$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS tracking_events_append_only ON tracking_events`,
		`CREATE TRIGGER tracking_events_append_only BEFORE UPDATE ON tracking_events
			FOR EACH ROW EXECUTE FUNCTION reject_ledger_update()`,
		`DROP TRIGGER IF EXISTS status_history_append_only ON status_history`,
		`CREATE TRIGGER status_history_append_only BEFORE UPDATE ON status_history
			FOR EACH ROW EXECUTE FUNCTION reject_ledger_update()`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
