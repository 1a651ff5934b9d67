// Package queries contains the read operations of the lifecycle engine:
// public and authenticated tracking, shipment details, ledger history and
// payments. Queries never lock and never write.
package queries

import "arenoexpress/internal/core/ports"

type (
	// Reader exposes the repositories queries read from. Outside a
	// transaction each call sees the latest committed state.
	Reader interface {
		ShipmentRepository() ports.ShipmentRepository
		PackageRepository() ports.PackageRepository
		TrackingEventRepository() ports.TrackingEventRepository
		StatusHistoryRepository() ports.StatusHistoryRepository
		AssignmentRepository() ports.AssignmentRepository
		PaymentRepository() ports.PaymentRepository
	}

	ReaderFactory interface {
		Create() Reader
	}
)
