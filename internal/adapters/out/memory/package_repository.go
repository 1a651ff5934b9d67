package memory

import (
	"cmp"
	"context"
	"slices"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/pkg/errs"
)

type packageRepository struct {
	uow *UnitOfWork
}

func (r packageRepository) Add(_ context.Context, p *shipment.Package) error {
	st, err := r.uow.write()
	if err != nil {
		return err
	}
	snap := p.Snapshot()
	if _, ok := st.shipments[snap.ShipmentID]; !ok {
		return errs.NewObjectNotFoundError("shipment id", snap.ShipmentID)
	}
	for _, row := range st.packages {
		if row.snap.ID.IsEqual(snap.ID) || row.snap.SubTrackingID == snap.SubTrackingID {
			return errs.NewConflictError("package")
		}
	}
	st.packages[snap.ID] = packageRow{snap: snap, seq: st.next()}
	return nil
}

func (r packageRepository) Update(_ context.Context, p *shipment.Package) error {
	st, err := r.uow.write()
	if err != nil {
		return err
	}
	row, ok := st.packages[p.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("package id", p.ID())
	}
	row.snap = p.Snapshot()
	st.packages[p.ID()] = row
	return nil
}

func (r packageRepository) Get(_ context.Context, id kernel.UUID) (*shipment.Package, error) {
	row, ok := r.uow.read().packages[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("package id", id)
	}
	return shipment.RestorePackage(row.snap)
}

func (r packageRepository) ListByShipment(_ context.Context, shipmentID kernel.UUID) ([]*shipment.Package, error) {
	var rows []packageRow
	for _, row := range r.uow.read().packages {
		if row.snap.ShipmentID.IsEqual(shipmentID) {
			rows = append(rows, row)
		}
	}
	// Sub-tracking suffixes grow in length after Z, so order by length first.
	slices.SortFunc(rows, func(a, b packageRow) int {
		return cmp.Or(
			cmp.Compare(len(a.snap.SubTrackingID), len(b.snap.SubTrackingID)),
			cmp.Compare(a.snap.SubTrackingID, b.snap.SubTrackingID),
		)
	})

	packages := make([]*shipment.Package, 0, len(rows))
	for _, row := range rows {
		p, err := shipment.RestorePackage(row.snap)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, nil
}
