// Package memory is an in-process implementation of the persistence ports.
//
// The store keeps committed state behind an atomic pointer and never changes
// it in place: a unit of work copies the state on Begin, works on the copy and
// swaps it in on Commit. Only one unit of work runs at a time, which makes
// every transaction serializable, and it also means anything slow done while
// a unit of work is open stalls every other writer. Keep network calls out of
// units of work. Reads outside a unit of work see the last committed state.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync/atomic"
	"time"

	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/payment"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/core/ports"
)

type Store struct {
	committed atomic.Pointer[state]
	writer    chan struct{}
}

func NewStore() *Store {
	s := &Store{writer: make(chan struct{}, 1)}
	s.committed.Store(newState())
	return s
}

// acquire takes the single writer slot, giving up when ctx is done.
func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.writer <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.writer
}

type packageRow struct {
	snap shipment.PackageSnapshot
	seq  int64
}

type assignmentRow struct {
	snap assignment.Snapshot
	seq  int64
}

type paymentRow struct {
	snap payment.Snapshot
	seq  int64
}

type eventRow struct {
	event *tracking.Event
	seq   int64
}

type recordRow struct {
	record *tracking.StatusRecord
	seq    int64
}

type outboxRow struct {
	entry        ports.OutboxEntry
	seq          int64
	delivered    bool
	dead         bool
	lastError    string
	claimedUntil time.Time
}

// state is one immutable version of the data once committed. Stored
// tracking entries are immutable themselves, so rows may be shared between
// versions.
type state struct {
	seq         int64
	shipments   map[kernel.UUID]shipment.Snapshot
	packages    map[kernel.UUID]packageRow
	assignments map[kernel.UUID]assignmentRow
	payments    map[kernel.UUID]paymentRow
	events      []eventRow
	records     []recordRow
	outbox      map[kernel.UUID]outboxRow
}

func newState() *state {
	return &state{
		shipments:   map[kernel.UUID]shipment.Snapshot{},
		packages:    map[kernel.UUID]packageRow{},
		assignments: map[kernel.UUID]assignmentRow{},
		payments:    map[kernel.UUID]paymentRow{},
		outbox:      map[kernel.UUID]outboxRow{},
	}
}

func (st *state) clone() *state {
	return &state{
		seq:         st.seq,
		shipments:   maps.Clone(st.shipments),
		packages:    maps.Clone(st.packages),
		assignments: maps.Clone(st.assignments),
		payments:    maps.Clone(st.payments),
		events:      slices.Clone(st.events),
		records:     slices.Clone(st.records),
		outbox:      maps.Clone(st.outbox),
	}
}

func (st *state) next() int64 {
	st.seq++
	return st.seq
}
