package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/ports"
	"arenoexpress/internal/pkg/errs"
)

type outbox struct {
	uow *UnitOfWork
}

func (o outbox) Enqueue(_ context.Context, at time.Time, msgs ...notification.Message) error {
	st, err := o.uow.write()
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		if err = msg.Validate(); err != nil {
			return err
		}
		id := kernel.NewUUID()
		st.outbox[id] = outboxRow{
			entry: ports.OutboxEntry{ID: id, Message: msg, CreatedAt: at},
			seq:   st.next(),
		}
	}
	return nil
}

func (o outbox) Pending(_ context.Context, limit int, now time.Time) ([]ports.OutboxEntry, error) {
	var rows []outboxRow
	for _, row := range o.uow.read().outbox {
		if !row.delivered && !row.dead && !row.claimedUntil.After(now) {
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b outboxRow) int {
		return cmp.Or(a.entry.CreatedAt.Compare(b.entry.CreatedAt), cmp.Compare(a.seq, b.seq))
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	entries := make([]ports.OutboxEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.entry)
	}
	return entries, nil
}

func (o outbox) Claim(_ context.Context, id kernel.UUID, until time.Time) error {
	return o.update(id, func(row *outboxRow) {
		row.claimedUntil = until
	})
}

func (o outbox) MarkDelivered(_ context.Context, id kernel.UUID, _ time.Time) error {
	return o.update(id, func(row *outboxRow) {
		row.delivered = true
		row.claimedUntil = time.Time{}
	})
}

func (o outbox) MarkFailed(_ context.Context, id kernel.UUID, attempts int, lastErr string, dead bool) error {
	return o.update(id, func(row *outboxRow) {
		row.entry.Attempts = attempts
		row.lastError = lastErr
		row.dead = dead
		row.claimedUntil = time.Time{}
	})
}

func (o outbox) update(id kernel.UUID, change func(row *outboxRow)) error {
	st, err := o.uow.write()
	if err != nil {
		return err
	}
	row, ok := st.outbox[id]
	if !ok {
		return errs.NewObjectNotFoundError("outbox id", id)
	}
	change(&row)
	st.outbox[id] = row
	return nil
}
