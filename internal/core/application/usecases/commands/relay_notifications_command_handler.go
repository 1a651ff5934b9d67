package commands

import (
	"context"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/ports"
)

// RelayResult counts the outcome of one relay run.
type RelayResult struct {
	Delivered int
	Failed    int
	Dead      int
}

// RelayNotificationsCommandHandler pushes pending outbox entries to the sink.
// A sink error only marks the entry failed; it never reaches shipment state
// and does not abort the batch.
//
// A run uses two short units of work: one claims the batch, one records the
// outcomes. The sink is called between them so a slow broker never holds a
// transaction (or the memory store's writer slot) open.
type RelayNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	sink       ports.NotificationSink
	clock      kernel.Clock
}

func NewRelayNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	sink ports.NotificationSink,
	clock kernel.Clock,
) RelayNotificationsCommandHandler {
	return RelayNotificationsCommandHandler{uowFactory: uowFactory, sink: sink, clock: clock}
}

func (h RelayNotificationsCommandHandler) Handle(ctx context.Context, cmd RelayNotificationsCommand) (RelayResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayResult{}, err
	}

	entries, err := h.claim(ctx, cmd)
	if err != nil || len(entries) == 0 {
		return RelayResult{}, err
	}

	outcomes := make([]error, len(entries))
	for i, entry := range entries {
		outcomes[i] = h.sink.Notify(ctx, entry.Message)
	}

	return h.record(ctx, cmd, entries, outcomes)
}

func (h RelayNotificationsCommandHandler) claim(ctx context.Context, cmd RelayNotificationsCommand) ([]ports.OutboxEntry, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.NotificationOutbox()
	now := h.clock.Now()
	entries, err := outbox.Pending(ctx, cmd.BatchSize(), now)
	if err != nil {
		return nil, err
	}
	until := now.Add(cmd.ClaimTTL())
	for _, entry := range entries {
		if err = outbox.Claim(ctx, entry.ID, until); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return entries, nil
}

// record stores outcomes[i] for entries[i].
func (h RelayNotificationsCommandHandler) record(
	ctx context.Context,
	cmd RelayNotificationsCommand,
	entries []ports.OutboxEntry,
	outcomes []error,
) (RelayResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RelayResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.NotificationOutbox()
	var result RelayResult
	for i, entry := range entries {
		if notifyErr := outcomes[i]; notifyErr != nil {
			attempts := entry.Attempts + 1
			dead := attempts >= cmd.MaxAttempts()
			if err := outbox.MarkFailed(ctx, entry.ID, attempts, notifyErr.Error(), dead); err != nil {
				return RelayResult{}, err
			}
			result.Failed++
			if dead {
				result.Dead++
			}
			continue
		}
		if err := outbox.MarkDelivered(ctx, entry.ID, h.clock.Now()); err != nil {
			return RelayResult{}, err
		}
		result.Delivered++
	}

	if err := uow.Commit(ctx); err != nil {
		return RelayResult{}, err
	}
	return result, nil
}
