package commands

import (
	"errors"
	"time"

	"arenoexpress/internal/pkg/errs"
	"arenoexpress/internal/pkg/guard"
)

var ErrRelayNotificationsCommandIsNotConstructed = errors.New(
	"RelayNotificationsCommand must be created via NewRelayNotificationsCommand constructor",
)

// RelayNotificationsCommand drains one batch of the notification outbox.
// An entry that failed maxAttempts times is parked and never retried. Claimed
// entries stay hidden from other relays for claimTTL; a relay that dies
// mid-batch leaves them to be retried after that.
type RelayNotificationsCommand struct {
	batchSize   int
	maxAttempts int
	claimTTL    time.Duration

	guard guard.ConstructorGuard
}

func NewRelayNotificationsCommand(batchSize, maxAttempts int, claimTTL time.Duration) (RelayNotificationsCommand, error) {
	var batchErr, attemptsErr, ttlErr error
	if batchSize < 1 {
		batchErr = errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "max")
	}
	if maxAttempts < 1 {
		attemptsErr = errs.NewValueIsOutOfRangeError("max attempts", maxAttempts, 1, "max")
	}
	if claimTTL <= 0 {
		ttlErr = errs.NewValueIsOutOfRangeError("claim ttl", claimTTL, "1ns", "max")
	}
	if err := errors.Join(batchErr, attemptsErr, ttlErr); err != nil {
		return RelayNotificationsCommand{}, err
	}
	return RelayNotificationsCommand{
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		claimTTL:    claimTTL,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RelayNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrRelayNotificationsCommandIsNotConstructed)
}

func (c RelayNotificationsCommand) BatchSize() int {
	return c.batchSize
}

func (c RelayNotificationsCommand) MaxAttempts() int {
	return c.maxAttempts
}

func (c RelayNotificationsCommand) ClaimTTL() time.Duration {
	return c.claimTTL
}
