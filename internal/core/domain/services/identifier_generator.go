package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/pkg/errs"
)

const (
	// DefaultIDMaxAttempts bounds the retry loop when no limit is configured.
	DefaultIDMaxAttempts = 10

	idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// TakenFunc reports whether candidate is already in use. It is evaluated
// inside the caller's unit of work, so a false answer holds until commit
// unless another transaction inserts the same value first; the storage
// unique index rejects that insert.
type TakenFunc func(ctx context.Context, candidate string) (bool, error)

// IdentifierGenerator produces the public identifiers of shipments, packages
// and payments. Time and randomness come from the injected Clock and Random,
// so tests can make the output deterministic.
//
// Formats:
//
//	tracking number     TRK + yyyy + 8 chars      TRK2026K3Q9ZP0A
//	master tracking id  MT + yyyy + 6 chars       MT2026X1C4QB
//	transaction id      TXN + yyyymmdd + 8 chars  TXN20260314AB12CD34
//	sub-tracking id     {tracking}-{letters}      TRK2026K3Q9ZP0A-B
//	qr code             QR_ + 12 chars + _ + sub  QR_7GQ2...._TRK...-B
//
// Random parts use [0-9A-Z].
type IdentifierGenerator struct {
	clock       kernel.Clock
	random      kernel.Random
	maxAttempts int
}

// NewIdentifierGenerator returns a generator that tries at most maxAttempts
// candidates per identifier. A non-positive maxAttempts selects
// DefaultIDMaxAttempts.
func NewIdentifierGenerator(clock kernel.Clock, random kernel.Random, maxAttempts int) (*IdentifierGenerator, error) {
	if clock == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}
	if random == nil {
		return nil, errs.NewValueIsRequiredError("random")
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultIDMaxAttempts
	}
	return &IdentifierGenerator{clock: clock, random: random, maxAttempts: maxAttempts}, nil
}

// TrackingNumber returns an unused "TRK" + year + 8 character identifier.
//
// Returns:
//   - ConflictError when every attempt hit a taken candidate
//   - the error of taken, unchanged, when the check itself fails
func (g *IdentifierGenerator) TrackingNumber(ctx context.Context, taken TakenFunc) (string, error) {
	prefix := "TRK" + strconv.Itoa(g.clock.Now().Year())
	return g.unique(ctx, "tracking number", prefix, 8, taken)
}

// MasterTrackingID returns an unused "MT" + year + 6 character identifier.
func (g *IdentifierGenerator) MasterTrackingID(ctx context.Context, taken TakenFunc) (string, error) {
	prefix := "MT" + strconv.Itoa(g.clock.Now().Year())
	return g.unique(ctx, "master tracking id", prefix, 6, taken)
}

// TransactionID returns an unused "TXN" + yyyymmdd + 8 character identifier.
func (g *IdentifierGenerator) TransactionID(ctx context.Context, taken TakenFunc) (string, error) {
	prefix := "TXN" + g.clock.Now().Format("20060102")
	return g.unique(ctx, "transaction id", prefix, 8, taken)
}

// QRCode returns the label printed on a package. It embeds the
// sub-tracking id, which is unique, so no uniqueness check is needed.
func (g *IdentifierGenerator) QRCode(subTrackingID string) string {
	return "QR_" + g.randomString(12) + "_" + subTrackingID
}

// SubTrackingID derives a package identifier from its shipment's tracking
// number and the package ordinal: 0 -> A, 25 -> Z, 26 -> AA, 27 -> AB.
func SubTrackingID(trackingNumber string, ordinal int) (string, error) {
	if ordinal < 0 {
		return "", errs.NewValueIsOutOfRangeError("package ordinal", ordinal, 0, "max")
	}
	if strings.TrimSpace(trackingNumber) == "" {
		return "", errs.NewValueIsRequiredError("tracking number")
	}
	return trackingNumber + "-" + ordinalLetters(ordinal), nil
}

// ordinalLetters is bijective base-26 over A..Z.
func ordinalLetters(n int) string {
	var b []byte
	for n++; n > 0; n = (n - 1) / 26 {
		b = append(b, byte('A'+(n-1)%26))
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func (g *IdentifierGenerator) unique(ctx context.Context, what, prefix string, n int, taken TakenFunc) (string, error) {
	for range g.maxAttempts {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := prefix + g.randomString(n)
		used, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
	}
	return "", errs.NewConflictErrorWithCause(what,
		fmt.Errorf("no unused value after %d attempts", g.maxAttempts))
}

func (g *IdentifierGenerator) randomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[g.random.IntN(len(idAlphabet))]
	}
	return string(b)
}
