package kernel

import (
	"math/rand/v2"
	"time"
)

// Clock supplies the current time. Timestamps on tracking events, status
// records, assignments and payments, and the date parts of generated
// identifiers, all come from an injected Clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// Random supplies uniformly distributed integers in [0, n). Implementations
// must be safe for concurrent use when shared between requests.
type Random interface {
	IntN(n int) int
}

// SystemRandom uses the process-wide math/rand/v2 source, which is seeded at
// start-up and safe for concurrent use.
type SystemRandom struct{}

func (SystemRandom) IntN(n int) int {
	return rand.IntN(n) //nolint:gosec // identifiers are not secrets; uniqueness is enforced by storage
}
