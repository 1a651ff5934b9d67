package errs

import "errors"

// Kind is the stable, caller-facing classification of an error.
type Kind int

const (
	// KindInternal covers storage and other unexpected failures.
	KindInternal Kind = iota
	KindNotFound
	KindAccessDenied
	KindInvalidState
	KindValidationFailed
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAccessDenied:
		return "access_denied"
	case KindInvalidState:
		return "invalid_state"
	case KindValidationFailed:
		return "validation_failed"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// KindOf classifies err by the sentinels it wraps. When several match (joined
// errors), access denied wins over not found, then conflict, invalid state and
// validation. A nil error reports KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrAccessDenied):
		return KindAccessDenied
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrValueIsRequired):
		return KindValidationFailed
	default:
		return KindInternal
	}
}
