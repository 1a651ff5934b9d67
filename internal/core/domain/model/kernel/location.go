package kernel

import (
	"strings"
	"unicode/utf8"

	"arenoexpress/internal/pkg/errs"
)

// LocationMaxLength bounds the label stored with tracking events and status records.
const LocationMaxLength = 255

// Location is the free-text checkpoint label attached to a tracking event or
// a status record ("Nairobi hub", "Agent station 4"). The zero value is the
// empty location, which is valid: location is optional on every lifecycle
// action.
type Location struct {
	name string
}

// NewLocation trims name and rejects labels longer than LocationMaxLength runes.
func NewLocation(name string) (Location, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n > LocationMaxLength {
		return Location{}, errs.NewValueIsOutOfRangeError("location length", n, 0, LocationMaxLength)
	}
	return Location{name: name}, nil
}

// EmptyLocation is the zero value, spelled out for readability at call sites.
func EmptyLocation() Location {
	return Location{}
}

func (l Location) String() string {
	return l.name
}

func (l Location) IsEmpty() bool {
	return l.name == ""
}

func (l Location) IsEqual(other Location) bool {
	return l.name == other.name
}
