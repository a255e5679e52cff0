package domain

import (
	"github.com/google/uuid"

	dErrors "passport/pkg/domain-errors"
)

// PassportID identifies exactly one issued passport. It is a distinct type so
// a raw uuid.UUID from elsewhere cannot be passed where a passport is meant.
type PassportID uuid.UUID

// NewPassportID returns a fresh random identifier.
func NewPassportID() PassportID {
	return PassportID(uuid.New())
}

// ParsePassportID validates external input at trust boundaries.
//
// Errors: returns CodeInvalidInput when the value is empty, malformed or the
// nil UUID.
func ParsePassportID(s string) (PassportID, error) {
	if s == "" {
		return PassportID{}, dErrors.New(dErrors.CodeInvalidInput, "passport id cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return PassportID{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid passport id")
	}
	if parsed == uuid.Nil {
		return PassportID{}, dErrors.New(dErrors.CodeInvalidInput, "passport id cannot be nil")
	}
	return PassportID(parsed), nil
}

// String returns the canonical hyphenated hex form.
func (id PassportID) String() string {
	return uuid.UUID(id).String()
}

// Short returns the first eight hex characters, used in human-readable output.
func (id PassportID) Short() string {
	return id.String()[:8]
}

func (id PassportID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}
