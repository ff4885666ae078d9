// Package domain holds shared domain primitives: typed identifiers and the
// trade/region vocabulary. Typed IDs make cross-entity assignment a compile
// error instead of a data bug.
package domain

import (
	"fmt"

	"github.com/google/uuid"

	dErrors "licensure/pkg/domain-errors"
)

// ProviderID identifies a service provider.
type ProviderID uuid.UUID

// AttemptID identifies one verification attempt log entry.
type AttemptID uuid.UUID

// NewProviderID returns a fresh random provider ID.
func NewProviderID() ProviderID {
	return ProviderID(uuid.New())
}

// NewAttemptID returns a fresh random attempt ID.
func NewAttemptID() AttemptID {
	return AttemptID(uuid.New())
}

// ParseProviderID validates and returns a ProviderID.
// IDs must be valid, non-empty, non-nil UUIDs.
func ParseProviderID(s string) (ProviderID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return ProviderID{}, err
	}
	return ProviderID(u), nil
}

// ParseAttemptID validates and returns an AttemptID.
func ParseAttemptID(s string) (AttemptID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return AttemptID{}, err
	}
	return AttemptID(u), nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, fmt.Sprintf("invalid id %q", s))
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}

func (id ProviderID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero value.
func (id ProviderID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id AttemptID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero value.
func (id AttemptID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
