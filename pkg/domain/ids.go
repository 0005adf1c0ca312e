// Package domain holds typed identifiers shared across party modules.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "partyhub/pkg/domain-errors"
)

// PartyID identifies an Individual or Organization record.
type PartyID uuid.UUID

// NewPartyID returns a fresh random identifier.
func NewPartyID() PartyID {
	return PartyID(uuid.New())
}

// ParsePartyID parses a path or query identifier. Empty, malformed and nil
// UUIDs are rejected with CodeInvalidInput so handlers can answer 400 rather
// than 404.
func ParsePartyID(s string) (PartyID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return PartyID{}, err
	}
	return PartyID(u), nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	// uuid.Parse also accepts braced and urn forms; only the canonical form is
	// valid in a path segment.
	if len(s) != 36 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid id format")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid id format")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be nil")
	}
	return u, nil
}

func (id PartyID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the identifier is the zero value.
func (id PartyID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id PartyID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *PartyID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = PartyID(u)
	return nil
}
