package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so the party service can translate them into domain errors.
//
// - ErrNotFound: no record with the requested id
// - ErrAlreadyUsed: a unique key (contact email) is owned by another record
// - ErrUnavailable: a backing system (cache, broker) cannot be reached
//
// For input problems use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrAlreadyUsed = errors.New("already used")
	ErrUnavailable = errors.New("unavailable")
)
