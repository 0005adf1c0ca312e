// Package store persists party records. Each store instance serves one
// variant; email uniqueness is enforced per variant by the store itself.
//
// Stores return sentinel errors:
//   - sentinel.ErrNotFound when no record matches the id
//   - sentinel.ErrAlreadyUsed when a contact email is owned by another record
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"partyhub/internal/party/models"
	id "partyhub/pkg/domain"
)

// Store is the persistence contract shared by the memory, Postgres and cached
// implementations.
type Store[R models.Record] interface {
	Create(ctx context.Context, record R) error
	FindByID(ctx context.Context, partyID id.PartyID) (R, error)
	List(ctx context.Context, filter models.ListFilter) ([]R, error)
	Count(ctx context.Context, filter models.ListFilter) (int, error)
	// Update loads the record with its credential hash, applies fn and writes
	// the result atomically. An error from fn aborts the update.
	Update(ctx context.Context, partyID id.PartyID, fn func(R) error) (R, error)
	Delete(ctx context.Context, partyID id.PartyID) error
	// EmailInUse reports whether another record of the variant owns any of
	// emails. exclude is ignored when nil.
	EmailInUse(ctx context.Context, emails []string, exclude id.PartyID) (bool, error)
	FindCredentialHash(ctx context.Context, partyID id.PartyID) (string, error)
}

// NewRecordFunc returns an empty record of the store's variant.
type NewRecordFunc[R models.Record] func() R

func NewIndividual() *models.Individual     { return &models.Individual{} }
func NewOrganization() *models.Organization { return &models.Organization{} }

// decode unmarshals a stored document. The credential hash is never part of
// the document.
func decode[R models.Record](newRecord NewRecordFunc[R], doc []byte) (R, error) {
	r := newRecord()
	if err := json.Unmarshal(doc, r); err != nil {
		var zero R
		return zero, fmt.Errorf("decode party document: %w", err)
	}
	return r, nil
}

func attachHash(r models.Record, hash string) {
	if ac := r.Core().AuthenticationContext; ac != nil {
		ac.HashedPassword = hash
	}
}
