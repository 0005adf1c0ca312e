package store

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"partyhub/internal/party/models"
	id "partyhub/pkg/domain"
	"partyhub/pkg/platform/sentinel"
)

// InMemoryStore keeps one variant's records in process. Records are stored as
// serialized documents so callers never share memory with the store.
type InMemoryStore[R models.Record] struct {
	mu        sync.RWMutex
	kind      models.Kind
	newRecord NewRecordFunc[R]
	docs      map[id.PartyID][]byte
	hashes    map[id.PartyID]string
	emails    map[string]id.PartyID
}

func NewInMemory[R models.Record](kind models.Kind, newRecord NewRecordFunc[R]) *InMemoryStore[R] {
	return &InMemoryStore[R]{
		kind:      kind,
		newRecord: newRecord,
		docs:      make(map[id.PartyID][]byte),
		hashes:    make(map[id.PartyID]string),
		emails:    make(map[string]id.PartyID),
	}
}

func (s *InMemoryStore[R]) Create(_ context.Context, record R) error {
	core := record.Core()
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode party document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[core.ID]; ok {
		return fmt.Errorf("party %s: %w", core.ID, sentinel.ErrAlreadyUsed)
	}
	addrs := core.EmailAddresses()
	if owner, taken := s.emailOwnerLocked(addrs, id.PartyID{}); taken {
		return fmt.Errorf("%s email owned by %s: %w", s.kind, owner, sentinel.ErrAlreadyUsed)
	}
	s.docs[core.ID] = doc
	s.hashes[core.ID] = core.PasswordHash()
	for _, addr := range addrs {
		s.emails[addr] = core.ID
	}
	return nil
}

func (s *InMemoryStore[R]) FindByID(_ context.Context, partyID id.PartyID) (R, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[partyID]
	if !ok {
		var zero R
		return zero, sentinel.ErrNotFound
	}
	return decode(s.newRecord, doc)
}

func (s *InMemoryStore[R]) List(_ context.Context, filter models.ListFilter) ([]R, error) {
	matched, err := s.matching(filter)
	if err != nil {
		return nil, err
	}
	start := min(max(filter.Offset, 0), len(matched))
	end := len(matched)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(matched))
	}
	return matched[start:end], nil
}

func (s *InMemoryStore[R]) Count(_ context.Context, filter models.ListFilter) (int, error) {
	matched, err := s.matching(filter)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

// matching returns every record passing filter, newest first.
func (s *InMemoryStore[R]) matching(filter models.ListFilter) ([]R, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]R, 0, len(s.docs))
	for _, doc := range s.docs {
		r, err := decode(s.newRecord, doc)
		if err != nil {
			return nil, err
		}
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b R) int {
		if c := b.Core().CreatedAt.Compare(a.Core().CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Core().ID.String(), b.Core().ID.String())
	})
	return out, nil
}

func (s *InMemoryStore[R]) Update(_ context.Context, partyID id.PartyID, fn func(R) error) (R, error) {
	var zero R
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[partyID]
	if !ok {
		return zero, sentinel.ErrNotFound
	}
	r, err := decode(s.newRecord, doc)
	if err != nil {
		return zero, err
	}
	attachHash(r, s.hashes[partyID])
	if err := fn(r); err != nil {
		return zero, err
	}

	core := r.Core()
	addrs := core.EmailAddresses()
	if owner, taken := s.emailOwnerLocked(addrs, partyID); taken {
		return zero, fmt.Errorf("%s email owned by %s: %w", s.kind, owner, sentinel.ErrAlreadyUsed)
	}
	updated, err := json.Marshal(r)
	if err != nil {
		return zero, fmt.Errorf("encode party document: %w", err)
	}

	for addr, owner := range s.emails {
		if owner == partyID {
			delete(s.emails, addr)
		}
	}
	for _, addr := range addrs {
		s.emails[addr] = partyID
	}
	s.docs[partyID] = updated
	s.hashes[partyID] = core.PasswordHash()
	return r, nil
}

func (s *InMemoryStore[R]) Delete(_ context.Context, partyID id.PartyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[partyID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.docs, partyID)
	delete(s.hashes, partyID)
	for addr, owner := range s.emails {
		if owner == partyID {
			delete(s.emails, addr)
		}
	}
	return nil
}

func (s *InMemoryStore[R]) EmailInUse(_ context.Context, emails []string, exclude id.PartyID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, taken := s.emailOwnerLocked(emails, exclude)
	return taken, nil
}

func (s *InMemoryStore[R]) FindCredentialHash(_ context.Context, partyID id.PartyID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.docs[partyID]; !ok {
		return "", sentinel.ErrNotFound
	}
	return s.hashes[partyID], nil
}

func (s *InMemoryStore[R]) emailOwnerLocked(emails []string, exclude id.PartyID) (id.PartyID, bool) {
	for _, addr := range emails {
		if owner, ok := s.emails[addr]; ok && owner != exclude {
			return owner, true
		}
	}
	return id.PartyID{}, false
}
