//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"partyhub/internal/party/models"
	"partyhub/internal/party/store"
	id "partyhub/pkg/domain"
	"partyhub/pkg/platform/sentinel"
	"partyhub/pkg/testutil/containers"
)

type CachedStoreSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	inner  *store.InMemoryStore[*models.Individual]
	cached *store.CachedStore[*models.Individual]
	base   time.Time
}

func TestCachedStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedStoreSuite))
}

func (s *CachedStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (s *CachedStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.inner = store.NewInMemory(models.KindIndividual, store.NewIndividual)
	s.cached = store.NewCached[*models.Individual](s.inner, s.redis.Client, models.KindIndividual, store.NewIndividual,
		store.WithCacheTTL(time.Minute))
}

func (s *CachedStoreSuite) TestReadThroughAndInvalidate() {
	ctx := context.Background()
	ind := newIndividual(s.T(), "Ana", "Silva", "ana@x.com", s.base)
	s.Require().NoError(s.cached.Create(ctx, ind))

	_, err := s.cached.FindByID(ctx, ind.ID)
	s.Require().NoError(err)
	keys, err := s.redis.Client.Keys(ctx, "party:individual:*").Result()
	s.Require().NoError(err)
	s.Len(keys, 1)

	_, err = s.cached.Update(ctx, ind.ID, func(r *models.Individual) error {
		return r.Apply(&models.IndividualPatch{Title: ptr("Dr")}, s.base.Add(time.Hour))
	})
	s.Require().NoError(err)

	got, err := s.cached.FindByID(ctx, ind.ID)
	s.Require().NoError(err)
	s.Equal("Dr", got.Title, "update invalidates the cached copy")

	s.Require().NoError(s.cached.Delete(ctx, ind.ID))
	_, err = s.cached.FindByID(ctx, ind.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *CachedStoreSuite) TestCachedCopyNeverHoldsHash() {
	ctx := context.Background()
	ind := withHash(newIndividual(s.T(), "Ana", "Silva", "", s.base), "hash-ana")
	s.Require().NoError(s.cached.Create(ctx, ind))

	_, err := s.cached.FindByID(ctx, ind.ID)
	s.Require().NoError(err)

	raw, err := s.redis.Client.Get(ctx, "party:individual:"+ind.ID.String()).Result()
	s.Require().NoError(err)
	s.NotContains(raw, "hash-ana")
}

// updateDuringRead runs onFind after the inner read has produced its result,
// standing in for a writer that commits while a reader is between the cache
// miss and the write-back.
type updateDuringRead struct {
	store.Store[*models.Individual]
	onFind func()
}

func (u *updateDuringRead) FindByID(ctx context.Context, partyID id.PartyID) (*models.Individual, error) {
	r, err := u.Store.FindByID(ctx, partyID)
	if f := u.onFind; f != nil {
		u.onFind = nil
		f()
	}
	return r, err
}

func (s *CachedStoreSuite) TestStaleReadIsNotWrittenBack() {
	ctx := context.Background()
	racing := &updateDuringRead{Store: s.inner}
	cached := store.NewCached[*models.Individual](racing, s.redis.Client, models.KindIndividual, store.NewIndividual,
		store.WithCacheTTL(time.Minute))

	ind := newIndividual(s.T(), "Ana", "Silva", "race@x.com", s.base)
	s.Require().NoError(cached.Create(ctx, ind))

	racing.onFind = func() {
		_, err := cached.Update(ctx, ind.ID, func(r *models.Individual) error {
			return r.Apply(&models.IndividualPatch{Title: ptr("Dr")}, s.base.Add(time.Hour))
		})
		s.Require().NoError(err)
	}
	stale, err := cached.FindByID(ctx, ind.ID)
	s.Require().NoError(err)
	s.Empty(stale.Title, "the racing read returns what it loaded")

	exists, err := s.redis.Client.Exists(ctx, "party:individual:"+ind.ID.String()).Result()
	s.Require().NoError(err)
	s.Zero(exists, "the loaded copy predates the update and must not be cached")

	fresh, err := cached.FindByID(ctx, ind.ID)
	s.Require().NoError(err)
	s.Equal("Dr", fresh.Title)
}
