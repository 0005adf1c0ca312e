package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"partyhub/internal/party/models"
	id "partyhub/pkg/domain"
	"partyhub/pkg/platform/circuit"
)

const (
	DefaultCacheTTL = 5 * time.Minute
	// DefaultProbeInterval spaces the reads that test Redis while the
	// breaker is open.
	DefaultProbeInterval = 10 * time.Second
)

// writeBack stores a document only if the key's generation is unchanged
// since the read began, so a read racing an update cannot re-cache the old
// version. KEYS: document, generation. ARGV: generation seen ("" when
// absent), document, ttl in milliseconds.
var writeBack = `
local gen = redis.call('GET', KEYS[2])
if (gen or '') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`

// CachedStore is a read-through Redis cache in front of another store for
// FindByID. Writes go to the inner store first, then delete the cached
// document and bump its generation. Cache failures fall through to the inner
// store. While the breaker is open, reads skip Redis apart from one probe per
// probe interval; invalidations are always attempted.
type CachedStore[R models.Record] struct {
	Store[R]
	client        redis.Cmdable
	kind          models.Kind
	newRecord     NewRecordFunc[R]
	ttl           time.Duration
	probeInterval time.Duration
	logger        *slog.Logger
	breaker       *circuit.Breaker
	lastProbe     atomic.Int64
}

type CacheOption func(*cacheConfig)

type cacheConfig struct {
	ttl           time.Duration
	probeInterval time.Duration
	logger        *slog.Logger
}

func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *cacheConfig) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithProbeInterval sets how often an open breaker lets a read through to
// Redis.
func WithProbeInterval(d time.Duration) CacheOption {
	return func(c *cacheConfig) {
		if d > 0 {
			c.probeInterval = d
		}
	}
}

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *cacheConfig) {
		c.logger = logger
	}
}

func NewCached[R models.Record](inner Store[R], client redis.Cmdable, kind models.Kind, newRecord NewRecordFunc[R], opts ...CacheOption) *CachedStore[R] {
	cfg := cacheConfig{ttl: DefaultCacheTTL, probeInterval: DefaultProbeInterval, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &CachedStore[R]{
		Store:         inner,
		client:        client,
		kind:          kind,
		newRecord:     newRecord,
		ttl:           cfg.ttl,
		probeInterval: cfg.probeInterval,
		logger:        cfg.logger,
		breaker:       circuit.New("party-cache-" + kind.Resource()),
	}
}

func (s *CachedStore[R]) key(partyID id.PartyID) string {
	return fmt.Sprintf("party:%s:%s", s.kind.Resource(), partyID)
}

func (s *CachedStore[R]) generationKey(partyID id.PartyID) string {
	return fmt.Sprintf("party-gen:%s:%s", s.kind.Resource(), partyID)
}

func (s *CachedStore[R]) FindByID(ctx context.Context, partyID id.PartyID) (R, error) {
	if !s.useCache() {
		return s.Store.FindByID(ctx, partyID)
	}

	key, genKey := s.key(partyID), s.generationKey(partyID)
	vals, err := s.client.MGet(ctx, key, genKey).Result()
	s.record(ctx, "read", err)
	if err != nil {
		return s.Store.FindByID(ctx, partyID)
	}
	doc, _ := vals[0].(string)
	gen, _ := vals[1].(string)
	if doc != "" {
		if r, decodeErr := decode(s.newRecord, []byte(doc)); decodeErr == nil {
			return r, nil
		}
		s.invalidate(ctx, partyID)
		return s.Store.FindByID(ctx, partyID)
	}

	r, err := s.Store.FindByID(ctx, partyID)
	if err != nil {
		return r, err
	}
	if s.breaker.IsOpen() {
		return r, nil
	}
	if encoded, err := json.Marshal(r); err == nil {
		err = s.client.Eval(ctx, writeBack, []string{key, genKey}, gen, encoded, s.ttl.Milliseconds()).Err()
		s.record(ctx, "write", err)
	}
	return r, nil
}

// useCache reports whether a read may touch Redis: always while the breaker
// is closed, and once per probe interval while it is open.
func (s *CachedStore[R]) useCache() bool {
	if !s.breaker.IsOpen() {
		return true
	}
	now := time.Now().UnixNano()
	last := s.lastProbe.Load()
	if now-last < s.probeInterval.Nanoseconds() {
		return false
	}
	return s.lastProbe.CompareAndSwap(last, now)
}

// record feeds a Redis outcome to the breaker. Misses count as successes.
func (s *CachedStore[R]) record(ctx context.Context, op string, err error) {
	if err == nil || errors.Is(err, redis.Nil) {
		if _, change := s.breaker.RecordSuccess(); change.Closed {
			s.logger.InfoContext(ctx, "party cache recovered", "breaker", s.breaker.Name())
		}
		return
	}
	_, change := s.breaker.RecordFailure()
	switch {
	case change.Opened:
		s.lastProbe.Store(time.Now().UnixNano())
		s.logger.WarnContext(ctx, "party cache disabled after repeated failures",
			"breaker", s.breaker.Name(), "op", op, "error", err)
	case !s.breaker.IsOpen():
		s.logger.WarnContext(ctx, "party cache "+op+" failed", "breaker", s.breaker.Name(), "error", err)
	}
}

func (s *CachedStore[R]) Update(ctx context.Context, partyID id.PartyID, fn func(R) error) (R, error) {
	r, err := s.Store.Update(ctx, partyID, fn)
	if err == nil {
		s.invalidate(ctx, partyID)
	}
	return r, err
}

func (s *CachedStore[R]) Delete(ctx context.Context, partyID id.PartyID) error {
	if err := s.Store.Delete(ctx, partyID); err != nil {
		return err
	}
	s.invalidate(ctx, partyID)
	return nil
}

// invalidate drops the cached document and bumps its generation so that
// in-flight reads do not write the previous version back. The generation
// outlives the document TTL so a slow read still sees the change.
func (s *CachedStore[R]) invalidate(ctx context.Context, partyID id.PartyID) {
	genKey := s.generationKey(partyID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(partyID))
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, 2*s.ttl)
		return nil
	})
	s.record(ctx, "invalidate", err)
}
