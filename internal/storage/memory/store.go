package memory

import (
	"time"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/pkg/cmap"
)

// Store is a concurrency-safe mapping from key to value with optional expiry.
type Store struct {
	entries *cmap.Map[domain.Entry]
	now     func() time.Time
	onEvict func(key string)
}

// Option configures the Store.
type Option func(*Store)

// WithClock sets the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEvictHook registers fn to be called after Fetch removes an expired
// entry. fn runs outside any store lock.
func WithEvictHook(fn func(key string)) Option {
	return func(s *Store) {
		s.onEvict = fn
	}
}

// WithShardCount sets the number of shards of the underlying map.
func WithShardCount(n int) Option {
	return func(s *Store) {
		s.entries = cmap.New[domain.Entry](cmap.WithShardCount(n))
	}
}

// New creates a new in-memory store.
func New(opts ...Option) *Store {
	s := &Store{
		entries: cmap.New[domain.Entry](),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Store inserts or overwrites the entry for key. A zero expiresAt stores
// the value without a TTL. The value is copied.
func (s *Store) Store(key string, value []byte, expiresAt time.Time) {
	s.entries.Set(key, domain.Entry{
		Value:     append([]byte(nil), value...),
		ExpiresAt: expiresAt,
	})
}

// Fetch returns the value stored under key. An entry whose expiry is at or
// before the current time is removed and reported absent. The returned
// slice is shared with the store and must not be modified.
func (s *Store) Fetch(key string) ([]byte, bool) {
	now := s.now()
	entry, ok, evicted := s.entries.LoadOrEvict(key, func(e domain.Entry) bool {
		return e.Expired(now)
	})
	if evicted && s.onEvict != nil {
		s.onEvict(key)
	}
	if !ok {
		return nil, false
	}
	return entry.Value, true
}

// Invalidate removes the entry for key. It reports whether a live entry
// was removed; an expired entry is still removed but reported absent.
func (s *Store) Invalidate(key string) bool {
	entry, ok := s.entries.Pop(key)
	return ok && !entry.Expired(s.now())
}

// Len returns the number of resident entries, including expired entries
// that have not been read since they expired.
func (s *Store) Len() int {
	return s.entries.Len()
}
