package httputil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chirp/pkg/cache"
	"github.com/matzehuels/chirp/pkg/observability"
)

// DefaultTTL is the freshness window used when none is configured.
const DefaultTTL = 15 * time.Minute

// Cache wraps GET-style calls with a response cache.
//
// A fresh entry is returned without calling the network. A missing or
// expired entry triggers the live call; on success the entry is overwritten,
// on failure the expired entry (if any) is served instead of the error.
// Entries are never deleted by the Cache.
//
// Cache is safe for concurrent use when its Store is. Concurrent fetches of
// the same key both hit the network and the last write wins.
//
// Use [Cache.Namespace] to create scoped views that automatically prefix
// keys, avoiding collisions between different resources:
//
//	timelines := c.Namespace("timeline:")
//	users := c.Namespace("users:")
type Cache struct {
	store     cache.Store
	ttl       TTL
	namespace string
	logger    *log.Logger
	now       func() time.Time
}

// Result is the outcome of [Cache.Fetch].
type Result struct {
	Data     []byte
	Cached   bool      // Served from the store
	Stale    bool      // Served from an expired entry because the live call failed
	StoredAt time.Time // Write time of the served entry; zero for live data
}

// NewCache creates a Cache over store with the given TTL.
// A nil ttl uses [DefaultTTL]; a nil store disables caching.
func NewCache(store cache.Store, ttl TTL) *Cache {
	if store == nil {
		store = cache.NewNullStore()
	}
	if ttl == nil {
		ttl = Fixed(DefaultTTL)
	}
	return &Cache{
		store:  store,
		ttl:    ttl,
		logger: log.Default(),
		now:    time.Now,
	}
}

// NewFileCache creates a Cache backed by a [cache.FileStore] in dir.
//
// If dir is empty, NewFileCache uses the default directory ~/.cache/chirp/.
// The directory is created with mode 0755 if it doesn't exist.
func NewFileCache(dir string, ttl TTL) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	store, err := cache.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return NewCache(store, ttl), nil
}

// DefaultDir returns the default cache directory: $XDG_CACHE_HOME/chirp or
// ~/.cache/chirp.
func DefaultDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "chirp"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "chirp"), nil
}

// WithLogger returns a copy of c that logs to l.
func (c *Cache) WithLogger(l *log.Logger) *Cache {
	cp := *c
	if l != nil {
		cp.logger = l
	}
	return &cp
}

// TTL returns the freshness policy.
func (c *Cache) TTL() TTL { return c.ttl }

// Store returns the underlying store.
func (c *Cache) Store() cache.Store { return c.store }

// Namespace returns a new Cache that automatically prefixes all keys with prefix.
//
// The returned Cache shares the parent's store, TTL and logger. Namespace
// calls can be chained to create hierarchical key spaces.
func (c *Cache) Namespace(prefix string) *Cache {
	cp := *c
	cp.store = cache.Scoped(c.store, prefix)
	cp.namespace = c.namespace + prefix
	return &cp
}

// Fetch returns the entry for key, calling fetch when the entry is missing
// or expired.
//
// Outcomes:
//   - fresh entry: returned with Cached set; fetch is not called
//   - fetch succeeds: the entry is overwritten and the live data returned
//   - fetch fails and an entry exists: the entry is returned with Stale set
//   - fetch fails and no entry exists: the fetch error is returned
//
// Store failures never fail a Fetch; they are logged and treated as misses.
// A cancelled ctx is returned as an error even when a stale entry exists.
func (c *Cache) Fetch(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) (*Result, error) {
	hooks := observability.Cache()
	ns := strings.TrimSuffix(c.namespace, ":")

	entry, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", "namespace", ns, "err", err)
		entry = nil
	}

	if entry != nil && !c.ttl.Expired(entry.StoredAt, c.now()) {
		hooks.OnCacheHit(ctx, ns)
		return &Result{Data: entry.Data, Cached: true, StoredAt: entry.StoredAt}, nil
	}
	hooks.OnCacheMiss(ctx, ns)

	data, err := fetch(ctx)
	if err != nil {
		if entry == nil || errors.Is(err, context.Canceled) {
			return nil, err
		}
		age := entry.Age(c.now())
		hooks.OnCacheStale(ctx, ns, age, err)
		c.logger.Warn("live call failed, serving cached response", "namespace", ns, "age", age.Round(time.Second), "err", err)
		return &Result{Data: entry.Data, Cached: true, Stale: true, StoredAt: entry.StoredAt}, nil
	}

	if err := c.store.Set(ctx, key, data); err != nil {
		c.logger.Warn("cache write failed", "namespace", ns, "err", err)
	} else {
		hooks.OnCacheSet(ctx, ns, len(data))
	}
	return &Result{Data: data}, nil
}
