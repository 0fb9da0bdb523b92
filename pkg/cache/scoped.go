package cache

import "context"

// ScopedStore wraps a Store with a key prefix so several components can share
// one backend without key collisions.
//
// Example usage:
//
//	timelines := cache.Scoped(store, "timeline:")
//	users := cache.Scoped(store, "users:")
type ScopedStore struct {
	inner  Store
	prefix string
}

// Scoped returns a store that prepends prefix to every key.
// Scoping an already scoped store concatenates the prefixes.
func Scoped(inner Store, prefix string) Store {
	if s, ok := inner.(*ScopedStore); ok {
		return &ScopedStore{inner: s.inner, prefix: s.prefix + prefix}
	}
	return &ScopedStore{inner: inner, prefix: prefix}
}

// Prefix returns the full key prefix.
func (s *ScopedStore) Prefix() string { return s.prefix }

func (s *ScopedStore) Get(ctx context.Context, key string) (*Entry, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *ScopedStore) Set(ctx context.Context, key string, data []byte) error {
	return s.inner.Set(ctx, s.prefix+key, data)
}

func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close does nothing. The owner of the underlying store closes it.
func (s *ScopedStore) Close() error { return nil }

var _ Store = (*ScopedStore)(nil)
