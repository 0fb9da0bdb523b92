// Package httputil provides the response cache used by the API client.
//
// # Overview
//
// [Cache] wraps GET-style API calls. It stores raw response bodies in a
// [cache.Store] (files by default) and applies a [TTL] at lookup time:
//
//   - Fresh entry: served without network access
//   - Missing or expired entry: the live call runs and its body replaces the entry
//   - Live call fails: an expired entry, if any, is served instead of the error
//
// This stale-on-error fallback is the only recovery the client performs;
// nothing is retried.
//
// # TTL
//
// A TTL is either fixed ([Fixed]) or a relative expression parsed by
// [ParseTTL], evaluated against the clock on every lookup:
//
//	ttl, _ := httputil.ParseTTL("today")       // fresh until local midnight
//	ttl, _ := httputil.ParseTTL("-10 minutes") // fresh for ten minutes
//	ttl, _ := httputil.ParseTTL("2h")          // fresh for two hours
//
// # Configuration
//
//   - Cache directory: ~/.cache/chirp/ (or $XDG_CACHE_HOME/chirp)
//   - Default TTL: 15 minutes
//
// The cache can be cleared via `chirp cache clear` or by deleting
// the cache directory. The library itself never evicts entries.
package httputil
