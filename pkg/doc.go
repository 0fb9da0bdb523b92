// Package pkg provides the libraries behind chirp, a client for the Twitter
// REST API v1.1.
//
// # Overview
//
// Every call made by chirp is an OAuth 1.0a signed HTTP request. Reads are
// cached so that a timeline or profile stays available when the service is
// slow or unreachable. The pkg directory is organized by layer:
//
//  1. [oauth1] - Signature engine and request builder (RFC 5849)
//  2. [transport] - HTTP execution of signed requests, including uploads
//  3. [cache] and [httputil] - Response storage backends and the TTL policy
//  4. [twitter] - The API facade: statuses, timelines, users, messages
//  5. [session] - Access tokens obtained through the PIN flow
//
// # Architecture
//
// The data flow of a cached read:
//
//	twitter.Client.Load
//	         ↓
//	    [httputil] Cache.Fetch (fresh entry? return it)
//	         ↓
//	    [oauth1] Builder.Build (sign)
//	         ↓
//	    [transport] Client.Do (send)
//	         ↓
//	    decoded Status values, or the stale entry if the call failed
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/chirp/pkg/httputil"
//	    "github.com/matzehuels/chirp/pkg/twitter"
//	)
//
//	respCache, _ := httputil.NewFileCache("", httputil.MustParseTTL("10 minutes"))
//	client, _ := twitter.New(twitter.Config{
//	    ConsumerKey:       "...",
//	    ConsumerSecret:    "...",
//	    AccessToken:       "...",
//	    AccessTokenSecret: "...",
//	    Cache:             respCache,
//	})
//
//	statuses, _ := client.Load(context.Background(), twitter.TimelineMeAndFriends, twitter.LoadOptions{})
//	for _, s := range statuses {
//	    fmt.Println(s.User.ScreenName, s.Content())
//	}
//
// # Testing
//
// [apitest] runs an in-process fake of the API that verifies request
// signatures, so the facade is tested end to end without network access.
// The Redis and MongoDB cache backends are tested against live servers when
// CHIRP_TEST_REDIS_ADDR or CHIRP_TEST_MONGO_URI is set:
//
//	go test ./pkg/...
//	CHIRP_TEST_REDIS_ADDR=localhost:6379 go test ./pkg/cache/
//
// [oauth1]: https://pkg.go.dev/github.com/matzehuels/chirp/pkg/oauth1
// [transport]: https://pkg.go.dev/github.com/matzehuels/chirp/pkg/transport
// [cache]: https://pkg.go.dev/github.com/matzehuels/chirp/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/chirp/pkg/httputil
// [twitter]: https://pkg.go.dev/github.com/matzehuels/chirp/pkg/twitter
// [session]: https://pkg.go.dev/github.com/matzehuels/chirp/pkg/session
// [apitest]: https://pkg.go.dev/github.com/matzehuels/chirp/pkg/apitest
package pkg
