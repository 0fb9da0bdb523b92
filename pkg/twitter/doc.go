// Package twitter is a client for the Twitter REST API v1.1 authenticated
// with OAuth 1.0a user context.
//
// # Overview
//
// [Client] maps named operations to API resources, signs each request with
// package oauth1, sends it through package transport and decodes the JSON
// response into typed results:
//
//	client, err := twitter.New(twitter.Config{
//	    ConsumerKey:       "...",
//	    ConsumerSecret:    "...",
//	    AccessToken:       "...",
//	    AccessTokenSecret: "...",
//	})
//	status, err := client.Send(ctx, "Hello from chirp", "photo.png")
//	timeline, err := client.Load(ctx, twitter.TimelineMeAndFriends, twitter.LoadOptions{Count: 50})
//
// # Caching
//
// Read operations go through an optional [httputil.Cache] set in
// [Config.Cache]. A fresh cached response is served without network access;
// when the live call fails, an expired response is served instead of the
// error. Mutating operations are never cached.
//
// # Errors
//
// Failures are coded errors from package errors: validation errors are
// raised before any network call, transport failures carry NETWORK_ERROR or
// TIMEOUT, invalid JSON carries DECODE_ERROR, and responses with status
// >= 400 are *errors.APIError values. [Client.Authenticate] uses the
// UNAUTHORIZED code of a 401 response to report invalid credentials.
//
// # Identifiers
//
// Status and user IDs exceed 2^53. Result types keep both the numeric ID and
// its string form (id_str), and methods take IDs as strings.
package twitter
