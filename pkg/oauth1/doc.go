// Package oauth1 implements OAuth 1.0a request signing (RFC 5849) with the
// HMAC-SHA1 signature method.
//
// # Overview
//
// The package has two layers:
//
//   - [Sign]: a pure function computing the signature of a request from its
//     method, URL and full parameter set. It has no randomness and no I/O.
//   - [Builder]: assembles the OAuth parameter set (nonce, timestamp, consumer
//     key, token), merges it with the caller's parameters, signs the result and
//     renders a [SignedRequest] ready for transport.
//
// # Signing
//
// Keys and values are percent-encoded with [PercentEncode], which escapes
// every byte outside the RFC 3986 unreserved set. Space becomes "%20", never
// "+". Encoded pairs are sorted by key, then by value, and joined with "&".
// The base string is
//
//	UPPER(method) & enc(url-without-query) & enc(parameter-string)
//
// and the HMAC key is enc(consumerSecret) & enc(tokenSecret).
//
// # Request shapes
//
// [Builder.Build] renders one of four shapes:
//
//   - GET: OAuth and user parameters in the query string.
//   - POST without files: OAuth and user parameters as an
//     application/x-www-form-urlencoded body.
//   - POST with files: OAuth parameters in the Authorization header, user
//     parameters and files in a multipart body. Neither the user parameters
//     nor the files are signed.
//   - POST with a JSON body: OAuth parameters in the Authorization header.
//     The body is not signed.
//
// Parameters whose value is nil are dropped before signing and never sent.
package oauth1
