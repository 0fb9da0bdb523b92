package oauth1

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/url"
	"sort"
	"strings"
)

// SignatureMethod is the only signature method supported.
const SignatureMethod = "HMAC-SHA1"

// Version is the protocol version sent as oauth_version.
const Version = "1.0"

// Reserved OAuth parameter names.
const (
	ParamConsumerKey     = "oauth_consumer_key"
	ParamNonce           = "oauth_nonce"
	ParamSignature       = "oauth_signature"
	ParamSignatureMethod = "oauth_signature_method"
	ParamTimestamp       = "oauth_timestamp"
	ParamToken           = "oauth_token"
	ParamVersion         = "oauth_version"
	ParamCallback        = "oauth_callback"
	ParamVerifier        = "oauth_verifier"
)

// Sign computes the base64 HMAC-SHA1 signature of a request.
//
// params is the full parameter set: OAuth parameters plus every signed user
// parameter. An oauth_signature entry, if present, is ignored. Sign is
// deterministic and safe for concurrent use.
func Sign(method, baseURL string, params map[string]string, consumerSecret, tokenSecret string) string {
	mac := hmac.New(sha1.New, []byte(SigningKey(consumerSecret, tokenSecret)))
	mac.Write([]byte(BaseString(method, baseURL, params)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify reports whether params carries a valid oauth_signature for the
// request. The comparison runs in constant time.
func Verify(method, baseURL string, params map[string]string, consumerSecret, tokenSecret string) bool {
	got, ok := params[ParamSignature]
	if !ok {
		return false
	}
	want := Sign(method, baseURL, params, consumerSecret, tokenSecret)
	return hmac.Equal([]byte(got), []byte(want))
}

// SigningKey returns the HMAC key: enc(consumerSecret) & enc(tokenSecret).
// An empty tokenSecret still yields the trailing "&".
func SigningKey(consumerSecret, tokenSecret string) string {
	return PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)
}

// BaseString returns the signature base string of a request.
func BaseString(method, baseURL string, params map[string]string) string {
	return strings.ToUpper(method) + "&" +
		PercentEncode(NormalizeURL(baseURL)) + "&" +
		PercentEncode(NormalizeParams(params))
}

// NormalizeParams encodes params, sorts them by encoded key then encoded
// value, and joins them as key=value pairs separated by "&".
// oauth_signature is excluded.
func NormalizeParams(params map[string]string) string {
	pairs := make([]pair, 0, len(params))
	for k, v := range params {
		if k == ParamSignature {
			continue
		}
		pairs = append(pairs, pair{PercentEncode(k), PercentEncode(v)})
	}
	return joinPairs(pairs)
}

// NormalizeURL strips the query and fragment from rawURL, lowercases the
// scheme and host, and drops the default port for http and https.
// Unparseable input is returned with everything after '?' or '#' removed.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
			return rawURL[:i]
		}
		return rawURL
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	return scheme + "://" + host + u.EscapedPath()
}

// pair is an encoded key/value pair.
type pair struct {
	key, value string
}

// joinPairs sorts already-encoded pairs and joins them.
func joinPairs(pairs []pair) string {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(p.value)
	}
	return b.String()
}

// encodePairs renders params as a sorted, percent-encoded query string.
func encodePairs(params map[string]string) string {
	pairs := make([]pair, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, pair{PercentEncode(k), PercentEncode(v)})
	}
	return joinPairs(pairs)
}
