package oauth1

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	errs "github.com/matzehuels/chirp/pkg/errors"
)

// Content types produced by [Builder.Build].
const (
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeJSON = "application/json"
)

// nonceBytes is the amount of randomness in each nonce.
const nonceBytes = 32

// Request describes an API call before signing.
type Request struct {
	Method string
	URL    string
	Params Params

	// Files maps multipart field names to local file paths. Files are never
	// part of the signature.
	Files map[string]string

	// JSON, when non-nil, is sent as an application/json body. The body is
	// not signed; OAuth parameters travel in the Authorization header.
	JSON []byte
}

// SignedRequest is a fully authorized request ready for transport.
type SignedRequest struct {
	Method string
	URL    string      // Complete URL, including the query string for GET
	Header http.Header // Carries Authorization for header-signed requests

	// Body and ContentType are set for urlencoded and JSON POSTs.
	Body        []byte
	ContentType string

	// Form and Files are set for multipart POSTs; the transport encodes them.
	Form  map[string]string
	Files map[string]string
}

// Multipart reports whether the request must be sent as multipart/form-data.
func (r *SignedRequest) Multipart() bool { return len(r.Files) > 0 }

// Builder signs requests. The zero value is ready to use and draws time from
// the system clock and nonces from crypto/rand.
type Builder struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Nonce returns a fresh single-use token. Defaults to [NewNonce].
	Nonce func() (string, error)
}

// NewNonce returns 32 random bytes from crypto/rand, base64url-encoded
// without padding.
func NewNonce() (string, error) {
	b := make([]byte, nonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Build assembles a fresh OAuth parameter set for req, signs it with creds and
// renders the request in the shape its transport needs.
//
// Build returns a validation error for an empty method or an unparseable URL,
// and a configuration error if no nonce can be generated.
func (b *Builder) Build(creds Credentials, req Request) (*SignedRequest, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "request method cannot be empty")
	}
	if req.URL == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "request URL cannot be empty")
	}
	u, err := url.Parse(req.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "invalid request URL: %q", req.URL)
	}

	query := firstValues(u.Query())
	u.RawQuery = ""
	u.Fragment = ""
	endpoint := u.String()

	oauth, err := b.oauthParams(creds)
	if err != nil {
		return nil, err
	}

	user := req.Params.Values()
	for field := range req.Files {
		delete(user, field)
	}

	out := &SignedRequest{Method: method, Header: make(http.Header)}

	if len(req.Files) > 0 || req.JSON != nil {
		// Header-signed: only OAuth parameters and the URL query are signed.
		// Caller-supplied oauth_* parameters belong to the protocol and move
		// into the header.
		for k, v := range user {
			if strings.HasPrefix(k, "oauth_") {
				oauth[k] = v
				delete(user, k)
			}
		}
		if req.JSON != nil {
			for k, v := range user {
				query[k] = v
			}
			user = nil
		}

		signed := merge(query, oauth)
		oauth[ParamSignature] = Sign(method, endpoint, signed, creds.ConsumerSecret(), creds.TokenSecret())

		out.URL = withQuery(endpoint, query)
		out.Header.Set("Authorization", AuthorizationHeader(oauth))
		if req.JSON != nil {
			out.Body = req.JSON
			out.ContentType = ContentTypeJSON
		} else {
			out.Form = user
			out.Files = copyMap(req.Files)
		}
		return out, nil
	}

	all := merge(query, user, oauth)
	all[ParamSignature] = Sign(method, endpoint, all, creds.ConsumerSecret(), creds.TokenSecret())

	if hasBody(method) {
		out.URL = endpoint
		out.Body = []byte(encodePairs(all))
		out.ContentType = ContentTypeForm
	} else {
		out.URL = withQuery(endpoint, all)
	}
	return out, nil
}

// oauthParams returns a fresh OAuth parameter set without the signature.
func (b *Builder) oauthParams(creds Credentials) (map[string]string, error) {
	nonce := NewNonce
	if b.Nonce != nil {
		nonce = b.Nonce
	}
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	n, err := nonce()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfiguration, err, "generate nonce: secure random source unavailable")
	}

	params := map[string]string{
		ParamConsumerKey:     creds.ConsumerKey(),
		ParamNonce:           n,
		ParamSignatureMethod: SignatureMethod,
		ParamTimestamp:       strconv.FormatInt(now().Unix(), 10),
		ParamVersion:         Version,
	}
	if creds.HasToken() {
		params[ParamToken] = creds.Token()
	}
	return params, nil
}

func hasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

func withQuery(endpoint string, params map[string]string) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + encodePairs(params)
}

// firstValues flattens a url.Values, keeping the first value of each key.
func firstValues(v url.Values) map[string]string {
	out := make(map[string]string, len(v))
	for k, vs := range v {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

// merge combines maps left to right; later maps win on key collisions.
func merge(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	return merge(m)
}
