package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chirp/pkg/cache"
	errs "github.com/matzehuels/chirp/pkg/errors"
	"github.com/matzehuels/chirp/pkg/httputil"
	"github.com/matzehuels/chirp/pkg/oauth1"
	"github.com/matzehuels/chirp/pkg/transport"
)

// Default API origins.
const (
	DefaultAPIURL    = "https://api.twitter.com/1.1/"
	DefaultUploadURL = "https://upload.twitter.com/1.1/"
	DefaultOAuthURL  = "https://api.twitter.com/oauth/"
)

// Config configures a Client. Only the consumer key pair is required; the
// access token pair is needed for every user-context operation.
type Config struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string

	// API origins. Defaults: DefaultAPIURL, DefaultUploadURL, DefaultOAuthURL.
	APIURL    string
	UploadURL string
	OAuthURL  string

	// Timeout bounds each request. Defaults to transport.DefaultTimeout.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// UserAgent is sent with every request.
	UserAgent string

	// Cache, when set, serves read operations. Nil disables caching.
	Cache *httputil.Cache

	// HTTPClient overrides the client built from Timeout and InsecureSkipVerify.
	HTTPClient *http.Client

	// Logger receives debug output. Defaults to log.Default().
	Logger *log.Logger
}

// Client is a Twitter API client. It is safe for concurrent use.
type Client struct {
	creds     oauth1.Credentials
	builder   *oauth1.Builder
	transport *transport.Client
	cache     *httputil.Cache
	apiURL    string
	uploadURL string
	oauthURL  string
	logger    *log.Logger
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "consumer key and consumer secret are required")
	}
	if (cfg.AccessToken == "") != (cfg.AccessTokenSecret == "") {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "access token and access token secret must be set together")
	}

	apiURL, err := baseURL(cfg.APIURL, DefaultAPIURL)
	if err != nil {
		return nil, err
	}
	uploadURL, err := baseURL(cfg.UploadURL, DefaultUploadURL)
	if err != nil {
		return nil, err
	}
	oauthURL, err := baseURL(cfg.OAuthURL, DefaultOAuthURL)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		creds:   oauth1.NewCredentials(cfg.ConsumerKey, cfg.ConsumerSecret, cfg.AccessToken, cfg.AccessTokenSecret),
		builder: &oauth1.Builder{},
		transport: transport.New(transport.Options{
			Timeout:            cfg.Timeout,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			UserAgent:          cfg.UserAgent,
			HTTPClient:         cfg.HTTPClient,
			Logger:             logger,
		}),
		cache:     cfg.Cache,
		apiURL:    apiURL,
		uploadURL: uploadURL,
		oauthURL:  oauthURL,
		logger:    logger,
	}, nil
}

// Credentials returns the credentials the client signs with.
func (c *Client) Credentials() oauth1.Credentials { return c.creds }

// baseURL validates raw and ensures a trailing slash.
func baseURL(raw, def string) (string, error) {
	if raw == "" {
		raw = def
	}
	if err := errs.ValidateURL(raw); err != nil {
		return "", err
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw, nil
}

// endpoint resolves a resource against the API origin. Absolute URLs are
// used as-is.
func (c *Client) endpoint(resource string) string {
	if strings.HasPrefix(resource, "http://") || strings.HasPrefix(resource, "https://") {
		return resource
	}
	return c.apiURL + strings.TrimPrefix(resource, "/")
}

// =============================================================================
// Request plumbing
// =============================================================================

// send signs req with creds and returns the body of a successful response.
// Responses with status >= 400 become *errors.APIError.
func (c *Client) send(ctx context.Context, creds oauth1.Credentials, req oauth1.Request) ([]byte, error) {
	signed, err := c.builder.Build(creds, req)
	if err != nil {
		return nil, err
	}
	resp, err := c.transport.Do(ctx, signed)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, errs.NewAPIError(resp.StatusCode, resp.Body)
	}
	return resp.Body, nil
}

// get performs an uncached GET and decodes the response into out.
func (c *Client) get(ctx context.Context, resource string, params oauth1.Params, out any) error {
	data, err := c.send(ctx, c.creds, oauth1.Request{Method: http.MethodGet, URL: c.endpoint(resource), Params: params})
	if err != nil {
		return err
	}
	return decode(data, out)
}

// cachedGet performs a GET through the response cache, if one is configured,
// and decodes the response into out.
func (c *Client) cachedGet(ctx context.Context, namespace, resource string, params oauth1.Params, out any) error {
	if c.cache == nil {
		return c.get(ctx, resource, params, out)
	}

	// A body that does not decode into out is a failed call: it must not
	// replace the stored entry, and the stored entry may stand in for it.
	fetch := func(ctx context.Context) ([]byte, error) {
		data, err := c.send(ctx, c.creds, oauth1.Request{Method: http.MethodGet, URL: c.endpoint(resource), Params: params})
		if err != nil {
			return nil, err
		}
		if err := decode(data, scratch(out)); err != nil {
			return nil, err
		}
		return data, nil
	}
	res, err := c.cache.Namespace(namespace).Fetch(ctx, c.cacheKey(resource, params), fetch)
	if err != nil {
		return err
	}
	if res.Stale {
		c.logger.Warn("serving stale response", "resource", resource, "stored", res.StoredAt.Format(time.RFC3339))
	}
	return decode(res.Data, out)
}

// scratch returns a new zero value of the type out points to, so a body can
// be checked without touching out.
func scratch(out any) any {
	t := reflect.TypeOf(out)
	if t == nil || t.Kind() != reflect.Pointer {
		return new(json.RawMessage)
	}
	return reflect.New(t.Elem()).Interface()
}

// cacheKey hashes the resource, its present parameters and the credential
// identity, so different accounts never share entries.
func (c *Client) cacheKey(resource string, params oauth1.Params) string {
	return cache.Key(resource, params.Values(), c.creds.Identity())
}

// post performs a urlencoded POST and decodes the response into out.
func (c *Client) post(ctx context.Context, resource string, params oauth1.Params, out any) error {
	data, err := c.send(ctx, c.creds, oauth1.Request{Method: http.MethodPost, URL: c.endpoint(resource), Params: params})
	if err != nil {
		return err
	}
	return decode(data, out)
}

// decode unmarshals a JSON response. Numbers decoded into interface values
// become json.Number so 64-bit IDs keep their precision. Any valid JSON
// document is accepted, including a bare false or null.
func decode(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return errs.Wrap(errs.ErrCodeDecode, err, "invalid JSON response")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errs.New(errs.ErrCodeDecode, "invalid JSON response: trailing data after document")
	}
	return nil
}
