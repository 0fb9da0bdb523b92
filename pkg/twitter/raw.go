package twitter

import (
	"context"
	"net/http"
	"strings"

	errs "github.com/matzehuels/chirp/pkg/errors"
	"github.com/matzehuels/chirp/pkg/oauth1"
)

// Request performs an arbitrary API call and returns the decoded JSON
// document: maps, slices, strings, bools, nil and json.Number values.
//
// resource is relative to the API origin (for example
// "statuses/retweet/20.json") or an absolute URL. files, when non-empty,
// turn the call into a multipart upload.
func (c *Client) Request(ctx context.Context, method, resource string, params oauth1.Params, files map[string]string) (any, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}
	if strings.TrimSpace(resource) == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "resource cannot be empty")
	}
	for _, p := range files {
		if err := errs.ValidateMediaPath(p); err != nil {
			return nil, err
		}
	}

	data, err := c.send(ctx, c.creds, oauth1.Request{
		Method: method,
		URL:    c.endpoint(resource),
		Params: params,
		Files:  files,
	})
	if err != nil {
		return nil, err
	}
	var out any
	if err := decode(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CachedRequest performs a GET through the response cache and decodes the
// result into out. Without a configured cache it behaves like a plain GET.
func (c *Client) CachedRequest(ctx context.Context, resource string, params oauth1.Params, out any) error {
	if strings.TrimSpace(resource) == "" {
		return errs.New(errs.ErrCodeInvalidInput, "resource cannot be empty")
	}
	return c.cachedGet(ctx, "request:", resource, params, out)
}
