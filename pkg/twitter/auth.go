package twitter

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	errs "github.com/matzehuels/chirp/pkg/errors"
	"github.com/matzehuels/chirp/pkg/oauth1"
)

// OutOfBand is the callback for PIN-based authorization.
const OutOfBand = "oob"

// RequestToken obtains a temporary request token, the first step of the
// PIN flow. An empty callback requests out-of-band (PIN) authorization.
func (c *Client) RequestToken(ctx context.Context, callback string) (*Token, error) {
	if callback == "" {
		callback = OutOfBand
	}
	creds := oauth1.NewCredentials(c.creds.ConsumerKey(), c.creds.ConsumerSecret(), "", "")
	values, err := c.tokenRequest(ctx, creds, "request_token", oauth1.Params{}.Set(oauth1.ParamCallback, callback))
	if err != nil {
		return nil, err
	}
	if values.Get("oauth_callback_confirmed") != "true" {
		return nil, errs.New(errs.ErrCodeDecode, "request token callback was not confirmed")
	}
	return &Token{Token: values.Get("oauth_token"), Secret: values.Get("oauth_token_secret")}, nil
}

// AuthorizeURL returns the page where the user approves a request token and
// receives the PIN.
func (c *Client) AuthorizeURL(requestToken *Token) string {
	return c.oauthURL + "authorize?" + url.Values{"oauth_token": {requestToken.Token}}.Encode()
}

// AccessToken exchanges an approved request token and its PIN for an access
// token.
func (c *Client) AccessToken(ctx context.Context, requestToken *Token, pin string) (*Token, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "PIN cannot be empty")
	}
	if requestToken == nil || requestToken.Token == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "request token is required")
	}
	creds := c.creds.WithToken(requestToken.Token, requestToken.Secret)
	values, err := c.tokenRequest(ctx, creds, "access_token", oauth1.Params{}.Set(oauth1.ParamVerifier, pin))
	if err != nil {
		return nil, err
	}
	return &Token{
		Token:      values.Get("oauth_token"),
		Secret:     values.Get("oauth_token_secret"),
		UserID:     values.Get("user_id"),
		ScreenName: values.Get("screen_name"),
	}, nil
}

// tokenRequest POSTs to an OAuth endpoint, which answers form-encoded.
func (c *Client) tokenRequest(ctx context.Context, creds oauth1.Credentials, path string, params oauth1.Params) (url.Values, error) {
	data, err := c.send(ctx, creds, oauth1.Request{Method: http.MethodPost, URL: c.oauthURL + path, Params: params})
	if err != nil {
		return nil, err
	}
	values, err := url.ParseQuery(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeDecode, err, "invalid %s response", path)
	}
	if values.Get("oauth_token") == "" || values.Get("oauth_token_secret") == "" {
		return nil, errs.New(errs.ErrCodeDecode, "%s response carries no token", path)
	}
	return values, nil
}
