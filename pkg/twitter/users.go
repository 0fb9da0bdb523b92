package twitter

import (
	"context"
	"strings"

	errs "github.com/matzehuels/chirp/pkg/errors"
	"github.com/matzehuels/chirp/pkg/oauth1"
)

// maxFollowerIDs and maxFollowerList are the largest pages the follower
// resources return.
const (
	maxFollowerIDs  = 5000
	maxFollowerList = 200
)

// PageOptions select a page of a cursored listing.
type PageOptions struct {
	// Cursor is the cursor of the page to read. Empty reads the first page.
	Cursor string
	// Count is the page size. Zero uses the API default.
	Count int
}

// LoadUserInfo returns the account with the given screen name.
func (c *Client) LoadUserInfo(ctx context.Context, screenName string) (*User, error) {
	if err := errs.ValidateScreenName(screenName); err != nil {
		return nil, err
	}
	return c.showUser(ctx, oauth1.Params{}.Set("screen_name", trimAt(screenName)))
}

// LoadUserInfoByID returns the account with the given user ID.
func (c *Client) LoadUserInfoByID(ctx context.Context, id string) (*User, error) {
	if err := errs.ValidateID(id); err != nil {
		return nil, err
	}
	return c.showUser(ctx, oauth1.Params{}.Set("user_id", id))
}

func (c *Client) showUser(ctx context.Context, params oauth1.Params) (*User, error) {
	params.SetBool("include_entities", false)
	var u User
	if err := c.cachedGet(ctx, "user:", "users/show.json", params, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// LoadUserFollowers returns a page of follower IDs for screenName.
// IDs are requested in string form so they keep full precision.
func (c *Client) LoadUserFollowers(ctx context.Context, screenName string, opts PageOptions) (*IDPage, error) {
	params, err := pageParams(screenName, opts, maxFollowerIDs)
	if err != nil {
		return nil, err
	}
	params.SetBool("stringify_ids", true)

	var page IDPage
	if err := c.cachedGet(ctx, "followers:", "followers/ids.json", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// LoadUserFollowersList returns a page of follower accounts for screenName.
func (c *Client) LoadUserFollowersList(ctx context.Context, screenName string, opts PageOptions) (*UserPage, error) {
	params, err := pageParams(screenName, opts, maxFollowerList)
	if err != nil {
		return nil, err
	}
	params.SetBool("skip_status", true).SetBool("include_user_entities", false)

	var page UserPage
	if err := c.cachedGet(ctx, "followers:", "followers/list.json", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func pageParams(screenName string, opts PageOptions, max int) (oauth1.Params, error) {
	if err := errs.ValidateScreenName(screenName); err != nil {
		return nil, err
	}
	if opts.Count < 0 || opts.Count > max {
		return nil, errs.New(errs.ErrCodeInvalidInput, "page size must be between 1 and %d, got %d", max, opts.Count)
	}
	cursor := opts.Cursor
	if cursor == "" {
		cursor = "-1"
	}
	params := oauth1.Params{}.
		Set("screen_name", trimAt(screenName)).
		Set("cursor", cursor)
	if opts.Count > 0 {
		params.SetInt("count", opts.Count)
	}
	return params, nil
}

// Follow follows the account with the given screen name and returns it.
func (c *Client) Follow(ctx context.Context, screenName string) (*User, error) {
	return c.friendship(ctx, "friendships/create.json", screenName)
}

// Unfollow unfollows the account with the given screen name and returns it.
func (c *Client) Unfollow(ctx context.Context, screenName string) (*User, error) {
	return c.friendship(ctx, "friendships/destroy.json", screenName)
}

func (c *Client) friendship(ctx context.Context, resource, screenName string) (*User, error) {
	if err := errs.ValidateScreenName(screenName); err != nil {
		return nil, err
	}
	var u User
	if err := c.post(ctx, resource, oauth1.Params{}.Set("screen_name", trimAt(screenName)), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// VerifyCredentials returns the authenticated account.
func (c *Client) VerifyCredentials(ctx context.Context) (*User, error) {
	params := oauth1.Params{}.
		SetBool("include_entities", false).
		SetBool("skip_status", true)
	var u User
	if err := c.get(ctx, "account/verify_credentials.json", params, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate reports whether the configured credentials are accepted.
// A 401 response yields false with a nil error; every other failure is
// returned.
func (c *Client) Authenticate(ctx context.Context) (bool, error) {
	if _, err := c.VerifyCredentials(ctx); err != nil {
		if errs.IsUnauthorized(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func trimAt(screenName string) string {
	return strings.TrimPrefix(screenName, "@")
}
