package twitter

import (
	"context"
	"net/http"
	"strings"

	errs "github.com/matzehuels/chirp/pkg/errors"
	"github.com/matzehuels/chirp/pkg/oauth1"
)

// maxMediaPerStatus is the number of attachments a status accepts.
const maxMediaPerStatus = 4

// Send posts a status. Each media path is uploaded first and attached to
// the status; all paths are validated before anything is sent.
func (c *Client) Send(ctx context.Context, text string, mediaPaths ...string) (*Status, error) {
	return c.update(ctx, text, "", mediaPaths)
}

// Reply posts a status in reply to the status with the given ID.
func (c *Client) Reply(ctx context.Context, inReplyToID, text string, mediaPaths ...string) (*Status, error) {
	if err := errs.ValidateID(inReplyToID); err != nil {
		return nil, err
	}
	return c.update(ctx, text, inReplyToID, mediaPaths)
}

func (c *Client) update(ctx context.Context, text, inReplyToID string, mediaPaths []string) (*Status, error) {
	if strings.TrimSpace(text) == "" && len(mediaPaths) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "status text cannot be empty")
	}
	if len(mediaPaths) > maxMediaPerStatus {
		return nil, errs.New(errs.ErrCodeInvalidInput, "at most %d media files per status, got %d", maxMediaPerStatus, len(mediaPaths))
	}
	for _, p := range mediaPaths {
		if err := errs.ValidateMediaPath(p); err != nil {
			return nil, err
		}
	}

	ids := make([]string, 0, len(mediaPaths))
	for _, p := range mediaPaths {
		up, err := c.UploadMedia(ctx, p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, up.MediaIDString)
	}

	params := oauth1.Params{}.
		Set("status", text).
		SetNonEmpty("in_reply_to_status_id", inReplyToID).
		SetNonEmpty("media_ids", strings.Join(ids, ","))
	if inReplyToID != "" {
		params.SetBool("auto_populate_reply_metadata", true)
	}

	var st Status
	if err := c.post(ctx, "statuses/update.json", params, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// UploadMedia uploads a local file to the upload origin as a multipart
// request and returns the media ID to attach to a status.
func (c *Client) UploadMedia(ctx context.Context, path string) (*MediaUpload, error) {
	if err := errs.ValidateMediaPath(path); err != nil {
		return nil, err
	}
	data, err := c.send(ctx, c.creds, oauth1.Request{
		Method: http.MethodPost,
		URL:    c.uploadURL + "media/upload.json",
		Files:  map[string]string{"media": path},
	})
	if err != nil {
		return nil, err
	}
	var up MediaUpload
	if err := decode(data, &up); err != nil {
		return nil, err
	}
	if up.MediaIDString == "" {
		return nil, errs.New(errs.ErrCodeDecode, "upload response carries no media_id_string")
	}
	return &up, nil
}

// Get returns the status with the given ID.
func (c *Client) Get(ctx context.Context, id string) (*Status, error) {
	if err := errs.ValidateID(id); err != nil {
		return nil, err
	}
	params := oauth1.Params{}.
		Set("id", id).
		Set("tweet_mode", "extended").
		SetBool("include_entities", true)

	var st Status
	if err := c.cachedGet(ctx, "status:", "statuses/show.json", params, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Destroy deletes the status with the given ID and returns it.
func (c *Client) Destroy(ctx context.Context, id string) (*Status, error) {
	if err := errs.ValidateID(id); err != nil {
		return nil, err
	}
	var st Status
	if err := c.post(ctx, "statuses/destroy/"+id+".json", oauth1.Params{}, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// SearchOptions refine a search.
type SearchOptions struct {
	Count      int    // Results per page, 1-100. Zero uses the API default.
	ResultType string // "mixed", "recent" or "popular"
	Lang       string
	SinceID    string
	MaxID      string
	Until      string // YYYY-MM-DD
}

// Search returns statuses matching query.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "search query cannot be empty")
	}
	if opts.Count < 0 || opts.Count > 100 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "search count must be between 1 and 100, got %d", opts.Count)
	}
	switch opts.ResultType {
	case "", "mixed", "recent", "popular":
	default:
		return nil, errs.New(errs.ErrCodeInvalidInput, "unknown result type: %q", opts.ResultType)
	}

	params := oauth1.Params{}.
		Set("q", query).
		Set("tweet_mode", "extended").
		SetNonEmpty("result_type", opts.ResultType).
		SetNonEmpty("lang", opts.Lang).
		SetNonEmpty("since_id", opts.SinceID).
		SetNonEmpty("max_id", opts.MaxID).
		SetNonEmpty("until", opts.Until)
	if opts.Count > 0 {
		params.SetInt("count", opts.Count)
	}

	var res SearchResult
	if err := c.cachedGet(ctx, "search:", "search/tweets.json", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
