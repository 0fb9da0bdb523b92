package twitter

import (
	"context"
	"strings"

	errs "github.com/matzehuels/chirp/pkg/errors"
	"github.com/matzehuels/chirp/pkg/oauth1"
)

// Timeline selects which timeline Load reads.
type Timeline int

// Timeline selectors.
const (
	// TimelineMe is the authenticated account's own statuses.
	TimelineMe Timeline = iota + 1
	// TimelineMeAndFriends is the home timeline: own statuses plus those of
	// followed accounts.
	TimelineMeAndFriends
	// TimelineReplies is the statuses mentioning the authenticated account.
	TimelineReplies
)

// DefaultTimelineCount is the page size used when LoadOptions.Count is zero.
const DefaultTimelineCount = 20

// maxTimelineCount is the largest page the timeline resources return.
const maxTimelineCount = 200

var timelineResources = map[Timeline]string{
	TimelineMe:           "statuses/user_timeline.json",
	TimelineMeAndFriends: "statuses/home_timeline.json",
	TimelineReplies:      "statuses/mentions_timeline.json",
}

var timelineNames = map[string]Timeline{
	"me":       TimelineMe,
	"user":     TimelineMe,
	"home":     TimelineMeAndFriends,
	"friends":  TimelineMeAndFriends,
	"replies":  TimelineReplies,
	"mentions": TimelineReplies,
}

// String returns the canonical name of t.
func (t Timeline) String() string {
	switch t {
	case TimelineMe:
		return "me"
	case TimelineMeAndFriends:
		return "friends"
	case TimelineReplies:
		return "replies"
	default:
		return "unknown"
	}
}

// ParseTimeline parses a selector name: me, friends (home) or replies
// (mentions).
func ParseTimeline(name string) (Timeline, error) {
	if t, ok := timelineNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return 0, errs.New(errs.ErrCodeInvalidSelector, "unknown timeline %q (want me, friends or replies)", name)
}

// LoadOptions refine a timeline read.
type LoadOptions struct {
	// Count is the number of statuses to request, 1-200. Zero means
	// DefaultTimelineCount.
	Count int

	// IncludeRetweets keeps retweets in the result.
	IncludeRetweets bool

	// ExcludeReplies drops replies from TimelineMe and TimelineMeAndFriends.
	ExcludeReplies bool

	SinceID string
	MaxID   string
}

// Load reads a timeline.
//
// Retweets are removed client-side unless IncludeRetweets is set, since the
// home timeline resource has no server-side filter for them. A page may
// therefore hold fewer than Count statuses.
func (c *Client) Load(ctx context.Context, timeline Timeline, opts LoadOptions) ([]Status, error) {
	resource, ok := timelineResources[timeline]
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidSelector, "unknown timeline selector: %d", int(timeline))
	}

	count := opts.Count
	if count == 0 {
		count = DefaultTimelineCount
	}
	if count < 1 || count > maxTimelineCount {
		return nil, errs.New(errs.ErrCodeInvalidInput, "timeline count must be between 1 and %d, got %d", maxTimelineCount, count)
	}
	for _, id := range []string{opts.SinceID, opts.MaxID} {
		if id == "" {
			continue
		}
		if err := errs.ValidateID(id); err != nil {
			return nil, err
		}
	}

	params := oauth1.Params{}.
		SetInt("count", count).
		Set("tweet_mode", "extended").
		SetNonEmpty("since_id", opts.SinceID).
		SetNonEmpty("max_id", opts.MaxID)
	if timeline != TimelineMeAndFriends {
		params.SetBool("include_rts", opts.IncludeRetweets)
	}
	if opts.ExcludeReplies && timeline != TimelineReplies {
		params.SetBool("exclude_replies", true)
	}

	var statuses []Status
	if err := c.cachedGet(ctx, "timeline:", resource, params, &statuses); err != nil {
		return nil, err
	}
	if opts.IncludeRetweets {
		return statuses, nil
	}
	return withoutRetweets(statuses), nil
}

func withoutRetweets(statuses []Status) []Status {
	out := statuses[:0]
	for _, s := range statuses {
		if !s.IsRetweet() {
			out = append(out, s)
		}
	}
	return out
}
