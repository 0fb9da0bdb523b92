package twitter

import (
	"context"
	"net/http"
	"testing"

	"github.com/matzehuels/chirp/pkg/apitest"
	errs "github.com/matzehuels/chirp/pkg/errors"
)

const timelineJSON = `[
	{"id_str": "3", "full_text": "own status"},
	{"id_str": "2", "full_text": "RT @jack: hello", "retweeted_status": {"id_str": "1", "full_text": "hello"}},
	{"id_str": "1", "text": "short status"}
]`

func TestLoad(t *testing.T) {
	srv := apitest.New(t)
	for _, p := range []string{
		"/1.1/statuses/user_timeline.json",
		"/1.1/statuses/home_timeline.json",
		"/1.1/statuses/mentions_timeline.json",
	} {
		srv.JSON(http.MethodGet, p, http.StatusOK, timelineJSON)
	}
	c := newTestClient(t, srv)
	ctx := context.Background()

	tests := []struct {
		name     string
		timeline Timeline
		opts     LoadOptions
		path     string
		want     int
		params   map[string]string
		absent   []string
	}{
		{
			name:     "me without retweets",
			timeline: TimelineMe,
			path:     "/1.1/statuses/user_timeline.json",
			want:     2,
			params:   map[string]string{"count": "20", "include_rts": "false"},
		},
		{
			name:     "friends with retweets",
			timeline: TimelineMeAndFriends,
			opts:     LoadOptions{Count: 50, IncludeRetweets: true},
			path:     "/1.1/statuses/home_timeline.json",
			want:     3,
			params:   map[string]string{"count": "50"},
			absent:   []string{"include_rts"},
		},
		{
			name:     "replies",
			timeline: TimelineReplies,
			opts:     LoadOptions{SinceID: "1", ExcludeReplies: true},
			path:     "/1.1/statuses/mentions_timeline.json",
			want:     2,
			params:   map[string]string{"since_id": "1"},
			absent:   []string{"exclude_replies", "max_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statuses, err := c.Load(ctx, tt.timeline, tt.opts)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if len(statuses) != tt.want {
				t.Errorf("Load() = %d statuses, want %d", len(statuses), tt.want)
			}
			last := srv.Last()
			if last.Path != tt.path {
				t.Errorf("path = %q, want %q", last.Path, tt.path)
			}
			for k, v := range tt.params {
				if last.Params[k] != v {
					t.Errorf("param %s = %q, want %q", k, last.Params[k], v)
				}
			}
			for _, k := range tt.absent {
				if _, ok := last.Params[k]; ok {
					t.Errorf("param %s should not be sent", k)
				}
			}
		})
	}
}

func TestLoadValidation(t *testing.T) {
	srv := apitest.New(t)
	c := newTestClient(t, srv)
	ctx := context.Background()

	if _, err := c.Load(ctx, Timeline(42), LoadOptions{}); !errs.Is(err, errs.ErrCodeInvalidSelector) {
		t.Errorf("Load(unknown) code = %v, want INVALID_SELECTOR", errs.GetCode(err))
	}
	if _, err := c.Load(ctx, TimelineMe, LoadOptions{Count: 201}); !errs.IsValidation(err) {
		t.Errorf("Load(count=201) = %v, want validation error", err)
	}
	if _, err := c.Load(ctx, TimelineMe, LoadOptions{MaxID: "x"}); !errs.IsValidation(err) {
		t.Errorf("Load(max_id=x) = %v, want validation error", err)
	}
	if srv.Count() != 0 {
		t.Errorf("requests = %d, want 0", srv.Count())
	}
}

func TestParseTimeline(t *testing.T) {
	tests := []struct {
		input   string
		want    Timeline
		wantErr bool
	}{
		{"me", TimelineMe, false},
		{"Friends", TimelineMeAndFriends, false},
		{"home", TimelineMeAndFriends, false},
		{"mentions", TimelineReplies, false},
		{" replies ", TimelineReplies, false},
		{"everyone", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeline(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeline(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeline(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeInvalidSelector) {
				t.Errorf("code = %v, want INVALID_SELECTOR", errs.GetCode(err))
			}
		})
	}
}
