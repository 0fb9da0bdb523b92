package twitter

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/matzehuels/chirp/pkg/apitest"
	errs "github.com/matzehuels/chirp/pkg/errors"
	"github.com/matzehuels/chirp/pkg/httputil"
	"github.com/matzehuels/chirp/pkg/oauth1"
)

func TestRequest(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/1.1/statuses/retweet/{id}.json", http.StatusOK, `{"id": 1050118621198921728, "retweeted": true}`)
	srv.JSON(http.MethodGet, "/1.1/friendships/exists.json", http.StatusOK, `false`)
	srv.Handle(http.MethodGet, "/1.1/broken.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	})
	c := newTestClient(t, srv)
	ctx := context.Background()

	got, err := c.Request(ctx, "post", "statuses/retweet/20.json", nil, nil)
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	obj, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("Request() = %T, want map", got)
	}
	if obj["id"] != json.Number("1050118621198921728") {
		t.Errorf("id = %#v, want exact json.Number", obj["id"])
	}
	if srv.Last().Method != http.MethodPost {
		t.Errorf("method = %s", srv.Last().Method)
	}

	got, err = c.Request(ctx, "", "friendships/exists.json", oauth1.Params{}.Set("screen_name_a", "jack"), nil)
	if err != nil {
		t.Fatalf("Request(false) error: %v", err)
	}
	if got != false {
		t.Errorf("Request() = %#v, want false", got)
	}

	if _, err := c.Request(ctx, http.MethodGet, "broken.json", nil, nil); !errs.Is(err, errs.ErrCodeDecode) {
		t.Errorf("Request(broken) code = %v, want DECODE_ERROR", errs.GetCode(err))
	}
	if _, err := c.Request(ctx, http.MethodGet, "", nil, nil); !errs.IsValidation(err) {
		t.Errorf("Request(empty resource) = %v, want validation error", err)
	}
}

func TestCachedRequest(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/1.1/trends/place.json", http.StatusOK, `[{"trends":[{"name":"#golang"}]}]`)

	cfg := testConfig(srv)
	cfg.Cache = httputil.NewCache(newMemStore(), httputil.Fixed(time.Minute))
	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		var out []struct {
			Trends []struct {
				Name string `json:"name"`
			} `json:"trends"`
		}
		if err := c.CachedRequest(ctx, "trends/place.json", oauth1.Params{}.Set("id", "1"), &out); err != nil {
			t.Fatalf("CachedRequest() error: %v", err)
		}
		if len(out) != 1 || out[0].Trends[0].Name != "#golang" {
			t.Errorf("CachedRequest() = %+v", out)
		}
	}
	if srv.Count() != 1 {
		t.Errorf("requests = %d, want 1", srv.Count())
	}

	// Different parameters are a different entry.
	var out any
	if err := c.CachedRequest(ctx, "trends/place.json", oauth1.Params{}.Set("id", "2"), &out); err != nil {
		t.Fatal(err)
	}
	if srv.Count() != 2 {
		t.Errorf("requests = %d, want 2", srv.Count())
	}
}
