package twitter

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chirp/pkg/apitest"
	errs "github.com/matzehuels/chirp/pkg/errors"
)

func TestSend(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/1.1/statuses/update.json", func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteJSON(w, http.StatusOK, map[string]string{"id_str": "20", "full_text": r.PostForm.Get("status")})
	})
	c := newTestClient(t, srv)

	st, err := c.Send(context.Background(), "Hello Ladies + Gentlemen, a signed OAuth request!")
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if st.IDStr != "20" || st.Content() != "Hello Ladies + Gentlemen, a signed OAuth request!" {
		t.Errorf("Send() = %+v", st)
	}

	got := srv.Last()
	if got.Params["status"] != "Hello Ladies + Gentlemen, a signed OAuth request!" {
		t.Errorf("status param = %q", got.Params["status"])
	}
	if _, ok := got.Params["media_ids"]; ok {
		t.Error("media_ids sent without media")
	}
	if _, ok := got.Params["in_reply_to_status_id"]; ok {
		t.Error("in_reply_to_status_id sent for a plain status")
	}
}

func TestSendWithMedia(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(photo, []byte("\x89PNG fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/upload/1.1/media/upload.json", http.StatusOK,
		`{"media_id":710511363345354753,"media_id_string":"710511363345354753","size":9,"image":{"image_type":"image/png","w":1,"h":1}}`)
	srv.JSON(http.MethodPost, "/1.1/statuses/update.json", http.StatusOK, `{"id_str":"21"}`)
	c := newTestClient(t, srv)

	if _, err := c.Send(context.Background(), "with a picture", photo); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	reqs := srv.Requests()
	if len(reqs) != 2 {
		t.Fatalf("requests = %d, want 2", len(reqs))
	}
	upload := reqs[0]
	if string(upload.Files["media"]) != "\x89PNG fake" {
		t.Errorf("uploaded media = %q", upload.Files["media"])
	}
	if _, ok := upload.Params["media"]; ok {
		t.Error("media file was part of the signed parameters")
	}
	if got := reqs[1].Params["media_ids"]; got != "710511363345354753" {
		t.Errorf("media_ids = %q", got)
	}
}

func TestReply(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/1.1/statuses/update.json", http.StatusOK, `{"id_str":"22","in_reply_to_status_id_str":"20"}`)
	c := newTestClient(t, srv)

	st, err := c.Reply(context.Background(), "20", "@jack indeed")
	if err != nil {
		t.Fatalf("Reply() error: %v", err)
	}
	if st.InReplyToStatusIDStr == nil || *st.InReplyToStatusIDStr != "20" {
		t.Errorf("InReplyToStatusIDStr = %v", st.InReplyToStatusIDStr)
	}
	if got := srv.Last().Params["in_reply_to_status_id"]; got != "20" {
		t.Errorf("in_reply_to_status_id = %q", got)
	}
}

func TestSendValidation(t *testing.T) {
	srv := apitest.New(t)
	c := newTestClient(t, srv)
	ctx := context.Background()
	missing := filepath.Join(t.TempDir(), "missing.png")

	tests := []struct {
		name string
		call func() error
		code errs.Code
	}{
		{"empty text", func() error { _, err := c.Send(ctx, "  "); return err }, errs.ErrCodeInvalidInput},
		{"missing media", func() error { _, err := c.Send(ctx, "hi", missing); return err }, errs.ErrCodeFileNotFound},
		{"too many media", func() error { _, err := c.Send(ctx, "hi", "a", "b", "c", "d", "e"); return err }, errs.ErrCodeInvalidInput},
		{"bad reply id", func() error { _, err := c.Reply(ctx, "abc", "hi"); return err }, errs.ErrCodeInvalidInput},
		{"upload missing file", func() error { _, err := c.UploadMedia(ctx, missing); return err }, errs.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (err=%v)", got, tt.code, err)
			}
		})
	}
	if srv.Count() != 0 {
		t.Errorf("requests = %d, want none for invalid input", srv.Count())
	}
}

func TestUploadMediaWithoutID(t *testing.T) {
	photo := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(photo, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/upload/1.1/media/upload.json", http.StatusOK, `{}`)
	c := newTestClient(t, srv)

	if _, err := c.UploadMedia(context.Background(), photo); !errs.Is(err, errs.ErrCodeDecode) {
		t.Errorf("UploadMedia() code = %v, want DECODE_ERROR", errs.GetCode(err))
	}
}

func TestGetAndDestroy(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/1.1/statuses/show.json", http.StatusOK, statusJSON)
	srv.Handle(http.MethodPost, "/1.1/statuses/destroy/{id}.json", func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteJSON(w, http.StatusOK, map[string]string{"id_str": chi.URLParam(r, "id")})
	})
	c := newTestClient(t, srv)
	ctx := context.Background()

	st, err := c.Get(ctx, "1050118621198921728")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if st.User == nil || st.User.ScreenName != "TwitterAPI" {
		t.Errorf("User = %+v", st.User)
	}
	if st.Entities == nil || st.Entities.Media != nil {
		t.Errorf("Entities.Media = %v, want nil", st.Entities)
	}
	created, err := st.CreatedTime()
	if err != nil || created.Year() != 2018 {
		t.Errorf("CreatedTime() = %v, %v", created, err)
	}
	if got := srv.Last().Params["id"]; got != "1050118621198921728" {
		t.Errorf("id param = %q", got)
	}

	st, err = c.Destroy(ctx, "1050118621198921728")
	if err != nil {
		t.Fatalf("Destroy() error: %v", err)
	}
	if st.IDStr != "1050118621198921728" {
		t.Errorf("Destroy() IDStr = %q", st.IDStr)
	}

	if _, err := c.Destroy(ctx, "../1"); !errs.IsValidation(err) {
		t.Errorf("Destroy(bad id) = %v, want validation error", err)
	}
}

func TestSearch(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodGet, "/1.1/search/tweets.json", func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteJSON(w, http.StatusOK, json.RawMessage(`{
			"statuses": [`+statusJSON+`],
			"search_metadata": {"query": "%23golang", "count": 15, "next_results": "?max_id=1&q=%23golang"}
		}`))
	})
	c := newTestClient(t, srv)
	ctx := context.Background()

	res, err := c.Search(ctx, "#golang", SearchOptions{Count: 15, ResultType: "recent"})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(res.Statuses) != 1 || res.Metadata.Count != 15 {
		t.Errorf("Search() = %d statuses, metadata %+v", len(res.Statuses), res.Metadata)
	}
	got := srv.Last().Params
	if got["q"] != "#golang" || got["count"] != "15" || got["result_type"] != "recent" {
		t.Errorf("params = %v", got)
	}
	if _, ok := got["lang"]; ok {
		t.Error("empty lang was sent")
	}

	for _, bad := range []struct {
		q    string
		opts SearchOptions
	}{
		{"", SearchOptions{}},
		{"go", SearchOptions{Count: 101}},
		{"go", SearchOptions{ResultType: "newest"}},
	} {
		if _, err := c.Search(ctx, bad.q, bad.opts); !errs.IsValidation(err) {
			t.Errorf("Search(%q, %+v) = %v, want validation error", bad.q, bad.opts, err)
		}
	}
}
