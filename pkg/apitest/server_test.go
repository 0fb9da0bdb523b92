package apitest

import (
	"context"
	"net/http"
	"testing"

	"github.com/matzehuels/chirp/pkg/oauth1"
	"github.com/matzehuels/chirp/pkg/transport"
)

func send(t *testing.T, creds oauth1.Credentials, req oauth1.Request) *transport.Response {
	t.Helper()
	signed, err := (&oauth1.Builder{}).Build(creds, req)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	resp, err := transport.New(transport.Options{}).Do(context.Background(), signed)
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	return resp
}

func TestServerAcceptsValidSignatures(t *testing.T) {
	srv := New(t)
	srv.JSON(http.MethodGet, "/1.1/users/show.json", http.StatusOK, `{"id_str":"12"}`)
	srv.JSON(http.MethodPost, "/1.1/statuses/update.json", http.StatusOK, `{"id_str":"20"}`)

	creds := oauth1.NewCredentials(ConsumerKey, ConsumerSecret, Token, TokenSecret)

	resp := send(t, creds, oauth1.Request{
		Method: http.MethodGet,
		URL:    srv.APIURL() + "users/show.json",
		Params: oauth1.Params{"screen_name": oauth1.String("jack"), "skip": nil},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, body = %s", resp.StatusCode, resp.Body)
	}
	if got := srv.Last().Params["screen_name"]; got != "jack" {
		t.Errorf("screen_name = %q, want jack", got)
	}
	if _, ok := srv.Last().Params["skip"]; ok {
		t.Error("nil parameter was transmitted")
	}

	resp = send(t, creds, oauth1.Request{
		Method: http.MethodPost,
		URL:    srv.APIURL() + "statuses/update.json",
		Params: oauth1.Params{}.Set("status", "Hello Ladies + Gentlemen, a signed OAuth request!"),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST status = %d, body = %s", resp.StatusCode, resp.Body)
	}
	if !srv.Last().Authorized {
		t.Error("Last().Authorized = false")
	}
}

func TestServerRejectsBadSignatures(t *testing.T) {
	srv := New(t)
	srv.JSON(http.MethodGet, "/1.1/account/verify_credentials.json", http.StatusOK, `{}`)

	tests := []struct {
		name  string
		creds oauth1.Credentials
	}{
		{"wrong consumer secret", oauth1.NewCredentials(ConsumerKey, "nope", Token, TokenSecret)},
		{"wrong token secret", oauth1.NewCredentials(ConsumerKey, ConsumerSecret, Token, "nope")},
		{"unknown token", oauth1.NewCredentials(ConsumerKey, ConsumerSecret, "other", TokenSecret)},
		{"unknown consumer", oauth1.NewCredentials("other", ConsumerSecret, Token, TokenSecret)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := send(t, tt.creds, oauth1.Request{Method: http.MethodGet, URL: srv.APIURL() + "account/verify_credentials.json"})
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
			if srv.Last().Authorized {
				t.Error("Last().Authorized = true")
			}
		})
	}
}

func TestServerAddToken(t *testing.T) {
	srv := New(t)
	srv.JSON(http.MethodPost, "/oauth/access_token", http.StatusOK, `{}`)
	srv.AddToken("request-token", "request-secret")

	creds := oauth1.NewCredentials(ConsumerKey, ConsumerSecret, "request-token", "request-secret")
	resp := send(t, creds, oauth1.Request{
		Method: http.MethodPost,
		URL:    srv.OAuthURL() + "access_token",
		Params: oauth1.Params{}.Set(oauth1.ParamVerifier, "1234"),
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, body = %s", resp.StatusCode, resp.Body)
	}
}

func TestServerNotFound(t *testing.T) {
	srv := New(t)
	creds := oauth1.NewCredentials(ConsumerKey, ConsumerSecret, Token, TokenSecret)
	resp := send(t, creds, oauth1.Request{Method: http.MethodGet, URL: srv.APIURL() + "missing.json"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if srv.Count() != 1 {
		t.Errorf("Count() = %d, want 1", srv.Count())
	}
}
