// Package apitest provides an in-process fake of the Twitter API for tests.
//
// The fake checks the OAuth 1.0a signature of every request against its own
// credentials, the same way the real service does, and answers 401 with the
// service's error envelope when the check fails. Tests register handlers for
// the resources they exercise and inspect the recorded requests afterwards:
//
//	srv := apitest.New(t)
//	srv.JSON(http.MethodGet, "/1.1/users/show.json", http.StatusOK, `{"id_str":"12"}`)
//	client, _ := twitter.New(twitter.Config{
//	    ConsumerKey: apitest.ConsumerKey, ConsumerSecret: apitest.ConsumerSecret,
//	    AccessToken: apitest.Token, AccessTokenSecret: apitest.TokenSecret,
//	    APIURL: srv.APIURL(), UploadURL: srv.UploadURL(), OAuthURL: srv.OAuthURL(),
//	})
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chirp/pkg/oauth1"
)

// Credentials accepted by a Server created with New.
const (
	ConsumerKey    = "test-consumer-key"
	ConsumerSecret = "test-consumer-secret"
	Token          = "test-token"
	TokenSecret    = "test-token-secret"
)

// maxMemory bounds multipart parsing.
const maxMemory = 32 << 20

// unauthorizedBody mirrors the service's response to a bad signature.
const unauthorizedBody = `{"errors":[{"code":32,"message":"Could not authenticate you."}]}`

// Request is a request received by the Server.
type Request struct {
	Method string
	Path   string
	Header http.Header

	// Params holds every signed parameter: query, urlencoded body and
	// Authorization header.
	Params map[string]string

	// Form and Files hold the unsigned parts of a multipart request.
	Form  map[string]string
	Files map[string][]byte

	// JSON is the body of an application/json request.
	JSON []byte

	// Authorized reports whether the signature check passed.
	Authorized bool
}

// Server is a fake API server.
type Server struct {
	*httptest.Server
	router chi.Router

	mu       sync.Mutex
	secrets  map[string]string // token -> token secret
	requests []Request
}

// New starts a Server that accepts the package credentials. The server is
// closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		router:  chi.NewRouter(),
		secrets: map[string]string{Token: TokenSecret},
	}
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, json.RawMessage(`{"errors":[{"code":34,"message":"Sorry, that page does not exist."}]}`))
	})
	s.Server = httptest.NewServer(s.authorize(s.router))
	t.Cleanup(s.Close)
	return s
}

// APIURL returns the base URL of the REST resources.
func (s *Server) APIURL() string { return s.URL + "/1.1/" }

// UploadURL returns the base URL of the upload resources.
func (s *Server) UploadURL() string { return s.URL + "/upload/1.1/" }

// OAuthURL returns the base URL of the OAuth token endpoints.
func (s *Server) OAuthURL() string { return s.URL + "/oauth/" }

// AddToken makes the server accept an additional token, such as a request
// token issued during a PIN flow.
func (s *Server) AddToken(token, secret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[token] = secret
}

// Handle registers h for method and a chi route pattern such as
// "/1.1/statuses/destroy/{id}.json".
func (s *Server) Handle(method, pattern string, h http.HandlerFunc) {
	s.router.Method(method, pattern, h)
}

// JSON registers a handler that answers with status and a fixed body.
func (s *Server) JSON(method, pattern string, status int, body string) {
	s.Handle(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, json.RawMessage(body))
	})
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns the number of requests received so far.
func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Last returns the most recent request. It panics if there is none.
func (s *Server) Last() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// authorize records the request and rejects it unless it carries a valid
// signature.
func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec, err := s.capture(r)
		if err != nil {
			WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		rec.Authorized = s.verify(r, rec.Params)

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		if !rec.Authorized {
			WriteJSON(w, http.StatusUnauthorized, json.RawMessage(unauthorizedBody))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) verify(r *http.Request, params map[string]string) bool {
	if params[oauth1.ParamConsumerKey] != ConsumerKey ||
		params[oauth1.ParamSignatureMethod] != oauth1.SignatureMethod ||
		params[oauth1.ParamVersion] != oauth1.Version ||
		params[oauth1.ParamNonce] == "" ||
		params[oauth1.ParamTimestamp] == "" {
		return false
	}

	secret := ""
	if token, ok := params[oauth1.ParamToken]; ok {
		s.mu.Lock()
		secret, ok = s.secrets[token]
		s.mu.Unlock()
		if !ok {
			return false
		}
	}
	return oauth1.Verify(r.Method, "http://"+r.Host+r.URL.EscapedPath(), params, ConsumerSecret, secret)
}

// capture collects the parts of r. Bodies stay readable for handlers:
// urlencoded and multipart forms through r.PostForm and r.MultipartForm,
// JSON through r.Body.
func (s *Server) capture(r *http.Request) (Request, error) {
	rec := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Params: map[string]string{},
	}
	for k, v := range r.URL.Query() {
		rec.Params[k] = v[0]
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return rec, err
		}
		for k, v := range r.PostForm {
			rec.Params[k] = v[0]
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return rec, err
		}
		rec.Form = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			rec.Form[k] = v[0]
		}
		rec.Files = map[string][]byte{}
		for field, headers := range r.MultipartForm.File {
			f, err := headers[0].Open()
			if err != nil {
				return rec, err
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return rec, err
			}
			rec.Files[field] = data
		}
	case "application/json":
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return rec, err
		}
		rec.JSON = data
		r.Body = io.NopCloser(bytes.NewReader(data))
	}

	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "OAuth ") {
		oauth, err := oauth1.ParseAuthorizationHeader(h)
		if err != nil {
			return rec, err
		}
		for k, v := range oauth {
			rec.Params[k] = v
		}
	}
	return rec, nil
}
