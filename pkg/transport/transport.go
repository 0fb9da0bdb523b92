// Package transport executes signed requests over HTTP.
//
// [Client.Do] sends an [oauth1.SignedRequest] as a GET with a query string,
// an urlencoded or JSON POST, or a multipart POST for file uploads, and
// returns the raw status and body. Any HTTP status is a successful round
// trip; interpreting it is the caller's job. Connection, TLS and timeout
// failures are returned as coded errors ([errs.ErrCodeNetwork],
// [errs.ErrCodeTimeout]). Nothing is retried.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/chirp/pkg/errors"
	"github.com/matzehuels/chirp/pkg/oauth1"
	"github.com/matzehuels/chirp/pkg/observability"
)

// DefaultTimeout bounds each request when Options.Timeout is zero.
const DefaultTimeout = 20 * time.Second

// DefaultUserAgent is sent when Options.UserAgent is empty.
const DefaultUserAgent = "chirp"

// Options configures a Client.
type Options struct {
	// Timeout bounds the whole request, including reading the body.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification. Use only
	// against test servers.
	InsecureSkipVerify bool

	// UserAgent is sent with every request.
	UserAgent string

	// HTTPClient overrides the client built from the options above. Its
	// timeout and TLS settings are used as-is.
	HTTPClient *http.Client

	// Logger receives debug output. Defaults to log.Default().
	Logger *log.Logger
}

// Client sends signed requests. It is safe for concurrent use.
type Client struct {
	http      *http.Client
	userAgent string
	logger    *log.Logger
}

// Response is the raw outcome of a round trip.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status is below 400.
func (r *Response) OK() bool { return r.StatusCode < 400 }

// New creates a Client from opts.
func New(opts Options) *Client {
	c := &Client{
		http:      opts.HTTPClient,
		userAgent: opts.UserAgent,
		logger:    opts.Logger,
	}
	if c.http == nil {
		c.http = NewHTTPClient(opts.Timeout, opts.InsecureSkipVerify)
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// NewHTTPClient creates an HTTP client with the given timeout and TLS policy.
// A zero timeout uses DefaultTimeout.
func NewHTTPClient(timeout time.Duration, insecureSkipVerify bool) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if insecureSkipVerify {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// Do sends req and returns the response for any HTTP status.
//
// Attachments are read before any network I/O; an unreadable file is a
// validation error.
func (c *Client) Do(ctx context.Context, req *oauth1.SignedRequest) (*Response, error) {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "create request")
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	host, path := httpReq.URL.Host, httpReq.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		err = classify(err, req.Method, path)
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = classify(err, req.Method, path)
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}

	took := time.Since(start)
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, took)
	c.logger.Debug("http", "method", req.Method, "path", path, "status", resp.StatusCode, "bytes", len(data), "took", took.Round(time.Millisecond))

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// classify maps a client error to a transport error code.
func classify(err error, method, path string) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return errs.Wrap(errs.ErrCodeTimeout, err, "%s %s timed out", method, path)
	}
	return errs.Wrap(errs.ErrCodeNetwork, err, "%s %s", method, path)
}

// encodeBody returns the request body and its content type.
func encodeBody(req *oauth1.SignedRequest) (io.Reader, string, error) {
	if req.Multipart() {
		return encodeMultipart(req.Form, req.Files)
	}
	if req.Body == nil {
		return nil, "", nil
	}
	return bytes.NewReader(req.Body), req.ContentType, nil
}

// encodeMultipart builds a multipart/form-data body. Fields and files are
// written in sorted order so bodies are reproducible.
func encodeMultipart(form, files map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, name := range sortedKeys(form) {
		if err := w.WriteField(name, form[name]); err != nil {
			return nil, "", errs.Wrap(errs.ErrCodeInternal, err, "write field %q", name)
		}
	}

	for _, name := range sortedKeys(files) {
		path := files[name]
		if err := errs.ValidateMediaPath(path); err != nil {
			return nil, "", err
		}
		if err := writeFile(w, name, path); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errs.Wrap(errs.ErrCodeInternal, err, "close multipart body")
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "open attachment %s", path)
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "create form file %q", field)
	}
	if _, err := io.Copy(part, f); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "read attachment %s", path)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
