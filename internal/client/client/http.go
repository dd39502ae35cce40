package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/vidbatch/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// HTTPClient implements Client against the backend's REST API.
type HTTPClient struct {
	baseURL   string
	tokens    oauth2.TokenSource
	http      *http.Client
	log       logging.Logger
	newID     func() string
	now       func() time.Time
	userAgent string
}

type Option func(*HTTPClient)

func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithRequestIDs(fn func() string) Option {
	return func(c *HTTPClient) { c.newID = fn }
}

func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.userAgent = ua }
}

// WithClock overrides the clock used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *HTTPClient) { c.now = now }
}

// New returns a client for baseURL, which already includes the API prefix
// (e.g. http://127.0.0.1:8000/api/video-processor). tokens may be nil, in
// which case every authenticated call fails with ErrNotAuthenticated.
func New(baseURL string, tokens oauth2.TokenSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		tokens:    tokens,
		http:      http.DefaultClient,
		log:       logging.Nop(),
		newID:     uuid.NewString,
		now:       time.Now,
		userAgent: "vidbatch",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// newRequest builds a request for path (relative to the base URL). A non-nil
// body is sent as JSON unless it is an io.Reader.
func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body any, auth bool) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var rdr io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case io.Reader:
		rdr = b
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, c.newID())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if auth {
		if err := c.authorize(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// authorize attaches the bearer token. It never lets a request without a
// usable token reach the network.
func (c *HTTPClient) authorize(req *http.Request) error {
	if c.tokens == nil {
		return ErrNotAuthenticated
	}
	tok, err := c.tokens.Token()
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}
	if tok == nil || tok.AccessToken == "" {
		return ErrNotAuthenticated
	}
	if exp, ok := TokenExpiry(tok.AccessToken); ok && !exp.After(c.now()) {
		return ErrTokenExpired
	}
	tok.SetAuthHeader(req)
	return nil
}

// send executes req and decodes a 2xx JSON body into out (when non-nil).
func (c *HTTPClient) send(req *http.Request, out any) error {
	ctx := req.Context()
	id := req.Header.Get(requestIDHeader)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", req.Method, "path", req.URL.Path, "request_id", id, "error", err)
		return c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request", "method", req.Method, "path", req.URL.Path,
		"status", resp.StatusCode, "request_id", id, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if rid := resp.Header.Get(requestIDHeader); rid != "" {
			id = rid
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.StatusCode),
			RequestID:  id,
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body, true)
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

// errorMessage extracts a human-readable message from an error body: detail
// as a string, the first msg of a validation list, message, or the status
// text, in that order.
func errorMessage(body []byte, status int) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil && s != "" {
			return s
		}
		var issues []validationIssue
		if err := json.Unmarshal(eb.Detail, &issues); err == nil && len(issues) > 0 && issues[0].Msg != "" {
			return issues[0].Msg
		}
		if eb.Message != "" {
			return eb.Message
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
