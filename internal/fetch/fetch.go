package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hanselhansel/agentlens/internal/config"
)

// maxRedirects bounds redirect chains. Ten matches the net/http default
// and is more than any sane site needs.
const maxRedirects = 10

// Error wraps a fetch failure with the URL that caused it.
// Callers can unwrap to inspect the underlying transport error.
type Error struct {
	// URL is the requested URL.
	URL string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Response is the result of a successful fetch. The body has already been
// read (with the size limit applied) and the connection released.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Body is the response body, truncated at the client's body size limit.
	Body []byte

	// Header holds the response headers.
	Header http.Header

	// FinalURL is the URL after following redirects. It differs from the
	// requested URL when the server redirected.
	FinalURL string
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client performs HTTP GET requests for audit probes and crawling.
//
// Design decision: a struct holding the http.Client rather than passing
// one on each call because:
//  1. Client configuration (timeouts, redirect policy) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test with httptest servers
type Client struct {
	// hc is the underlying HTTP client.
	hc *http.Client

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// maxBodySize limits the response body size to prevent memory
	// exhaustion from unexpectedly large responses.
	maxBodySize int64
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.hc.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying http.Client. Useful for tests
// that need a custom transport. Options applied before this one are lost.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// NewClient creates a Client with sensible defaults: the agentlens
// User-Agent, the default per-request timeout, and a bounded redirect
// chain.
func NewClient(opts ...Option) *Client {
	c := &Client{
		hc: &http.Client{
			Timeout: config.DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get fetches the given URL and returns the response with the body already
// read. The context bounds the whole request including body reading.
// Transport failures are returned as *Error; non-2xx statuses are not
// errors because several probes need to distinguish 404 from failure.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // Close error is not actionable here

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Header:     resp.Header.Clone(),
		FinalURL:   resp.Request.URL.String(),
	}, nil
}
