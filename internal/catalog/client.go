// Package catalog talks to the open-data catalog REST API: one GET per call,
// JSON decoding, typed failures, and the secondary distribution lookups.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the public datos.gob.es API origin.
const DefaultBaseURL = "http://datos.gob.es/apidata"

// RequestIDHeader carries a fresh id on every outbound request.
const RequestIDHeader = "X-Request-Id"

// Config configures a Client. The base origin is always explicit.
type Config struct {
	BaseURL   string
	Timeout   time.Duration // 0 = no timeout
	UserAgent string

	// HTTPClient overrides the transport entirely, mostly for tests.
	HTTPClient *http.Client
}

// catalogTransport stamps every request with a request id and user agent.
type catalogTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *catalogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}

// NewHTTPClient creates an *http.Client for catalog calls.
// timeout is the per-request deadline (0 = no timeout).
func NewHTTPClient(timeout time.Duration, userAgent string) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &catalogTransport{base: http.DefaultTransport, userAgent: strings.TrimSpace(userAgent)},
	}
}

// Client issues GET requests against a fixed catalog origin.
type Client struct {
	base *url.URL
	http *http.Client
}

// New validates the configuration and builds a Client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, fmt.Errorf("catalog base URL is empty")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base URL %q: %w", cfg.BaseURL, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("invalid catalog base URL %q: want http(s)://host[/path]", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = NewHTTPClient(cfg.Timeout, cfg.UserAgent)
	}
	return &Client{base: base, http: hc}, nil
}

// BaseURL returns the configured origin.
func (c *Client) BaseURL() string { return c.base.String() }

// URL joins the origin with path and params. The path is escaped here, so
// callers pass free text verbatim.
func (c *Client) URL(path string, params url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String()
}

// Get issues exactly one GET and decodes the JSON body.
// Transport errors and non-2xx statuses yield a *NetworkError; a 2xx body
// that is not valid JSON yields a *DecodeError. There are no retries.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (any, error) {
	target := c.URL(path, params)
	logf(path, "GET %s", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logf(path, "request error (%v)", err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		logf(path, "non-2xx status=%d", resp.StatusCode)
		return nil, &NetworkError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logf(path, "read error (%v)", err)
		return nil, &NetworkError{StatusCode: resp.StatusCode, Err: err}
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		logf(path, "decode error (%v)", err)
		return nil, &DecodeError{Err: err}
	}
	logf(path, "ok (%d bytes)", len(body))
	return decoded, nil
}
