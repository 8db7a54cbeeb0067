// Package apiclient is the HTTP transport for the OutbreakWatch REST API.
//
// A Client joins request paths onto a configured base URL, attaches the JSON
// and cache-bypass headers plus an optional API key, and classifies each
// response as success, empty success, or *RequestError. It never retries and
// never logs; network failures from net/http are returned unmodified.
package apiclient

import (
	"bytes"
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

const (
	// DefaultTimeout bounds a single request when no http.Client is supplied.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the client to the API.
	DefaultUserAgent = "outbreakwatch/0.1.0"

	// APIKeyHeader carries the credential in header placement.
	APIKeyHeader = "x-api-key"

	// APIKeyParam carries the credential in query placement.
	APIKeyParam = "apikey"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// KeyPlacement selects where the API key is attached.
type KeyPlacement string

const (
	PlacementHeader KeyPlacement = "header"
	PlacementQuery  KeyPlacement = "query"
)

// ParseKeyPlacement validates a placement name. Empty means header.
func ParseKeyPlacement(s string) (KeyPlacement, error) {
	switch KeyPlacement(strings.ToLower(strings.TrimSpace(s))) {
	case "", PlacementHeader:
		return PlacementHeader, nil
	case PlacementQuery:
		return PlacementQuery, nil
	default:
		return "", fmt.Errorf("invalid key placement %q (want header or query)", s)
	}
}

// Client issues JSON requests against one API base URL. It is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	placement  KeyPlacement
	userAgent  string
}

// Option configures the Client.
type Option func(*Client)

// WithAPIKey sets the static credential. An empty key sends no credential.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithKeyPlacement selects header or query placement for the API key.
func WithKeyPlacement(p KeyPlacement) Option {
	return func(c *Client) {
		c.placement = p
	}
}

// WithHTTPClient sets a custom HTTP client. nil keeps the default.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP timeout. It applies to a copy of the HTTP
// client so a client passed to WithHTTPClient is left untouched.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		hc := http.Client{}
		if c.httpClient != nil {
			hc = *c.httpClient
		}
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for baseURL, which must be an absolute http(s) URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be absolute http or https", baseURL)
	}
	if u.Fragment != "" {
		return nil, fmt.Errorf("invalid base URL %q: fragment not allowed", baseURL)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    u.String(),
		placement:  PlacementHeader,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// JoinURL joins base and path with exactly one slash between them,
// tolerating leading and trailing slashes on either side. The join happens
// on the URL path, so a query on base is kept and merged with any query on
// path.
func JoinURL(base, path string) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}
	p, rawQuery, _ := strings.Cut(path, "?")

	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(p, "/")
	u.RawPath = ""
	u.Fragment = ""
	u.RawFragment = ""

	if rawQuery != "" {
		extra, err := url.ParseQuery(rawQuery)
		if err != nil {
			return nil, fmt.Errorf("invalid request URL: %w", err)
		}
		q := u.Query()
		for k, vs := range extra {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}

// Request sends one API call and returns the raw JSON body. A 204 or an
// empty 2xx body yields a nil result without parsing.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Method:     method,
			URL:        redactedURL(req.URL),
		}
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("decode %s %s response: invalid JSON", method, redactedURL(req.URL))
	}
	return json.RawMessage(data), nil
}

// Do sends one API call and decodes a non-empty response body into out.
// out may be nil when the caller expects no body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.Request(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	u, err := JoinURL(c.baseURL, path)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" && c.placement == PlacementQuery {
		q := u.Query()
		q.Set(APIKeyParam, c.apiKey)
		u.RawQuery = q.Encode()
	}

	reader := io.Reader(http.NoBody)
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if c.apiKey != "" && c.placement != PlacementQuery {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
	return req, nil
}

func redactedURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	if q.Has(APIKeyParam) {
		q.Set(APIKeyParam, "REDACTED")
		cp := *u
		cp.RawQuery = q.Encode()
		return cp.String()
	}
	return u.String()
}
