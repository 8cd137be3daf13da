package users

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines the remote user resource. It is implemented by *Client
// and can be faked in tests.
type Service interface {
	FetchUsers(ctx context.Context) ([]*Record, error)
	UpdateUser(ctx context.Context, id int64, rec *Record) error
	DeleteUser(ctx context.Context, id int64) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the users REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL   = "https://jsonplaceholder.typicode.com"
	defaultUserAgent = "roster/0.1"
	jsonContentType  = "application/json; charset=UTF-8"
	usersPath        = "users"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient swaps the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchUsers retrieves the full collection.
func (c *Client) FetchUsers(ctx context.Context) ([]*Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []*Record
	if err := c.do(ctx, "list users", http.MethodGet, c.baseURL.JoinPath(usersPath), nil, &payload); err != nil {
		return nil, err
	}
	out := payload[:0]
	for _, rec := range payload {
		if rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

// UpdateUser replaces the record with the given id.
func (c *Client) UpdateUser(ctx context.Context, id int64, rec *Record) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode user %d: %w", id, err)
	}
	op := fmt.Sprintf("update user %d", id)
	return c.do(ctx, op, http.MethodPut, c.userURL(id), body, nil)
}

// DeleteUser removes the record with the given id.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	op := fmt.Sprintf("delete user %d", id)
	return c.do(ctx, op, http.MethodDelete, c.userURL(id), nil, nil)
}

func (c *Client) userURL(id int64) *url.URL {
	return c.baseURL.JoinPath(usersPath, strconv.FormatInt(id, 10))
}

func (c *Client) do(ctx context.Context, op, method string, target *url.URL, body []byte, dest any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-type", jsonContentType)
	}

	log.Printf("%s %s request_id=%s", method, target.Redacted(), requestID)
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, URL: target.Redacted(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &NetworkError{Op: op, URL: target.Redacted(), StatusCode: resp.StatusCode}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &NetworkError{Op: op, URL: target.Redacted(), Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
