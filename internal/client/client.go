// Package client consumes the list API of a running clinic-admin server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/maxviazov/clinic-admin-service/internal/query"
	"github.com/maxviazov/clinic-admin-service/internal/repository"
)

// ErrUpstream marks failures of the remote service or of the transport to it.
// The underlying cause stays reachable through errors.Is / errors.As.
var ErrUpstream = errors.New("upstream failure")

// Config configures the HTTP client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
}

// Client issues list, get, create and delete calls. It never retries: a
// failed call is reported to the caller as is.
type Client struct {
	baseURL string
	http    *http.Client
	headers map[string]string
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	dialer := &net.Dialer{Timeout: cfg.Timeout, KeepAlive: 30 * time.Second}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Transport: transport, Timeout: cfg.Timeout},
		headers: cfg.Headers,
	}
}

// filterBody is the JSON body of the filter endpoint.
type filterBody struct {
	SearchTerm    string              `json:"searchTerm,omitempty"`
	Filters       map[string][]string `json:"filters,omitempty"`
	SortBy        string              `json:"sortBy,omitempty"`
	SortDirection string              `json:"sortDirection,omitempty"`
}

// errorBody is the subset of the server error envelope the client reads.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Filter runs a list query against POST /v1/<module>/filter/{page}/{size}.
func Filter[T any](ctx context.Context, c *Client, module string, req query.Request) (query.Page[T], error) {
	path := fmt.Sprintf("/v1/%s/filter/%d/%d", module, req.Page, req.Size)
	body := filterBody{
		SearchTerm:    req.SearchTerm,
		Filters:       req.Filters,
		SortBy:        req.SortBy,
		SortDirection: string(req.SortDirection),
	}
	var page query.Page[T]
	if err := c.do(ctx, http.MethodPost, path, body, &page); err != nil {
		return query.Page[T]{}, err
	}
	return page, nil
}

// Get fetches one record by id.
func Get[T any](ctx context.Context, c *Client, module string, id int64) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, "/v1/"+module+"/"+strconv.FormatInt(id, 10), nil, &out)
	return out, err
}

// Create stores v and returns the stored record.
func Create[T any](ctx context.Context, c *Client, module string, v T) (T, error) {
	var out T
	err := c.do(ctx, http.MethodPost, "/v1/"+module, v, &out)
	return out, err
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, module string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/v1/"+module+"/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrUpstream, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, raw)
	}
	if result == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}
	return nil
}

func statusError(status int, raw []byte) error {
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	detail := eb.Message
	if detail == "" {
		detail = eb.Error
	}
	if detail == "" {
		detail = http.StatusText(status)
	}
	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", query.ErrInvalidArgument, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", repository.ErrNotFound, detail)
	case http.StatusConflict:
		if eb.Error == "already_exists" {
			return fmt.Errorf("%w: %s", repository.ErrAlreadyExists, detail)
		}
		return fmt.Errorf("%w: %s", repository.ErrConflict, detail)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, status, detail)
	}
}
