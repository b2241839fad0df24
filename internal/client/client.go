// Package client fetches the raw schema document from a SpacetimeDB
// instance over HTTP. It does no parsing; the payload goes to the sats
// decoder as-is.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spacelens/spacelens/internal/errs"
)

// Config holds all settings needed to reach a schema endpoint.
type Config struct {
	// BaseURL is the server root, e.g. "http://localhost:3000".
	BaseURL string

	// SchemaVersion selects the schema document format version.
	SchemaVersion string

	// Timeout bounds the whole fetch, connection setup included.
	Timeout time.Duration
}

// DefaultConfig returns fetch settings for the given server.
func DefaultConfig(baseURL string) *Config {
	return &Config{
		BaseURL:       baseURL,
		SchemaVersion: "9",
		Timeout:       30 * time.Second,
	}
}

// Client fetches schema documents from one server.
type Client struct {
	cfg  *Config
	http *http.Client
}

// New creates a client from cfg, falling back to DefaultConfig fields
// where cfg leaves them zero.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig("")
	}
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = "9"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// BaseURL returns the resolved server root this client talks to.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// FetchSchema retrieves the raw schema document for db. Any transport or
// HTTP-level failure surfaces as a fetch error; no retries.
func (c *Client) FetchSchema(ctx context.Context, db string) ([]byte, error) {
	if db == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "database name is required")
	}

	endpoint := fmt.Sprintf("%s/v1/database/%s/schema?version=%s",
		strings.TrimSuffix(c.cfg.BaseURL, "/"),
		url.PathEscape(db),
		url.QueryEscape(c.cfg.SchemaVersion))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "build schema request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindFetchFailed, "schema fetch failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindFetchFailed, "read schema response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.Newf(errs.ErrKindFetchFailed, "schema fetch failed: %s: %s",
			resp.Status, strings.TrimSpace(string(body)))
	}
	return body, nil
}
