// Package cms is a read-only client for the Sanity content lake query API.
//
// Handlers depend on the Querier interface so tests can substitute canned
// results for the network.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// maxResponseSize bounds how much of a query response is read.
const maxResponseSize = 16 << 20

// Querier executes a GROQ query and decodes its result into dst.
type Querier interface {
	Fetch(ctx context.Context, query string, params map[string]any, dst any) error
}

// Client queries a single CMS project and dataset over HTTP.
type Client struct {
	cfg     Config
	http    *http.Client
	baseURL string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithBaseURL overrides the API host, e.g. to point at a local stub.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// NewClient validates cfg and returns a Client for it.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cms: invalid config: %w", err)
	}
	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
	host := "api.sanity.io"
	if cfg.UseCDN {
		host = "apicdn.sanity.io"
	}
	c.baseURL = fmt.Sprintf("https://%s.%s", cfg.ProjectID, host)
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.cfg
}

type envelope struct {
	Query  string          `json:"query"`
	Result json.RawMessage `json:"result"`
	MS     int             `json:"ms"`
}

type errorEnvelope struct {
	Error struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	} `json:"error"`
	Message string `json:"message"`
}

// Fetch runs query with params and decodes the result member of the
// response into dst. A null result returns ErrNoResult and leaves dst
// untouched. Any other failure is a *QueryError.
func (c *Client) Fetch(ctx context.Context, query string, params map[string]any, dst any) error {
	u, err := c.queryURL(query, params)
	if err != nil {
		return &QueryError{Query: query, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &QueryError{Query: query, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &QueryError{Query: query, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &QueryError{Query: query, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		qe := &QueryError{Query: query, StatusCode: resp.StatusCode}
		var ee errorEnvelope
		if json.Unmarshal(body, &ee) == nil {
			qe.Type = ee.Error.Type
			qe.Description = ee.Error.Description
			if qe.Description == "" {
				qe.Description = ee.Message
			}
		}
		return qe
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &QueryError{Query: query, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if len(env.Result) == 0 || bytes.Equal(env.Result, []byte("null")) {
		return ErrNoResult
	}
	if err := json.Unmarshal(env.Result, dst); err != nil {
		return &QueryError{Query: query, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode result: %w", err)}
	}
	return nil
}

// queryURL builds the GET URL for query. Parameters are JSON-encoded and
// sent as $name=value pairs, in name order so URLs are stable.
func (c *Client) queryURL(query string, params map[string]any) (string, error) {
	v := url.Values{}
	v.Set("query", query)

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b, err := json.Marshal(params[name])
		if err != nil {
			return "", fmt.Errorf("encode param %q: %w", name, err)
		}
		v.Set("$"+strings.TrimPrefix(name, "$"), string(b))
	}

	return fmt.Sprintf("%s/v%s/data/query/%s?%s",
		c.baseURL,
		strings.TrimPrefix(c.cfg.APIVersion, "v"),
		url.PathEscape(c.cfg.Dataset),
		v.Encode(),
	), nil
}
