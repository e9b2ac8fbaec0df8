package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// RestPrefix is the path prefix of the hosted datastore's REST API.
	RestPrefix = "/rest/v1"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client is a client for a PostgREST-style hosted datastore.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a client for the project at baseURL, authenticating
// with apiKey.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// SetHTTPClient allows overriding the default HTTP client (useful for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// BaseURL returns the project URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes a single call to the REST API.
type request struct {
	method     string
	collection string
	query      url.Values
	body       interface{}
	prefer     string
}

// do performs an HTTP request and decodes the JSON response into result.
func (c *Client) do(ctx context.Context, r request, result interface{}) error {
	reqURL := c.baseURL + RestPrefix + "/" + url.PathEscape(r.collection)
	if len(r.query) > 0 {
		reqURL += "?" + r.query.Encode()
	}

	var bodyReader io.Reader
	if r.body != nil {
		jsonBody, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Select fetches every row of collection ordered by order (for example
// "id.asc") into out, which must be a pointer to a slice.
func (c *Client) Select(ctx context.Context, collection, order string, out interface{}) error {
	return c.SelectLimit(ctx, collection, order, 0, out)
}

// SelectLimit is Select capped at limit rows. A limit of zero or less
// fetches every row.
func (c *Client) SelectLimit(ctx context.Context, collection, order string, limit int, out interface{}) error {
	query := url.Values{}
	query.Set("select", "*")
	if order != "" {
		query.Set("order", order)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return c.do(ctx, request{
		method:     http.MethodGet,
		collection: collection,
		query:      query,
	}, out)
}

// Insert creates a row in collection and decodes the stored row into out.
func (c *Client) Insert(ctx context.Context, collection string, record interface{}, out interface{}) error {
	var rows []json.RawMessage
	err := c.do(ctx, request{
		method:     http.MethodPost,
		collection: collection,
		body:       record,
		prefer:     "return=representation",
	}, &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("insert into %s returned no rows", collection)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rows[0], out); err != nil {
		return fmt.Errorf("failed to decode inserted row: %w", err)
	}
	return nil
}

// Update patches the row with the given id. A filter that matches no rows
// is reported as a 404 APIError.
func (c *Client) Update(ctx context.Context, collection string, id int64, fields interface{}) error {
	query := url.Values{}
	query.Set("id", "eq."+strconv.FormatInt(id, 10))

	var rows []json.RawMessage
	err := c.do(ctx, request{
		method:     http.MethodPatch,
		collection: collection,
		query:      query,
		body:       fields,
		prefer:     "return=representation",
	}, &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return &APIError{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("no row in %s with id %d", collection, id),
		}
	}
	return nil
}
