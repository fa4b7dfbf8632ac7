// Package datastore provides admin.Store implementations: an HTTP client for
// PostgREST-style services and an in-memory store for demos and tests.
package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	admin "github.com/refugehq/crisis-admin/components/admin"
)

const restPrefix = "/rest/v1/"

// HTTPConfig configures the HTTP store client. BaseURL is the project URL
// without the REST prefix.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient implements admin.Store against a PostgREST-dialect REST service.
// Filters become query string operators (eq., gte., not.is.null) and counts
// use the exact-count preference so no row payloads cross the wire.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ admin.Store = (*HTTPClient)(nil)

// NewHTTPClient builds a client for a live store. Missing credentials are a
// configuration error, reported before any request is made.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("datastore: base url is required: %w", admin.ErrConfiguration)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("datastore: api key is required: %w", admin.ErrConfiguration)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// Query fetches rows matching the query.
func (c *HTTPClient) Query(ctx context.Context, q admin.Query) ([]admin.Record, error) {
	if q.Collection == "" {
		return nil, fmt.Errorf("datastore: collection is required: %w", admin.ErrValidation)
	}
	params := url.Values{}
	params.Set("select", "*")
	for _, f := range q.Filters {
		value, err := filterValue(f)
		if err != nil {
			return nil, err
		}
		params.Add(f.Field, value)
	}
	if q.OrderBy != "" {
		direction := "asc"
		if q.Descending {
			direction = "desc"
		}
		params.Set("order", q.OrderBy+"."+direction)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var rows []admin.Record
	if err := c.do(ctx, http.MethodGet, q.Collection, params, nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the exact number of rows matching the filters without
// transferring row data.
func (c *HTTPClient) Count(ctx context.Context, collection string, filters ...admin.Filter) (int, error) {
	if collection == "" {
		return 0, fmt.Errorf("datastore: collection is required: %w", admin.ErrValidation)
	}
	params := url.Values{}
	params.Set("select", "id")
	for _, f := range filters {
		value, err := filterValue(f)
		if err != nil {
			return 0, err
		}
		params.Add(f.Field, value)
	}
	headers := http.Header{}
	headers.Set("Prefer", "count=exact")
	headers.Set("Range", "0-0")

	count := -1
	capture := func(resp *http.Response) error {
		parsed, err := parseContentRange(resp.Header.Get("Content-Range"))
		if err != nil {
			return err
		}
		count = parsed
		return nil
	}
	if err := c.do(ctx, http.MethodGet, collection, params, headers, capture, nil); err != nil {
		return 0, err
	}
	return count, nil
}

// Insert stores a record and returns the stored representation, including
// server-assigned id and created_at.
func (c *HTTPClient) Insert(ctx context.Context, collection string, record admin.Record) (admin.Record, error) {
	if collection == "" {
		return nil, fmt.Errorf("datastore: collection is required: %w", admin.ErrValidation)
	}
	headers := http.Header{}
	headers.Set("Prefer", "return=representation")

	var rows []admin.Record
	if err := c.doBody(ctx, http.MethodPost, collection, nil, headers, record, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("datastore: insert into %s returned no representation: %w", collection, admin.ErrConnectivity)
	}
	return rows[0], nil
}

// Delete removes a record by id. Deleting an id that does not exist reports
// admin.ErrNotFound.
func (c *HTTPClient) Delete(ctx context.Context, collection, id string) error {
	if collection == "" {
		return fmt.Errorf("datastore: collection is required: %w", admin.ErrValidation)
	}
	if id == "" {
		return fmt.Errorf("datastore: id is required: %w", admin.ErrValidation)
	}
	params := url.Values{}
	params.Set("id", "eq."+id)
	headers := http.Header{}
	headers.Set("Prefer", "return=representation")

	var rows []admin.Record
	if err := c.do(ctx, http.MethodDelete, collection, params, headers, nil, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("datastore: %s/%s: %w", collection, id, admin.ErrNotFound)
	}
	return nil
}

func filterValue(f admin.Filter) (string, error) {
	switch f.Op {
	case admin.FilterEq:
		return fmt.Sprintf("eq.%v", f.Value), nil
	case admin.FilterGTE:
		return fmt.Sprintf("gte.%v", f.Value), nil
	case admin.FilterNotNull:
		return "not.is.null", nil
	default:
		return "", fmt.Errorf("datastore: unsupported filter op %q: %w", f.Op, admin.ErrValidation)
	}
}

// parseContentRange extracts the total from a "0-0/42" or "*/42" header.
func parseContentRange(header string) (int, error) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 || idx == len(header)-1 {
		return 0, fmt.Errorf("datastore: malformed content range %q: %w", header, admin.ErrConnectivity)
	}
	total := header[idx+1:]
	if total == "*" {
		return 0, fmt.Errorf("datastore: content range reports unknown total: %w", admin.ErrConnectivity)
	}
	count, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("datastore: malformed content range %q: %w", header, admin.ErrConnectivity)
	}
	return count, nil
}

func (c *HTTPClient) do(ctx context.Context, method, collection string, params url.Values, headers http.Header, inspect func(*http.Response) error, target any) error {
	return c.doBody(ctx, method, collection, params, headers, nil, inspect, target)
}

func (c *HTTPClient) doBody(ctx context.Context, method, collection string, params url.Values, headers http.Header, payload any, inspect func(*http.Response) error, target any) error {
	endpoint := c.baseURL + restPrefix + collection
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("datastore: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("datastore: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	for key, values := range headers {
		for _, value := range values {
			req.Header.Set(key, value)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("datastore: %s %s: %w (%w)", method, collection, err, admin.ErrConnectivity)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp, method, collection); err != nil {
		return err
	}
	if inspect != nil {
		if err := inspect(resp); err != nil {
			return err
		}
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("datastore: decode %s response: %w (%w)", collection, err, admin.ErrConnectivity)
	}
	return nil
}

func classifyStatus(resp *http.Response, method, collection string) error {
	if resp.StatusCode < 300 {
		return nil
	}
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	detail := strings.TrimSpace(buf.String())
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("datastore: %s %s: remote rejected credentials (%d): %w", method, collection, resp.StatusCode, admin.ErrConfiguration)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("datastore: %s %s: %s: %w", method, collection, detail, admin.ErrNotFound)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// Remaining 4xx are writes the store itself refused, constraint and
		// schema violations included.
		return fmt.Errorf("datastore: %s %s: store rejected request (%d): %s: %w", method, collection, resp.StatusCode, detail, admin.ErrValidation)
	default:
		return fmt.Errorf("datastore: %s %s: remote error %d: %s: %w", method, collection, resp.StatusCode, detail, admin.ErrConnectivity)
	}
}
