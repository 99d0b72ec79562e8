// Package registry provides the HTTP client for the endpoint registry
// backend and the registration flow built on top of it. The backend owns
// endpoint storage and connector execution; this package only consumes
// its listing and creation operations.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/endpointctl/pkg/endpoints"
	"github.com/agentstation/endpointctl/pkg/errors"
	"github.com/agentstation/endpointctl/pkg/logging"
)

// endpointsPath is the registry's LLM endpoint collection resource.
const endpointsPath = "/api/v1/llm-endpoints"

// DefaultTimeout bounds a single registry request.
const DefaultTimeout = 30 * time.Second

// Client is an HTTP client for the registry backend API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client (useful for testing).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// New creates a registry client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the registry base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches all registered endpoints from the registry.
func (c *Client) List(ctx context.Context) ([]endpoints.Record, error) {
	resp, err := c.do(ctx, http.MethodGet, endpointsPath, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var records []endpoints.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, errors.NewParseError("json", "", "invalid registry listing response", err)
	}
	return records, nil
}

// createResponse is the body returned by the registry on creation.
type createResponse struct {
	ID string `json:"id"`
}

// Create registers a new endpoint and returns its id. The config must
// already be validated and defaulted.
func (c *Client) Create(ctx context.Context, cfg *endpoints.Config) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, endpointsPath, cfg)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", errors.NewParseError("json", "", "invalid registry creation response", err)
	}
	if created.ID == "" {
		return "", errors.NewAPIError(endpointsPath, resp.StatusCode, "creation response missing endpoint id")
	}
	return created.ID, nil
}

// Exists reports whether an endpoint with the given name or id is
// registered.
func (c *Client) Exists(ctx context.Context, nameOrID string) (bool, error) {
	records, err := c.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range records {
		if records[i].Matches(nameOrID) {
			return true, nil
		}
	}
	return false, nil
}

// do performs a single registry request with common headers applied.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WrapParse("json", "", err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+url, err)
	}

	requestID := logging.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	logging.Ctx(ctx).Debug().
		Str("method", method).
		Str("url", url).
		Str("request_id", requestID).
		Msg("Registry request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{
			Endpoint: url,
			Message:  err.Error(),
			Err:      err,
		}
	}
	return resp, nil
}

// errorResponse is the error body shape the registry returns.
type errorResponse struct {
	Error string `json:"error"`
}

// checkStatus converts non-2xx responses into APIErrors, decoding the
// registry's error body when present.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := resp.Status
	data, err := io.ReadAll(resp.Body)
	if err == nil && len(data) > 0 {
		var body errorResponse
		if jsonErr := json.Unmarshal(data, &body); jsonErr == nil && body.Error != "" {
			message = body.Error
		} else {
			message = strings.TrimSpace(string(data))
		}
	}

	return errors.NewAPIError(resp.Request.URL.Path, resp.StatusCode, message)
}
