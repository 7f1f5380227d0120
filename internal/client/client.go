// Package client provides a typed HTTP client for the item API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vyrodovalexey/itemserver/internal/model"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

const itemsPath = "/api/v1/items"

// ErrInvalidBaseURL is returned by New for an unusable server address.
var ErrInvalidBaseURL = errors.New("base URL must be an absolute http or https URL")

// APIError is a non-2xx response from the server.
type APIError struct {
	Body model.ErrorResponse
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Body.StatusCode, e.Body.Error, e.Body.Message)
}

// StatusCode returns the HTTP status of the failed request.
func (e *APIError) StatusCode() int {
	return e.Body.StatusCode
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode() == http.StatusNotFound
}

// Client talks to an item API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a Client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// itemBody is the JSON body sent on create and update.
type itemBody struct {
	Name  *string `json:"name,omitempty"`
	Value *int64  `json:"value,omitempty"`
}

// List returns every item in insertion order.
func (c *Client) List(ctx context.Context) ([]model.Item, error) {
	var list model.ItemList
	if err := c.do(ctx, http.MethodGet, itemsPath, nil, http.StatusOK, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// Get returns the item with the given id.
func (c *Client) Get(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, http.StatusOK, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create adds an item and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, name string, value int64) (*model.Item, error) {
	body := itemBody{Name: &name, Value: &value}

	var item model.Item
	if err := c.do(ctx, http.MethodPost, itemsPath, body, http.StatusCreated, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update changes the fields present in patch and returns the updated item.
func (c *Client) Update(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	body := itemBody{Name: patch.Name, Value: patch.Value}

	var item model.Item
	if err := c.do(ctx, http.MethodPut, itemPath(id), body, http.StatusOK, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the item and returns the server's confirmation message.
func (c *Client) Delete(ctx context.Context, id int64) (string, error) {
	var resp model.MessageResponse
	if err := c.do(ctx, http.MethodDelete, itemPath(id), nil, http.StatusOK, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func itemPath(id int64) string {
	return itemsPath + "/" + strconv.FormatInt(id, 10)
}

// do sends a request and decodes a response with status want into out.
// Any other status is returned as an *APIError.
func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{}
	if err := json.NewDecoder(resp.Body).Decode(&apiErr.Body); err != nil || apiErr.Body.StatusCode == 0 {
		apiErr.Body = model.ErrorResponse{
			StatusCode: resp.StatusCode,
			Error:      http.StatusText(resp.StatusCode),
			Message:    "unexpected response from server",
		}
	}
	return apiErr
}
