// Package storefront is an HTTP client for the bookstore API.
package storefront

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

	"go.uber.org/zap"
)

// Client calls the public bookstore API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a bookstore API client
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// ListBooks fetches one page of books. query carries where[...], limit and depth.
func (c *Client) ListBooks(ctx context.Context, query url.Values) (*BookList, error) {
	var out BookList
	if err := c.do(ctx, http.MethodGet, "/api/books", query, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBook fetches a single book by slug
func (c *Client) GetBook(ctx context.Context, slug string) (*Book, error) {
	var out Book
	if err := c.do(ctx, http.MethodGet, "/api/books/"+url.PathEscape(slug), nil, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder submits an order. Any status other than 201 is an *APIError.
func (c *Client) CreateOrder(ctx context.Context, sub OrderSubmission) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, sub, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrder fetches an order by its order number
func (c *Client) GetOrder(ctx context.Context, orderNumber string) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderNumber), nil, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, want int, out interface{}) error {
	if c.baseURL == "" {
		return fmt.Errorf("storefront client not configured: base URL required")
	}
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Bookstore API request failed", zap.Error(err), zap.String("method", method), zap.String("path", path))
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != want {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
