// Package client provides a typed HTTP client for the orders API.
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
	"strings"
	"time"
)

// Client calls the orders API over HTTP.
type Client struct {
	base    *url.URL
	http    *http.Client
	headers http.Header
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTimeout sets the request timeout on the underlying client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// WithHeader adds a default header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// New instantiates a client with sane defaults.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("orders API base URL is required")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	c := &Client{
		base:    base,
		http:    &http.Client{Timeout: 10 * time.Second},
		headers: http.Header{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// OrderItem mirrors the API's order line shape.
type OrderItem struct {
	Name           string `json:"name"`
	Qty            int32  `json:"qty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// CreateOrderRequest is the POST /orders payload.
type CreateOrderRequest struct {
	CustomerName string      `json:"customer_name"`
	Email        string      `json:"email"`
	Items        []OrderItem `json:"items"`
}

// Order is the API's order representation.
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customer_name"`
	Email        string      `json:"email"`
	Items        []OrderItem `json:"items"`
	TotalCents   int64       `json:"total_cents"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// APIError is a non-2xx response decoded from the problem+json body.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("orders API: %d %s: %s", e.StatusCode, e.Title, e.Detail)
	}
	return fmt.Sprintf("orders API: %d %s", e.StatusCode, e.Title)
}

// CreateOrder submits a new order and returns the created record.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, http.StatusCreated, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder fetches an order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, http.StatusOK, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders fetches all orders.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, http.StatusOK, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus patches the order status and returns the updated record.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	var order Order
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", body, http.StatusOK, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes an order by id.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+url.PathEscape(id), nil, http.StatusNoContent, nil)
}

// Health probes the service liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, http.StatusOK, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	target, err := c.base.Parse(path)
	if err != nil {
		return fmt.Errorf("join URL: %w", err)
	}
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call orders API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}
	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&problem); err == nil {
		if problem.Title != "" {
			apiErr.Title = problem.Title
		}
		apiErr.Detail = problem.Detail
	}
	return apiErr
}
