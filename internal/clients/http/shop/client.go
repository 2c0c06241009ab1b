package shop

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

	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// DefaultTimeout bounds every call to the shop API.
const DefaultTimeout = 10 * time.Second

// Client talks to the remote shop API that owns games, orders and accounts.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// RequestOption configures a single API call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	token          string
	idempotencyKey string
}

// WithBearer authenticates the call with the session token.
func WithBearer(token string) RequestOption {
	return func(opts *requestOptions) {
		opts.token = strings.TrimSpace(token)
	}
}

// WithIdempotencyKey sets the Idempotency-Key header for the request.
func WithIdempotencyKey(key string) RequestOption {
	return func(opts *requestOptions) {
		opts.idempotencyKey = strings.TrimSpace(key)
	}
}

// NewClient instantiates the shop client. A nil httpClient gets DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("shop API base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse shop API base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("shop API base URL must be absolute: %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// ListGames calls GET /games.
func (c *Client) ListGames(ctx context.Context, opts ...RequestOption) ([]Game, error) {
	var out envelope[[]Game]
	if err := c.do(ctx, http.MethodGet, "/games", nil, &out, opts...); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetGame calls GET /games/{id}.
func (c *Client) GetGame(ctx context.Context, id string, opts ...RequestOption) (*Game, error) {
	path, err := resourcePath("/games", id)
	if err != nil {
		return nil, err
	}
	var out envelope[Game]
	if err := c.do(ctx, http.MethodGet, path, nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateGame calls POST /games.
func (c *Client) CreateGame(ctx context.Context, game Game, opts ...RequestOption) (*Game, error) {
	var out envelope[Game]
	if err := c.do(ctx, http.MethodPost, "/games", game, &out, opts...); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateGame calls PUT /games/{id}.
func (c *Client) UpdateGame(ctx context.Context, id string, game Game, opts ...RequestOption) (*Game, error) {
	path, err := resourcePath("/games", id)
	if err != nil {
		return nil, err
	}
	var out envelope[Game]
	if err := c.do(ctx, http.MethodPut, path, game, &out, opts...); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteGame calls DELETE /games/{id}.
func (c *Client) DeleteGame(ctx context.Context, id string, opts ...RequestOption) error {
	path, err := resourcePath("/games", id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, opts...)
}

// Login calls POST /auth/login.
func (c *Client) Login(ctx context.Context, creds Credentials, opts ...RequestOption) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register calls POST /auth/register.
func (c *Client) Register(ctx context.Context, reg Registration, opts ...RequestOption) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", reg, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile calls PUT /auth/profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate, opts ...RequestOption) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPut, "/auth/profile", update, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers calls GET /users.
func (c *Client) ListUsers(ctx context.Context, opts ...RequestOption) ([]User, error) {
	var out envelope[[]User]
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out, opts...); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateOrder calls POST /orders.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest, opts ...RequestOption) (*Order, error) {
	var out envelope[Order]
	if err := c.do(ctx, http.MethodPost, "/orders", req, &out, opts...); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// MyOrders calls GET /orders/myorders.
func (c *Client) MyOrders(ctx context.Context, opts ...RequestOption) ([]Order, error) {
	var out envelope[[]Order]
	if err := c.do(ctx, http.MethodGet, "/orders/myorders", nil, &out, opts...); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetOrder calls GET /orders/{id}.
func (c *Client) GetOrder(ctx context.Context, id string, opts ...RequestOption) (*Order, error) {
	path, err := resourcePath("/orders", id)
	if err != nil {
		return nil, err
	}
	var out envelope[Order]
	if err := c.do(ctx, http.MethodGet, path, nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// AllOrders calls GET /orders/admin/all.
func (c *Client) AllOrders(ctx context.Context, opts ...RequestOption) ([]Order, error) {
	var out envelope[[]Order]
	if err := c.do(ctx, http.MethodGet, "/orders/admin/all", nil, &out, opts...); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// UpdateOrderStatus calls PUT /orders/{id}/status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string, opts ...RequestOption) error {
	path, err := resourcePath("/orders", id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path+"/status", UpdateOrderStatusRequest{Status: status}, nil, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, optFns ...RequestOption) error {
	if c == nil || c.httpClient == nil || c.baseURL == nil {
		return errors.New("shop client not configured")
	}
	var opts requestOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	if opts.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.idempotencyKey)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call shop API %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func resourcePath(collection, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("resource id is required")
	}
	segment, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", fmt.Errorf("encode path parameter: %w", err)
	}
	return collection + "/" + segment, nil
}
