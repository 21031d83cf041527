// Package client is a typed HTTP client for the storefront API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/noir-essentials/storefront-backend/internal/modules/cart"
	"github.com/noir-essentials/storefront-backend/internal/modules/catalog"
	"github.com/noir-essentials/storefront-backend/internal/modules/discount"
	"github.com/noir-essentials/storefront-backend/internal/modules/order"
	"github.com/noir-essentials/storefront-backend/internal/modules/payment"
)

// APIError carries the status code and the server's message field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to one storefront API server.
type Client struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSessionID scopes cart and order calls to a session key.
func WithSessionID(id string) Option {
	return func(c *Client) { c.sessionID = id }
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.sessionID != "" {
		req.Header.Set("X-Session-ID", c.sessionID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Message == "" {
			errBody.Message = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: errBody.Message}
	}

	if out == nil {
		return nil
	}
	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "decode response")
}

// ── Products ──────────────────────────────────────────────────────────

func (c *Client) ListProducts(ctx context.Context) ([]*catalog.Product, error) {
	var products []*catalog.Product
	err := c.do(ctx, http.MethodGet, "/products", nil, &products)
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ── Cart ──────────────────────────────────────────────────────────────

func (c *Client) GetCart(ctx context.Context) ([]cart.Item, error) {
	var items []cart.Item
	err := c.do(ctx, http.MethodGet, "/cart", nil, &items)
	return items, err
}

func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) ([]cart.Item, error) {
	if productID == "" {
		return nil, errors.New("product ID is required")
	}
	var items []cart.Item
	req := cart.AddItemRequest{ProductID: productID, Quantity: float64(quantity)}
	err := c.do(ctx, http.MethodPost, "/cart", req, &items)
	return items, err
}

func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) ([]cart.Item, error) {
	if productID == "" {
		return nil, errors.New("product ID is required")
	}
	var items []cart.Item
	req := cart.UpdateItemRequest{Quantity: float64(quantity)}
	err := c.do(ctx, http.MethodPut, "/cart/"+productID, req, &items)
	return items, err
}

func (c *Client) RemoveCartItem(ctx context.Context, productID string) ([]cart.Item, error) {
	if productID == "" {
		return nil, errors.New("product ID is required")
	}
	var items []cart.Item
	err := c.do(ctx, http.MethodDelete, "/cart/"+productID, nil, &items)
	return items, err
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil)
}

// ── Discounts ─────────────────────────────────────────────────────────

func (c *Client) ValidateDiscount(ctx context.Context, code string) (*discount.Code, error) {
	var d discount.Code
	if err := c.do(ctx, http.MethodGet, "/discount/"+code, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ── Orders ────────────────────────────────────────────────────────────

func (c *Client) CreateOrder(ctx context.Context, contactInfo order.ContactInfo, discountCode string, cartItems []cart.Item) (*order.Order, error) {
	req := order.CreateOrderRequest{
		ContactInfo:  &contactInfo,
		DiscountCode: discountCode,
		CartItems:    cartItems,
	}
	var o order.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	var o order.Order
	req := order.UpdateStatusRequest{Status: string(status)}
	if err := c.do(ctx, http.MethodPut, "/orders/"+id+"/status", req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ── Payments ──────────────────────────────────────────────────────────

func (c *Client) GetPaymentAccount(ctx context.Context, orderID string) (*payment.Account, error) {
	var a payment.Account
	if err := c.do(ctx, http.MethodGet, "/payment/account/"+orderID, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ConfirmPayment confirms the transfer for an order. orderData, when
// non-nil, lets the server recreate the order if its ledger lost it.
func (c *Client) ConfirmPayment(ctx context.Context, orderID string, orderData *order.Order) (*order.Order, error) {
	req := struct {
		OrderData *order.Order `json:"orderData,omitempty"`
	}{OrderData: orderData}
	var resp struct {
		Success bool         `json:"success"`
		Order   *order.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/payment/confirm/"+orderID, req, &resp); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

func (c *Client) CancelPayment(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPost, "/payment/cancel/"+orderID, struct{}{}, nil)
}
