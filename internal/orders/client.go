package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harithaceylon/storefront-backend/internal/cart"
	"github.com/harithaceylon/storefront-backend/pkg/config"
	pkgerrors "github.com/harithaceylon/storefront-backend/pkg/errors"
)

const (
	defaultTimeout              = 10 * time.Second
	responseBodyReadLimit int64 = 1024
)

// OrderRequest is the checkout handoff payload submitted to the order
// processing service: the cart's line items plus the derived totals.
type OrderRequest struct {
	SessionID            uuid.UUID       `json:"session_id"`
	Items                []cart.LineItem `json:"items"`
	TotalPrice           decimal.Decimal `json:"total_price"`
	TotalCarbonFootprint decimal.Decimal `json:"total_carbon_footprint"`
}

// Receipt is the order service's acknowledgement of a submission.
type Receipt struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// Client submits checkout payloads to the order processing service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds an order service client from configuration.
func NewClient(cfg config.OrdersConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("orders base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// SubmitOrder posts the checkout payload and returns the receipt.
func (c *Client) SubmitOrder(ctx context.Context, req OrderRequest) (*Receipt, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders client not configured")
	}
	if req.SessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal order request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build order request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute order request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "order submission failed")
	}

	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order response")
	}
	if receipt.OrderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order response missing order id")
	}
	return &receipt, nil
}
