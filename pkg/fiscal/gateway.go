package fiscal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Item is one sold position reported to the fiscal service.
type Item struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Receipt is the legal proof of registration returned by the fiscal service.
type Receipt struct {
	FiscalSign     string `json:"fiscal_sign"`
	DocumentNumber string `json:"document_number"`
	DriveNumber    string `json:"drive_number"`
}

// Gateway registers a finalized sale with the external fiscal service.
type Gateway interface {
	// Submit reports the sale and returns the fiscal receipt. A non-nil
	// error means the sale stays unfiscalized; it never blocks the sale.
	Submit(ctx context.Context, items []Item, total int64) (*Receipt, error)
	// IsAvailable returns true if the gateway endpoint is reachable.
	IsAvailable(ctx context.Context) bool
}

// --- HTTP Gateway (POSTs to a fiscal registrar endpoint) ---

type httpGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates a gateway that submits sales to an HTTP endpoint,
// e.g. "http://fiscal.local:7077".
func NewHTTPGateway(baseURL string, timeout time.Duration) Gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type submitRequest struct {
	Items []Item `json:"items"`
	Total int64  `json:"total"`
}

type submitResponse struct {
	Success bool     `json:"success"`
	Receipt *Receipt `json:"receipt,omitempty"`
	Message string   `json:"message,omitempty"`
}

func (g *httpGateway) Submit(ctx context.Context, items []Item, total int64) (*Receipt, error) {
	body, err := json.Marshal(submitRequest{Items: items, Total: total})
	if err != nil {
		return nil, fmt.Errorf("fiscal: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/receipts", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fiscal: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fiscal: failed to reach gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fiscal: gateway returned status %d", resp.StatusCode)
	}

	var result submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("fiscal: failed to decode response: %w", err)
	}

	if !result.Success || result.Receipt == nil {
		return nil, fmt.Errorf("fiscal: registration rejected: %s", result.Message)
	}

	return result.Receipt, nil
}

func (g *httpGateway) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// --- Null Gateway (no-op, used when no fiscal endpoint is configured) ---

type nullGateway struct{}

// NewNullGateway creates a no-op gateway for environments without a fiscal
// registrar. Every submission fails, so sales are recorded unfiscalized.
func NewNullGateway() Gateway {
	return &nullGateway{}
}

func (g *nullGateway) Submit(ctx context.Context, items []Item, total int64) (*Receipt, error) {
	return nil, fmt.Errorf("fiscal: no gateway configured")
}

func (g *nullGateway) IsAvailable(ctx context.Context) bool {
	return false
}

// NewGatewayFromConfig creates the appropriate Gateway for the configured
// endpoint. An empty endpoint yields the null gateway.
func NewGatewayFromConfig(endpoint string, timeout time.Duration) Gateway {
	if endpoint == "" {
		return NewNullGateway()
	}
	return NewHTTPGateway(endpoint, timeout)
}
