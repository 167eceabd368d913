package cli

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

	service "github.com/okian/dragonbalance/internal/app"
)

// Header names shared with the server.
const (
	requestIDHeader = "X-Request-ID"
	balancePath     = "/api/balance"
)

// HTTPClient posts balance requests to a running server.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// apiError mirrors the server's error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewHTTPClient returns a client for the server at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Compute posts req to /api/balance. It returns the request id it sent so
// failures can be matched with server logs.
func (c *HTTPClient) Compute(ctx context.Context, req service.Request) (service.Outcome, string, error) {
	var out service.Outcome
	id := uuid.NewString()

	body, err := json.Marshal(req)
	if err != nil {
		return out, id, fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+balancePath, bytes.NewReader(body))
	if err != nil {
		return out, id, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(requestIDHeader, id)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return out, id, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	data, err := readResponseBody(resp)
	if err != nil {
		return out, id, fmt.Errorf("%w: read body: %w", ErrRemote, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return out, id, fmt.Errorf("%w: %d %s: %s", ErrRemote, resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return out, id, fmt.Errorf("%w: %s", ErrRemote, resp.Status)
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, id, fmt.Errorf("%w: decode body: %w", ErrRemote, err)
	}
	return out, id, nil
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}
