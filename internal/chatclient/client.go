// Package chatclient talks to the remote chat endpoint that voices the wizard.
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jwebster45206/wizard-village/pkg/chat"
)

var (
	// ErrBadStatus is returned for any non-2xx reply.
	ErrBadStatus = errors.New("chat endpoint returned an error status")
	// ErrMalformedResponse is returned when the body is not JSON or has no
	// usable response field.
	ErrMalformedResponse = errors.New("malformed chat response")
)

// maxBodyBytes bounds how much of a reply body is read.
const maxBodyBytes = 1 << 20

// Client sends one player message and returns the NPC's reply.
type Client interface {
	Send(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error)
}

// HTTPClient POSTs chat requests as JSON.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a client for endpoint with a per-request timeout.
func NewHTTPClient(endpoint string, timeout time.Duration, logger *slog.Logger) *HTTPClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Send posts req and decodes the reply. Every failure mode (transport, status,
// body) comes back as an error; callers decide how to present it.
func (c *HTTPClient) Send(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Chat endpoint replied",
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d: %s", ErrBadStatus, resp.StatusCode, truncate(string(body), 200))
	}

	var chatResp chat.ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(chatResp.Text()) == "" {
		return nil, fmt.Errorf("%w: missing response field", ErrMalformedResponse)
	}
	return &chatResp, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
