// Package agent talks to the external multi-agent qualification service and
// normalizes its replies into canonical lead records.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"leadqual_backend/platform/logger"
)

// Response is the qualification service's reply envelope. Result is kept raw
// because its shape is polymorphic; the normalizer resolves it.
type Response struct {
	Success     bool          `json:"success"`
	Response    *ResponseBody `json:"response,omitempty"`
	RawResponse string        `json:"raw_response,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// ResponseBody is the inner payload of a successful reply.
type ResponseBody struct {
	Result  json.RawMessage `json:"result,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Caller issues a single qualification request. Implementations must be safe
// for concurrent use; the orchestrator calls once per submission.
type Caller interface {
	Call(ctx context.Context, message, agentID, sessionID string) (*Response, error)
}

// Client is the HTTP implementation of Caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	log        *logger.Logger
}

// NewClient creates a qualification service client. The HTTP client carries
// no timeout on purpose: submissions are never retried, and a hung call
// leaves its lead in PROCESSING for the session rather than failing it.
func NewClient(baseURL, apiKey string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
		log:        log,
	}
}

type callRequest struct {
	Message string      `json:"message"`
	AgentID string      `json:"agentId"`
	Options callOptions `json:"options"`
}

type callOptions struct {
	SessionID string `json:"sessionId"`
}

// Call sends one qualification request and decodes the reply envelope.
func (c *Client) Call(ctx context.Context, message, agentID, sessionID string) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("agent call rate limit: %w", err)
	}

	body, err := json.Marshal(callRequest{
		Message: message,
		AgentID: agentID,
		Options: callOptions{SessionID: sessionID},
	})
	if err != nil {
		return nil, fmt.Errorf("encode agent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.AgentCall(agentID, sessionID, false, float64(time.Since(start).Milliseconds()))
		return nil, fmt.Errorf("agent call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.AgentCall(agentID, sessionID, false, float64(time.Since(start).Milliseconds()))
		return nil, fmt.Errorf("agent call: unexpected status %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.AgentCall(agentID, sessionID, false, float64(time.Since(start).Milliseconds()))
		return nil, fmt.Errorf("decode agent response: %w", err)
	}

	c.log.AgentCall(agentID, sessionID, out.Success, float64(time.Since(start).Milliseconds()))
	return &out, nil
}
