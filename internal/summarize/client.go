// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Backend abstracts the model API so tests can supply a mock. Each
// implementation handles one single-turn prompt against the named model and
// returns the full text reply.
type Backend interface {
	Complete(ctx context.Context, prompt, model string) (string, error)
}

// RateLimitError marks a transient refusal due to request throttling. The
// query loop retries these with backoff; every other error propagates
// unchanged.
type RateLimitError struct {
	StatusCode int
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (status %d): %s", e.StatusCode, e.Message)
}

// claudeAPIURL is the Anthropic Messages API endpoint. Package-level var for
// test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend calls the Anthropic Messages API for summarization.
type ClaudeBackend struct {
	APIKey string
	Client *http.Client
}

// claudeRequest is the request body for the Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
	Error   *claudeAPIError `json:"error"`
}

// claudeContent is a content block in the response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// claudeAPIError is the error object returned on non-2xx responses.
type claudeAPIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Complete issues one single-turn request and concatenates all text content
// blocks into a single trimmed string. HTTP 429 and 529 surface as
// *RateLimitError; any other failure is permanent for this call.
func (c *ClaudeBackend) Complete(ctx context.Context, prompt, model string) (string, error) {
	reqBody := claudeRequest{
		Model:     model,
		MaxTokens: 4096,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling model API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	// 529 is the API's "overloaded" status; treat it like throttling.
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == 529 {
		return "", &RateLimitError{StatusCode: resp.StatusCode, Message: truncate(string(respBody), 200)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model API returned %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var cResp claudeResponse
	if err := json.Unmarshal(respBody, &cResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if cResp.Error != nil {
		return "", fmt.Errorf("model API error: %s: %s", cResp.Error.Type, cResp.Error.Message)
	}
	if len(cResp.Content) == 0 {
		return "", fmt.Errorf("model API returned empty content")
	}

	var b strings.Builder
	for _, block := range cResp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
