// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

// Package llm contains the HTTP client for the chat-completion vendor API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/logging"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"
	// DefaultClientTimeout bounds every completion call.
	DefaultClientTimeout = 30 * time.Second
)

// Config holds the configuration for the LLM client.
type Config struct {
	APIKey string
	// BaseURL points at an OpenAI-compatible chat-completions endpoint.
	BaseURL string
	// Optional: override the model name
	Model string
	// Optional: override timeout for HTTP requests
	Timeout time.Duration
}

// Client calls an OpenAI-compatible chat-completions API.
type Client struct {
	httpClient *http.Client
	config     Config
}

var _ domain.LLMClient = (*Client)(nil)

// NewClient creates a new LLM client.
func NewClient(config Config) *Client {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// completionRequest is the wire form of a chat-completion call.
type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
	Temperature float64              `json:"temperature,omitempty"`
}

// completionResponse is the subset of the vendor response we read.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion sends one chat-completion request and returns the first
// choice's content. Retry policy is owned by the caller.
func (c *Client) ChatCompletion(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
	body := completionRequest{
		Model:       c.config.Model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, domain.NewInternalError("failed to marshal completion request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, domain.NewInternalError("failed to create completion request", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.ErrorContext(ctx, "completion request failed", logging.ErrKey, err)
		return nil, domain.NewUnavailableError("completion request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.ErrorContext(ctx, "completion request returned error status",
			"status", resp.StatusCode, "body", string(respBody))
		return nil, mapStatusError(resp.StatusCode, fmt.Sprintf("completion request returned status %d", resp.StatusCode))
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, domain.NewInternalError("failed to decode completion response", err)
	}
	if len(completion.Choices) == 0 {
		return nil, domain.NewInternalError("completion response contained no choices")
	}

	slog.DebugContext(ctx, "completion request succeeded",
		"model", c.config.Model,
		"total_tokens", completion.Usage.TotalTokens,
		"duration", time.Since(start).String(),
	)

	return &domain.ChatCompletionResult{
		Content:     completion.Choices[0].Message.Content,
		TotalTokens: completion.Usage.TotalTokens,
	}, nil
}

// mapStatusError maps an LLM vendor HTTP status to the domain error taxonomy.
func mapStatusError(statusCode int, message string) error {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return domain.NewUnauthorizedError(message)
	case statusCode == http.StatusTooManyRequests:
		return domain.NewRateLimitedError(message)
	case statusCode >= 400 && statusCode < 500:
		return domain.NewValidationError(message)
	case statusCode >= 500:
		return domain.NewUnavailableError(message)
	default:
		return domain.NewInternalError(message)
	}
}
