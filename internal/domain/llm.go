// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
)

// ChatMessage is one message in an LLM chat-completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is a single LLM chat-completion call.
type ChatCompletionRequest struct {
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
}

// ChatCompletionResult is the subset of the LLM response the service uses.
type ChatCompletionResult struct {
	Content     string
	TotalTokens int
}

// LLMClient defines the interface to the LLM vendor's chat-completion API.
type LLMClient interface {
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResult, error)
}

// Notifier fans out state changes to connected dashboard clients.
type Notifier interface {
	Emit(kind string, data any)
}
