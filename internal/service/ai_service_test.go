// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/mocks"
)

func newTestAIService(llm *mocks.MockLLMClient) *AIService {
	svc := NewAIService(llm)
	svc.RetryDelay = time.Millisecond
	return svc
}

func TestGenerateSummary(t *testing.T) {
	llm := &mocks.MockLLMClient{
		ChatCompletionFunc: func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
			require.Len(t, req.Messages, 2)
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Equal(t, "transcript text", req.Messages[1].Content)
			return &domain.ChatCompletionResult{Content: "The board discussed fundraising."}, nil
		},
	}
	svc := newTestAIService(llm)

	result := svc.GenerateSummary(context.Background(), "transcript text")

	assert.True(t, result.Success)
	assert.Equal(t, "The board discussed fundraising.", result.Summary)
	assert.Empty(t, result.Error)
}

func TestGenerateSummaryEmptyInputFailsWithoutNetworkCall(t *testing.T) {
	llm := &mocks.MockLLMClient{}
	svc := newTestAIService(llm)

	for _, input := range []string{"", "   ", "\n\t"} {
		result := svc.GenerateSummary(context.Background(), input)
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Error)
	}

	assert.Zero(t, llm.CallCount(), "empty input must never reach the LLM")
}

func TestGenerateSummaryEmptyResponseIsHardFailure(t *testing.T) {
	llm := &mocks.MockLLMClient{
		ChatCompletionFunc: func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
			return &domain.ChatCompletionResult{Content: "   "}, nil
		},
	}
	svc := newTestAIService(llm)

	result := svc.GenerateSummary(context.Background(), "transcript text")

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "empty")
	// Empty content is a retryable failure, so all attempts are consumed.
	assert.Equal(t, 3, llm.CallCount())
}

func TestRetryExclusionForNonRetryableErrors(t *testing.T) {
	llm := &mocks.MockLLMClient{
		ChatCompletionFunc: func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
			return nil, domain.NewUnauthorizedError("invalid api key")
		},
	}
	svc := newTestAIService(llm)

	result := svc.GenerateSummary(context.Background(), "transcript text")

	assert.False(t, result.Success)
	assert.Equal(t, 1, llm.CallCount(), "non-retryable errors are attempted exactly once")
}

func TestRetryExhaustionForGenericErrors(t *testing.T) {
	llm := &mocks.MockLLMClient{
		ChatCompletionFunc: func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
			return nil, domain.NewUnavailableError("upstream timeout")
		},
	}
	svc := newTestAIService(llm)

	result := svc.GenerateSummary(context.Background(), "transcript text")

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "upstream timeout")
	assert.Equal(t, 3, llm.CallCount(), "generic errors are retried up to the attempt limit")
}

func TestRetrySucceedsOnLaterAttempt(t *testing.T) {
	attempts := 0
	llm := &mocks.MockLLMClient{
		ChatCompletionFunc: func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
			attempts++
			if attempts < 2 {
				return nil, domain.NewRateLimitedError("slow down")
			}
			return &domain.ChatCompletionResult{Content: "recovered"}, nil
		},
	}
	svc := newTestAIService(llm)

	result := svc.GenerateSummary(context.Background(), "transcript text")

	assert.True(t, result.Success)
	assert.Equal(t, "recovered", result.Summary)
	assert.Equal(t, 2, attempts)
}

func TestExtractActionItems(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected []string
	}{
		{
			name:     "json array",
			response: `["Do X by Friday", "Call Y"]`,
			expected: []string{"Do X by Friday", "Call Y"},
		},
		{
			name:     "dash bulleted list",
			response: "- Do X by Friday\n- Call Y\n",
			expected: []string{"Do X by Friday", "Call Y"},
		},
		{
			name:     "numbered list with quotes",
			response: "1. \"Do X by Friday\"\n2) 'Call Y now'\n",
			expected: []string{"Do X by Friday", "Call Y now"},
		},
		{
			name:     "sentinel yields empty list",
			response: "No action items found",
			expected: []string{},
		},
		{
			name:     "sentinel embedded in sentence",
			response: "There were no action items in this meeting.",
			expected: []string{},
		},
		{
			name:     "malformed json falls back to line split",
			response: "[\"Do X by Friday\"\nCall Y about the budget",
			expected: []string{`["Do X by Friday`, "Call Y about the budget"},
		},
		{
			name:     "short noise lines filtered",
			response: "- ok\n- Do X by Friday\n- --\n",
			expected: []string{"Do X by Friday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &mocks.MockLLMClient{
				ChatCompletionFunc: func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
					return &domain.ChatCompletionResult{Content: tt.response}, nil
				},
			}
			svc := newTestAIService(llm)

			result := svc.ExtractActionItems(context.Background(), "transcript text")

			require.True(t, result.Success)
			assert.Equal(t, tt.expected, result.ActionItems)
		})
	}
}

func TestExtractActionItemsCapsResult(t *testing.T) {
	lines := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		lines = append(lines, "- Follow up on budget line item")
	}
	llm := &mocks.MockLLMClient{
		ChatCompletionFunc: func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
			return &domain.ChatCompletionResult{Content: strings.Join(lines, "\n")}, nil
		},
	}
	svc := newTestAIService(llm)

	result := svc.ExtractActionItems(context.Background(), "transcript text")

	require.True(t, result.Success)
	assert.Len(t, result.ActionItems, maxActionItems)
}
