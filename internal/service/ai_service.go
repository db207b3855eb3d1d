// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/logging"
	"github.com/impactops/notetaker-service/internal/metrics"
)

const (
	// summarySystemPrompt asks for free-text prose. The word target is a
	// hint to the model, not enforced on the response.
	summarySystemPrompt = "You are a meeting assistant for a nonprofit operations team. " +
		"Write a clear summary of the meeting transcript in 200-400 words of prose. " +
		"Cover decisions made, topics discussed and open questions. Do not use headings or bullet points."

	// actionItemsSystemPrompt pins the output to a JSON array or a dashed
	// list, with a sentinel for the empty case.
	actionItemsSystemPrompt = "You are a meeting assistant for a nonprofit operations team. " +
		"Extract action items from the meeting transcript. " +
		"Respond with a JSON array of strings, or a dash-bulleted list with one item per line. " +
		"Where possible format each item as \"Task (Assignee - Due date)\". " +
		"If there are none, respond with exactly: No action items found."

	// noActionItemsSentinel marks an explicitly empty extraction.
	noActionItemsSentinel = "no action items"

	// largeInputThreshold is the input size above which a warning is logged.
	// Large inputs still proceed; the vendor enforces its own token limits.
	largeInputThreshold = 100_000

	// minActionItemLength filters parse noise such as stray punctuation.
	minActionItemLength = 5

	// maxActionItems caps the extracted list.
	maxActionItems = 20

	defaultMaxAttempts = 3
	defaultRetryDelay  = 2 * time.Second
)

// SummaryResult is the terminal outcome of a summary generation. Failures
// are degraded to Success=false rather than surfaced as errors.
type SummaryResult struct {
	Summary string `json:"summary,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ActionItemsResult is the terminal outcome of an action-item extraction.
type ActionItemsResult struct {
	ActionItems []string `json:"action_items"`
	Success     bool     `json:"success"`
	Error       string   `json:"error,omitempty"`
}

// AIService wraps LLM calls with input validation, output validation and a
// bounded retry loop. Every failure mode degrades to a tagged result; the
// service never returns an error to its caller.
type AIService struct {
	LLMClient domain.LLMClient

	// MaxAttempts and RetryDelay define the linear backoff retry policy:
	// attempt n sleeps RetryDelay*n before retrying.
	MaxAttempts int
	RetryDelay  time.Duration
}

// NewAIService creates a new AIService with the default retry policy.
func NewAIService(llmClient domain.LLMClient) *AIService {
	return &AIService{
		LLMClient:   llmClient,
		MaxAttempts: defaultMaxAttempts,
		RetryDelay:  defaultRetryDelay,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *AIService) ServiceReady() bool {
	return s.LLMClient != nil
}

// GenerateSummary produces a prose summary of the transcript text.
func (s *AIService) GenerateSummary(ctx context.Context, text string) SummaryResult {
	return s.GenerateWithPrompt(ctx, summarySystemPrompt, text)
}

// GenerateWithPrompt runs an arbitrary system prompt over the input under
// the same validation and retry policy as the fixed operations.
func (s *AIService) GenerateWithPrompt(ctx context.Context, systemPrompt, text string) SummaryResult {
	content, err := s.completeWithRetry(ctx, systemPrompt, text)
	if err != nil {
		return SummaryResult{Success: false, Error: err.Error()}
	}
	return SummaryResult{Summary: content, Success: true}
}

// ExtractActionItems produces the list of action items found in the
// transcript text. An empty list with Success=true means the model found
// none.
func (s *AIService) ExtractActionItems(ctx context.Context, text string) ActionItemsResult {
	content, err := s.completeWithRetry(ctx, actionItemsSystemPrompt, text)
	if err != nil {
		return ActionItemsResult{Success: false, Error: err.Error()}
	}
	return ActionItemsResult{ActionItems: parseActionItemsResponse(content), Success: true}
}

// completeWithRetry runs the validate+call+validate sequence under the
// bounded retry loop. Non-retryable failures such as empty input or a
// rejected API key are attempted exactly once.
func (s *AIService) completeWithRetry(ctx context.Context, systemPrompt, text string) (string, error) {
	if !s.ServiceReady() {
		return "", domain.NewUnavailableError("ai service not initialized")
	}

	if strings.TrimSpace(text) == "" {
		return "", domain.NewValidationError("input text is empty")
	}
	if len(text) > largeInputThreshold {
		slog.WarnContext(ctx, "input text exceeds large-size threshold, proceeding",
			"length", len(text))
	}

	maxAttempts := s.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		start := time.Now()
		result, err := s.LLMClient.ChatCompletion(ctx, domain.ChatCompletionRequest{
			Messages: []domain.ChatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: text},
			},
		})
		metrics.CompletionRequestDuration.Observe(time.Since(start).Seconds())
		if err == nil && strings.TrimSpace(result.Content) == "" {
			err = domain.NewInternalError("completion response content is empty")
		}
		if err == nil {
			metrics.CompletionRequestsTotal.WithLabelValues("success").Inc()
			return result.Content, nil
		}
		metrics.CompletionRequestsTotal.WithLabelValues("failure").Inc()

		lastErr = err
		if !domain.IsRetryable(err) {
			slog.WarnContext(ctx, "completion failed with non-retryable error", logging.ErrKey, err,
				"attempt", attempt)
			return "", err
		}

		slog.WarnContext(ctx, "completion attempt failed", logging.ErrKey, err,
			"attempt", attempt, "max_attempts", maxAttempts)

		if attempt < maxAttempts {
			select {
			case <-time.After(s.RetryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return "", domain.NewInternalError("completion cancelled", ctx.Err())
			}
		}
	}

	return "", lastErr
}

// bulletPrefixPattern strips leading bullets, dashes and "1." style numbers.
var bulletPrefixPattern = regexp.MustCompile(`^\s*(?:[-*•]+|\d+[.)])\s*`)

// parseActionItemsResponse turns raw model output into a clean item list.
// Parse failures degrade to looser line-splitting rather than failing the
// extraction.
func parseActionItemsResponse(content string) []string {
	trimmed := strings.TrimSpace(content)

	if strings.Contains(strings.ToLower(trimmed), noActionItemsSentinel) {
		return []string{}
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal([]byte(trimmed), &items); err == nil {
			return capActionItems(cleanActionItems(items))
		}
	}

	return capActionItems(cleanActionItems(strings.Split(trimmed, "\n")))
}

// cleanActionItems strips bullet prefixes and surrounding quotes and drops
// lines too short to be meaningful items.
func cleanActionItems(lines []string) []string {
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		line = bulletPrefixPattern.ReplaceAllString(line, "")
		line = strings.Trim(strings.TrimSpace(line), `"'`)
		if len(line) < minActionItemLength {
			continue
		}
		if strings.Contains(strings.ToLower(line), noActionItemsSentinel) {
			continue
		}
		items = append(items, line)
	}
	return items
}

func capActionItems(items []string) []string {
	if len(items) > maxActionItems {
		return items[:maxActionItems]
	}
	return items
}
