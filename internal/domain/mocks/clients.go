// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"
	"sync"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/models"
)

// MockNotetakerProvider is a mock of the vendor meeting-bot API client.
type MockNotetakerProvider struct {
	InviteNotetakerFunc  func(ctx context.Context, meetingLink, name string, settings models.MeetingSettings) (string, string, error)
	CancelNotetakerFunc  func(ctx context.Context, notetakerID string) error
	LeaveMeetingFunc     func(ctx context.Context, notetakerID string) error
	GetNotetakerFunc     func(ctx context.Context, notetakerID string) (*models.NotetakerStatePayload, error)
	DownloadArtifactFunc func(ctx context.Context, url string) (string, error)
}

var _ domain.NotetakerProvider = (*MockNotetakerProvider)(nil)

func (m *MockNotetakerProvider) InviteNotetaker(ctx context.Context, meetingLink, name string, settings models.MeetingSettings) (string, string, error) {
	if m.InviteNotetakerFunc != nil {
		return m.InviteNotetakerFunc(ctx, meetingLink, name, settings)
	}
	return "mock-notetaker-id", "scheduled", nil
}

func (m *MockNotetakerProvider) CancelNotetaker(ctx context.Context, notetakerID string) error {
	if m.CancelNotetakerFunc != nil {
		return m.CancelNotetakerFunc(ctx, notetakerID)
	}
	return nil
}

func (m *MockNotetakerProvider) LeaveMeeting(ctx context.Context, notetakerID string) error {
	if m.LeaveMeetingFunc != nil {
		return m.LeaveMeetingFunc(ctx, notetakerID)
	}
	return nil
}

func (m *MockNotetakerProvider) GetNotetaker(ctx context.Context, notetakerID string) (*models.NotetakerStatePayload, error) {
	if m.GetNotetakerFunc != nil {
		return m.GetNotetakerFunc(ctx, notetakerID)
	}
	return &models.NotetakerStatePayload{ID: notetakerID, State: "scheduled"}, nil
}

func (m *MockNotetakerProvider) DownloadArtifact(ctx context.Context, url string) (string, error) {
	if m.DownloadArtifactFunc != nil {
		return m.DownloadArtifactFunc(ctx, url)
	}
	return "mock artifact content", nil
}

// MockLLMClient is a mock of the chat-completion client.
type MockLLMClient struct {
	ChatCompletionFunc func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error)

	mu    sync.Mutex
	calls []domain.ChatCompletionRequest
}

var _ domain.LLMClient = (*MockLLMClient)(nil)

func (m *MockLLMClient) ChatCompletion(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	if m.ChatCompletionFunc != nil {
		return m.ChatCompletionFunc(ctx, req)
	}
	return &domain.ChatCompletionResult{Content: "mock completion", TotalTokens: 10}, nil
}

// Calls returns the requests recorded so far.
func (m *MockLLMClient) Calls() []domain.ChatCompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ChatCompletionRequest(nil), m.calls...)
}

// CallCount returns how many completion requests have been made.
func (m *MockLLMClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// MockWebhookEventSender is a mock of the NATS webhook event publisher.
type MockWebhookEventSender struct {
	PublishWebhookEventFunc func(ctx context.Context, subject string, message models.WebhookEventMessage) error

	mu        sync.Mutex
	published []PublishedEvent
}

// PublishedEvent records one publish call for assertions.
type PublishedEvent struct {
	Subject string
	Message models.WebhookEventMessage
}

var _ domain.WebhookEventSender = (*MockWebhookEventSender)(nil)

func (m *MockWebhookEventSender) PublishWebhookEvent(ctx context.Context, subject string, message models.WebhookEventMessage) error {
	m.mu.Lock()
	m.published = append(m.published, PublishedEvent{Subject: subject, Message: message})
	m.mu.Unlock()
	if m.PublishWebhookEventFunc != nil {
		return m.PublishWebhookEventFunc(ctx, subject, message)
	}
	return nil
}

// Published returns the publish calls recorded so far.
func (m *MockWebhookEventSender) Published() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishedEvent(nil), m.published...)
}

// MockNotifier records emitted notifications.
type MockNotifier struct {
	EmitFunc func(kind string, data any)

	mu      sync.Mutex
	emitted []EmittedNotification
}

// EmittedNotification records one Emit call for assertions.
type EmittedNotification struct {
	Kind string
	Data any
}

var _ domain.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Emit(kind string, data any) {
	m.mu.Lock()
	m.emitted = append(m.emitted, EmittedNotification{Kind: kind, Data: data})
	m.mu.Unlock()
	if m.EmitFunc != nil {
		m.EmitFunc(kind, data)
	}
}

// Emitted returns the notifications recorded so far.
func (m *MockNotifier) Emitted() []EmittedNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]EmittedNotification(nil), m.emitted...)
}
