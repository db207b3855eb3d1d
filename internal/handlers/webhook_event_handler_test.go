// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactops/notetaker-service/internal/domain/mocks"
	"github.com/impactops/notetaker-service/internal/domain/models"
	"github.com/impactops/notetaker-service/internal/service"
)

type mockMessage struct {
	subject string
	data    []byte
}

func (m *mockMessage) Subject() string          { return m.subject }
func (m *mockMessage) Data() []byte             { return m.data }
func (m *mockMessage) Respond(data []byte) error { return nil }
func (m *mockMessage) HasReply() bool           { return false }

type handlerFixture struct {
	handler        *WebhookEventHandler
	eventRepo      *mocks.MockWebhookEventRepository
	sessionRepo    *mocks.MockSessionRepository
	transcriptRepo *mocks.MockTranscriptRepository
	provider       *mocks.MockNotetakerProvider
}

func setupHandler(t *testing.T) *handlerFixture {
	t.Helper()

	eventRepo := mocks.NewMockWebhookEventRepository()
	sessionRepo := mocks.NewMockSessionRepository()
	transcriptRepo := mocks.NewMockTranscriptRepository()
	provider := &mocks.MockNotetakerProvider{}
	notifier := &mocks.MockNotifier{}

	webhookService := service.NewWebhookService(eventRepo, &mocks.MockWebhookEventSender{})
	sessionService := service.NewSessionService(sessionRepo, transcriptRepo, provider, notifier)
	ingestionService := service.NewIngestionService(sessionRepo, transcriptRepo, provider, notifier)

	return &handlerFixture{
		handler:        NewWebhookEventHandler(webhookService, sessionService, ingestionService),
		eventRepo:      eventRepo,
		sessionRepo:    sessionRepo,
		transcriptRepo: transcriptRepo,
		provider:       provider,
	}
}

func (f *handlerFixture) storeEvent(t *testing.T, eventID, eventType string, payload map[string]any) *mockMessage {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.eventRepo.CreateIfAbsent(ctx, &models.WebhookEvent{
		EventID:    eventID,
		EventType:  eventType,
		Payload:    payload,
		ReceivedAt: time.Now().UTC(),
	}))

	data, err := json.Marshal(models.WebhookEventMessage{
		EventID:   eventID,
		EventType: eventType,
		Payload:   payload,
	})
	require.NoError(t, err)

	return &mockMessage{subject: models.WebhookEventSubject(eventType), data: data}
}

func TestHandleMessageMeetingState(t *testing.T) {
	f := setupHandler(t)
	ctx := context.Background()

	require.NoError(t, f.sessionRepo.CreateSession(ctx, &models.NotetakerSession{
		UID: "sess-1", NotetakerID: "nt-1", State: models.SessionStateScheduled,
	}))

	msg := f.storeEvent(t, "evt-1", "notetaker.meeting_state", map[string]any{
		"id":            "nt-1",
		"state":         "attending",
		"meeting_state": "recording_active",
	})

	f.handler.HandleMessage(ctx, msg)

	session, err := f.sessionRepo.GetSession(ctx, "nt-1")
	require.NoError(t, err)
	assert.Equal(t, models.SessionStateAttending, session.State)

	event, err := f.eventRepo.GetWebhookEvent(ctx, "evt-1")
	require.NoError(t, err)
	assert.True(t, event.Processed)
}

func TestHandleMessageMediaIngestion(t *testing.T) {
	f := setupHandler(t)
	ctx := context.Background()

	require.NoError(t, f.sessionRepo.CreateSession(ctx, &models.NotetakerSession{
		UID: "sess-1", NotetakerID: "nt-1", State: models.SessionStateCompleted,
	}))
	f.provider.DownloadArtifactFunc = func(ctx context.Context, url string) (string, error) {
		return "transcript body", nil
	}

	msg := f.storeEvent(t, "evt-2", "notetaker.media", map[string]any{
		"id":         "nt-1",
		"media_type": "transcript",
		"media_url":  "https://cdn.vendor.dev/t/1",
	})

	f.handler.HandleMessage(ctx, msg)

	transcript, err := f.transcriptRepo.GetTranscript(ctx, "nt-1")
	require.NoError(t, err)
	assert.Equal(t, "transcript body", transcript.TranscriptText)
	assert.Equal(t, models.TranscriptStatusCompleted, transcript.Status)

	event, err := f.eventRepo.GetWebhookEvent(ctx, "evt-2")
	require.NoError(t, err)
	assert.True(t, event.Processed)
}

func TestHandleMessageFailureRecordedOnEvent(t *testing.T) {
	f := setupHandler(t)
	ctx := context.Background()

	// No session exists, so media ingestion aborts.
	msg := f.storeEvent(t, "evt-3", "notetaker.media", map[string]any{
		"id":         "nt-ghost",
		"media_type": "transcript",
		"media_url":  "https://cdn.vendor.dev/t/1",
	})

	f.handler.HandleMessage(ctx, msg)

	event, err := f.eventRepo.GetWebhookEvent(ctx, "evt-3")
	require.NoError(t, err)
	assert.False(t, event.Processed)
	assert.NotEmpty(t, event.ErrorMessage)
	assert.Equal(t, 1, event.RetryCount)
}

func TestHandleMessageUnknownSubjectIgnored(t *testing.T) {
	f := setupHandler(t)

	f.handler.HandleMessage(context.Background(), &mockMessage{
		subject: "impactops.webhook.notetaker.unknown",
		data:    []byte(`{}`),
	})
}

func TestHandlerReady(t *testing.T) {
	f := setupHandler(t)

	assert.True(t, f.handler.HandlerReady())
}
