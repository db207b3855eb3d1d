// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactops/notetaker-service/internal/domain/mocks"
	"github.com/impactops/notetaker-service/internal/domain/models"
)

func setupWebhookService() (*WebhookService, *mocks.MockWebhookEventRepository, *mocks.MockWebhookEventSender) {
	eventRepo := mocks.NewMockWebhookEventRepository()
	sender := &mocks.MockWebhookEventSender{}
	return NewWebhookService(eventRepo, sender), eventRepo, sender
}

func TestReceiveEventPersistsBeforePublishing(t *testing.T) {
	svc, eventRepo, sender := setupWebhookService()
	ctx := context.Background()

	payload := map[string]any{"id": "nt-1", "state": "attending"}
	err := svc.ReceiveEvent(ctx, "evt-1", "notetaker.updated", payload)
	require.NoError(t, err)

	stored, err := eventRepo.GetWebhookEvent(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, "notetaker.updated", stored.EventType)
	assert.Equal(t, "nt-1", stored.NotetakerID)
	assert.False(t, stored.Processed)

	published := sender.Published()
	require.Len(t, published, 1)
	assert.Equal(t, models.NotetakerWebhookUpdatedSubject, published[0].Subject)
	assert.Equal(t, "evt-1", published[0].Message.EventID)
}

func TestReceiveEventDuplicateDeliveryIsNoOp(t *testing.T) {
	svc, eventRepo, sender := setupWebhookService()
	ctx := context.Background()

	payload := map[string]any{"id": "nt-1"}
	require.NoError(t, svc.ReceiveEvent(ctx, "evt-1", "notetaker.updated", payload))
	require.NoError(t, svc.ReceiveEvent(ctx, "evt-1", "notetaker.updated", payload))

	events, err := eventRepo.ListAllWebhookEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// The duplicate must not be re-dispatched.
	assert.Len(t, sender.Published(), 1)
}

func TestReceiveEventUnknownTypeStoredNotDispatched(t *testing.T) {
	svc, eventRepo, sender := setupWebhookService()
	ctx := context.Background()

	err := svc.ReceiveEvent(ctx, "evt-9", "notetaker.future_thing", map[string]any{"id": "nt-1"})
	require.NoError(t, err)

	stored, err := eventRepo.GetWebhookEvent(ctx, "evt-9")
	require.NoError(t, err)
	assert.True(t, stored.Processed)
	assert.Empty(t, sender.Published())
}

func TestReceiveEventPublishFailureRecordedOnRow(t *testing.T) {
	svc, eventRepo, sender := setupWebhookService()
	sender.PublishWebhookEventFunc = func(ctx context.Context, subject string, message models.WebhookEventMessage) error {
		return errors.New("nats unavailable")
	}
	ctx := context.Background()

	err := svc.ReceiveEvent(ctx, "evt-2", "notetaker.media", map[string]any{"id": "nt-1"})
	require.Error(t, err)

	stored, getErr := eventRepo.GetWebhookEvent(ctx, "evt-2")
	require.NoError(t, getErr)
	assert.False(t, stored.Processed)
	assert.Contains(t, stored.ErrorMessage, "nats unavailable")
	assert.Equal(t, 1, stored.RetryCount)
}

func TestFinalizeEventSuccessMarksProcessed(t *testing.T) {
	svc, eventRepo, _ := setupWebhookService()
	ctx := context.Background()

	require.NoError(t, svc.ReceiveEvent(ctx, "evt-3", "notetaker.created", map[string]any{"id": "nt-1"}))

	svc.FinalizeEvent(ctx, "evt-3", nil)

	stored, err := eventRepo.GetWebhookEvent(ctx, "evt-3")
	require.NoError(t, err)
	assert.True(t, stored.Processed)
	assert.NotNil(t, stored.ProcessedAt)
	assert.Empty(t, stored.ErrorMessage)
}

func TestFinalizeEventFailureRecordedWithoutPropagating(t *testing.T) {
	svc, eventRepo, _ := setupWebhookService()
	ctx := context.Background()

	require.NoError(t, svc.ReceiveEvent(ctx, "evt-4", "notetaker.media", map[string]any{"id": "nt-1"}))

	svc.FinalizeEvent(ctx, "evt-4", errors.New("download failed"))

	stored, err := eventRepo.GetWebhookEvent(ctx, "evt-4")
	require.NoError(t, err)
	assert.False(t, stored.Processed)
	assert.Equal(t, "download failed", stored.ErrorMessage)
	assert.Equal(t, 1, stored.RetryCount)
}

func TestReceiveEventServiceNotReady(t *testing.T) {
	svc := NewWebhookService(nil, nil)

	err := svc.ReceiveEvent(context.Background(), "evt-1", "notetaker.updated", nil)

	assert.Error(t, err)
}
