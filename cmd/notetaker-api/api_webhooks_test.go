// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactops/notetaker-service/internal/domain/mocks"
	"github.com/impactops/notetaker-service/internal/domain/models"
	"github.com/impactops/notetaker-service/internal/infrastructure/notetaker/webhook"
	"github.com/impactops/notetaker-service/internal/middleware"
	"github.com/impactops/notetaker-service/internal/service"
)

const webhookTestSecret = "test-secret"

func signWebhookBody(body, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(body))
	return hex.EncodeToString(h.Sum(nil))
}

// setupWebhookAPI wires the vendor webhook endpoint the way the server
// does, with the body-capture middleware in front of the handler.
func setupWebhookAPI() (http.Handler, *mocks.MockWebhookEventRepository, *mocks.MockWebhookEventSender) {
	repository := mocks.NewMockWebhookEventRepository()
	sender := &mocks.MockWebhookEventSender{}

	api := &NotetakerAPI{
		webhookService:   service.NewWebhookService(repository, sender),
		webhookValidator: webhook.NewValidator(webhookTestSecret),
	}

	handler := middleware.WebhookBodyCaptureMiddleware()(http.HandlerFunc(api.handleVendorWebhook))
	return handler, repository, sender
}

func postWebhook(t *testing.T, handler http.Handler, body, signature string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhooks/notetaker", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(webhook.SignatureHeader, signature)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestVendorWebhookEnvelope(t *testing.T) {
	handler, repository, sender := setupWebhookAPI()

	body := `{"id":"evt-100","type":"notetaker.updated","data":{"object":{"id":"nt-1","state":"attending"}}}`

	recorder := postWebhook(t, handler, body, signWebhookBody(body, webhookTestSecret))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"received":true}`, recorder.Body.String())

	event, err := repository.GetWebhookEvent(context.Background(), "evt-100")
	require.NoError(t, err)
	assert.Equal(t, "evt-100", event.EventID)
	assert.Equal(t, "notetaker.updated", event.EventType)
	assert.Equal(t, "nt-1", event.NotetakerID)
	assert.Equal(t, "attending", event.Payload["state"])

	published := sender.Published()
	require.Len(t, published, 1)
	assert.Equal(t, models.NotetakerWebhookUpdatedSubject, published[0].Subject)
	assert.Equal(t, "evt-100", published[0].Message.EventID)
	assert.Equal(t, "notetaker.updated", published[0].Message.EventType)
	assert.Equal(t, "nt-1", published[0].Message.Payload["id"])
}

func TestVendorWebhookMediaEnvelope(t *testing.T) {
	handler, repository, sender := setupWebhookAPI()

	body := `{"id":"evt-200","type":"notetaker.media","data":{"object":{"id":"nt-2","media":{"transcript":"https://cdn.example.com/t.json"}}}}`

	recorder := postWebhook(t, handler, body, signWebhookBody(body, webhookTestSecret))

	assert.Equal(t, http.StatusOK, recorder.Code)

	event, err := repository.GetWebhookEvent(context.Background(), "evt-200")
	require.NoError(t, err)
	assert.Equal(t, "notetaker.media", event.EventType)
	assert.Equal(t, "nt-2", event.NotetakerID)

	published := sender.Published()
	require.Len(t, published, 1)
	assert.Equal(t, models.NotetakerWebhookMediaSubject, published[0].Subject)

	media, ok := published[0].Message.Payload["media"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/t.json", media["transcript"])
}

func TestVendorWebhookDuplicateDelivery(t *testing.T) {
	handler, _, sender := setupWebhookAPI()

	body := `{"id":"evt-300","type":"notetaker.created","data":{"object":{"id":"nt-3"}}}`
	signature := signWebhookBody(body, webhookTestSecret)

	first := postWebhook(t, handler, body, signature)
	assert.Equal(t, http.StatusOK, first.Code)

	second := postWebhook(t, handler, body, signature)
	assert.Equal(t, http.StatusOK, second.Code)

	// The redelivery is acknowledged but not dispatched again.
	assert.Len(t, sender.Published(), 1)
}

func TestVendorWebhookBadSignature(t *testing.T) {
	handler, repository, sender := setupWebhookAPI()

	body := `{"id":"evt-400","type":"notetaker.updated","data":{"object":{"id":"nt-4"}}}`

	recorder := postWebhook(t, handler, body, signWebhookBody(body, "wrong-secret"))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	_, err := repository.GetWebhookEvent(context.Background(), "evt-400")
	assert.Error(t, err)
	assert.Empty(t, sender.Published())
}

func TestVendorWebhookMissingDeliveryID(t *testing.T) {
	handler, repository, sender := setupWebhookAPI()

	body := `{"type":"notetaker.deleted","data":{"object":{"id":"nt-5"}}}`

	recorder := postWebhook(t, handler, body, signWebhookBody(body, webhookTestSecret))

	assert.Equal(t, http.StatusOK, recorder.Code)

	events, err := repository.ListAllWebhookEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].EventID)
	assert.Equal(t, "notetaker.deleted", events[0].EventType)

	published := sender.Published()
	require.Len(t, published, 1)
	assert.Equal(t, models.NotetakerWebhookDeletedSubject, published[0].Subject)
}
