// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

// Package handlers routes NATS messages to the domain services.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/models"
	"github.com/impactops/notetaker-service/internal/logging"
	"github.com/impactops/notetaker-service/internal/metrics"
	"github.com/impactops/notetaker-service/internal/service"
)

// WebhookEventHandler consumes persisted webhook events from NATS and
// dispatches them by subject. Handler outcomes are written back to the
// stored event row; failures never propagate past the consumer.
type WebhookEventHandler struct {
	webhookService   *service.WebhookService
	sessionService   *service.SessionService
	ingestionService *service.IngestionService
}

// NewWebhookEventHandler creates a new webhook event handler instance.
func NewWebhookEventHandler(
	webhookService *service.WebhookService,
	sessionService *service.SessionService,
	ingestionService *service.IngestionService,
) *WebhookEventHandler {
	return &WebhookEventHandler{
		webhookService:   webhookService,
		sessionService:   sessionService,
		ingestionService: ingestionService,
	}
}

var _ domain.MessageHandler = (*WebhookEventHandler)(nil)

func (h *WebhookEventHandler) HandlerReady() bool {
	return h.webhookService.ServiceReady() &&
		h.sessionService.ServiceReady() &&
		h.ingestionService.ServiceReady()
}

// HandleMessage implements domain.MessageHandler interface
func (h *WebhookEventHandler) HandleMessage(ctx context.Context, msg domain.Message) {
	subject := msg.Subject()
	ctx = logging.AppendCtx(ctx, slog.String("subject", subject))
	slog.DebugContext(ctx, "handling webhook NATS message")

	handlers := map[string]func(ctx context.Context, message *models.WebhookEventMessage) error{
		models.NotetakerWebhookCreatedSubject:      h.handleCreated,
		models.NotetakerWebhookUpdatedSubject:      h.handleUpdated,
		models.NotetakerWebhookMeetingStateSubject: h.handleMeetingState,
		models.NotetakerWebhookDeletedSubject:      h.handleDeleted,
		models.NotetakerWebhookMediaSubject:        h.handleMedia,
	}

	handler, ok := handlers[subject]
	if !ok {
		slog.WarnContext(ctx, "unknown webhook message subject")
		return
	}

	var message models.WebhookEventMessage
	if err := json.Unmarshal(msg.Data(), &message); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling webhook event message", logging.ErrKey, err)
		return
	}
	ctx = logging.AppendCtx(ctx, slog.String("event_id", message.EventID))

	err := handler(ctx, &message)
	h.webhookService.FinalizeEvent(ctx, message.EventID, err)
	if err != nil {
		metrics.WebhookDispatchFailuresTotal.WithLabelValues(subject).Inc()
		slog.ErrorContext(ctx, "error handling webhook event", logging.ErrKey, err)
		return
	}
	slog.DebugContext(ctx, "webhook event handled successfully")
}

func (h *WebhookEventHandler) handleCreated(ctx context.Context, message *models.WebhookEventMessage) error {
	payload, err := message.ToStatePayload()
	if err != nil {
		return err
	}
	return h.sessionService.HandleNotetakerCreated(ctx, payload)
}

func (h *WebhookEventHandler) handleUpdated(ctx context.Context, message *models.WebhookEventMessage) error {
	payload, err := message.ToStatePayload()
	if err != nil {
		return err
	}
	return h.sessionService.HandleNotetakerUpdated(ctx, payload)
}

func (h *WebhookEventHandler) handleMeetingState(ctx context.Context, message *models.WebhookEventMessage) error {
	payload, err := message.ToStatePayload()
	if err != nil {
		return err
	}
	return h.sessionService.HandleNotetakerMeetingState(ctx, payload)
}

func (h *WebhookEventHandler) handleDeleted(ctx context.Context, message *models.WebhookEventMessage) error {
	payload, err := message.ToStatePayload()
	if err != nil {
		return err
	}
	return h.sessionService.HandleNotetakerDeleted(ctx, payload)
}

func (h *WebhookEventHandler) handleMedia(ctx context.Context, message *models.WebhookEventMessage) error {
	payload, err := message.ToMediaPayload()
	if err != nil {
		return err
	}
	return h.ingestionService.HandleMediaEvent(ctx, payload)
}
