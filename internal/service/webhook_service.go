// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/models"
	"github.com/impactops/notetaker-service/internal/logging"
)

// WebhookService is the intake side of webhook processing. It persists every
// verified vendor delivery before any side effect, then hands the event to
// the NATS dispatch path. The HTTP layer always acknowledges the vendor with
// a success response regardless of what happens here.
type WebhookService struct {
	WebhookEventRepository domain.WebhookEventRepository
	MessageBuilder         domain.WebhookEventSender
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(
	webhookEventRepository domain.WebhookEventRepository,
	messageBuilder domain.WebhookEventSender,
) *WebhookService {
	return &WebhookService{
		WebhookEventRepository: webhookEventRepository,
		MessageBuilder:         messageBuilder,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *WebhookService) ServiceReady() bool {
	return s.WebhookEventRepository != nil && s.MessageBuilder != nil
}

// ReceiveEvent persists the event row first, then publishes it for async
// dispatch. The returned error reports internal failures for logging only;
// callers must still acknowledge the vendor delivery.
//
// Redelivery of an already-stored event ID is a graceful no-op: the row
// insert conflicts and nothing is re-dispatched.
func (s *WebhookService) ReceiveEvent(ctx context.Context, eventID, eventType string, payload map[string]any) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "webhook service not initialized")
		return domain.NewUnavailableError("webhook service not initialized")
	}

	event := &models.WebhookEvent{
		EventID:     eventID,
		EventType:   eventType,
		NotetakerID: models.NotetakerIDFromPayload(payload),
		Payload:     payload,
		ReceivedAt:  time.Now().UTC(),
	}

	if err := s.WebhookEventRepository.CreateIfAbsent(ctx, event); err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeConflict {
			slog.InfoContext(ctx, "duplicate webhook delivery ignored",
				"event_id", eventID, "event_type", eventType)
			return nil
		}
		slog.ErrorContext(ctx, "failed to persist webhook event", logging.ErrKey, err,
			"event_id", eventID, "event_type", eventType)
		return err
	}

	subject := models.WebhookEventSubject(eventType)
	if subject == "" {
		// Unknown event types are accepted and recorded but not dispatched.
		slog.WarnContext(ctx, "unknown webhook event type",
			"event_id", eventID, "event_type", eventType)
		return s.finalizeUnknownEvent(ctx, event)
	}

	message := models.WebhookEventMessage{
		EventID:   eventID,
		EventType: eventType,
		Payload:   payload,
	}
	if err := s.MessageBuilder.PublishWebhookEvent(ctx, subject, message); err != nil {
		slog.ErrorContext(ctx, "failed to publish webhook event", logging.ErrKey, err,
			"event_id", eventID, "subject", subject)
		s.recordFailure(ctx, eventID, "failed to publish for dispatch: "+err.Error())
		return err
	}

	slog.DebugContext(ctx, "webhook event accepted",
		"event_id", eventID, "event_type", eventType, "subject", subject)

	return nil
}

// FinalizeEvent records the outcome of dispatching one event. A nil
// handlerErr marks the row processed; otherwise the failure is recorded on
// the row for manual recovery and the event stays unprocessed.
func (s *WebhookService) FinalizeEvent(ctx context.Context, eventID string, handlerErr error) {
	if handlerErr == nil {
		event, revision, err := s.WebhookEventRepository.GetWebhookEventWithRevision(ctx, eventID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load webhook event for finalize", logging.ErrKey, err,
				"event_id", eventID)
			return
		}
		event.MarkProcessed(time.Now().UTC())
		if err := s.WebhookEventRepository.UpdateWebhookEvent(ctx, event, revision); err != nil {
			slog.ErrorContext(ctx, "failed to mark webhook event processed", logging.ErrKey, err,
				"event_id", eventID)
		}
		return
	}

	slog.ErrorContext(ctx, "webhook event handler failed", logging.ErrKey, handlerErr,
		"event_id", eventID)
	s.recordFailure(ctx, eventID, handlerErr.Error())
}

// ListEvents returns every stored webhook event.
func (s *WebhookService) ListEvents(ctx context.Context) ([]*models.WebhookEvent, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("webhook service not initialized")
	}
	return s.WebhookEventRepository.ListAllWebhookEvents(ctx)
}

// finalizeUnknownEvent marks an undispatchable event processed so it does
// not linger as a failure.
func (s *WebhookService) finalizeUnknownEvent(ctx context.Context, event *models.WebhookEvent) error {
	stored, revision, err := s.WebhookEventRepository.GetWebhookEventWithRevision(ctx, event.EventID)
	if err != nil {
		return err
	}
	stored.MarkProcessed(time.Now().UTC())
	return s.WebhookEventRepository.UpdateWebhookEvent(ctx, stored, revision)
}

func (s *WebhookService) recordFailure(ctx context.Context, eventID, message string) {
	event, revision, err := s.WebhookEventRepository.GetWebhookEventWithRevision(ctx, eventID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load webhook event for failure record", logging.ErrKey, err,
			"event_id", eventID)
		return
	}
	event.MarkFailed(message)
	if err := s.WebhookEventRepository.UpdateWebhookEvent(ctx, event, revision); err != nil {
		slog.ErrorContext(ctx, "failed to record webhook event failure", logging.ErrKey, err,
			"event_id", eventID)
	}
}
