// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/impactops/notetaker-service/internal/domain/models"
)

// Message represents a domain message interface
type Message interface {
	Subject() string
	Data() []byte
	Respond(data []byte) error
	HasReply() bool
}

// MessageHandler defines how the service handles incoming messages
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg Message)
	HandlerReady() bool
}

// WebhookEventSender handles webhook event publishing for async dispatch.
type WebhookEventSender interface {
	PublishWebhookEvent(ctx context.Context, subject string, message models.WebhookEventMessage) error
}
