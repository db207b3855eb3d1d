// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

// Package messaging contains the NATS publishing side of the webhook
// dispatch pipeline.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/impactops/notetaker-service/internal/domain/models"
	"github.com/impactops/notetaker-service/internal/logging"
)

// INatsConn is the NATS connection interface needed by the message builder.
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder builds messages and sends them to the NATS server.
type MessageBuilder struct {
	NatsConn INatsConn
}

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// sendMessage sends the message to the NATS server.
func (m *MessageBuilder) sendMessage(ctx context.Context, subject string, data []byte) error {
	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

// PublishWebhookEvent publishes a vendor webhook event for async dispatch.
func (m *MessageBuilder) PublishWebhookEvent(ctx context.Context, subject string, message models.WebhookEventMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling webhook event message", logging.ErrKey, err, "subject", subject)
		return err
	}

	return m.sendMessage(ctx, subject, data)
}

// NatsMsg adapts a *nats.Msg to the domain.Message interface consumed by
// the webhook event handler.
type NatsMsg struct {
	*nats.Msg
}

// Subject returns the NATS subject of the message.
func (m *NatsMsg) Subject() string {
	return m.Msg.Subject
}

// Data returns the payload of the message.
func (m *NatsMsg) Data() []byte {
	return m.Msg.Data
}

// HasReply reports whether the sender expects a response.
func (m *NatsMsg) HasReply() bool {
	return m.Msg.Reply != ""
}

// Respond sends a reply to the message sender.
func (m *NatsMsg) Respond(data []byte) error {
	return m.Msg.Respond(data)
}
