// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/impactops/notetaker-service/internal/domain/models"
)

// NatsWebhookEventRepository implements domain.WebhookEventRepository using
// the NATS KV store. Events are keyed by the vendor event ID, so the store's
// create-if-absent semantics give duplicate deliveries conflict errors
// instead of duplicate rows.
type NatsWebhookEventRepository struct {
	*NatsBaseRepository[models.WebhookEvent]
}

// NewNatsWebhookEventRepository creates a new webhook event repository
func NewNatsWebhookEventRepository(kvStore INatsKeyValue) *NatsWebhookEventRepository {
	return &NatsWebhookEventRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.WebhookEvent](kvStore, "webhook event"),
	}
}

// CreateIfAbsent persists a new webhook event keyed by its vendor event ID.
func (r *NatsWebhookEventRepository) CreateIfAbsent(ctx context.Context, event *models.WebhookEvent) error {
	return r.NatsBaseRepository.CreateIfAbsent(ctx, event.EventID, event)
}

// GetWebhookEvent retrieves a webhook event by vendor event ID
func (r *NatsWebhookEventRepository) GetWebhookEvent(ctx context.Context, eventID string) (*models.WebhookEvent, error) {
	return r.NatsBaseRepository.Get(ctx, eventID)
}

// GetWebhookEventWithRevision retrieves a webhook event with its revision
func (r *NatsWebhookEventRepository) GetWebhookEventWithRevision(ctx context.Context, eventID string) (*models.WebhookEvent, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, eventID)
}

// UpdateWebhookEvent updates an existing webhook event with optimistic concurrency control
func (r *NatsWebhookEventRepository) UpdateWebhookEvent(ctx context.Context, event *models.WebhookEvent, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, event.EventID, event, revision)
}

// ListAllWebhookEvents retrieves all webhook events
func (r *NatsWebhookEventRepository) ListAllWebhookEvents(ctx context.Context) ([]*models.WebhookEvent, error) {
	return r.NatsBaseRepository.ListEntities(ctx)
}
