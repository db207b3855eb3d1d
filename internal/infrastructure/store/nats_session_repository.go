// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/impactops/notetaker-service/internal/domain/models"
)

// NatsSessionRepository implements domain.SessionRepository using the NATS
// KV store, keyed by the vendor-assigned notetaker ID.
type NatsSessionRepository struct {
	*NatsBaseRepository[models.NotetakerSession]
}

// NewNatsSessionRepository creates a new session repository
func NewNatsSessionRepository(kvStore INatsKeyValue) *NatsSessionRepository {
	return &NatsSessionRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.NotetakerSession](kvStore, "session"),
	}
}

// CreateSession creates a new notetaker session
func (r *NatsSessionRepository) CreateSession(ctx context.Context, session *models.NotetakerSession) error {
	return r.NatsBaseRepository.CreateIfAbsent(ctx, session.NotetakerID, session)
}

// SessionExists checks if a session exists for the given notetaker ID
func (r *NatsSessionRepository) SessionExists(ctx context.Context, notetakerID string) (bool, error) {
	return r.NatsBaseRepository.Exists(ctx, notetakerID)
}

// GetSession retrieves a session by notetaker ID
func (r *NatsSessionRepository) GetSession(ctx context.Context, notetakerID string) (*models.NotetakerSession, error) {
	return r.NatsBaseRepository.Get(ctx, notetakerID)
}

// GetSessionWithRevision retrieves a session with its revision
func (r *NatsSessionRepository) GetSessionWithRevision(ctx context.Context, notetakerID string) (*models.NotetakerSession, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, notetakerID)
}

// UpdateSession updates an existing session with optimistic concurrency control
func (r *NatsSessionRepository) UpdateSession(ctx context.Context, session *models.NotetakerSession, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, session.NotetakerID, session, revision)
}

// ListAllSessions retrieves all notetaker sessions
func (r *NatsSessionRepository) ListAllSessions(ctx context.Context) ([]*models.NotetakerSession, error) {
	return r.NatsBaseRepository.ListEntities(ctx)
}
