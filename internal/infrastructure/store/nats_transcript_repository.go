// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/impactops/notetaker-service/internal/domain/models"
)

// NatsTranscriptRepository implements domain.TranscriptRepository using the
// NATS KV store, keyed by notetaker ID (1:1 with sessions).
type NatsTranscriptRepository struct {
	*NatsBaseRepository[models.Transcript]
}

// NewNatsTranscriptRepository creates a new transcript repository
func NewNatsTranscriptRepository(kvStore INatsKeyValue) *NatsTranscriptRepository {
	return &NatsTranscriptRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Transcript](kvStore, "transcript"),
	}
}

// CreateTranscript creates a new transcript
func (r *NatsTranscriptRepository) CreateTranscript(ctx context.Context, transcript *models.Transcript) error {
	return r.NatsBaseRepository.CreateIfAbsent(ctx, transcript.NotetakerID, transcript)
}

// GetTranscript retrieves a transcript by notetaker ID
func (r *NatsTranscriptRepository) GetTranscript(ctx context.Context, notetakerID string) (*models.Transcript, error) {
	return r.NatsBaseRepository.Get(ctx, notetakerID)
}

// GetTranscriptWithRevision retrieves a transcript with its revision
func (r *NatsTranscriptRepository) GetTranscriptWithRevision(ctx context.Context, notetakerID string) (*models.Transcript, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, notetakerID)
}

// UpdateTranscript updates an existing transcript with optimistic concurrency control
func (r *NatsTranscriptRepository) UpdateTranscript(ctx context.Context, transcript *models.Transcript, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, transcript.NotetakerID, transcript, revision)
}

// ListAllTranscripts retrieves all transcripts
func (r *NatsTranscriptRepository) ListAllTranscripts(ctx context.Context) ([]*models.Transcript, error) {
	return r.NatsBaseRepository.ListEntities(ctx)
}
