// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/models"
	"github.com/impactops/notetaker-service/internal/logging"
	"github.com/impactops/notetaker-service/internal/metrics"
)

// IngestionService attaches vendor media artifacts to transcript records.
// Artifact failures are a normal outcome: the transcript is marked partial
// with the failure recorded and later artifacts keep flowing. Partial is
// sticky, so a subsequent success never promotes the record back to
// completed on its own.
type IngestionService struct {
	SessionRepository    domain.SessionRepository
	TranscriptRepository domain.TranscriptRepository
	NotetakerProvider    domain.NotetakerProvider
	Notifier             domain.Notifier
}

// NewIngestionService creates a new IngestionService.
func NewIngestionService(
	sessionRepository domain.SessionRepository,
	transcriptRepository domain.TranscriptRepository,
	notetakerProvider domain.NotetakerProvider,
	notifier domain.Notifier,
) *IngestionService {
	return &IngestionService{
		SessionRepository:    sessionRepository,
		TranscriptRepository: transcriptRepository,
		NotetakerProvider:    notetakerProvider,
		Notifier:             notifier,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *IngestionService) ServiceReady() bool {
	return s.SessionRepository != nil &&
		s.TranscriptRepository != nil &&
		s.NotetakerProvider != nil &&
		s.Notifier != nil
}

// HandleMediaEvent ingests one notetaker.media delivery.
func (s *IngestionService) HandleMediaEvent(ctx context.Context, payload *models.NotetakerMediaPayload) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("ingestion service not initialized")
	}

	notetakerID := payload.Notetaker()
	if notetakerID == "" {
		slog.WarnContext(ctx, "media event without notetaker ID, skipping")
		return nil
	}

	mediaType := models.MediaType(payload.MediaType)
	if !models.KnownMediaType(mediaType) {
		slog.WarnContext(ctx, "media event with unknown media type, skipping",
			"notetaker_id", notetakerID, "media_type", payload.MediaType)
		return nil
	}
	if payload.MediaURL == "" {
		slog.WarnContext(ctx, "media event without media URL, skipping",
			"notetaker_id", notetakerID, "media_type", payload.MediaType)
		return nil
	}

	transcript, revision, err := s.findOrCreateTranscript(ctx, notetakerID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if ingestErr := s.ingestArtifact(ctx, transcript, mediaType, payload, now); ingestErr != nil {
		transcript.Status = models.TranscriptStatusPartial
		transcript.ErrorMessage = fmt.Sprintf("Failed to download %s: %v", payload.MediaType, ingestErr)
		metrics.MediaIngestionsTotal.WithLabelValues(payload.MediaType, "failure").Inc()
		slog.WarnContext(ctx, "artifact ingestion failed", logging.ErrKey, ingestErr,
			"notetaker_id", notetakerID, "media_type", payload.MediaType)
	} else {
		metrics.MediaIngestionsTotal.WithLabelValues(payload.MediaType, "success").Inc()
		transcript.AppendMediaFile(mediaType, payload.MediaURL, now)
		if mediaType == models.MediaTypeTranscript && transcript.TranscriptText != "" &&
			transcript.Status != models.TranscriptStatusPartial {
			transcript.Status = models.TranscriptStatusCompleted
		}
	}

	if payload.Duration > 0 {
		transcript.Duration = payload.Duration
	}
	if len(payload.Participants) > 0 {
		transcript.Participants = payload.Participants
	}
	transcript.UpdatedAt = now

	if err := s.TranscriptRepository.UpdateTranscript(ctx, transcript, revision); err != nil {
		slog.ErrorContext(ctx, "failed to update transcript", logging.ErrKey, err,
			"notetaker_id", notetakerID)
		return err
	}

	slog.InfoContext(ctx, "media artifact ingested",
		"notetaker_id", notetakerID, "media_type", payload.MediaType,
		"status", transcript.Status, "media_files", len(transcript.MediaFiles))

	s.Notifier.Emit(NotificationTranscriptUpdated, transcript)

	return nil
}

// GetTranscript fetches one transcript by notetaker ID.
func (s *IngestionService) GetTranscript(ctx context.Context, notetakerID string) (*models.Transcript, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("ingestion service not initialized")
	}
	return s.TranscriptRepository.GetTranscript(ctx, notetakerID)
}

// ListTranscripts fetches all transcripts.
func (s *IngestionService) ListTranscripts(ctx context.Context) ([]*models.Transcript, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("ingestion service not initialized")
	}
	return s.TranscriptRepository.ListAllTranscripts(ctx)
}

// findOrCreateTranscript loads the transcript for a notetaker, lazily
// creating it on the first media event. Creation requires an existing
// session so no transcript is orphaned without one.
func (s *IngestionService) findOrCreateTranscript(ctx context.Context, notetakerID string) (*models.Transcript, uint64, error) {
	transcript, revision, err := s.TranscriptRepository.GetTranscriptWithRevision(ctx, notetakerID)
	if err == nil {
		return transcript, revision, nil
	}
	if domain.GetErrorType(err) != domain.ErrorTypeNotFound {
		return nil, 0, err
	}

	session, err := s.SessionRepository.GetSession(ctx, notetakerID)
	if err != nil {
		slog.ErrorContext(ctx, "media event for unknown session, aborting", logging.ErrKey, err,
			"notetaker_id", notetakerID)
		return nil, 0, domain.NewNotFoundError("no session for media event", err)
	}

	now := time.Now().UTC()
	transcript = &models.Transcript{
		UID:         uuid.New().String(),
		NotetakerID: notetakerID,
		SessionUID:  session.UID,
		Status:      models.TranscriptStatusProcessing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.TranscriptRepository.CreateTranscript(ctx, transcript); err != nil {
		return nil, 0, err
	}

	return s.TranscriptRepository.GetTranscriptWithRevision(ctx, notetakerID)
}

// ingestArtifact applies one artifact to the transcript, fetching content
// for text-bearing types and storing URLs only for audio and video.
func (s *IngestionService) ingestArtifact(ctx context.Context, transcript *models.Transcript, mediaType models.MediaType, payload *models.NotetakerMediaPayload, now time.Time) error {
	switch mediaType {
	case models.MediaTypeTranscript:
		text, err := s.NotetakerProvider.DownloadArtifact(ctx, payload.MediaURL)
		if err != nil {
			return err
		}
		transcript.TranscriptText = text
		transcript.TranscriptURL = payload.MediaURL

	case models.MediaTypeSummary:
		text, err := s.NotetakerProvider.DownloadArtifact(ctx, payload.MediaURL)
		if err != nil {
			return err
		}
		transcript.SummaryText = text
		transcript.SummaryURL = payload.MediaURL

	case models.MediaTypeActionItems:
		text, err := s.NotetakerProvider.DownloadArtifact(ctx, payload.MediaURL)
		if err != nil {
			return err
		}
		transcript.ActionItems = parseActionItemsArtifact(text)
		transcript.ActionItemsURL = payload.MediaURL

	case models.MediaTypeAudio:
		transcript.AudioURL = payload.MediaURL

	case models.MediaTypeVideo:
		transcript.VideoURL = payload.MediaURL
	}

	return nil
}

// parseActionItemsArtifact decodes a vendor action-items artifact: a JSON
// string array when well formed, otherwise newline-split with empty lines
// dropped.
func parseActionItemsArtifact(text string) []string {
	var items []string
	if err := json.Unmarshal([]byte(text), &items); err == nil {
		return items
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
