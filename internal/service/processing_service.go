// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/logging"
)

// ProcessingService orchestrates AI processing of stored transcripts. It
// owns the skip/force contract: a transcript whose requested fields are
// already populated is skipped unless force is set, and a forced run clears
// the requested fields in one write before regenerating them.
type ProcessingService struct {
	TranscriptRepository domain.TranscriptRepository
	AIService            *AIService
	Notifier             domain.Notifier
}

// NewProcessingService creates a new ProcessingService.
func NewProcessingService(
	transcriptRepository domain.TranscriptRepository,
	aiService *AIService,
	notifier domain.Notifier,
) *ProcessingService {
	return &ProcessingService{
		TranscriptRepository: transcriptRepository,
		AIService:            aiService,
		Notifier:             notifier,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *ProcessingService) ServiceReady() bool {
	return s.TranscriptRepository != nil && s.AIService != nil && s.Notifier != nil
}

// ProcessRequest selects which AI derivations to run. Nil flags default to
// true, so an empty request processes everything.
type ProcessRequest struct {
	ProcessSummary     *bool `json:"processSummary,omitempty"`
	ProcessActionItems *bool `json:"processActionItems,omitempty"`
	Force              bool  `json:"force,omitempty"`
}

func (r ProcessRequest) wantSummary() bool {
	return r.ProcessSummary == nil || *r.ProcessSummary
}

func (r ProcessRequest) wantActionItems() bool {
	return r.ProcessActionItems == nil || *r.ProcessActionItems
}

// ProcessResult is the outcome of one processing run. Success means every
// requested derivation succeeded; partial failures carry the failure text
// in Error while the fields that did succeed are still populated.
type ProcessResult struct {
	Success      bool     `json:"success"`
	TranscriptID string   `json:"transcriptId"`
	Summary      string   `json:"summary,omitempty"`
	ActionItems  []string `json:"actionItems,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// ProcessTranscript generates the requested summary and action items for
// one transcript. AI failures are recorded on the transcript and reported
// in the result rather than returned as errors; only store and precondition
// failures return an error.
func (s *ProcessingService) ProcessTranscript(ctx context.Context, notetakerID string, req ProcessRequest) (*ProcessResult, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("processing service not initialized")
	}

	if !req.wantSummary() && !req.wantActionItems() {
		return nil, domain.NewValidationError("no processing requested")
	}

	transcript, revision, err := s.TranscriptRepository.GetTranscriptWithRevision(ctx, notetakerID)
	if err != nil {
		return nil, err
	}

	if transcript.TranscriptText == "" {
		return nil, domain.NewValidationError("transcript has no text to process")
	}

	summaryDone := transcript.SummaryText != ""
	itemsDone := len(transcript.ActionItems) > 0
	if !req.Force && (!req.wantSummary() || summaryDone) && (!req.wantActionItems() || itemsDone) {
		slog.InfoContext(ctx, "transcript already processed, skipping",
			"notetaker_id", notetakerID)
		return &ProcessResult{
			Success:      true,
			TranscriptID: transcript.UID,
			Summary:      transcript.SummaryText,
			ActionItems:  transcript.ActionItems,
		}, nil
	}

	if req.Force {
		if req.wantSummary() {
			transcript.SummaryText = ""
		}
		if req.wantActionItems() {
			transcript.ActionItems = nil
		}
		transcript.UpdatedAt = time.Now().UTC()
		if err := s.TranscriptRepository.UpdateTranscript(ctx, transcript, revision); err != nil {
			return nil, err
		}
		transcript, revision, err = s.TranscriptRepository.GetTranscriptWithRevision(ctx, notetakerID)
		if err != nil {
			return nil, err
		}
	}

	var failures []string

	if req.wantSummary() && (req.Force || transcript.SummaryText == "") {
		summaryResult := s.AIService.GenerateSummary(ctx, transcript.TranscriptText)
		if summaryResult.Success {
			transcript.SummaryText = summaryResult.Summary
		} else {
			transcript.ErrorMessage = summaryResult.Error
			failures = append(failures, summaryResult.Error)
			slog.WarnContext(ctx, "summary generation failed",
				"notetaker_id", notetakerID, "error_message", summaryResult.Error)
		}
	}

	if req.wantActionItems() && (req.Force || len(transcript.ActionItems) == 0) {
		itemsResult := s.AIService.ExtractActionItems(ctx, transcript.TranscriptText)
		if itemsResult.Success {
			transcript.ActionItems = itemsResult.ActionItems
		} else {
			transcript.ErrorMessage = itemsResult.Error
			failures = append(failures, itemsResult.Error)
			slog.WarnContext(ctx, "action item extraction failed",
				"notetaker_id", notetakerID, "error_message", itemsResult.Error)
		}
	}

	transcript.UpdatedAt = time.Now().UTC()
	if err := s.TranscriptRepository.UpdateTranscript(ctx, transcript, revision); err != nil {
		slog.ErrorContext(ctx, "failed to persist processed transcript", logging.ErrKey, err,
			"notetaker_id", notetakerID)
		return nil, err
	}

	slog.InfoContext(ctx, "transcript processed",
		"notetaker_id", notetakerID,
		"failures", len(failures),
		"action_items", len(transcript.ActionItems))

	s.Notifier.Emit(NotificationTranscriptUpdated, transcript)

	result := &ProcessResult{
		Success:      len(failures) == 0,
		TranscriptID: transcript.UID,
		Error:        strings.Join(failures, "; "),
	}
	if req.wantSummary() {
		result.Summary = transcript.SummaryText
	}
	if req.wantActionItems() {
		result.ActionItems = transcript.ActionItems
	}
	return result, nil
}
