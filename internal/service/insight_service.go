// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/models"
	"github.com/impactops/notetaker-service/internal/logging"
	"github.com/impactops/notetaker-service/pkg/concurrent"
)

const (
	issueExtractionPrompt = "You review meeting summaries for a nonprofit operations team. " +
		"List the organizational issues, blockers or recurring frustrations mentioned in the summary, " +
		"one per line, phrased as short issue statements. If none, respond with exactly: No issues found."

	insightScoringPrompt = "You aggregate issues observed across many meetings of a nonprofit. " +
		"Given issue statements grouped by meeting, merge duplicates and respond with a JSON array of objects " +
		"with fields: issue_title (string), score (0-100 integer, how pressing the issue is), " +
		"rationale (string), occurrence_count (integer), related_meeting_ids (array of the meeting ids provided). " +
		"Respond with the JSON array only."

	solutionBrainstormPrompt = "You advise a nonprofit operations team. Given a recurring organizational issue, " +
		"brainstorm 2-4 practical remedies. Respond with a JSON array of objects with fields: " +
		"title (string), description (string), expected_impact (string), next_steps (array of strings). " +
		"Respond with the JSON array only."

	// insightWorkerCount bounds concurrent per-transcript LLM calls.
	insightWorkerCount = 4
)

// InsightService derives cross-meeting insights and brainstormed solutions
// from stored transcript summaries via LLM analysis.
type InsightService struct {
	TranscriptRepository domain.TranscriptRepository
	InsightRepository    domain.InsightRepository
	AIService            *AIService
	Notifier             domain.Notifier

	workerPool *concurrent.WorkerPool
}

// NewInsightService creates a new InsightService.
func NewInsightService(
	transcriptRepository domain.TranscriptRepository,
	insightRepository domain.InsightRepository,
	aiService *AIService,
	notifier domain.Notifier,
) *InsightService {
	return &InsightService{
		TranscriptRepository: transcriptRepository,
		InsightRepository:    insightRepository,
		AIService:            aiService,
		Notifier:             notifier,
		workerPool:           concurrent.NewWorkerPool(insightWorkerCount),
	}
}

// ServiceReady checks if the service is ready for use.
func (s *InsightService) ServiceReady() bool {
	return s.TranscriptRepository != nil &&
		s.InsightRepository != nil &&
		s.AIService != nil &&
		s.Notifier != nil
}

// rawInsight is the JSON shape expected back from the scoring call.
type rawInsight struct {
	IssueTitle        string   `json:"issue_title"`
	Score             int      `json:"score"`
	Rationale         string   `json:"rationale"`
	OccurrenceCount   int      `json:"occurrence_count"`
	RelatedMeetingIDs []string `json:"related_meeting_ids"`
}

// rawSolution is the JSON shape expected back from the brainstorm call.
type rawSolution struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	ExpectedImpact string   `json:"expected_impact"`
	NextSteps      []string `json:"next_steps"`
}

// GenerateInsights analyzes every summarized transcript for organizational
// issues, then aggregates and scores them into insight records. Extraction
// runs per transcript on a bounded worker pool; individual extraction
// failures are logged and skipped rather than failing the run.
func (s *InsightService) GenerateInsights(ctx context.Context) ([]*models.Insight, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("insight service not initialized")
	}

	transcripts, err := s.TranscriptRepository.ListAllTranscripts(ctx)
	if err != nil {
		return nil, err
	}

	var eligible []*models.Transcript
	for _, t := range transcripts {
		if t.SummaryText != "" {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return nil, domain.NewValidationError("no summarized transcripts to analyze")
	}

	var mu sync.Mutex
	issuesByMeeting := make(map[string][]string)

	jobs := make([]func() error, 0, len(eligible))
	for _, transcript := range eligible {
		jobs = append(jobs, func() error {
			result := s.AIService.GenerateWithPrompt(ctx, issueExtractionPrompt, transcript.SummaryText)
			if !result.Success {
				slog.WarnContext(ctx, "issue extraction failed, skipping transcript",
					"notetaker_id", transcript.NotetakerID, "error_message", result.Error)
				return nil
			}
			issues := splitIssueLines(result.Summary)
			if len(issues) == 0 {
				return nil
			}
			mu.Lock()
			issuesByMeeting[transcript.SessionUID] = issues
			mu.Unlock()
			return nil
		})
	}
	_ = s.workerPool.RunAll(ctx, jobs...)

	if len(issuesByMeeting) == 0 {
		return nil, domain.NewValidationError("no issues found across transcripts")
	}

	var sb strings.Builder
	for meetingID, issues := range issuesByMeeting {
		fmt.Fprintf(&sb, "Meeting %s:\n", meetingID)
		for _, issue := range issues {
			fmt.Fprintf(&sb, "- %s\n", issue)
		}
	}

	scored := s.AIService.GenerateWithPrompt(ctx, insightScoringPrompt, sb.String())
	if !scored.Success {
		return nil, domain.NewInternalError("insight scoring failed: " + scored.Error)
	}

	var raw []rawInsight
	if err := json.Unmarshal([]byte(stripCodeFence(scored.Summary)), &raw); err != nil {
		return nil, domain.NewInternalError("failed to parse insight response", err)
	}

	now := time.Now().UTC()
	insights := make([]*models.Insight, 0, len(raw))
	for _, r := range raw {
		if r.IssueTitle == "" {
			continue
		}
		insight := &models.Insight{
			UID:               uuid.New().String(),
			IssueTitle:        r.IssueTitle,
			Score:             clampScore(r.Score),
			Rationale:         r.Rationale,
			OccurrenceCount:   r.OccurrenceCount,
			FirstSeenDate:     &now,
			LastSeenDate:      &now,
			RelatedMeetingIDs: r.RelatedMeetingIDs,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := s.InsightRepository.CreateInsight(ctx, insight); err != nil {
			slog.ErrorContext(ctx, "failed to persist insight", logging.ErrKey, err,
				"issue_title", r.IssueTitle)
			return nil, err
		}
		insights = append(insights, insight)
		s.Notifier.Emit(NotificationInsightCreated, insight)
	}

	slog.InfoContext(ctx, "insights generated",
		"transcripts_analyzed", len(eligible), "insights", len(insights))

	return insights, nil
}

// BrainstormSolutions asks the LLM for remedies to one insight and persists
// them.
func (s *InsightService) BrainstormSolutions(ctx context.Context, insightUID string) ([]*models.Solution, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("insight service not initialized")
	}

	insight, err := s.InsightRepository.GetInsight(ctx, insightUID)
	if err != nil {
		return nil, err
	}

	input := insight.IssueTitle
	if insight.Rationale != "" {
		input += "\n\n" + insight.Rationale
	}

	result := s.AIService.GenerateWithPrompt(ctx, solutionBrainstormPrompt, input)
	if !result.Success {
		return nil, domain.NewInternalError("solution brainstorm failed: " + result.Error)
	}

	var raw []rawSolution
	if err := json.Unmarshal([]byte(stripCodeFence(result.Summary)), &raw); err != nil {
		return nil, domain.NewInternalError("failed to parse solution response", err)
	}

	now := time.Now().UTC()
	solutions := make([]*models.Solution, 0, len(raw))
	for _, r := range raw {
		if r.Title == "" {
			continue
		}
		solution := &models.Solution{
			UID:            uuid.New().String(),
			InsightID:      insightUID,
			Title:          r.Title,
			Description:    r.Description,
			ExpectedImpact: r.ExpectedImpact,
			NextSteps:      r.NextSteps,
			CreatedAt:      now,
		}
		if err := s.InsightRepository.CreateSolution(ctx, solution); err != nil {
			return nil, err
		}
		solutions = append(solutions, solution)
	}

	return solutions, nil
}

// GetInsight fetches one insight.
func (s *InsightService) GetInsight(ctx context.Context, insightUID string) (*models.Insight, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("insight service not initialized")
	}
	return s.InsightRepository.GetInsight(ctx, insightUID)
}

// ListInsights fetches all insights.
func (s *InsightService) ListInsights(ctx context.Context) ([]*models.Insight, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("insight service not initialized")
	}
	return s.InsightRepository.ListAllInsights(ctx)
}

// ListSolutions fetches the solutions for one insight.
func (s *InsightService) ListSolutions(ctx context.Context, insightUID string) ([]*models.Solution, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("insight service not initialized")
	}
	return s.InsightRepository.ListSolutionsByInsight(ctx, insightUID)
}

// splitIssueLines parses the extraction response into issue statements.
func splitIssueLines(content string) []string {
	if strings.Contains(strings.ToLower(content), "no issues found") {
		return nil
	}
	var issues []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*• "))
		if len(line) < minActionItemLength {
			continue
		}
		issues = append(issues, line)
	}
	return issues
}

// stripCodeFence removes a wrapping markdown code fence that some models
// emit around JSON output.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
