// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/mocks"
	"github.com/impactops/notetaker-service/internal/domain/models"
)

func setupInsightService(llm *mocks.MockLLMClient) (*InsightService, *mocks.MockTranscriptRepository, *mocks.MockInsightRepository) {
	transcriptRepo := mocks.NewMockTranscriptRepository()
	insightRepo := mocks.NewMockInsightRepository()
	svc := NewInsightService(transcriptRepo, insightRepo, newTestAIService(llm), &mocks.MockNotifier{})
	return svc, transcriptRepo, insightRepo
}

func TestGenerateInsights(t *testing.T) {
	llm := &mocks.MockLLMClient{
		ChatCompletionFunc: func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
			system := req.Messages[0].Content
			if strings.Contains(system, "aggregate issues") {
				return &domain.ChatCompletionResult{Content: "```json\n" +
					`[{"issue_title":"Volunteer burnout","score":150,"rationale":"Mentioned repeatedly","occurrence_count":2,"related_meeting_ids":["sess-1","sess-2"]}]` +
					"\n```"}, nil
			}
			return &domain.ChatCompletionResult{Content: "- Volunteer burnout keeps coming up"}, nil
		},
	}
	svc, transcriptRepo, insightRepo := setupInsightService(llm)
	ctx := context.Background()

	for _, id := range []string{"1", "2"} {
		require.NoError(t, transcriptRepo.CreateTranscript(ctx, &models.Transcript{
			UID:         "tr-" + id,
			NotetakerID: "nt-" + id,
			SessionUID:  "sess-" + id,
			SummaryText: "Summary mentioning volunteer burnout.",
			Status:      models.TranscriptStatusCompleted,
			CreatedAt:   time.Now().UTC(),
		}))
	}
	// Transcript without a summary must be ignored.
	require.NoError(t, transcriptRepo.CreateTranscript(ctx, &models.Transcript{
		UID: "tr-3", NotetakerID: "nt-3", Status: models.TranscriptStatusProcessing,
	}))

	insights, err := svc.GenerateInsights(ctx)

	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "Volunteer burnout", insights[0].IssueTitle)
	assert.Equal(t, 100, insights[0].Score, "scores are clamped to 0-100")
	assert.Equal(t, 2, insights[0].OccurrenceCount)
	assert.ElementsMatch(t, []string{"sess-1", "sess-2"}, insights[0].RelatedMeetingIDs)

	stored, err := insightRepo.ListAllInsights(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestGenerateInsightsWithoutSummaries(t *testing.T) {
	svc, transcriptRepo, _ := setupInsightService(&mocks.MockLLMClient{})
	ctx := context.Background()
	require.NoError(t, transcriptRepo.CreateTranscript(ctx, &models.Transcript{
		UID: "tr-1", NotetakerID: "nt-1", Status: models.TranscriptStatusProcessing,
	}))

	_, err := svc.GenerateInsights(ctx)

	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestGenerateInsightsNoIssuesFound(t *testing.T) {
	llm := &mocks.MockLLMClient{
		ChatCompletionFunc: func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
			return &domain.ChatCompletionResult{Content: "No issues found"}, nil
		},
	}
	svc, transcriptRepo, _ := setupInsightService(llm)
	ctx := context.Background()
	require.NoError(t, transcriptRepo.CreateTranscript(ctx, &models.Transcript{
		UID: "tr-1", NotetakerID: "nt-1", SessionUID: "sess-1",
		SummaryText: "A quiet meeting.", Status: models.TranscriptStatusCompleted,
	}))

	_, err := svc.GenerateInsights(ctx)

	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestBrainstormSolutions(t *testing.T) {
	llm := &mocks.MockLLMClient{
		ChatCompletionFunc: func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
			assert.Contains(t, req.Messages[1].Content, "Volunteer burnout")
			return &domain.ChatCompletionResult{Content: `[{"title":"Rotation schedule","description":"Rotate duties monthly","expected_impact":"Lower churn","next_steps":["Draft schedule","Survey volunteers"]}]`}, nil
		},
	}
	svc, _, insightRepo := setupInsightService(llm)
	ctx := context.Background()

	insight := &models.Insight{
		UID:        "ins-1",
		IssueTitle: "Volunteer burnout",
		Rationale:  "Raised in most meetings",
		Score:      80,
	}
	require.NoError(t, insightRepo.CreateInsight(ctx, insight))

	solutions, err := svc.BrainstormSolutions(ctx, "ins-1")

	require.NoError(t, err)
	require.Len(t, solutions, 1)
	assert.Equal(t, "Rotation schedule", solutions[0].Title)
	assert.Equal(t, "ins-1", solutions[0].InsightID)
	assert.Equal(t, []string{"Draft schedule", "Survey volunteers"}, solutions[0].NextSteps)

	stored, err := insightRepo.ListSolutionsByInsight(ctx, "ins-1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestBrainstormSolutionsUnknownInsight(t *testing.T) {
	svc, _, _ := setupInsightService(&mocks.MockLLMClient{})

	_, err := svc.BrainstormSolutions(context.Background(), "ins-missing")

	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}
