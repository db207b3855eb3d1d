// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/mocks"
	"github.com/impactops/notetaker-service/internal/domain/models"
	"github.com/impactops/notetaker-service/internal/service"
)

func setupProcessEndpoint(t *testing.T, llm *mocks.MockLLMClient) http.Handler {
	t.Helper()

	transcriptRepo := mocks.NewMockTranscriptRepository()
	require.NoError(t, transcriptRepo.CreateTranscript(context.Background(), &models.Transcript{
		UID:            "tr-1",
		NotetakerID:    "nt-1",
		TranscriptText: "long transcript",
		Status:         models.TranscriptStatusCompleted,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}))

	api := &NotetakerAPI{
		processingService: service.NewProcessingService(
			transcriptRepo, service.NewAIService(llm), &mocks.MockNotifier{}),
	}

	router := chi.NewRouter()
	router.Post("/api/transcripts/{notetakerID}/process", api.handleProcessTranscript)
	return router
}

func TestProcessTranscriptEndpointResponseShape(t *testing.T) {
	llm := &mocks.MockLLMClient{
		ChatCompletionFunc: func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
			if strings.Contains(req.Messages[0].Content, "action items") {
				return &domain.ChatCompletionResult{Content: `["Send minutes (Dana - Friday)"]`}, nil
			}
			return &domain.ChatCompletionResult{Content: "A summary of the meeting."}, nil
		},
	}
	router := setupProcessEndpoint(t, llm)

	req := httptest.NewRequest(http.MethodPost, "/api/transcripts/nt-1/process", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "tr-1", body["transcriptId"])
	assert.Equal(t, "A summary of the meeting.", body["summary"])
	assert.Equal(t, []any{"Send minutes (Dana - Friday)"}, body["actionItems"])
	assert.NotContains(t, body, "error")
}

func TestProcessTranscriptEndpointSelectiveBody(t *testing.T) {
	llm := &mocks.MockLLMClient{
		ChatCompletionFunc: func(ctx context.Context, req domain.ChatCompletionRequest) (*domain.ChatCompletionResult, error) {
			return &domain.ChatCompletionResult{Content: "A summary of the meeting."}, nil
		},
	}
	router := setupProcessEndpoint(t, llm)

	req := httptest.NewRequest(http.MethodPost, "/api/transcripts/nt-1/process",
		strings.NewReader(`{"processActionItems":false}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, llm.CallCount(), "only the summary derivation runs")

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "A summary of the meeting.", body["summary"])
	assert.NotContains(t, body, "actionItems")
}
