// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/impactops/notetaker-service/internal/domain/models"
)

// WebhookEventRepository defines the interface for webhook event storage.
// Events are an append-only audit log: there is no delete operation.
type WebhookEventRepository interface {
	// CreateIfAbsent persists a new event keyed by its vendor event ID.
	// A duplicate delivery must return a conflict error, not a second row.
	CreateIfAbsent(ctx context.Context, event *models.WebhookEvent) error

	GetWebhookEvent(ctx context.Context, eventID string) (*models.WebhookEvent, error)
	GetWebhookEventWithRevision(ctx context.Context, eventID string) (*models.WebhookEvent, uint64, error)
	UpdateWebhookEvent(ctx context.Context, event *models.WebhookEvent, revision uint64) error
	ListAllWebhookEvents(ctx context.Context) ([]*models.WebhookEvent, error)
}

// SessionRepository defines the interface for notetaker session storage.
// Sessions are keyed by the vendor-assigned notetaker ID.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.NotetakerSession) error
	SessionExists(ctx context.Context, notetakerID string) (bool, error)
	GetSession(ctx context.Context, notetakerID string) (*models.NotetakerSession, error)
	GetSessionWithRevision(ctx context.Context, notetakerID string) (*models.NotetakerSession, uint64, error)
	UpdateSession(ctx context.Context, session *models.NotetakerSession, revision uint64) error
	ListAllSessions(ctx context.Context) ([]*models.NotetakerSession, error)
}

// TranscriptRepository defines the interface for transcript storage.
// Transcripts are keyed by notetaker ID, tying them 1:1 to sessions.
type TranscriptRepository interface {
	CreateTranscript(ctx context.Context, transcript *models.Transcript) error
	GetTranscript(ctx context.Context, notetakerID string) (*models.Transcript, error)
	GetTranscriptWithRevision(ctx context.Context, notetakerID string) (*models.Transcript, uint64, error)
	UpdateTranscript(ctx context.Context, transcript *models.Transcript, revision uint64) error
	ListAllTranscripts(ctx context.Context) ([]*models.Transcript, error)
}

// TaskRepository defines the interface for task storage.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, taskUID string) (*models.Task, error)
	GetTaskWithRevision(ctx context.Context, taskUID string) (*models.Task, uint64, error)
	UpdateTask(ctx context.Context, task *models.Task, revision uint64) error
	DeleteTask(ctx context.Context, taskUID string, revision uint64) error
	ListAllTasks(ctx context.Context) ([]*models.Task, error)
}

// InsightRepository defines the interface for insight and solution storage.
type InsightRepository interface {
	CreateInsight(ctx context.Context, insight *models.Insight) error
	GetInsight(ctx context.Context, insightUID string) (*models.Insight, error)
	ListAllInsights(ctx context.Context) ([]*models.Insight, error)
	CreateSolution(ctx context.Context, solution *models.Solution) error
	ListSolutionsByInsight(ctx context.Context, insightUID string) ([]*models.Solution, error)
}
