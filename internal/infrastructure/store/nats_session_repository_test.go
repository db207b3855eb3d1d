// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/models"
)

func newTestSession(notetakerID string) *models.NotetakerSession {
	now := time.Now().UTC()
	return &models.NotetakerSession{
		UID:             "uid-" + notetakerID,
		NotetakerID:     notetakerID,
		MeetingLink:     "https://meet.google.com/abc-defg-hij",
		MeetingProvider: "Google Meet",
		Name:            "Weekly Sync Notetaker",
		State:           models.SessionStateScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestNatsSessionRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsSessionRepository(NewMockNatsKeyValue())

	require.NoError(t, repo.CreateSession(ctx, newTestSession("nt-1")))

	got, err := repo.GetSession(ctx, "nt-1")
	require.NoError(t, err)
	assert.Equal(t, models.SessionStateScheduled, got.State)
	assert.Equal(t, "Google Meet", got.MeetingProvider)

	exists, err := repo.SessionExists(ctx, "nt-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.SessionExists(ctx, "nt-missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNatsSessionRepository_GetNotFound(t *testing.T) {
	repo := NewNatsSessionRepository(NewMockNatsKeyValue())

	_, err := repo.GetSession(context.Background(), "nt-missing")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestNatsSessionRepository_UpdateState(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsSessionRepository(NewMockNatsKeyValue())

	require.NoError(t, repo.CreateSession(ctx, newTestSession("nt-2")))

	session, revision, err := repo.GetSessionWithRevision(ctx, "nt-2")
	require.NoError(t, err)

	session.State = models.SessionStateAttending
	session.MeetingState = models.MeetingStateRecordingActive
	require.NoError(t, repo.UpdateSession(ctx, session, revision))

	got, err := repo.GetSession(ctx, "nt-2")
	require.NoError(t, err)
	assert.Equal(t, models.SessionStateAttending, got.State)
	assert.Equal(t, models.MeetingStateRecordingActive, got.MeetingState)
}

func TestNatsSessionRepository_ListAllSessions(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsSessionRepository(NewMockNatsKeyValue())

	require.NoError(t, repo.CreateSession(ctx, newTestSession("nt-a")))
	require.NoError(t, repo.CreateSession(ctx, newTestSession("nt-b")))

	sessions, err := repo.ListAllSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}
