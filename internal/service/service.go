// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

// Package service implements the notetaker domain logic: webhook intake and
// dispatch, session lifecycle, media ingestion, AI processing, tasks and
// cross-meeting insights.
package service

// Notification kinds pushed to connected dashboard clients.
const (
	NotificationSessionUpdated    = "session_updated"
	NotificationSessionDeleted    = "session_deleted"
	NotificationTranscriptUpdated = "transcript_updated"
	NotificationTaskUpdated       = "task_updated"
	NotificationInsightCreated    = "insight_created"
)
