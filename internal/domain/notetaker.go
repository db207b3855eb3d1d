// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/impactops/notetaker-service/internal/domain/models"
)

// NotetakerProvider defines the interface to the vendor meeting-bot API.
type NotetakerProvider interface {
	// InviteNotetaker asks the vendor to send a bot to the meeting link.
	// Returns the vendor-assigned notetaker ID and initial state.
	InviteNotetaker(ctx context.Context, meetingLink, name string, settings models.MeetingSettings) (notetakerID string, state string, err error)

	// CancelNotetaker cancels a scheduled notetaker on the vendor side.
	CancelNotetaker(ctx context.Context, notetakerID string) error

	// LeaveMeeting tells an attending notetaker to leave its meeting.
	LeaveMeeting(ctx context.Context, notetakerID string) error

	// GetNotetaker fetches the vendor's view of a notetaker.
	GetNotetaker(ctx context.Context, notetakerID string) (*models.NotetakerStatePayload, error)

	// DownloadArtifact performs an authenticated fetch of a vendor-hosted
	// artifact URL and returns the body as text.
	DownloadArtifact(ctx context.Context, url string) (string, error)
}

// WebhookValidator verifies the authenticity of inbound vendor webhooks.
type WebhookValidator interface {
	// ValidateSignature checks the claimed HMAC signature against the raw
	// request body. A validator with no configured secret accepts everything
	// (explicitly insecure pass-through for local development).
	ValidateSignature(body []byte, signature string) error
}
