// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// TranscriptStatus is the ingestion status of a transcript record.
type TranscriptStatus string

const (
	// TranscriptStatusProcessing is the initial status while artifacts are
	// still expected from the vendor.
	TranscriptStatusProcessing TranscriptStatus = "processing"
	// TranscriptStatusCompleted means the transcript text has been ingested.
	TranscriptStatusCompleted TranscriptStatus = "completed"
	// TranscriptStatusFailed means ingestion failed outright.
	TranscriptStatusFailed TranscriptStatus = "failed"
	// TranscriptStatusPartial means at least one artifact type failed to
	// download. Partial is sticky: later successes do not promote the record
	// back to completed.
	TranscriptStatusPartial TranscriptStatus = "partial"
)

// MediaType identifies one artifact kind produced by the vendor bot.
type MediaType string

const (
	MediaTypeTranscript  MediaType = "transcript"
	MediaTypeAudio       MediaType = "audio"
	MediaTypeVideo       MediaType = "video"
	MediaTypeSummary     MediaType = "summary"
	MediaTypeActionItems MediaType = "action_items"
)

// KnownMediaType reports whether t is one of the vendor's artifact kinds.
func KnownMediaType(t MediaType) bool {
	switch t {
	case MediaTypeTranscript, MediaTypeAudio, MediaTypeVideo, MediaTypeSummary, MediaTypeActionItems:
		return true
	}
	return false
}

// MediaFile records one successfully ingested artifact. The sequence is
// append-only and deliberately not deduplicated: repeated vendor deliveries
// append repeated entries, preserving the delivery audit trail.
type MediaFile struct {
	Type         MediaType `json:"type"`
	URL          string    `json:"url"`
	Filename     string    `json:"filename,omitempty"`
	Size         int64     `json:"size,omitempty"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// Transcript is the local record of the artifacts produced for one session.
// NotetakerID ties it 1:1 to a NotetakerSession and is the store key.
type Transcript struct {
	UID         string `json:"uid"`
	NotetakerID string `json:"notetaker_id"`
	SessionUID  string `json:"session_uid"`

	TranscriptText string `json:"transcript_text,omitempty"`
	TranscriptURL  string `json:"transcript_url,omitempty"`
	AudioURL       string `json:"audio_url,omitempty"`
	VideoURL       string `json:"video_url,omitempty"`
	SummaryText    string `json:"summary_text,omitempty"`
	SummaryURL     string `json:"summary_url,omitempty"`
	ActionItemsURL string `json:"action_items_url,omitempty"`

	// ActionItems are free-text strings, each optionally encoding
	// "<task> (<assignee> - <dueDate>)".
	ActionItems []string `json:"action_items,omitempty"`

	Duration     int              `json:"duration,omitempty"`
	Participants []string         `json:"participants,omitempty"`
	Status       TranscriptStatus `json:"status"`
	MediaFiles   []MediaFile      `json:"media_files,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasSummaryAndActionItems reports whether both AI-derived fields are
// populated. Callers use this to skip reprocessing.
func (t *Transcript) HasSummaryAndActionItems() bool {
	return t.SummaryText != "" && len(t.ActionItems) > 0
}

// AppendMediaFile records a successfully ingested artifact.
func (t *Transcript) AppendMediaFile(mediaType MediaType, url string, now time.Time) {
	t.MediaFiles = append(t.MediaFiles, MediaFile{
		Type:         mediaType,
		URL:          url,
		DownloadedAt: now,
	})
}
