// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// SessionState is the primary lifecycle state of a notetaker session.
type SessionState string

// Primary session states. Terminal states are completed, cancelled, failed
// and failed_entry, but terminality is not enforced: a later vendor webhook
// may still overwrite the state (last write wins).
const (
	SessionStateScheduled       SessionState = "scheduled"
	SessionStateConnecting      SessionState = "connecting"
	SessionStateConnected       SessionState = "connected"
	SessionStateAttending       SessionState = "attending"
	SessionStateWaitingForEntry SessionState = "waiting_for_entry"
	SessionStateDisconnected    SessionState = "disconnected"
	SessionStateFailedEntry     SessionState = "failed_entry"
	SessionStateFailed          SessionState = "failed"
	SessionStateCancelled       SessionState = "cancelled"
	SessionStateCompleted       SessionState = "completed"
)

// MeetingState is the secondary, vendor-supplied state axis. The vocabulary
// is defined by the vendor and stored verbatim; no transitions are enforced.
type MeetingState string

const (
	MeetingStateDispatched        MeetingState = "dispatched"
	MeetingStateRecordingActive   MeetingState = "recording_active"
	MeetingStateWaitingForEntry   MeetingState = "waiting_for_entry"
	MeetingStateEntryDenied       MeetingState = "entry_denied"
	MeetingStateNoResponse        MeetingState = "no_response"
	MeetingStateKicked            MeetingState = "kicked"
	MeetingStateNoParticipants    MeetingState = "no_participants"
	MeetingStateNoMeetingActivity MeetingState = "no_meeting_activity"
	MeetingStateBadMeetingCode    MeetingState = "bad_meeting_code"
	MeetingStateAPIRequest        MeetingState = "api_request"
	MeetingStateInternalError     MeetingState = "internal_error"
	MeetingStateMeetingComplete   MeetingState = "meeting_complete"
	MeetingStateMeetingEnded      MeetingState = "meeting_ended"
)

// MeetingSettings controls what the vendor bot records and produces.
type MeetingSettings struct {
	AudioRecording        bool   `json:"audio_recording"`
	VideoRecording        bool   `json:"video_recording"`
	Transcription         bool   `json:"transcription"`
	Summary               bool   `json:"summary"`
	ActionItems           bool   `json:"action_items"`
	SummaryInstructions   string `json:"summary_instructions,omitempty"`
	ActionItemInstruction string `json:"action_item_instructions,omitempty"`
}

// NotetakerSession is the local record of one notetaker bot's lifecycle for
// one meeting. NotetakerID is the vendor-assigned identity and the store key.
type NotetakerSession struct {
	UID         string `json:"uid"`
	NotetakerID string `json:"notetaker_id"`

	MeetingLink     string     `json:"meeting_link"`
	MeetingProvider string     `json:"meeting_provider"`
	Name            string     `json:"name"`
	JoinTime        *time.Time `json:"join_time,omitempty"`

	State        SessionState `json:"state"`
	MeetingState MeetingState `json:"meeting_state,omitempty"`

	MeetingSettings MeetingSettings `json:"meeting_settings"`

	// Vendor metadata, populated opportunistically from webhook payloads.
	GrantID    string `json:"grant_id,omitempty"`
	CalendarID string `json:"calendar_id,omitempty"`
	EventID    string `json:"event_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTerminal reports whether the session state is a terminal one. Used for
// reporting only; webhook handlers deliberately do not gate on it.
func (s *NotetakerSession) IsTerminal() bool {
	switch s.State {
	case SessionStateCompleted, SessionStateCancelled, SessionStateFailed, SessionStateFailedEntry:
		return true
	default:
		return false
	}
}

// Tags generates a consistent set of tags for session log/search metadata.
func (s *NotetakerSession) Tags() []string {
	if s == nil {
		return nil
	}

	tags := []string{}
	if s.UID != "" {
		tags = append(tags, s.UID, "session_uid:"+s.UID)
	}
	if s.NotetakerID != "" {
		tags = append(tags, "notetaker_id:"+s.NotetakerID)
	}
	if s.MeetingProvider != "" {
		tags = append(tags, "meeting_provider:"+s.MeetingProvider)
	}
	if s.State != "" {
		tags = append(tags, "state:"+string(s.State))
	}
	return tags
}
