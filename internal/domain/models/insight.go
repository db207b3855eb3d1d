// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// Insight is an LLM-derived summary of a recurring organizational issue
// across many meetings.
type Insight struct {
	UID        string `json:"uid"`
	IssueTitle string `json:"issue_title"`
	// Score ranges 0-100 and reflects how pressing the issue appears.
	Score             int        `json:"score"`
	Rationale         string     `json:"rationale,omitempty"`
	OccurrenceCount   int        `json:"occurrence_count"`
	FirstSeenDate     *time.Time `json:"first_seen_date,omitempty"`
	LastSeenDate      *time.Time `json:"last_seen_date,omitempty"`
	RelatedMeetingIDs []string   `json:"related_meeting_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Solution is an LLM-brainstormed remedy for one insight.
type Solution struct {
	UID            string   `json:"uid"`
	InsightID      string   `json:"insight_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	ExpectedImpact string   `json:"expected_impact,omitempty"`
	NextSteps      []string `json:"next_steps,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
