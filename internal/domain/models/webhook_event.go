// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// WebhookEvent is the durable record of one inbound vendor webhook delivery.
// Rows are append-only: they are created on receipt and finalized after
// dispatch, but never deleted, so the store doubles as an audit log.
type WebhookEvent struct {
	// EventID is the vendor-assigned delivery ID and the idempotency key.
	EventID     string         `json:"event_id"`
	EventType   string         `json:"event_type"`
	NotetakerID string         `json:"notetaker_id,omitempty"`
	Payload     map[string]any `json:"payload"`

	Processed    bool       `json:"processed"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	RetryCount   int        `json:"retry_count"`

	ReceivedAt time.Time `json:"received_at"`
}

// MarkProcessed finalizes the event after a successful dispatch.
func (e *WebhookEvent) MarkProcessed(now time.Time) {
	e.Processed = true
	e.ProcessedAt = &now
	e.ErrorMessage = ""
}

// MarkFailed records a handler failure without marking the event processed,
// leaving it inspectable for manual recovery.
func (e *WebhookEvent) MarkFailed(errMsg string) {
	e.Processed = false
	e.ErrorMessage = errMsg
	e.RetryCount++
}
