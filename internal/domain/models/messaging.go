// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package models

// NATS subjects used by the notetaker service.
const (
	// NotetakerWebhookCreatedSubject carries notetaker.created vendor events.
	NotetakerWebhookCreatedSubject = "impactops.webhook.notetaker.created"

	// NotetakerWebhookUpdatedSubject carries notetaker.updated vendor events.
	NotetakerWebhookUpdatedSubject = "impactops.webhook.notetaker.updated"

	// NotetakerWebhookMeetingStateSubject carries notetaker.meeting_state vendor events.
	NotetakerWebhookMeetingStateSubject = "impactops.webhook.notetaker.meeting_state"

	// NotetakerWebhookDeletedSubject carries notetaker.deleted vendor events.
	NotetakerWebhookDeletedSubject = "impactops.webhook.notetaker.deleted"

	// NotetakerWebhookMediaSubject carries notetaker.media vendor events.
	NotetakerWebhookMediaSubject = "impactops.webhook.notetaker.media"
)

// NotetakerServiceQueue is the NATS queue group for the webhook consumers so
// that horizontally scaled replicas split the work.
const NotetakerServiceQueue = "notetaker-service"

// WebhookEventMessage is the schema for vendor webhook events sent via NATS
// for async processing. EventID refers back to the persisted WebhookEvent
// row so the consumer can finalize it after dispatch.
type WebhookEventMessage struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	Payload   map[string]any `json:"payload"`
}

// WebhookEventSubject maps a vendor event type to its NATS subject. The
// empty string means the event type is unknown; unknown types are accepted
// and recorded but not dispatched.
func WebhookEventSubject(eventType string) string {
	switch eventType {
	case "notetaker.created":
		return NotetakerWebhookCreatedSubject
	case "notetaker.updated":
		return NotetakerWebhookUpdatedSubject
	case "notetaker.meeting_state":
		return NotetakerWebhookMeetingStateSubject
	case "notetaker.deleted":
		return NotetakerWebhookDeletedSubject
	case "notetaker.media":
		return NotetakerWebhookMediaSubject
	}
	return ""
}
