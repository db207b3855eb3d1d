// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// NotetakerStatePayload is the typed payload shape shared by the
// notetaker.created, notetaker.updated, notetaker.meeting_state and
// notetaker.deleted vendor events. Field presence varies by event type, so
// everything is optional except the notetaker ID.
type NotetakerStatePayload struct {
	ID           string `json:"id"`
	NotetakerID  string `json:"notetaker_id"`
	State        string `json:"state"`
	MeetingState string `json:"meeting_state"`
	MeetingLink  string `json:"meeting_link"`
	Name         string `json:"name"`

	// Vendor calendar metadata, present on meeting_state events.
	GrantID    string `json:"grant_id"`
	CalendarID string `json:"calendar_id"`
	EventID    string `json:"event_id"`
}

// Notetaker returns the correlating notetaker ID, accepting either the
// vendor's bare "id" field or an explicit "notetaker_id".
func (p *NotetakerStatePayload) Notetaker() string {
	if p.NotetakerID != "" {
		return p.NotetakerID
	}
	return p.ID
}

// NotetakerMediaPayload is the typed payload of a notetaker.media event.
type NotetakerMediaPayload struct {
	ID          string `json:"id"`
	NotetakerID string `json:"notetaker_id"`
	MediaType   string `json:"media_type"`
	MediaURL    string `json:"media_url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	Duration    int    `json:"duration"`

	Participants []string `json:"participants"`
}

// Notetaker returns the correlating notetaker ID, accepting either the
// vendor's bare "id" field or an explicit "notetaker_id".
func (p *NotetakerMediaPayload) Notetaker() string {
	if p.NotetakerID != "" {
		return p.NotetakerID
	}
	return p.ID
}

// decodePayload narrows the untyped vendor payload into out, matching keys
// by json tag. Unknown keys are ignored for forward compatibility with new
// vendor payload fields.
func decodePayload(payload map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create payload decoder: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}

// ToStatePayload converts the webhook event message to a typed state payload.
func (m *WebhookEventMessage) ToStatePayload() (*NotetakerStatePayload, error) {
	var payload NotetakerStatePayload
	if err := decodePayload(m.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ToMediaPayload converts the webhook event message to a typed media payload.
func (m *WebhookEventMessage) ToMediaPayload() (*NotetakerMediaPayload, error) {
	if m.EventType != "notetaker.media" {
		return nil, fmt.Errorf("invalid event type: expected notetaker.media, got %s", m.EventType)
	}

	var payload NotetakerMediaPayload
	if err := decodePayload(m.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NotetakerIDFromPayload extracts the correlating notetaker ID from a raw
// vendor payload, or returns empty when the payload carries none.
func NotetakerIDFromPayload(payload map[string]any) string {
	if id, ok := payload["notetaker_id"].(string); ok && id != "" {
		return id
	}
	if id, ok := payload["id"].(string); ok {
		return id
	}
	return ""
}
