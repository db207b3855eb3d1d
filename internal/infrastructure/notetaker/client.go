// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

// Package notetaker contains the HTTP client for the meeting-bot vendor API.
package notetaker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/models"
	"github.com/impactops/notetaker-service/internal/logging"
)

const (
	// DefaultBaseURL is the base URL for the vendor notetaker API.
	DefaultBaseURL = "https://api.notetaker.dev/v1"
	// DefaultClientTimeout bounds every vendor HTTP call, including
	// artifact downloads.
	DefaultClientTimeout = 30 * time.Second
)

// Config holds the configuration for the vendor client.
type Config struct {
	APIKey string
	// Optional: override base URL for testing
	BaseURL string
	// Optional: override timeout for HTTP requests
	Timeout time.Duration
}

// Client is the vendor meeting-bot API client.
type Client struct {
	httpClient *http.Client
	config     Config
}

// Ensure that Client implements the domain provider interface
var _ domain.NotetakerProvider = (*Client)(nil)

// NewClient creates a new vendor API client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// inviteRequest is the vendor's notetaker creation request body.
type inviteRequest struct {
	MeetingLink     string                 `json:"meeting_link"`
	Name            string                 `json:"name,omitempty"`
	MeetingSettings models.MeetingSettings `json:"meeting_settings"`
}

// notetakerResponse is the vendor's notetaker resource representation.
type notetakerResponse struct {
	ID              string                 `json:"id"`
	State           string                 `json:"state"`
	MeetingState    string                 `json:"meeting_state"`
	MeetingLink     string                 `json:"meeting_link"`
	Name            string                 `json:"name"`
	GrantID         string                 `json:"grant_id"`
	CalendarID      string                 `json:"calendar_id"`
	EventID         string                 `json:"event_id"`
	MeetingSettings models.MeetingSettings `json:"meeting_settings"`
}

// InviteNotetaker asks the vendor to send a bot to the meeting link.
func (c *Client) InviteNotetaker(ctx context.Context, meetingLink, name string, settings models.MeetingSettings) (string, string, error) {
	body := inviteRequest{
		MeetingLink:     meetingLink,
		Name:            name,
		MeetingSettings: settings,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/notetakers", body)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var notetaker notetakerResponse
	if err := json.NewDecoder(resp.Body).Decode(&notetaker); err != nil {
		return "", "", domain.NewInternalError("failed to decode vendor notetaker response", err)
	}
	if notetaker.ID == "" {
		return "", "", domain.NewInternalError("vendor notetaker response missing ID")
	}

	slog.InfoContext(ctx, "invited notetaker", "notetaker_id", notetaker.ID, "state", notetaker.State)
	return notetaker.ID, notetaker.State, nil
}

// CancelNotetaker cancels a scheduled notetaker on the vendor side.
func (c *Client) CancelNotetaker(ctx context.Context, notetakerID string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/notetakers/"+notetakerID, nil)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}

// LeaveMeeting tells an attending notetaker to leave its meeting.
func (c *Client) LeaveMeeting(ctx context.Context, notetakerID string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/notetakers/"+notetakerID+"/leave", nil)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}

// GetNotetaker fetches the vendor's view of a notetaker.
func (c *Client) GetNotetaker(ctx context.Context, notetakerID string) (*models.NotetakerStatePayload, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/notetakers/"+notetakerID, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var notetaker notetakerResponse
	if err := json.NewDecoder(resp.Body).Decode(&notetaker); err != nil {
		return nil, domain.NewInternalError("failed to decode vendor notetaker response", err)
	}

	return &models.NotetakerStatePayload{
		ID:           notetaker.ID,
		State:        notetaker.State,
		MeetingState: notetaker.MeetingState,
		MeetingLink:  notetaker.MeetingLink,
		Name:         notetaker.Name,
		GrantID:      notetaker.GrantID,
		CalendarID:   notetaker.CalendarID,
		EventID:      notetaker.EventID,
	}, nil
}

// DownloadArtifact performs an authenticated fetch of a vendor-hosted
// artifact URL and returns the body as text.
func (c *Client) DownloadArtifact(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", domain.NewInternalError("failed to create artifact request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "artifact download failed", logging.ErrKey, err, "url", url)
		return "", domain.NewInternalError("artifact download failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", mapStatusError(resp.StatusCode, fmt.Sprintf("artifact download returned status %d: %s", resp.StatusCode, body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewInternalError("failed to read artifact body", err)
	}

	return string(data), nil
}

// doRequest performs an authenticated request against the vendor API and
// maps non-2xx statuses onto the domain error taxonomy. User-initiated
// vendor actions are deliberately not retried here.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, domain.NewInternalError("failed to marshal request body", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, bodyReader)
	if err != nil {
		return nil, domain.NewInternalError("failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	slog.DebugContext(ctx, "making vendor API request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "vendor API request failed", logging.ErrKey, err, "method", method, "path", path)
		return nil, domain.NewUnavailableError("vendor API request failed", err)
	}

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		slog.ErrorContext(ctx, "vendor API returned error status",
			"method", method, "path", path, "status", resp.StatusCode, "body", string(respBody))
		return nil, mapStatusError(resp.StatusCode, fmt.Sprintf("vendor API %s %s returned status %d", method, path, resp.StatusCode))
	}

	return resp, nil
}

// mapStatusError maps a vendor HTTP status to the domain error taxonomy.
func mapStatusError(statusCode int, message string) error {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return domain.NewUnauthorizedError(message)
	case statusCode == http.StatusNotFound:
		return domain.NewNotFoundError(message)
	case statusCode == http.StatusTooManyRequests:
		return domain.NewRateLimitedError(message)
	case statusCode >= 400 && statusCode < 500:
		return domain.NewValidationError(message)
	default:
		return domain.NewInternalError(message)
	}
}
