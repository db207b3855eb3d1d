// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package utils

import (
	"net/url"
	"strings"
)

// Meeting providers recognized from meeting links.
const (
	ProviderZoom    = "zoom"
	ProviderGoogle  = "google_meet"
	ProviderTeams   = "microsoft_teams"
	ProviderWebex   = "webex"
	ProviderUnknown = "unknown"
)

// ExtractMeetingProvider derives the meeting provider from a meeting link's
// host. Unparseable links and unrecognized hosts return ProviderUnknown.
func ExtractMeetingProvider(meetingLink string) string {
	parsed, err := url.Parse(meetingLink)
	if err != nil || parsed.Host == "" {
		return ProviderUnknown
	}

	host := strings.ToLower(parsed.Host)
	switch {
	case strings.Contains(host, "zoom.us"):
		return ProviderZoom
	case strings.Contains(host, "meet.google.com"):
		return ProviderGoogle
	case strings.Contains(host, "teams.microsoft.com") || strings.Contains(host, "teams.live.com"):
		return ProviderTeams
	case strings.Contains(host, "webex.com"):
		return ProviderWebex
	default:
		return ProviderUnknown
	}
}
