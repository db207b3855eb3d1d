// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMeetingProvider(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		expected string
	}{
		{name: "zoom", link: "https://us02web.zoom.us/j/123456789", expected: ProviderZoom},
		{name: "google meet", link: "https://meet.google.com/abc-defg-hij", expected: ProviderGoogle},
		{name: "teams", link: "https://teams.microsoft.com/l/meetup-join/xyz", expected: ProviderTeams},
		{name: "teams live", link: "https://teams.live.com/meet/12345", expected: ProviderTeams},
		{name: "webex", link: "https://impactops.webex.com/meet/dana", expected: ProviderWebex},
		{name: "unrecognized host", link: "https://example.com/meeting", expected: ProviderUnknown},
		{name: "no host", link: "not-a-url", expected: ProviderUnknown},
		{name: "empty", link: "", expected: ProviderUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractMeetingProvider(tt.link))
		})
	}
}
