// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseActionItem(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ParsedActionItem
	}{
		{
			name:  "full encoding",
			input: "Send the grant report (Dana - 2026-09-12)",
			expected: ParsedActionItem{
				Task:     "Send the grant report",
				Assignee: "Dana",
				DueDate:  "2026-09-12",
			},
		},
		{
			name:  "spacing variations",
			input: "Book the venue (Sam-Friday)",
			expected: ParsedActionItem{
				Task:     "Book the venue",
				Assignee: "Sam",
				DueDate:  "Friday",
			},
		},
		{
			name:     "no parenthetical falls back to bare task",
			input:    "Follow up with the volunteers",
			expected: ParsedActionItem{Task: "Follow up with the volunteers"},
		},
		{
			name:     "parenthetical without separator stays in the task",
			input:    "Review budget (urgent)",
			expected: ParsedActionItem{Task: "Review budget (urgent)"},
		},
		{
			name:     "leading and trailing whitespace trimmed",
			input:    "  Update the website ( Alex - next week ) ",
			expected: ParsedActionItem{Task: "Update the website", Assignee: "Alex", DueDate: "next week"},
		},
		{
			name:  "mid-string parenthetical is part of the task",
			input: "Check the (old) ledger (Pat - Monday)",
			expected: ParsedActionItem{
				Task:     "Check the (old) ledger",
				Assignee: "Pat",
				DueDate:  "Monday",
			},
		},
		{
			name:     "empty string",
			input:    "",
			expected: ParsedActionItem{Task: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseActionItem(tt.input))
		})
	}
}
