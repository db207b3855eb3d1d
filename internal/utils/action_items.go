// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package utils

import (
	"regexp"
	"strings"
)

// actionItemPattern matches the denormalized action-item encoding
// "<task> (<assignee> - <dueDate>)".
// Pattern explanation:
// - ^(.+?) - the task text, non-greedy so the parenthetical is not swallowed
// - \(([^()-]+?)\s*-\s*([^()]+?)\) - "(assignee - dueDate)" with flexible spacing
// - \s*$ - the parenthetical must close the string
var actionItemPattern = regexp.MustCompile(`^(.+?)\s*\(([^()-]+?)\s*-\s*([^()]+?)\)\s*$`)

// ParsedActionItem is the structured form of one action-item string.
type ParsedActionItem struct {
	Task     string
	Assignee string
	DueDate  string
}

// ParseActionItem splits an action-item string into task, assignee and due
// date. Strings without a trailing "(assignee - date)" parenthetical come
// back as a bare task with empty assignee and due date.
func ParseActionItem(text string) ParsedActionItem {
	text = strings.TrimSpace(text)

	matches := actionItemPattern.FindStringSubmatch(text)
	if matches == nil {
		return ParsedActionItem{Task: text}
	}

	return ParsedActionItem{
		Task:     strings.TrimSpace(matches[1]),
		Assignee: strings.TrimSpace(matches[2]),
		DueDate:  strings.TrimSpace(matches[3]),
	}
}
