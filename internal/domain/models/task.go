// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// TaskStatus is the workflow status of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskPriority is the priority of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task is a tracked action item with its own lifecycle, created either by
// parsing a transcript action-item string or directly by a user.
type Task struct {
	UID         string       `json:"uid"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Assignee    string       `json:"assignee,omitempty"`
	DueDate     string       `json:"due_date,omitempty"`

	MeetingID    string `json:"meeting_id,omitempty"`
	TranscriptID string `json:"transcript_id,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SetStatus transitions the task status, maintaining the invariant that
// CompletedAt is set exactly when the status becomes completed and cleared
// otherwise.
func (t *Task) SetStatus(status TaskStatus, now time.Time) {
	t.Status = status
	if status == TaskStatusCompleted {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}
