// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/models"
	"github.com/impactops/notetaker-service/internal/logging"
	"github.com/impactops/notetaker-service/internal/utils"
)

// TaskService tracks action items as tasks with their own lifecycle,
// independent of the transcripts they came from.
type TaskService struct {
	TaskRepository       domain.TaskRepository
	TranscriptRepository domain.TranscriptRepository
	Notifier             domain.Notifier
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskRepository domain.TaskRepository,
	transcriptRepository domain.TranscriptRepository,
	notifier domain.Notifier,
) *TaskService {
	return &TaskService{
		TaskRepository:       taskRepository,
		TranscriptRepository: transcriptRepository,
		Notifier:             notifier,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *TaskService) ServiceReady() bool {
	return s.TaskRepository != nil && s.TranscriptRepository != nil && s.Notifier != nil
}

// CreateTaskRequest is the input for creating one task directly.
type CreateTaskRequest struct {
	Title        string              `json:"title"`
	Description  string              `json:"description,omitempty"`
	Priority     models.TaskPriority `json:"priority,omitempty"`
	Assignee     string              `json:"assignee,omitempty"`
	DueDate      string              `json:"due_date,omitempty"`
	MeetingID    string              `json:"meeting_id,omitempty"`
	TranscriptID string              `json:"transcript_id,omitempty"`
}

// CreateTask creates one task from explicit user input.
func (s *TaskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("task service not initialized")
	}
	if req.Title == "" {
		return nil, domain.NewValidationError("task title is required")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	now := time.Now().UTC()
	task := &models.Task{
		UID:          uuid.New().String(),
		Title:        req.Title,
		Description:  req.Description,
		Status:       models.TaskStatusTodo,
		Priority:     priority,
		Assignee:     req.Assignee,
		DueDate:      req.DueDate,
		MeetingID:    req.MeetingID,
		TranscriptID: req.TranscriptID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.TaskRepository.CreateTask(ctx, task); err != nil {
		slog.ErrorContext(ctx, "failed to create task", logging.ErrKey, err)
		return nil, err
	}

	s.Notifier.Emit(NotificationTaskUpdated, task)

	return task, nil
}

// CreateTasksFromTranscript parses the transcript's action-item strings and
// creates one task per item. Items without a parseable assignee or due date
// become bare tasks.
func (s *TaskService) CreateTasksFromTranscript(ctx context.Context, notetakerID string) ([]*models.Task, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("task service not initialized")
	}

	transcript, err := s.TranscriptRepository.GetTranscript(ctx, notetakerID)
	if err != nil {
		return nil, err
	}
	if len(transcript.ActionItems) == 0 {
		return nil, domain.NewValidationError("transcript has no action items")
	}

	tasks := make([]*models.Task, 0, len(transcript.ActionItems))
	now := time.Now().UTC()
	for _, item := range transcript.ActionItems {
		parsed := utils.ParseActionItem(item)
		if parsed.Task == "" {
			continue
		}

		task := &models.Task{
			UID:          uuid.New().String(),
			Title:        parsed.Task,
			Status:       models.TaskStatusTodo,
			Priority:     models.TaskPriorityMedium,
			Assignee:     parsed.Assignee,
			DueDate:      parsed.DueDate,
			TranscriptID: transcript.UID,
			MeetingID:    transcript.SessionUID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.TaskRepository.CreateTask(ctx, task); err != nil {
			slog.ErrorContext(ctx, "failed to create task from action item", logging.ErrKey, err,
				"notetaker_id", notetakerID)
			return nil, err
		}
		tasks = append(tasks, task)
	}

	slog.InfoContext(ctx, "tasks created from transcript",
		"notetaker_id", notetakerID, "count", len(tasks))

	s.Notifier.Emit(NotificationTaskUpdated, tasks)

	return tasks, nil
}

// UpdateTaskRequest is the input for mutating one task. Nil fields are left
// unchanged.
type UpdateTaskRequest struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Status      *models.TaskStatus   `json:"status,omitempty"`
	Priority    *models.TaskPriority `json:"priority,omitempty"`
	Assignee    *string              `json:"assignee,omitempty"`
	DueDate     *string              `json:"due_date,omitempty"`
}

// UpdateTask applies a partial update. Status transitions maintain the
// CompletedAt invariant.
func (s *TaskService) UpdateTask(ctx context.Context, taskUID string, req UpdateTaskRequest) (*models.Task, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("task service not initialized")
	}

	task, revision, err := s.TaskRepository.GetTaskWithRevision(ctx, taskUID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.SetStatus(*req.Status, now)
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Assignee != nil {
		task.Assignee = *req.Assignee
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	task.UpdatedAt = now

	if err := s.TaskRepository.UpdateTask(ctx, task, revision); err != nil {
		return nil, err
	}

	s.Notifier.Emit(NotificationTaskUpdated, task)

	return task, nil
}

// GetTask fetches one task.
func (s *TaskService) GetTask(ctx context.Context, taskUID string) (*models.Task, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("task service not initialized")
	}
	return s.TaskRepository.GetTask(ctx, taskUID)
}

// ListTasks fetches all tasks.
func (s *TaskService) ListTasks(ctx context.Context) ([]*models.Task, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("task service not initialized")
	}
	return s.TaskRepository.ListAllTasks(ctx)
}

// DeleteTask removes one task.
func (s *TaskService) DeleteTask(ctx context.Context, taskUID string) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("task service not initialized")
	}

	_, revision, err := s.TaskRepository.GetTaskWithRevision(ctx, taskUID)
	if err != nil {
		return err
	}
	if err := s.TaskRepository.DeleteTask(ctx, taskUID, revision); err != nil {
		return err
	}

	s.Notifier.Emit(NotificationTaskUpdated, map[string]string{"deleted": taskUID})

	return nil
}
