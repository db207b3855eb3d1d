// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/impactops/notetaker-service/internal/domain/models"
)

// NatsTaskRepository implements domain.TaskRepository using the NATS KV store.
type NatsTaskRepository struct {
	*NatsBaseRepository[models.Task]
}

// NewNatsTaskRepository creates a new task repository
func NewNatsTaskRepository(kvStore INatsKeyValue) *NatsTaskRepository {
	return &NatsTaskRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Task](kvStore, "task"),
	}
}

// CreateTask creates a new task
func (r *NatsTaskRepository) CreateTask(ctx context.Context, task *models.Task) error {
	return r.NatsBaseRepository.CreateIfAbsent(ctx, task.UID, task)
}

// GetTask retrieves a task by UID
func (r *NatsTaskRepository) GetTask(ctx context.Context, taskUID string) (*models.Task, error) {
	return r.NatsBaseRepository.Get(ctx, taskUID)
}

// GetTaskWithRevision retrieves a task with its revision
func (r *NatsTaskRepository) GetTaskWithRevision(ctx context.Context, taskUID string) (*models.Task, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, taskUID)
}

// UpdateTask updates an existing task with optimistic concurrency control
func (r *NatsTaskRepository) UpdateTask(ctx context.Context, task *models.Task, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, task.UID, task, revision)
}

// DeleteTask removes a task with optimistic concurrency control
func (r *NatsTaskRepository) DeleteTask(ctx context.Context, taskUID string, revision uint64) error {
	return r.NatsBaseRepository.Delete(ctx, taskUID, revision)
}

// ListAllTasks retrieves all tasks
func (r *NatsTaskRepository) ListAllTasks(ctx context.Context) ([]*models.Task, error) {
	return r.NatsBaseRepository.ListEntities(ctx)
}
