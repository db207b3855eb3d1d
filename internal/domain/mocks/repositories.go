// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

// Package mocks provides function-field mock implementations of the domain
// interfaces for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/models"
)

// MockWebhookEventRepository is an in-memory mock of the webhook event store.
// Unset function fields fall back to the in-memory map.
type MockWebhookEventRepository struct {
	mu     sync.Mutex
	events map[string]*models.WebhookEvent

	CreateIfAbsentFunc              func(ctx context.Context, event *models.WebhookEvent) error
	GetWebhookEventFunc             func(ctx context.Context, eventID string) (*models.WebhookEvent, error)
	GetWebhookEventWithRevisionFunc func(ctx context.Context, eventID string) (*models.WebhookEvent, uint64, error)
	UpdateWebhookEventFunc          func(ctx context.Context, event *models.WebhookEvent, revision uint64) error
	ListAllWebhookEventsFunc        func(ctx context.Context) ([]*models.WebhookEvent, error)
}

// NewMockWebhookEventRepository creates a new mock webhook event repository.
func NewMockWebhookEventRepository() *MockWebhookEventRepository {
	return &MockWebhookEventRepository{
		events: make(map[string]*models.WebhookEvent),
	}
}

var _ domain.WebhookEventRepository = (*MockWebhookEventRepository)(nil)

func (m *MockWebhookEventRepository) CreateIfAbsent(ctx context.Context, event *models.WebhookEvent) error {
	if m.CreateIfAbsentFunc != nil {
		return m.CreateIfAbsentFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[event.EventID]; ok {
		return domain.NewConflictError("webhook event already exists")
	}
	m.events[event.EventID] = event
	return nil
}

func (m *MockWebhookEventRepository) GetWebhookEvent(ctx context.Context, eventID string) (*models.WebhookEvent, error) {
	if m.GetWebhookEventFunc != nil {
		return m.GetWebhookEventFunc(ctx, eventID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[eventID]
	if !ok {
		return nil, domain.NewNotFoundError("webhook event not found")
	}
	return event, nil
}

func (m *MockWebhookEventRepository) GetWebhookEventWithRevision(ctx context.Context, eventID string) (*models.WebhookEvent, uint64, error) {
	if m.GetWebhookEventWithRevisionFunc != nil {
		return m.GetWebhookEventWithRevisionFunc(ctx, eventID)
	}
	event, err := m.GetWebhookEvent(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}
	return event, 1, nil
}

func (m *MockWebhookEventRepository) UpdateWebhookEvent(ctx context.Context, event *models.WebhookEvent, revision uint64) error {
	if m.UpdateWebhookEventFunc != nil {
		return m.UpdateWebhookEventFunc(ctx, event, revision)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[event.EventID]; !ok {
		return domain.NewNotFoundError("webhook event not found")
	}
	m.events[event.EventID] = event
	return nil
}

func (m *MockWebhookEventRepository) ListAllWebhookEvents(ctx context.Context) ([]*models.WebhookEvent, error) {
	if m.ListAllWebhookEventsFunc != nil {
		return m.ListAllWebhookEventsFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]*models.WebhookEvent, 0, len(m.events))
	for _, event := range m.events {
		events = append(events, event)
	}
	return events, nil
}

// MockSessionRepository is an in-memory mock of the session store.
type MockSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*models.NotetakerSession

	CreateSessionFunc          func(ctx context.Context, session *models.NotetakerSession) error
	SessionExistsFunc          func(ctx context.Context, notetakerID string) (bool, error)
	GetSessionFunc             func(ctx context.Context, notetakerID string) (*models.NotetakerSession, error)
	GetSessionWithRevisionFunc func(ctx context.Context, notetakerID string) (*models.NotetakerSession, uint64, error)
	UpdateSessionFunc          func(ctx context.Context, session *models.NotetakerSession, revision uint64) error
	ListAllSessionsFunc        func(ctx context.Context) ([]*models.NotetakerSession, error)
}

// NewMockSessionRepository creates a new mock session repository.
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions: make(map[string]*models.NotetakerSession),
	}
}

var _ domain.SessionRepository = (*MockSessionRepository)(nil)

func (m *MockSessionRepository) CreateSession(ctx context.Context, session *models.NotetakerSession) error {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.NotetakerID] = session
	return nil
}

func (m *MockSessionRepository) SessionExists(ctx context.Context, notetakerID string) (bool, error) {
	if m.SessionExistsFunc != nil {
		return m.SessionExistsFunc(ctx, notetakerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[notetakerID]
	return ok, nil
}

func (m *MockSessionRepository) GetSession(ctx context.Context, notetakerID string) (*models.NotetakerSession, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, notetakerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[notetakerID]
	if !ok {
		return nil, domain.NewNotFoundError("session not found")
	}
	return session, nil
}

func (m *MockSessionRepository) GetSessionWithRevision(ctx context.Context, notetakerID string) (*models.NotetakerSession, uint64, error) {
	if m.GetSessionWithRevisionFunc != nil {
		return m.GetSessionWithRevisionFunc(ctx, notetakerID)
	}
	session, err := m.GetSession(ctx, notetakerID)
	if err != nil {
		return nil, 0, err
	}
	return session, 1, nil
}

func (m *MockSessionRepository) UpdateSession(ctx context.Context, session *models.NotetakerSession, revision uint64) error {
	if m.UpdateSessionFunc != nil {
		return m.UpdateSessionFunc(ctx, session, revision)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[session.NotetakerID]; !ok {
		return domain.NewNotFoundError("session not found")
	}
	m.sessions[session.NotetakerID] = session
	return nil
}

func (m *MockSessionRepository) ListAllSessions(ctx context.Context) ([]*models.NotetakerSession, error) {
	if m.ListAllSessionsFunc != nil {
		return m.ListAllSessionsFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sessions := make([]*models.NotetakerSession, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// MockTranscriptRepository is an in-memory mock of the transcript store.
type MockTranscriptRepository struct {
	mu          sync.Mutex
	transcripts map[string]*models.Transcript

	CreateTranscriptFunc          func(ctx context.Context, transcript *models.Transcript) error
	GetTranscriptFunc             func(ctx context.Context, notetakerID string) (*models.Transcript, error)
	GetTranscriptWithRevisionFunc func(ctx context.Context, notetakerID string) (*models.Transcript, uint64, error)
	UpdateTranscriptFunc          func(ctx context.Context, transcript *models.Transcript, revision uint64) error
	ListAllTranscriptsFunc        func(ctx context.Context) ([]*models.Transcript, error)
}

// NewMockTranscriptRepository creates a new mock transcript repository.
func NewMockTranscriptRepository() *MockTranscriptRepository {
	return &MockTranscriptRepository{
		transcripts: make(map[string]*models.Transcript),
	}
}

var _ domain.TranscriptRepository = (*MockTranscriptRepository)(nil)

func (m *MockTranscriptRepository) CreateTranscript(ctx context.Context, transcript *models.Transcript) error {
	if m.CreateTranscriptFunc != nil {
		return m.CreateTranscriptFunc(ctx, transcript)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcripts[transcript.NotetakerID] = transcript
	return nil
}

func (m *MockTranscriptRepository) GetTranscript(ctx context.Context, notetakerID string) (*models.Transcript, error) {
	if m.GetTranscriptFunc != nil {
		return m.GetTranscriptFunc(ctx, notetakerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	transcript, ok := m.transcripts[notetakerID]
	if !ok {
		return nil, domain.NewNotFoundError("transcript not found")
	}
	return transcript, nil
}

func (m *MockTranscriptRepository) GetTranscriptWithRevision(ctx context.Context, notetakerID string) (*models.Transcript, uint64, error) {
	if m.GetTranscriptWithRevisionFunc != nil {
		return m.GetTranscriptWithRevisionFunc(ctx, notetakerID)
	}
	transcript, err := m.GetTranscript(ctx, notetakerID)
	if err != nil {
		return nil, 0, err
	}
	return transcript, 1, nil
}

func (m *MockTranscriptRepository) UpdateTranscript(ctx context.Context, transcript *models.Transcript, revision uint64) error {
	if m.UpdateTranscriptFunc != nil {
		return m.UpdateTranscriptFunc(ctx, transcript, revision)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transcripts[transcript.NotetakerID]; !ok {
		return domain.NewNotFoundError("transcript not found")
	}
	m.transcripts[transcript.NotetakerID] = transcript
	return nil
}

func (m *MockTranscriptRepository) ListAllTranscripts(ctx context.Context) ([]*models.Transcript, error) {
	if m.ListAllTranscriptsFunc != nil {
		return m.ListAllTranscriptsFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	transcripts := make([]*models.Transcript, 0, len(m.transcripts))
	for _, transcript := range m.transcripts {
		transcripts = append(transcripts, transcript)
	}
	return transcripts, nil
}

// MockTaskRepository is an in-memory mock of the task store.
type MockTaskRepository struct {
	mu    sync.Mutex
	tasks map[string]*models.Task

	CreateTaskFunc          func(ctx context.Context, task *models.Task) error
	GetTaskFunc             func(ctx context.Context, taskUID string) (*models.Task, error)
	GetTaskWithRevisionFunc func(ctx context.Context, taskUID string) (*models.Task, uint64, error)
	UpdateTaskFunc          func(ctx context.Context, task *models.Task, revision uint64) error
	DeleteTaskFunc          func(ctx context.Context, taskUID string, revision uint64) error
	ListAllTasksFunc        func(ctx context.Context) ([]*models.Task, error)
}

// NewMockTaskRepository creates a new mock task repository.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		tasks: make(map[string]*models.Task),
	}
}

var _ domain.TaskRepository = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) CreateTask(ctx context.Context, task *models.Task) error {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, task)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.UID] = task
	return nil
}

func (m *MockTaskRepository) GetTask(ctx context.Context, taskUID string) (*models.Task, error) {
	if m.GetTaskFunc != nil {
		return m.GetTaskFunc(ctx, taskUID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskUID]
	if !ok {
		return nil, domain.NewNotFoundError("task not found")
	}
	return task, nil
}

func (m *MockTaskRepository) GetTaskWithRevision(ctx context.Context, taskUID string) (*models.Task, uint64, error) {
	if m.GetTaskWithRevisionFunc != nil {
		return m.GetTaskWithRevisionFunc(ctx, taskUID)
	}
	task, err := m.GetTask(ctx, taskUID)
	if err != nil {
		return nil, 0, err
	}
	return task, 1, nil
}

func (m *MockTaskRepository) UpdateTask(ctx context.Context, task *models.Task, revision uint64) error {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, task, revision)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.UID]; !ok {
		return domain.NewNotFoundError("task not found")
	}
	m.tasks[task.UID] = task
	return nil
}

func (m *MockTaskRepository) DeleteTask(ctx context.Context, taskUID string, revision uint64) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, taskUID, revision)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[taskUID]; !ok {
		return domain.NewNotFoundError("task not found")
	}
	delete(m.tasks, taskUID)
	return nil
}

func (m *MockTaskRepository) ListAllTasks(ctx context.Context) ([]*models.Task, error) {
	if m.ListAllTasksFunc != nil {
		return m.ListAllTasksFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := make([]*models.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// MockInsightRepository is an in-memory mock of the insight store.
type MockInsightRepository struct {
	mu        sync.Mutex
	insights  map[string]*models.Insight
	solutions map[string][]*models.Solution

	CreateInsightFunc          func(ctx context.Context, insight *models.Insight) error
	GetInsightFunc             func(ctx context.Context, insightUID string) (*models.Insight, error)
	ListAllInsightsFunc        func(ctx context.Context) ([]*models.Insight, error)
	CreateSolutionFunc         func(ctx context.Context, solution *models.Solution) error
	ListSolutionsByInsightFunc func(ctx context.Context, insightUID string) ([]*models.Solution, error)
}

// NewMockInsightRepository creates a new mock insight repository.
func NewMockInsightRepository() *MockInsightRepository {
	return &MockInsightRepository{
		insights:  make(map[string]*models.Insight),
		solutions: make(map[string][]*models.Solution),
	}
}

var _ domain.InsightRepository = (*MockInsightRepository)(nil)

func (m *MockInsightRepository) CreateInsight(ctx context.Context, insight *models.Insight) error {
	if m.CreateInsightFunc != nil {
		return m.CreateInsightFunc(ctx, insight)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insights[insight.UID] = insight
	return nil
}

func (m *MockInsightRepository) GetInsight(ctx context.Context, insightUID string) (*models.Insight, error) {
	if m.GetInsightFunc != nil {
		return m.GetInsightFunc(ctx, insightUID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	insight, ok := m.insights[insightUID]
	if !ok {
		return nil, domain.NewNotFoundError("insight not found")
	}
	return insight, nil
}

func (m *MockInsightRepository) ListAllInsights(ctx context.Context) ([]*models.Insight, error) {
	if m.ListAllInsightsFunc != nil {
		return m.ListAllInsightsFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	insights := make([]*models.Insight, 0, len(m.insights))
	for _, insight := range m.insights {
		insights = append(insights, insight)
	}
	return insights, nil
}

func (m *MockInsightRepository) CreateSolution(ctx context.Context, solution *models.Solution) error {
	if m.CreateSolutionFunc != nil {
		return m.CreateSolutionFunc(ctx, solution)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.solutions[solution.InsightID] = append(m.solutions[solution.InsightID], solution)
	return nil
}

func (m *MockInsightRepository) ListSolutionsByInsight(ctx context.Context, insightUID string) ([]*models.Solution, error) {
	if m.ListSolutionsByInsightFunc != nil {
		return m.ListSolutionsByInsightFunc(ctx, insightUID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.solutions[insightUID], nil
}
