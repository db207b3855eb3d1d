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

// SessionService owns the notetaker session lifecycle: direct user actions
// against the vendor API and the webhook-driven state machine. State writes
// are last-write-wins; the vendor payload is trusted as source of truth and
// no transition table is enforced, so a terminal session can still be
// overwritten by a late in-flight webhook.
type SessionService struct {
	SessionRepository    domain.SessionRepository
	TranscriptRepository domain.TranscriptRepository
	NotetakerProvider    domain.NotetakerProvider
	Notifier             domain.Notifier
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	sessionRepository domain.SessionRepository,
	transcriptRepository domain.TranscriptRepository,
	notetakerProvider domain.NotetakerProvider,
	notifier domain.Notifier,
) *SessionService {
	return &SessionService{
		SessionRepository:    sessionRepository,
		TranscriptRepository: transcriptRepository,
		NotetakerProvider:    notetakerProvider,
		Notifier:             notifier,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *SessionService) ServiceReady() bool {
	return s.SessionRepository != nil &&
		s.TranscriptRepository != nil &&
		s.NotetakerProvider != nil &&
		s.Notifier != nil
}

// InviteRequest is the input for inviting a notetaker to a meeting.
type InviteRequest struct {
	MeetingLink     string                 `json:"meeting_link"`
	Name            string                 `json:"name"`
	JoinTime        *time.Time             `json:"join_time,omitempty"`
	MeetingSettings models.MeetingSettings `json:"meeting_settings"`
}

// InviteNotetaker asks the vendor to send a bot to the meeting and creates
// the local session plus an eagerly created transcript record.
func (s *SessionService) InviteNotetaker(ctx context.Context, req InviteRequest) (*models.NotetakerSession, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("session service not initialized")
	}
	if req.MeetingLink == "" {
		return nil, domain.NewValidationError("meeting link is required")
	}

	notetakerID, state, err := s.NotetakerProvider.InviteNotetaker(ctx, req.MeetingLink, req.Name, req.MeetingSettings)
	if err != nil {
		slog.ErrorContext(ctx, "vendor invite failed", logging.ErrKey, err,
			"meeting_link", req.MeetingLink)
		return nil, err
	}

	now := time.Now().UTC()
	session := &models.NotetakerSession{
		UID:             uuid.New().String(),
		NotetakerID:     notetakerID,
		MeetingLink:     req.MeetingLink,
		MeetingProvider: utils.ExtractMeetingProvider(req.MeetingLink),
		Name:            req.Name,
		JoinTime:        req.JoinTime,
		State:           models.SessionStateScheduled,
		MeetingSettings: req.MeetingSettings,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if state != "" {
		session.State = models.SessionState(state)
	}

	if err := s.SessionRepository.CreateSession(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to persist session", logging.ErrKey, err,
			"notetaker_id", notetakerID)
		return nil, err
	}

	transcript := &models.Transcript{
		UID:         uuid.New().String(),
		NotetakerID: notetakerID,
		SessionUID:  session.UID,
		Status:      models.TranscriptStatusProcessing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.TranscriptRepository.CreateTranscript(ctx, transcript); err != nil {
		// The session is already committed; the ingestion pipeline will
		// lazily recreate the transcript on the first media event.
		slog.WarnContext(ctx, "failed to eagerly create transcript", logging.ErrKey, err,
			"notetaker_id", notetakerID)
	}

	slog.InfoContext(ctx, "notetaker invited",
		"notetaker_id", notetakerID, "session_uid", session.UID, "tags", session.Tags())

	s.Notifier.Emit(NotificationSessionUpdated, session)

	return session, nil
}

// CancelNotetaker cancels the vendor bot, then forces the local state to
// cancelled.
func (s *SessionService) CancelNotetaker(ctx context.Context, notetakerID string) (*models.NotetakerSession, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("session service not initialized")
	}

	if err := s.NotetakerProvider.CancelNotetaker(ctx, notetakerID); err != nil {
		return nil, err
	}

	return s.overwriteState(ctx, notetakerID, func(session *models.NotetakerSession) {
		session.State = models.SessionStateCancelled
	})
}

// LeaveMeeting tells the vendor bot to leave, then records the session as
// disconnected by api_request.
func (s *SessionService) LeaveMeeting(ctx context.Context, notetakerID string) (*models.NotetakerSession, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("session service not initialized")
	}

	if err := s.NotetakerProvider.LeaveMeeting(ctx, notetakerID); err != nil {
		return nil, err
	}

	return s.overwriteState(ctx, notetakerID, func(session *models.NotetakerSession) {
		session.State = models.SessionStateDisconnected
		session.MeetingState = models.MeetingStateAPIRequest
	})
}

// SyncSession re-reads the vendor's view of a notetaker and overwrites the
// local session state with it. Dispatch failures are recorded but never
// retried automatically, so this is the operational recovery path for a
// session that drifted after a missed or failed webhook.
func (s *SessionService) SyncSession(ctx context.Context, notetakerID string) (*models.NotetakerSession, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("session service not initialized")
	}

	vendorState, err := s.NotetakerProvider.GetNotetaker(ctx, notetakerID)
	if err != nil {
		slog.ErrorContext(ctx, "vendor lookup failed", logging.ErrKey, err,
			"notetaker_id", notetakerID)
		return nil, err
	}

	return s.overwriteState(ctx, notetakerID, func(session *models.NotetakerSession) {
		if vendorState.State != "" {
			session.State = models.SessionState(vendorState.State)
		}
		if vendorState.MeetingState != "" {
			session.MeetingState = models.MeetingState(vendorState.MeetingState)
		}
		if vendorState.MeetingLink != "" {
			session.MeetingLink = vendorState.MeetingLink
		}
		if vendorState.Name != "" {
			session.Name = vendorState.Name
		}
	})
}

// GetSession fetches one session by notetaker ID.
func (s *SessionService) GetSession(ctx context.Context, notetakerID string) (*models.NotetakerSession, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("session service not initialized")
	}
	return s.SessionRepository.GetSession(ctx, notetakerID)
}

// ListSessions fetches all sessions.
func (s *SessionService) ListSessions(ctx context.Context) ([]*models.NotetakerSession, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("session service not initialized")
	}
	return s.SessionRepository.ListAllSessions(ctx)
}

// HandleNotetakerCreated applies a notetaker.created event. The vendor sends
// it for bots created out-of-band too, so it only mutates a pre-existing
// session and never creates one.
func (s *SessionService) HandleNotetakerCreated(ctx context.Context, payload *models.NotetakerStatePayload) error {
	notetakerID := payload.Notetaker()
	if notetakerID == "" {
		slog.WarnContext(ctx, "created event without notetaker ID, skipping")
		return nil
	}

	exists, err := s.SessionRepository.SessionExists(ctx, notetakerID)
	if err != nil {
		return err
	}
	if !exists {
		slog.InfoContext(ctx, "created event for unknown session, skipping",
			"notetaker_id", notetakerID)
		return nil
	}

	_, err = s.overwriteState(ctx, notetakerID, func(session *models.NotetakerSession) {
		session.State = models.SessionStateScheduled
	})
	return err
}

// HandleNotetakerUpdated applies a notetaker.updated event, overwriting the
// state verbatim from the payload.
func (s *SessionService) HandleNotetakerUpdated(ctx context.Context, payload *models.NotetakerStatePayload) error {
	notetakerID := payload.Notetaker()
	if notetakerID == "" {
		slog.WarnContext(ctx, "updated event without notetaker ID, skipping")
		return nil
	}

	_, err := s.overwriteState(ctx, notetakerID, func(session *models.NotetakerSession) {
		if payload.State != "" {
			session.State = models.SessionState(payload.State)
		}
		if payload.Name != "" {
			session.Name = payload.Name
		}
		if payload.MeetingLink != "" {
			session.MeetingLink = payload.MeetingLink
			session.MeetingProvider = utils.ExtractMeetingProvider(payload.MeetingLink)
		}
	})
	if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
		slog.InfoContext(ctx, "updated event for unknown session, skipping",
			"notetaker_id", notetakerID)
		return nil
	}
	return err
}

// HandleNotetakerMeetingState applies a notetaker.meeting_state event,
// overwriting both state axes and opportunistically backfilling vendor
// calendar metadata.
func (s *SessionService) HandleNotetakerMeetingState(ctx context.Context, payload *models.NotetakerStatePayload) error {
	notetakerID := payload.Notetaker()
	if notetakerID == "" {
		slog.WarnContext(ctx, "meeting_state event without notetaker ID, skipping")
		return nil
	}

	_, err := s.overwriteState(ctx, notetakerID, func(session *models.NotetakerSession) {
		if payload.State != "" {
			session.State = models.SessionState(payload.State)
		}
		if payload.MeetingState != "" {
			session.MeetingState = models.MeetingState(payload.MeetingState)
		}
		if payload.GrantID != "" {
			session.GrantID = payload.GrantID
		}
		if payload.CalendarID != "" {
			session.CalendarID = payload.CalendarID
		}
		if payload.EventID != "" {
			session.EventID = payload.EventID
		}
	})
	if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
		slog.InfoContext(ctx, "meeting_state event for unknown session, skipping",
			"notetaker_id", notetakerID)
		return nil
	}
	return err
}

// HandleNotetakerDeleted applies a notetaker.deleted event, forcing the
// session to cancelled.
func (s *SessionService) HandleNotetakerDeleted(ctx context.Context, payload *models.NotetakerStatePayload) error {
	notetakerID := payload.Notetaker()
	if notetakerID == "" {
		slog.WarnContext(ctx, "deleted event without notetaker ID, skipping")
		return nil
	}

	session, err := s.overwriteState(ctx, notetakerID, func(session *models.NotetakerSession) {
		session.State = models.SessionStateCancelled
	})
	if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
		slog.InfoContext(ctx, "deleted event for unknown session, skipping",
			"notetaker_id", notetakerID)
		return nil
	}
	if err != nil {
		return err
	}

	s.Notifier.Emit(NotificationSessionDeleted, session)
	return nil
}

// overwriteState runs a read-modify-write on one session and notifies
// subscribers. The write is not compare-and-swapped against concurrent
// webhook deliveries beyond the store revision check.
func (s *SessionService) overwriteState(ctx context.Context, notetakerID string, mutate func(*models.NotetakerSession)) (*models.NotetakerSession, error) {
	session, revision, err := s.SessionRepository.GetSessionWithRevision(ctx, notetakerID)
	if err != nil {
		return nil, err
	}

	mutate(session)
	session.UpdatedAt = time.Now().UTC()

	if err := s.SessionRepository.UpdateSession(ctx, session, revision); err != nil {
		slog.ErrorContext(ctx, "failed to update session", logging.ErrKey, err,
			"notetaker_id", notetakerID)
		return nil, err
	}

	slog.DebugContext(ctx, "session state updated",
		"notetaker_id", notetakerID, "state", session.State, "meeting_state", session.MeetingState)

	s.Notifier.Emit(NotificationSessionUpdated, session)

	return session, nil
}
