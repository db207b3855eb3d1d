// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/impactops/notetaker-service/internal/service"
)

// handleInviteNotetaker sends a notetaker bot to a meeting and returns the
// created session.
func (api *NotetakerAPI) handleInviteNotetaker(w http.ResponseWriter, r *http.Request) {
	var req service.InviteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	session, err := api.sessionService.InviteNotetaker(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (api *NotetakerAPI) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := api.sessionService.ListSessions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (api *NotetakerAPI) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := api.sessionService.GetSession(r.Context(), chi.URLParam(r, "notetakerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// handleCancelNotetaker cancels the vendor bot and marks the session
// cancelled.
func (api *NotetakerAPI) handleCancelNotetaker(w http.ResponseWriter, r *http.Request) {
	session, err := api.sessionService.CancelNotetaker(r.Context(), chi.URLParam(r, "notetakerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// handleSyncSession overwrites the local session with the vendor's current
// view, the manual recovery path after a missed webhook.
func (api *NotetakerAPI) handleSyncSession(w http.ResponseWriter, r *http.Request) {
	session, err := api.sessionService.SyncSession(r.Context(), chi.URLParam(r, "notetakerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// handleLeaveMeeting asks the vendor bot to leave the meeting early.
func (api *NotetakerAPI) handleLeaveMeeting(w http.ResponseWriter, r *http.Request) {
	session, err := api.sessionService.LeaveMeeting(r.Context(), chi.URLParam(r, "notetakerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
