// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/impactops/notetaker-service/internal/service"
)

func (api *NotetakerAPI) handleListTranscripts(w http.ResponseWriter, r *http.Request) {
	transcripts, err := api.ingestionService.ListTranscripts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transcripts)
}

func (api *NotetakerAPI) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	transcript, err := api.ingestionService.GetTranscript(r.Context(), chi.URLParam(r, "notetakerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transcript)
}

// handleProcessTranscript runs AI processing for a transcript. The optional
// body selects which derivations to run; with no body both run. A transcript
// whose requested fields are already populated is skipped unless force is
// set via the body or the force=true query parameter.
func (api *NotetakerAPI) handleProcessTranscript(w http.ResponseWriter, r *http.Request) {
	var req service.ProcessRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	if r.URL.Query().Get("force") == "true" {
		req.Force = true
	}

	result, err := api.processingService.ProcessTranscript(r.Context(), chi.URLParam(r, "notetakerID"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleCreateTasksFromTranscript parses the transcript's stored action
// items into task records.
func (api *NotetakerAPI) handleCreateTasksFromTranscript(w http.ResponseWriter, r *http.Request) {
	tasks, err := api.taskService.CreateTasksFromTranscript(r.Context(), chi.URLParam(r, "notetakerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tasks)
}
